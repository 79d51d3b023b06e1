// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package arena provides linear bump allocation with scoped marks, a
// generational handle pool, and arena-backed stretchy buffers -- the
// memory substrate every other package builds on.
//
// Go has no portable way to reserve a virtual address range and commit
// pages into it on demand without invalidating slice headers held by
// callers, so Arena here is a byte-slice bump allocator: Mark/Reset and
// Scoped give the same push/pop-mark contract a virtual-memory arena
// would, but growth beyond the arena's current capacity reallocates the
// backing slice (documented below). Every allocation still goes through a
// single bump pointer, so Alloc is still O(1) with no per-call heap
// traffic.
package arena

import (
	"unsafe"

	"github.com/pulsar3d/engine/core"
)

// Arena is a linear allocator over a single backing buffer. Allocation
// never blocks and never individually frees; exhausting a non-growable
// arena is fatal.
type Arena struct {
	buf      []byte
	used     int
	growable bool // false => OOM on exhaustion is fatal, matching a reserved-but-fixed region.
	name     string
}

// New creates an arena with the given initial capacity. If growable is
// false the arena never reallocates past its initial capacity -- this
// mirrors a fixed virtual reservation and is used for arenas whose size is
// known up front (e.g. a frame's command data heap). If growable is true
// the backing buffer reallocates (doubling) past capacity and copies the
// bytes in use; Marks stay valid across a grow, but slices returned by
// earlier Alloc calls keep pointing at the old buffer.
func New(name string, capacity int, growable bool) *Arena {
	if capacity <= 0 {
		capacity = 4096
	}
	return &Arena{buf: make([]byte, capacity), name: name, growable: growable}
}

// Mark is an opaque save point returned by Arena.Mark and consumed by
// Arena.Reset or a Scoped guard's release.
type Mark int

// Mark returns the current allocation position.
func (a *Arena) Mark() Mark { return Mark(a.used) }

// Reset rewinds the arena to a previously captured Mark, making the
// memory between the mark and the current position available for reuse.
// Reset never shrinks the backing buffer (see ResetAndDecommit).
func (a *Arena) Reset(m Mark) {
	core.Assert(int(m) <= a.used, "%s: reset to mark %d past used %d", a.name, m, a.used)
	a.used = int(m)
}

// ResetAndDecommit rewinds the arena to empty and releases the backing
// buffer for garbage collection, replacing it with a buffer of the given
// capacity, so the large block becomes eligible for collection instead of
// being kept resident.
func (a *Arena) ResetAndDecommit(capacity int) {
	if capacity <= 0 {
		capacity = 4096
	}
	a.used = 0
	a.buf = make([]byte, capacity)
}

// Used returns the number of bytes currently allocated.
func (a *Arena) Used() int { return a.used }

// Cap returns the arena's current backing capacity.
func (a *Arena) Cap() int { return len(a.buf) }

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

// Alloc reserves size bytes aligned to align (must be a power of two) and
// returns a slice over them. If zero is true the memory is zeroed (Go's
// make already zeroes fresh pages, but memory reused after Reset is not
// re-zeroed, so zero=true is needed whenever stale bytes would be
// observable). Exhausting a non-growable arena is fatal.
func (a *Arena) Alloc(size, align int, zero bool) []byte {
	core.Assert(size >= 0, "%s: negative alloc size %d", a.name, size)
	start := alignUp(a.used, align)
	end := start + size
	if end > len(a.buf) {
		if !a.growable {
			core.Fatal("%s: arena exhausted (cap=%d, requested=%d)", a.name, len(a.buf), size)
		}
		newCap := len(a.buf) * 2
		for newCap < end {
			newCap *= 2
		}
		grown := make([]byte, newCap)
		copy(grown, a.buf[:a.used])
		a.buf = grown
	}
	a.used = end
	region := a.buf[start:end]
	if zero {
		for i := range region {
			region[i] = 0
		}
	}
	return region
}

// Scoped pushes a mark, runs fn, and pops the mark on return -- a
// closure-based stand-in for a scoped-temp RAII guard.
func Scoped(a *Arena, fn func(a *Arena)) {
	m := a.Mark()
	defer a.Reset(m)
	fn(a)
}

// AllocT bump-allocates space for one T and returns a pointer into the
// arena. T must not contain Go pointers that need to outlive the arena in
// ways the garbage collector can't see; this module only stores POD-like
// value types (vectors, matrices, command payloads) this way.
func AllocT[T any](a *Arena) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))
	raw := a.Alloc(size, align, true)
	return (*T)(unsafe.Pointer(&raw[0]))
}

// AllocSlice bump-allocates space for n contiguous Ts.
func AllocSlice[T any](a *Arena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))
	raw := a.Alloc(size*n, align, true)
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
}
