// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package arena

import "sync"

// Handle is a 64-bit value of {index:u32, generation:u32}.
// The zero Handle is NULL and never returned by Pool.Add.
type Handle uint64

// NullHandle is the all-zero handle: no pool slot ever has generation 0
// assigned to a live entry, since generation starts at 1 on first use.
const NullHandle Handle = 0

func newHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index encoded in h.
func (h Handle) Index() uint32 { return uint32(h) }

// Generation returns the generation encoded in h.
func (h Handle) Generation() uint32 { return uint32(h >> 32) }

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool { return h == NullHandle }

// slot wraps a pooled value with the generation bookkeeping needed for
// generational handles: freeing bumps the generation so stale handles
// fail the comparison in Get, giving safe use-after-free.
type slot[T any] struct {
	value      T
	generation uint32
	free       bool
	nextFree   int32 // -1 when this is the freelist tail.
}

// Pool is a generational object pool of T. The zero Pool is not usable;
// construct with NewPool. Pool is not safe for concurrent use -- see
// ConcurrentPool for the guarded variant.
type Pool[T any] struct {
	slots     []slot[T]
	freeHead  int32 // -1 when the freelist is empty.
}

// NewPool creates an empty pool. capacityHint preallocates backing
// storage but the pool still grows past it as needed.
func NewPool[T any](capacityHint int) *Pool[T] {
	return &Pool[T]{
		slots:    make([]slot[T], 0, capacityHint),
		freeHead: -1,
	}
}

// Add inserts value and returns a handle that remains valid until Remove
// is called with it.
func (p *Pool[T]) Add(value T) Handle {
	if p.freeHead >= 0 {
		idx := p.freeHead
		s := &p.slots[idx]
		p.freeHead = s.nextFree
		s.value = value
		s.free = false
		return newHandle(uint32(idx), s.generation)
	}
	idx := uint32(len(p.slots))
	p.slots = append(p.slots, slot[T]{value: value, generation: 1, nextFree: -1})
	return newHandle(idx, 1)
}

// Get returns a pointer to the value referenced by h, or (nil, false) if
// h is null, out of range, or its generation has been superseded by a
// Remove. The returned pointer is only valid until the next Add/Remove,
// which may reuse the slot.
func (p *Pool[T]) Get(h Handle) (*T, bool) {
	if h.IsNull() {
		return nil, false
	}
	idx := h.Index()
	if int(idx) >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[idx]
	if s.free || s.generation != h.Generation() {
		return nil, false
	}
	return &s.value, true
}

// Remove invalidates h. A subsequent Add may reuse its slot with a new
// generation; every Get against the old handle will then fail.
func (p *Pool[T]) Remove(h Handle) bool {
	if h.IsNull() {
		return false
	}
	idx := h.Index()
	if int(idx) >= len(p.slots) {
		return false
	}
	s := &p.slots[idx]
	if s.free || s.generation != h.Generation() {
		return false
	}
	s.free = true
	s.generation++
	var zero T
	s.value = zero
	s.nextFree = p.freeHead
	p.freeHead = int32(idx)
	return true
}

// Each calls fn for every live (non-freed) entry, in slot order. fn may
// not add or remove entries from p.
func (p *Pool[T]) Each(fn func(h Handle, value *T)) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.free {
			continue
		}
		fn(newHandle(uint32(i), s.generation), &s.value)
	}
}

// Len returns the number of live entries.
func (p *Pool[T]) Len() int {
	n := 0
	for i := range p.slots {
		if !p.slots[i].free {
			n++
		}
	}
	return n
}

// ConcurrentPool wraps Pool with a mutex shared by Add, Remove, and Get.
// A lock-free Get backed by a single generation+free CAS is the ideal;
// Go gives no portable way to read a compound {generation, free, value T}
// slot without tearing for arbitrary T, so Get takes the same mutex as
// the writers here rather than risk a torn read. Callers that need a
// hot, allocation-free path should prefer the single-threaded Pool with
// their own external synchronization.
type ConcurrentPool[T any] struct {
	mu   sync.Mutex
	pool *Pool[T]
}

// NewConcurrentPool creates an empty concurrent pool.
func NewConcurrentPool[T any](capacityHint int) *ConcurrentPool[T] {
	return &ConcurrentPool[T]{pool: NewPool[T](capacityHint)}
}

// Add is safe to call from any goroutine.
func (p *ConcurrentPool[T]) Add(value T) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pool.Add(value)
}

// Remove is safe to call from any goroutine.
func (p *ConcurrentPool[T]) Remove(h Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pool.Remove(h)
}

// Get takes the same mutex as Add/Remove: Go gives no portable
// torn-read-free guarantee for a compound {generation, free, value T}
// slot the way a single packed-integer CAS would, so Get copies the
// value out under the lock instead of racing the writers.
func (p *ConcurrentPool[T]) Get(h Handle) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.pool.Get(h) // value copied out under the lock.
	if !ok {
		var zero T
		return zero, false
	}
	return *v, true
}

// Each snapshots live entries under the lock and calls fn outside it.
func (p *ConcurrentPool[T]) Each(fn func(h Handle, value T)) {
	p.mu.Lock()
	type entry struct {
		h Handle
		v T
	}
	entries := make([]entry, 0, len(p.pool.slots))
	p.pool.Each(func(h Handle, value *T) {
		entries = append(entries, entry{h, *value})
	})
	p.mu.Unlock()
	for _, e := range entries {
		fn(e.h, e.v)
	}
}

// Len returns the number of live entries.
func (p *ConcurrentPool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pool.Len()
}
