// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ui

import (
	"hash/maphash"
	"unsafe"
)

// idSeed is process-wide so two Contexts hash the same string to the
// same id; maphash itself requires a fixed seed for reproducible
// hashing (its default is randomized per process otherwise), which
// matters here since widget ids need to be stable across frames, not
// just within one maphash.Hash value's lifetime.
var idSeed = maphash.MakeSeed()

// hashID hashes name, seeded by parent (the top of the id stack, or 0 at
// the root), giving hierarchical scoping: the same label nested under
// two different parents yields two different ids.
func hashID(parent uint64, name string) uint64 {
	var h maphash.Hash
	h.SetSeed(idSeed)
	var seedBytes [8]byte
	for i := range seedBytes {
		seedBytes[i] = byte(parent >> (8 * i))
	}
	h.Write(seedBytes[:])
	h.WriteString(name)
	id := h.Sum64()
	return collapseReserved(id)
}

// hashIDPointer derives an id from a pointer's bits, for widgets bound
// to a Go value's identity rather than a label (e.g. one widget per
// slice element).
func hashIDPointer(parent uint64, p unsafe.Pointer) uint64 {
	var h maphash.Hash
	h.SetSeed(idSeed)
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(parent >> (8 * i))
	}
	addr := uint64(uintptr(p))
	for i := 0; i < 8; i++ {
		b[8+i] = byte(addr >> (8 * i))
	}
	h.Write(b[:])
	return collapseReserved(h.Sum64())
}

// collapseReserved maps the reserved id 0 to ~0, so a hash collision
// with the empty/absent id never silently aliases a real widget to "no
// widget".
func collapseReserved(id uint64) uint64 {
	if id == 0 {
		return ^uint64(0)
	}
	return id
}

// pushID pushes name's id (seeded by the current stack top) and returns
// it.
func (c *Context) pushID(name string) uint64 {
	var parent uint64
	if len(c.idStack) > 0 {
		parent = c.idStack[len(c.idStack)-1]
	}
	id := hashID(parent, name)
	c.idStack = append(c.idStack, id)
	return id
}

// popID pops the most recently pushed id.
func (c *Context) popID() {
	c.idStack = c.idStack[:len(c.idStack)-1]
}
