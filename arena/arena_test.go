// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package arena

import "testing"

func TestArenaMarkReset(t *testing.T) {
	a := New("test", 256, false)
	m := a.Mark()
	a.Alloc(64, 8, false)
	if a.Used() == int(m) {
		t.Fatalf("expected Used to advance after Alloc")
	}
	a.Reset(m)
	if a.Used() != int(m) {
		t.Fatalf("Used() = %d after Reset; want %d", a.Used(), m)
	}
}

func TestArenaScoped(t *testing.T) {
	a := New("test", 256, false)
	before := a.Mark()
	Scoped(a, func(a *Arena) {
		a.Alloc(32, 8, false)
		if a.Used() == int(before) {
			t.Fatalf("expected allocation inside Scoped")
		}
	})
	if a.Used() != int(before) {
		t.Fatalf("Scoped should restore the mark on return, Used()=%d want %d", a.Used(), before)
	}
}

func TestArenaGrowable(t *testing.T) {
	a := New("test", 16, true)
	buf := a.Alloc(64, 8, true)
	if len(buf) != 64 {
		t.Fatalf("len(buf) = %d; want 64", len(buf))
	}
	if a.Cap() < 64 {
		t.Fatalf("Cap() = %d; want >= 64 after grow", a.Cap())
	}
}

func TestArenaAllocSliceGeneric(t *testing.T) {
	a := New("test", 1024, false)
	s := AllocSlice[uint64](a, 4)
	if len(s) != 4 {
		t.Fatalf("len(s) = %d; want 4", len(s))
	}
	for i := range s {
		s[i] = uint64(i)
	}
	for i := range s {
		if s[i] != uint64(i) {
			t.Fatalf("s[%d] = %d; want %d", i, s[i], i)
		}
	}
}

func TestGetTempAvoidsConflicts(t *testing.T) {
	in := New("input", 64, false)
	s0 := GetTemp(0, in)
	s1 := GetTemp(0, in, s0)
	if s0 == in || s1 == in {
		t.Fatalf("GetTemp returned the conflicting arena")
	}
	if s0 == s1 {
		t.Fatalf("GetTemp should return distinct scratch arenas when both are excluded separately")
	}
}

func TestBufferPushPop(t *testing.T) {
	a := New("test", 1024, true)
	b := NewBuffer[int](a)
	for i := 0; i < 20; i++ {
		b.Push(i)
	}
	if b.Count() != 20 {
		t.Fatalf("Count() = %d; want 20", b.Count())
	}
	v, ok := b.Pop()
	if !ok || v != 19 {
		t.Fatalf("Pop() = %d, %v; want 19, true", v, ok)
	}
	if b.Count() != 19 {
		t.Fatalf("Count() after Pop = %d; want 19", b.Count())
	}
}
