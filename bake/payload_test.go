// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bake

import "testing"

func TestEncodeDecodePlaneJobRoundTrips(t *testing.T) {
	cases := []struct{ planeIndex, w, h int }{
		{0, 1, 1},
		{7, 64, 32},
		{4095, 256, 256},
	}
	for _, c := range cases {
		p := encodePlaneJob(c.planeIndex, c.w, c.h)
		gotPlane, gotW, gotH := decodePlaneJob(p)
		if gotPlane != c.planeIndex || gotW != c.w || gotH != c.h {
			t.Fatalf("encodePlaneJob(%d,%d,%d) round-tripped to (%d,%d,%d)",
				c.planeIndex, c.w, c.h, gotPlane, gotW, gotH)
		}
	}
}

func TestEncodePlaneJobLeavesPaddingZeroed(t *testing.T) {
	p := encodePlaneJob(1, 2, 3)
	for i := 24; i < len(p); i++ {
		if p[i] != 0 {
			t.Fatalf("byte %d of payload tail is %d, want 0", i, p[i])
		}
	}
}
