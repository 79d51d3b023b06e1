// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mapmodel

import (
	"math"
	"testing"

	"github.com/pulsar3d/engine/math/lin"
)

func TestNewPlaneFromPointsNormalAndDist(t *testing.T) {
	a := lin.V3{X: 0, Y: 0, Z: 0}
	b := lin.V3{X: 1, Y: 0, Z: 0}
	c := lin.V3{X: 1, Y: 1, Z: 0}
	pl := NewPlaneFromPoints(a, b, c)

	if math.Abs(pl.Normal.Len()-1) > 1e-9 {
		t.Fatalf("Normal not unit length: %v", pl.Normal)
	}
	for _, p := range []lin.V3{a, b, c} {
		if !pl.onPlane(p) {
			t.Fatalf("point %v not recognized as on-plane", p)
		}
	}
}

func TestChooseLightmapBasisPicksSmallerFootprint(t *testing.T) {
	normal := lin.V3{Z: 1}
	bounds := AABB{Min: lin.V3{X: 0, Y: 0, Z: 0}, Max: lin.V3{X: 64, Y: 16, Z: 0}}
	basis := chooseLightmapBasis(normal, bounds)

	if basis.TexW < 1 || basis.TexH < 1 {
		t.Fatalf("basis texture dims must be >= 1, got %dx%d", basis.TexW, basis.TexH)
	}
	if basis.ScaleX != LightmapScale || basis.ScaleY != LightmapScale {
		t.Fatalf("basis scales = (%v, %v); want (%v, %v)", basis.ScaleX, basis.ScaleY, LightmapScale, LightmapScale)
	}
}

func TestLightmapUVOriginMapsToZero(t *testing.T) {
	basis := LightmapBasis{
		Origin: lin.V3{X: 1, Y: 2, Z: 3},
		S:      lin.V3{X: 1},
		T:      lin.V3{Y: 1},
		ScaleX: LightmapScale,
		ScaleY: LightmapScale,
		TexW:   4,
		TexH:   4,
	}
	u, v := lightmapUV(basis, basis.Origin)
	if math.Abs(u) > 1e-9 || math.Abs(v) > 1e-9 {
		t.Fatalf("lightmapUV(origin) = (%v, %v); want (0, 0)", u, v)
	}
}
