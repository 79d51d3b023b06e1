// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mapmodel

import (
	"math"

	"github.com/pulsar3d/engine/math/lin"
)

// brushPlaneVertices computes, for every plane in [firstPlane, firstPlane+
// planeCount), the set of corner points where that plane meets the brush's
// convex hull. This is the classic three-plane-intersection construction:
// every triple of planes that isn't mutually parallel defines a candidate
// point; a candidate survives only if it lies on the inward side (within
// planeEpsilon) of every other plane in the brush, meaning it's an actual
// hull corner and not an intersection that falls outside the solid.
func brushPlaneVertices(planes []Plane, firstPlane, planeCount int) [][]lin.V3 {
	perPlane := make([][]lin.V3, planeCount)

	for i := 0; i < planeCount; i++ {
		for j := i + 1; j < planeCount; j++ {
			for k := j + 1; k < planeCount; k++ {
				pi := &planes[firstPlane+i]
				pj := &planes[firstPlane+j]
				pk := &planes[firstPlane+k]

				p, ok := intersectPlanes(pi, pj, pk)
				if !ok {
					continue
				}
				if !pointInsideBrush(p, planes, firstPlane, planeCount) {
					continue
				}
				perPlane[i] = appendUnique(perPlane[i], p)
				perPlane[j] = appendUnique(perPlane[j], p)
				perPlane[k] = appendUnique(perPlane[k], p)
			}
		}
	}
	return perPlane
}

// intersectPlanes solves the 3x3 linear system Normal_i . p = Dist_i for
// i in {a,b,c} using the matrix inverse; ok is false if the three planes
// are mutually parallel (degenerate, zero determinant).
func intersectPlanes(a, b, c *Plane) (lin.V3, bool) {
	var m lin.M3
	m.SetS(
		a.Normal.X, a.Normal.Y, a.Normal.Z,
		b.Normal.X, b.Normal.Y, b.Normal.Z,
		c.Normal.X, c.Normal.Y, c.Normal.Z,
	)
	if m.Det() == 0 {
		return lin.V3{}, false
	}
	var inv lin.M3
	inv.Inv(&m)
	rhs := lin.V3{X: a.Dist, Y: b.Dist, Z: c.Dist}
	var p lin.V3
	p.MultMv(&inv, &rhs)
	return p, true
}

// pointInsideBrush reports whether p is on the inward side of every plane
// in [firstPlane, firstPlane+planeCount), within planeEpsilon.
func pointInsideBrush(p lin.V3, planes []Plane, firstPlane, planeCount int) bool {
	for i := 0; i < planeCount; i++ {
		if planes[firstPlane+i].SignedDistance(p) > planeEpsilon {
			return false
		}
	}
	return true
}

func appendUnique(pts []lin.V3, p lin.V3) []lin.V3 {
	for _, q := range pts {
		d := p
		d.Sub(&d, &q)
		if d.LenSqr() < planeEpsilon*planeEpsilon {
			return pts
		}
	}
	return append(pts, p)
}

// sortFaceCCW orders the corner points of one face around its centroid,
// counter-clockwise as viewed from outside the brush (looking against
// the face normal), using the plane's own tangent basis as the 2D
// projection axes.
func sortFaceCCW(normal lin.V3, pts []lin.V3) {
	if len(pts) < 3 {
		return
	}
	var s, t lin.V3
	n := normal
	n.Plane(&s, &t)

	var centroid lin.V3
	for _, p := range pts {
		centroid.Add(&centroid, &p)
	}
	centroid.Scale(&centroid, 1/float64(len(pts)))

	angle := func(p lin.V3) float64 {
		rel := lin.V3{}
		rel.Sub(&p, &centroid)
		x := s.Dot(&rel)
		y := t.Dot(&rel)
		return math.Atan2(y, x)
	}

	// Insertion sort: face vertex counts are small (brush faces rarely
	// exceed a couple dozen corners), so O(n^2) is simpler than importing
	// sort.Slice for this.
	for i := 1; i < len(pts); i++ {
		ai := angle(pts[i])
		j := i - 1
		for j >= 0 && angle(pts[j]) > ai {
			pts[j], pts[j+1] = pts[j+1], pts[j]
			j--
		}
	}
}
