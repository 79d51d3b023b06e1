// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bake

import (
	"math"

	"github.com/pulsar3d/engine/math/lin"
	"github.com/pulsar3d/engine/mapmodel"
)

// Hit is the result of a successful Raycast against a map's geometry.
type Hit struct {
	Distance float64
	Position lin.V3
	Normal   lin.V3
	Poly     *mapmodel.Poly

	// TriVerts are the three Map.Vertices indices of the hit triangle and
	// U, V its barycentric coordinates (relative to TriVerts[0]), so a
	// caller can interpolate per-vertex albedo UV at the exact hit point.
	TriVerts [3]uint32
	U, V     float64
}

// staticGeometry wraps a built map with the brush->poly index it doesn't
// carry itself (m.Polys is contiguous per brush in build order, but
// nothing records the boundaries), so Raycast can walk from a BVH leaf's
// brush edges straight to the triangles that brush owns.
type staticGeometry struct {
	m          *mapmodel.Map
	brushPolys [][2]int // [brush index] -> (first poly index, poly count)
}

func newStaticGeometry(m *mapmodel.Map) *staticGeometry {
	ranges := make([][2]int, len(m.Brushes))
	polyIdx := 0
	for bi, b := range m.Brushes {
		first := polyIdx
		upper := b.FirstPlane + b.PlaneCount
		for polyIdx < len(m.Polys) && m.Polys[polyIdx].PlaneIndex < upper {
			polyIdx++
		}
		ranges[bi] = [2]int{first, polyIdx - first}
	}
	return &staticGeometry{m: m, brushPolys: ranges}
}

// Raycast walks the brush BVH and returns the closest triangle hit within
// [0, maxDist] along dir from origin, if any.
func (g *staticGeometry) Raycast(origin, dir lin.V3, maxDist float64) (Hit, bool) {
	m := g.m
	if len(m.Nodes) == 0 {
		return Hit{}, false
	}

	invDir := lin.V3{X: safeInv(dir.X), Y: safeInv(dir.Y), Z: safeInv(dir.Z)}

	best := Hit{Distance: maxDist}
	found := false

	var stack [64]int
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		node := m.Nodes[stack[sp]]
		if !rayAABB(node.Bounds, origin, invDir, best.Distance) {
			continue
		}
		if node.IsLeaf() {
			for i := 0; i < node.Count; i++ {
				brushIndex := m.BrushEdges[node.LeftFirst+i]
				first, count := g.brushPolys[brushIndex][0], g.brushPolys[brushIndex][1]
				for pi := first; pi < first+count; pi++ {
					poly := &m.Polys[pi]
					for idx := poly.FirstIndex; idx < poly.FirstIndex+poly.IndexCount; idx += 3 {
						ia, ib, ic := m.Indices[idx], m.Indices[idx+1], m.Indices[idx+2]
						a := m.Vertices[ia].Position
						b := m.Vertices[ib].Position
						c := m.Vertices[ic].Position
						if hit, ok := rayTriangle(origin, dir, a, b, c, best.Distance); ok {
							hit.Normal = poly.Normal
							hit.Poly = poly
							hit.TriVerts = [3]uint32{ia, ib, ic}
							best = hit
							found = true
						}
					}
				}
			}
			continue
		}
		stack[sp] = node.LeftFirst
		sp++
		stack[sp] = node.LeftFirst + 1
		sp++
	}

	return best, found
}

func safeInv(d float64) float64 {
	if d == 0 {
		return math.MaxFloat64
	}
	return 1 / d
}

// rayAABB is the slab method; maxDist bounds the accepted hit range so a
// box entirely beyond the current closest hit is skipped.
func rayAABB(box mapmodel.AABB, origin, invDir lin.V3, maxDist float64) bool {
	tmin, tmax := 0.0, maxDist

	t0 := (box.Min.X - origin.X) * invDir.X
	t1 := (box.Max.X - origin.X) * invDir.X
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	tmin, tmax = math.Max(tmin, t0), math.Min(tmax, t1)
	if tmax < tmin {
		return false
	}

	t0 = (box.Min.Y - origin.Y) * invDir.Y
	t1 = (box.Max.Y - origin.Y) * invDir.Y
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	tmin, tmax = math.Max(tmin, t0), math.Min(tmax, t1)
	if tmax < tmin {
		return false
	}

	t0 = (box.Min.Z - origin.Z) * invDir.Z
	t1 = (box.Max.Z - origin.Z) * invDir.Z
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	tmin, tmax = math.Max(tmin, t0), math.Min(tmax, t1)
	return tmax >= tmin
}

const rayEpsilon = 1e-8

// rayTriangle is the Möller-Trumbore ray/triangle intersection, rejecting
// hits beyond maxDist so the caller only ever tracks the closest one.
func rayTriangle(origin, dir, a, b, c lin.V3, maxDist float64) (Hit, bool) {
	var e1, e2, pvec, tvec, qvec lin.V3
	e1.Sub(&b, &a)
	e2.Sub(&c, &a)
	pvec.Cross(&dir, &e2)
	det := e1.Dot(&pvec)
	if math.Abs(det) < rayEpsilon {
		return Hit{}, false
	}
	invDet := 1 / det

	tvec.Sub(&origin, &a)
	u := tvec.Dot(&pvec) * invDet
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	qvec.Cross(&tvec, &e1)
	v := dir.Dot(&qvec) * invDet
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := e2.Dot(&qvec) * invDet
	if t <= rayEpsilon || t >= maxDist {
		return Hit{}, false
	}

	var pos lin.V3
	pos.Scale(&dir, t)
	pos.Add(&origin, &pos)
	return Hit{Distance: t, Position: pos, U: u, V: v}, true
}
