// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package hull computes a 3D convex hull by gift-wrapping: starting from
// one known hull edge, it repeatedly finds the third vertex that keeps
// every input point to the left of the growing triangle, queuing the two
// new edges that triangle exposes until every edge has been walked once.
// See https://www.cs.jhu.edu/~misha/Spring16/09.pdf for the algorithm.
package hull

import (
	"errors"

	"github.com/pulsar3d/engine/math/lin"
)

// Edge is a directed pair of hull vertices.
type Edge struct{ A, B lin.V3 }

// Triangle is one hull face.
type Triangle struct{ A, B, C lin.V3 }

// Mesh is the finished hull: an unordered set of outward-wound triangles.
type Mesh struct {
	Triangles []Triangle
}

// ErrTooFewPoints is returned by Build when fewer than 4 points are given;
// gift-wrapping needs at least a tetrahedron's worth of input.
var ErrTooFewPoints = errors.New("hull: need at least 4 points")

// Build computes the convex hull of points. When debug is non-nil, every
// gift-wrapping step is recorded into it for later visualization.
func Build(points []lin.V3, debug *Debug) (Mesh, error) {
	if len(points) < 4 {
		return Mesh{}, ErrTooFewPoints
	}

	if debug != nil {
		*debug = Debug{InitialPoints: append([]lin.V3(nil), points...)}
	}

	queue := []Edge{findEdgeOnHull(points)}
	processed := make(map[edgeKey]bool)
	triangleSeen := make(map[triKey]bool)

	var triangles []Triangle

	for len(queue) > 0 {
		e := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if processed[canonicalEdge(e)] {
			continue
		}

		q := vertexLeftOfEveryPoint(e, points)
		t := Triangle{e.A, e.B, q}

		if debug != nil {
			step := DebugStep{}
			for _, existing := range triangles {
				step.Triangles = append(step.Triangles, DebugTriangle{Triangle: existing})
			}
			step.Triangles = append(step.Triangles, DebugTriangle{Triangle: t, AddedThisStep: true})
			step.Edges = append(step.Edges, DebugEdge{Edge: e, ProcessedThisStep: true})
			for _, pending := range queue {
				step.Edges = append(step.Edges, DebugEdge{Edge: pending})
			}
			debug.Steps = append(debug.Steps, step)
		}

		if key := canonicalTriangle(t); !triangleSeen[key] {
			triangleSeen[key] = true
			triangles = append(triangles, t)
		}

		e1 := Edge{t.C, t.B}
		e2 := Edge{t.A, t.C}
		if k := canonicalEdge(e1); !queuedOrProcessed(queue, processed, k) {
			queue = append(queue, e1)
		}
		if k := canonicalEdge(e2); !queuedOrProcessed(queue, processed, k) {
			queue = append(queue, e2)
		}

		processed[canonicalEdge(e)] = true
	}

	return Mesh{Triangles: triangles}, nil
}

func queuedOrProcessed(queue []Edge, processed map[edgeKey]bool, k edgeKey) bool {
	if processed[k] {
		return true
	}
	for _, e := range queue {
		if canonicalEdge(e) == k {
			return true
		}
	}
	return false
}

// findEdgeOnHull seeds the gift-wrap with one guaranteed hull edge: the
// lexicographically smallest point is always on the hull, and the edge
// from it to an arbitrary "ghost" point above it can be rotated down
// (via vertexLeftOfEveryPoint) onto the real adjacent hull vertex.
func findEdgeOnHull(points []lin.V3) Edge {
	p := points[0]
	for _, p2 := range points[1:] {
		if lexLess(p2, p) {
			p = p2
		}
	}
	ghost := lin.V3{X: p.X, Y: p.Y, Z: p.Z + 1}
	q := vertexLeftOfEveryPoint(Edge{p, ghost}, points)
	return Edge{p, q}
}

func lexLess(a, b lin.V3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// vertexLeftOfEveryPoint finds the point q such that no other input point
// lies to the right of triangle (e.A, e.B, q) -- i.e. the hull face
// containing edge e. Ties (coplanar candidates) are broken by picking the
// larger-area triangle, which is what keeps the result deterministic for
// point sets with several coplanar faces.
func vertexLeftOfEveryPoint(e Edge, points []lin.V3) lin.V3 {
	best := points[0]
	bestArea := triangleAreaSq(e.A, e.B, best)

	for _, p := range points[1:] {
		if p == e.A || p == e.B {
			continue
		}
		vol := tetrahedronSignedVolume(e.A, e.B, best, p)
		switch {
		case vol > 0:
			best = p
			bestArea = triangleAreaSq(e.A, e.B, best)
		case vol == 0:
			area := triangleAreaSq(e.A, e.B, p)
			if area > bestArea {
				best = p
				bestArea = area
			}
		}
	}
	return best
}

// tetrahedronSignedVolume is six times the signed volume of tetrahedron
// (a,b,c,d); only its sign is used by the gift-wrap, so the missing /6 is
// never applied.
func tetrahedronSignedVolume(a, b, c, d lin.V3) float64 {
	var ab, ac, ad, n lin.V3
	ab.Sub(&b, &a)
	ac.Sub(&c, &a)
	ad.Sub(&d, &a)
	n.Cross(&ab, &ac)
	return n.Dot(&ad)
}

// triangleAreaSq is four times the squared area of triangle (a,b,c); used
// only for relative comparison between candidate triangles.
func triangleAreaSq(a, b, c lin.V3) float64 {
	var ab, ac, n lin.V3
	ab.Sub(&b, &a)
	ac.Sub(&c, &a)
	n.Cross(&ab, &ac)
	return n.Dot(&n)
}

type edgeKey [2]vkey
type triKey [3]vkey
type vkey [3]float64

func v3key(v lin.V3) vkey { return vkey{v.X, v.Y, v.Z} }

// canonicalEdge is order-independent: Q and the processed set both treat
// (a,b) and (b,a) as the same edge.
func canonicalEdge(e Edge) edgeKey {
	a, b := v3key(e.A), v3key(e.B)
	if less(b, a) {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// canonicalTriangle is order-independent across all 6 vertex permutations.
func canonicalTriangle(t Triangle) triKey {
	keys := [3]vkey{v3key(t.A), v3key(t.B), v3key(t.C)}
	if less(keys[1], keys[0]) {
		keys[0], keys[1] = keys[1], keys[0]
	}
	if less(keys[2], keys[1]) {
		keys[1], keys[2] = keys[2], keys[1]
	}
	if less(keys[1], keys[0]) {
		keys[0], keys[1] = keys[1], keys[0]
	}
	return triKey(keys)
}

func less(a, b vkey) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}
