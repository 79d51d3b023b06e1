// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import "github.com/pulsar3d/engine/math/lin"

// noAreaThreshold below this, a triangle's squared area is treated as
// degenerate (its three points are collinear or coincident).
const noAreaThreshold = 0.00001

// Diagnostics reports whether a built Mesh is a proper, watertight hull
// over the point set it was built from: every face should have every
// other point strictly inside or on it, and no two faces should share all
// three vertices.
type Diagnostics struct {
	DegenerateHull          bool
	UncontainedPointCount   int
	DegenerateTriangleCount int
	DuplicateTriangleCount  int
	NoAreaTriangleCount     int

	PointFullyContained  []bool // indexed like the points slice passed to Diagnose.
	TriangleIsDegenerate []bool // indexed like mesh.Triangles.
	TriangleHasNoArea    []bool
	DuplicateTriangleOf  []int // -1 if the triangle at this index has no duplicate.
}

// Diagnose checks mesh against the original point set it was built from.
func Diagnose(points []lin.V3, mesh Mesh) Diagnostics {
	d := Diagnostics{
		PointFullyContained:  make([]bool, len(points)),
		TriangleIsDegenerate: make([]bool, len(mesh.Triangles)),
		TriangleHasNoArea:    make([]bool, len(mesh.Triangles)),
		DuplicateTriangleOf:  make([]int, len(mesh.Triangles)),
	}
	for i := range d.PointFullyContained {
		d.PointFullyContained[i] = true
	}
	for i := range d.DuplicateTriangleOf {
		d.DuplicateTriangleOf[i] = -1
	}

	for ti, t := range mesh.Triangles {
		degenerate := false

		if triangleAreaSq(t.A, t.B, t.C) < noAreaThreshold {
			degenerate = true
			d.TriangleHasNoArea[ti] = true
			d.NoAreaTriangleCount++
		}

		if !degenerate {
			for pi, p := range points {
				if p == t.A || p == t.B || p == t.C {
					continue
				}
				if tetrahedronSignedVolume(t.A, t.B, t.C, p) > 0 {
					degenerate = true
					d.PointFullyContained[pi] = false
				}
			}
		}

		if degenerate {
			d.DegenerateTriangleCount++
			d.DegenerateHull = true
		}
		d.TriangleIsDegenerate[ti] = degenerate

		if d.DuplicateTriangleOf[ti] == -1 {
			for tj := range mesh.Triangles {
				if tj == ti {
					continue
				}
				if canonicalTriangle(t) == canonicalTriangle(mesh.Triangles[tj]) {
					d.DuplicateTriangleOf[ti] = tj
					d.DuplicateTriangleOf[tj] = ti
					d.DuplicateTriangleCount++
				}
			}
		}
	}

	for _, contained := range d.PointFullyContained {
		if !contained {
			d.UncontainedPointCount++
		}
	}

	return d
}
