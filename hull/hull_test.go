// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulsar3d/engine/math/lin"
)

func cubePoints() []lin.V3 {
	var pts []lin.V3
	for _, x := range []float64{0, 1} {
		for _, y := range []float64{0, 1} {
			for _, z := range []float64{0, 1} {
				pts = append(pts, lin.V3{X: x, Y: y, Z: z})
			}
		}
	}
	return pts
}

func TestBuildRejectsFewerThanFourPoints(t *testing.T) {
	_, err := Build([]lin.V3{{}, {X: 1}, {Y: 1}}, nil)
	require.ErrorIs(t, err, ErrTooFewPoints)
}

func TestBuildCubeProducesWatertightHull(t *testing.T) {
	pts := cubePoints()
	mesh, err := Build(pts, nil)
	require.NoError(t, err)
	require.NotEmpty(t, mesh.Triangles)

	diag := Diagnose(pts, mesh)
	require.False(t, diag.DegenerateHull)
	require.Zero(t, diag.UncontainedPointCount)
	require.Zero(t, diag.DegenerateTriangleCount)
	require.Zero(t, diag.DuplicateTriangleCount)
}

func TestBuildCubeCoversAllEightCorners(t *testing.T) {
	pts := cubePoints()
	mesh, err := Build(pts, nil)
	require.NoError(t, err)

	seen := make(map[vkey]bool)
	for _, tri := range mesh.Triangles {
		seen[v3key(tri.A)] = true
		seen[v3key(tri.B)] = true
		seen[v3key(tri.C)] = true
	}
	require.Len(t, seen, 8, "every cube corner must appear as a hull vertex")
}

func TestBuildRecordsOneDebugStepPerQueuedEdge(t *testing.T) {
	pts := cubePoints()
	var debug Debug
	mesh, err := Build(pts, &debug)
	require.NoError(t, err)

	require.Equal(t, pts, debug.InitialPoints)
	require.NotEmpty(t, debug.Steps)
	require.GreaterOrEqual(t, len(debug.Steps), len(mesh.Triangles),
		"every step processes one edge; distinct triangles can only be a subset of steps")
}

func TestCanonicalEdgeIgnoresDirection(t *testing.T) {
	a := lin.V3{X: 0, Y: 0, Z: 0}
	b := lin.V3{X: 1, Y: 0, Z: 0}
	require.Equal(t, canonicalEdge(Edge{a, b}), canonicalEdge(Edge{b, a}))
}

func TestCanonicalTriangleIgnoresVertexOrder(t *testing.T) {
	a := lin.V3{X: 0, Y: 0, Z: 0}
	b := lin.V3{X: 1, Y: 0, Z: 0}
	c := lin.V3{X: 0, Y: 1, Z: 0}
	require.Equal(t, canonicalTriangle(Triangle{a, b, c}), canonicalTriangle(Triangle{c, a, b}))
	require.Equal(t, canonicalTriangle(Triangle{a, b, c}), canonicalTriangle(Triangle{b, c, a}))
}

func TestTetrahedronSignedVolumeSignMatchesSide(t *testing.T) {
	a := lin.V3{X: 0, Y: 0, Z: 0}
	b := lin.V3{X: 1, Y: 0, Z: 0}
	c := lin.V3{X: 0, Y: 1, Z: 0}
	above := lin.V3{X: 0, Y: 0, Z: 1}
	below := lin.V3{X: 0, Y: 0, Z: -1}

	require.Greater(t, tetrahedronSignedVolume(a, b, c, above), 0.0)
	require.Less(t, tetrahedronSignedVolume(a, b, c, below), 0.0)
}
