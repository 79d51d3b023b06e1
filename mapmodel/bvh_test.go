// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mapmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulsar3d/engine/math/lin"
)

func brushAt(x float64) Brush {
	return Brush{
		Bounds: AABB{
			Min: lin.V3{X: x, Y: 0, Z: 0},
			Max: lin.V3{X: x + 1, Y: 1, Z: 1},
		},
	}
}

func TestBuildBVHPartitionsAndCoversAllBrushes(t *testing.T) {
	brushes := make([]Brush, 0, 20)
	for i := 0; i < 20; i++ {
		brushes = append(brushes, brushAt(float64(i*10)))
	}

	nodes, edges := buildBVH(brushes)
	require.NotEmpty(t, nodes)
	require.Len(t, edges, len(brushes))

	seen := map[int]bool{}
	var walk func(idx int)
	walk = func(idx int) {
		n := nodes[idx]
		if n.IsLeaf() {
			for i := 0; i < n.Count; i++ {
				seen[edges[n.LeftFirst+i]] = true
			}
			return
		}
		walk(n.LeftFirst)
		walk(n.LeftFirst + 1)
	}
	walk(0)
	require.Len(t, seen, len(brushes), "every brush must be reachable from exactly one leaf")

	root := nodes[0]
	for _, b := range brushes {
		require.True(t, root.Bounds.Contains(b.Bounds), "root bounds must contain every brush")
	}
}

func TestBuildBVHDegenerateCentersStillCoversAllBrushes(t *testing.T) {
	brushes := make([]Brush, 0, 10)
	for i := 0; i < 10; i++ {
		brushes = append(brushes, brushAt(0))
	}

	nodes, edges := buildBVH(brushes)
	require.NotEmpty(t, nodes)

	seen := map[int]bool{}
	var walk func(idx int)
	walk = func(idx int) {
		n := nodes[idx]
		if n.IsLeaf() {
			for i := 0; i < n.Count; i++ {
				seen[edges[n.LeftFirst+i]] = true
			}
			return
		}
		walk(n.LeftFirst)
		walk(n.LeftFirst + 1)
	}
	walk(0)
	require.Len(t, seen, len(brushes))
}

func TestBuildBVHSingleBrushIsOneLeaf(t *testing.T) {
	nodes, edges := buildBVH([]Brush{brushAt(0)})
	require.Len(t, nodes, 1)
	require.True(t, nodes[0].IsLeaf())
	require.Equal(t, []int{0}, edges)
}

func TestBuildBVHEmpty(t *testing.T) {
	nodes, edges := buildBVH(nil)
	require.Empty(t, nodes)
	require.Empty(t, edges)
}
