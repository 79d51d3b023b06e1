// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bake

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulsar3d/engine/math/lin"
	"github.com/pulsar3d/engine/mapmodel"
)

func boxMap(size lin.V3) *mapmodel.Map {
	bounds := mapmodel.AABB{Min: lin.V3{}, Max: size}
	return &mapmodel.Map{
		Brushes: []mapmodel.Brush{{Bounds: bounds}},
		Nodes:   []mapmodel.BVHNode{{Bounds: bounds, Count: 1}},
	}
}

func TestFogmapGridDimsSizesLongestAxisFromScale(t *testing.T) {
	m := boxMap(lin.V3{X: 100, Y: 100, Z: 100})
	dims := fogmapGridDims(m, 1024, 1.0/16.0)

	// longest axis (any, since cube) gets round(1024/16) = 64 cells.
	require.Equal(t, 64, dims[0])
	require.Equal(t, 64, dims[1])
	require.Equal(t, 64, dims[2])
}

func TestFogmapGridDimsScalesShorterAxesByWorldCellSize(t *testing.T) {
	m := boxMap(lin.V3{X: 200, Y: 100, Z: 100})
	dims := fogmapGridDims(m, 1024, 1.0/16.0)

	// X is twice as long as Y/Z, so it gets roughly twice the cell count.
	require.Equal(t, 64, dims[0])
	require.InDelta(t, 32, dims[1], 1)
	require.InDelta(t, 32, dims[2], 1)
}

func TestFogmapGridDimsClampsToMinimumFourCellsOnLongestAxis(t *testing.T) {
	m := boxMap(lin.V3{X: 1, Y: 1, Z: 1})
	dims := fogmapGridDims(m, 16, 1.0/64.0) // would round to 0 without the floor.

	require.GreaterOrEqual(t, dims[0], 4)
	require.GreaterOrEqual(t, dims[1], 4)
	require.GreaterOrEqual(t, dims[2], 4)
}

func TestFogmapGridDimsHandlesDegenerateBounds(t *testing.T) {
	m := boxMap(lin.V3{})
	dims := fogmapGridDims(m, 1024, 1.0/16.0)
	require.Equal(t, [3]int{4, 4, 4}, dims)
}

func TestFogmapSliceRangeCoversWholeRangeExactly(t *testing.T) {
	total, slices := 64, fogmapSlices
	var lo, hi []int
	for s := 0; s < slices; s++ {
		z0, z1 := fogmapSliceRange(total, s, slices)
		lo = append(lo, z0)
		hi = append(hi, z1)
	}
	require.Equal(t, 0, lo[0])
	require.Equal(t, total, hi[len(hi)-1])
	for i := 1; i < slices; i++ {
		require.Equal(t, hi[i-1], lo[i], "slices must be contiguous with no gap or overlap")
	}
}

func TestFogmapSliceRangeAbsorbsRemainderIntoLastSlice(t *testing.T) {
	_, z1 := fogmapSliceRange(10, fogmapSlices-1, fogmapSlices) // 10 doesn't divide evenly by 8.
	require.Equal(t, 10, z1)
}

func TestUniformSphereDirectionIsUnitLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		d := uniformSphereDirection(rng)
		lenSq := d.X*d.X + d.Y*d.Y + d.Z*d.Z
		require.InDelta(t, 1.0, lenSq, 1e-9)
	}
}
