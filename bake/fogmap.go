// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bake

import (
	"math"
	"math/rand"

	"github.com/pulsar3d/engine/job"
	"github.com/pulsar3d/engine/math/lin"
	"github.com/pulsar3d/engine/mapmodel"
)

// fogmapGridDims sizes the 3D fogmap grid over m's bounds: the longest
// axis gets round(ShadowmapSize*FogmapScale) cells (at least 4), the
// other two axes use the same world-space cell size.
func fogmapGridDims(m *mapmodel.Map, shadowmapSize int, scale float64) [3]int {
	bounds := mapBounds(m)
	size := bounds.Size()

	longest := math.Max(size.X, math.Max(size.Y, size.Z))
	if longest <= 0 {
		return [3]int{4, 4, 4}
	}

	cellsOnLongest := math.Round(float64(shadowmapSize) * scale)
	if cellsOnLongest < 4 {
		cellsOnLongest = 4
	}
	cellSize := longest / cellsOnLongest

	dim := func(axisSize float64) int {
		n := int(math.Ceil(axisSize / cellSize))
		if n < 1 {
			n = 1
		}
		return n
	}
	return [3]int{dim(size.X), dim(size.Y), dim(size.Z)}
}

// mapBounds returns the union of every brush's AABB -- equivalently, the
// bound stored at the BVH root, when the map has geometry.
func mapBounds(m *mapmodel.Map) mapmodel.AABB {
	if len(m.Nodes) > 0 {
		return m.Nodes[0].Bounds
	}
	bounds := mapmodel.EmptyAABB()
	for _, b := range m.Brushes {
		bounds = mapmodel.Union(bounds, b.Bounds)
	}
	return bounds
}

// fogmapSliceRange splits [0,total) into fogmapSlices contiguous Z
// ranges, the last absorbing any remainder.
func fogmapSliceRange(total, slice, slices int) (z0, z1 int) {
	base := total / slices
	z0 = slice * base
	z1 = z0 + base
	if slice == slices-1 {
		z1 = total
	}
	return z0, z1
}

// runFogmapSlice evaluates single-scattering fog lighting for every cell
// in z ∈ [z0,z1), writing into s.fogmap.
func (s *State) runFogmapSlice(ctx job.Context, dims [3]int, z0, z1 int) {
	bounds := mapBounds(s.m)
	size := bounds.Size()
	cellSize := lin.V3{
		X: size.X / float64(dims[0]),
		Y: size.Y / float64(dims[1]),
		Z: size.Z / float64(dims[2]),
	}

	rng := rand.New(rand.NewSource(int64(ctx.WorkerIndex)*2654435761 + int64(z0) + 7))

	for z := z0; z < z1; z++ {
		if s.cancelled() {
			return
		}
		for y := 0; y < dims[1]; y++ {
			for x := 0; x < dims[0]; x++ {
				center := lin.V3{
					X: bounds.Min.X + (float64(x)+0.5)*cellSize.X,
					Y: bounds.Min.Y + (float64(y)+0.5)*cellSize.Y,
					Z: bounds.Min.Z + (float64(z)+0.5)*cellSize.Z,
				}
				c := s.fogCellLighting(rng, center)
				idx := ((z*dims[1]+y)*dims[0] + x) * 4
				packed := packRGBA8(c, rng)
				copy(s.fogmap[idx:idx+4], packed[:])
			}
		}
	}
}

// fogCellLighting integrates single-scattering lighting at center over
// FogSampleCount random directions: a sun shadow ray plus ambient on
// miss, averaged.
func (s *State) fogCellLighting(rng *rand.Rand, center lin.V3) lin3 {
	var total lin3
	n := s.opts.FogSampleCount

	var toSun lin.V3
	toSun.Neg(&s.opts.SunDirection)
	if _, occluded := s.geo.Raycast(center, toSun, 1e30); !occluded {
		total = total.add(s.opts.SunColor)
	}

	for i := 0; i < n; i++ {
		dir := uniformSphereDirection(rng)
		if _, hit := s.geo.Raycast(center, dir, 1e30); !hit {
			total = total.add(s.opts.AmbientColor.scale(1.0 / float64(n)))
		}
	}
	return total.scale(1.0 / 2)
}

// uniformSphereDirection samples a direction uniformly over the full
// sphere (fog has no preferred hemisphere the way a surface normal does).
func uniformSphereDirection(rng *rand.Rand) lin.V3 {
	z := 2*rng.Float64() - 1
	theta := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(math.Max(0, 1-z*z))
	return lin.V3{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z}
}
