// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package mapmodel holds the post-parse map data model and the
// construction pipeline that turns parsed brushes into triangulated,
// lightmap-UV'd polys and a BVH over brush bounds. The Quake-style .map
// text parser itself is an external collaborator; this package only
// defines and builds what the parser hands off.
package mapmodel

import (
	"github.com/pulsar3d/engine/math/lin"
	"github.com/pulsar3d/engine/rhi"
)

// LightmapScale is LIGHTMAP_SCALE: the world-space size, in units, of one
// lightmap texel.
const LightmapScale = 16.0

// planeEpsilon is the 0.01 tolerance used throughout brush vertex
// computation and plane membership tests.
const planeEpsilon = 0.01

// Entity is a classed key/value record (classname, origin, color,
// brightness, skytex, ...). Entities are opaque string maps -- the engine
// does not interpret well-known keys beyond what brush/light construction
// needs.
type Entity struct {
	Props map[string]string
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max lin.V3
}

// EmptyAABB returns an AABB with Min/Max set so that the first Extend call
// establishes real bounds.
func EmptyAABB() AABB {
	inf := 1e30
	return AABB{
		Min: lin.V3{X: inf, Y: inf, Z: inf},
		Max: lin.V3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Extend grows the box to include p.
func (b *AABB) Extend(p lin.V3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

// Union returns the smallest AABB containing both a and b.
func Union(a, b AABB) AABB {
	u := a
	u.Extend(b.Min)
	u.Extend(b.Max)
	return u
}

// Contains reports whether a contains b entirely.
func (a AABB) Contains(b AABB) bool {
	return a.Min.X <= b.Min.X+planeEpsilon && a.Min.Y <= b.Min.Y+planeEpsilon && a.Min.Z <= b.Min.Z+planeEpsilon &&
		a.Max.X >= b.Max.X-planeEpsilon && a.Max.Y >= b.Max.Y-planeEpsilon && a.Max.Z >= b.Max.Z-planeEpsilon
}

// Center returns the box midpoint.
func (a AABB) Center() lin.V3 {
	return lin.V3{X: (a.Min.X + a.Max.X) / 2, Y: (a.Min.Y + a.Max.Y) / 2, Z: (a.Min.Z + a.Max.Z) / 2}
}

// Size returns the box's full extent along each axis.
func (a AABB) Size() lin.V3 {
	return lin.V3{X: a.Max.X - a.Min.X, Y: a.Max.Y - a.Min.Y, Z: a.Max.Z - a.Min.Z}
}

// LargestAxis returns 0/1/2 for X/Y/Z, whichever has the largest extent.
func (a AABB) LargestAxis() int {
	s := a.Size()
	axis := 0
	largest := s.X
	if s.Y > largest {
		axis, largest = 1, s.Y
	}
	if s.Z > largest {
		axis = 2
	}
	return axis
}

func axisValue(v lin.V3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Light is a point light: origin plus brightness * color.
type Light struct {
	Origin     lin.V3
	Color      lin.V3 // R,G,B in [0,1].
	Brightness float64
}

// Brush owns a contiguous run of planes/polys and a world-space AABB.
type Brush struct {
	FirstPlane int
	PlaneCount int
	Bounds     AABB
}

// Poly is a per-plane triangle-fan triangulation. FirstIndex
// and FirstVertex index into the Map's flattened arrays; IndexCount is
// always a multiple of 3.
type Poly struct {
	FirstIndex  int
	IndexCount  int
	FirstVertex int
	VertexCount int
	Texture     string
	Lightmap    rhi.TextureHandle
	Normal      lin.V3
	PlaneIndex  int
}

// Vertex is one flattened brush vertex: position, albedo UV, lightmap UV,
// and normal.
type Vertex struct {
	Position   lin.V3
	UV         [2]float64
	LightmapUV [2]float64
	Normal     lin.V3
}

// BVHNode is one node of the brush BVH. Leaves have
// Count > 0; inner nodes have Count == 0 and exactly two children at
// LeftFirst and LeftFirst+1.
type BVHNode struct {
	Bounds    AABB
	LeftFirst int // leaf: first index into BrushEdges. inner: left child index (right is +1).
	Count     int // leaf: number of brush_edges covered. inner: 0.
	SplitAxis int
}

// IsLeaf reports whether n is a BVH leaf.
func (n BVHNode) IsLeaf() bool { return n.Count > 0 }

// Map is the full post-build map data model.
type Map struct {
	Entities []Entity
	Brushes  []Brush
	Planes   []Plane
	Polys    []Poly
	Lights   []Light
	Nodes    []BVHNode

	// BrushEdges is the permutation that lets entities keep stable brush
	// references: BVH construction reorders only this array, never
	// Brushes, so BrushEdges[leaf slot] = index into Brushes.
	BrushEdges []int

	Fogmap rhi.TextureHandle

	// Flattened geometry buffers, shared by every Poly via FirstIndex/
	// FirstVertex offsets.
	Indices  []uint32
	Vertices []Vertex
}

// TotalIndexCount is the flattened index buffer length.
func (m *Map) TotalIndexCount() int { return len(m.Indices) }

// TotalVertexCount is the flattened vertex buffer length.
func (m *Map) TotalVertexCount() int { return len(m.Vertices) }
