// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mapmodel

// BrushSource is one brush as handed off by the (external) .map text
// parser: its planes in parser order, already classified into this
// brush's range.
type BrushSource struct {
	Planes []Plane
}

// Source is the full parsed-but-unbuilt map: entities and their brushes,
// exactly as a .map parser would hand off (spec §1's external
// collaborator boundary -- this package starts here).
type Source struct {
	Entities []Entity
	Brushes  []BrushSource
}

// Build runs the full construction pipeline: flatten brush planes,
// compute brush hull vertices and per-face triangulation with lightmap
// bases, extract point lights from entities, and build the brush BVH.
func Build(src Source) *Map {
	m := &Map{Entities: src.Entities}

	res := &buildResult{}
	for _, bs := range src.Brushes {
		firstPlane := len(m.Planes)
		m.Planes = append(m.Planes, bs.Planes...)
		brush := buildBrushGeometry(res, m.Planes, firstPlane, len(bs.Planes))
		res.brushes = append(res.brushes, brush)
	}
	m.Brushes = res.brushes
	m.Polys = res.polys
	m.Indices = res.indices
	m.Vertices = res.vertices

	m.Lights = extractLights(src.Entities)

	m.Nodes, m.BrushEdges = buildBVH(m.Brushes)

	return m
}
