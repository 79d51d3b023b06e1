// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mapmodel

import (
	"github.com/pulsar3d/engine/math/lin"
)

// buildResult accumulates the flattened geometry buffers and Poly/Brush
// records as brushes are processed.
type buildResult struct {
	brushes  []Brush
	polys    []Poly
	indices  []uint32
	vertices []Vertex
}

// buildBrushGeometry triangulates every face of one brush (fan
// triangulation around each face's first corner) and appends the result
// to res, returning the completed Brush record. planes is the full
// flattened plane array; [firstPlane, firstPlane+planeCount) are this
// brush's faces.
func buildBrushGeometry(res *buildResult, planes []Plane, firstPlane, planeCount int) Brush {
	perPlane := brushPlaneVertices(planes, firstPlane, planeCount)

	bounds := EmptyAABB()
	for _, pts := range perPlane {
		for _, p := range pts {
			bounds.Extend(p)
		}
	}

	for i := 0; i < planeCount; i++ {
		plane := &planes[firstPlane+i]
		pts := perPlane[i]
		if len(pts) < 3 {
			continue // degenerate face: planes that bound no hull corners.
		}
		sortFaceCCW(plane.Normal, pts)

		if plane.Basis.TexW == 0 {
			plane.Basis = chooseLightmapBasis(plane.Normal, bounds)
		}

		firstVertex := len(res.vertices)
		for _, p := range pts {
			u, v := plane.textureUV(p)
			lu, lv := lightmapUV(plane.Basis, p)
			res.vertices = append(res.vertices, Vertex{
				Position:   p,
				UV:         [2]float64{u, v},
				LightmapUV: [2]float64{lu, lv},
				Normal:     plane.Normal,
			})
		}

		firstIndex := len(res.indices)
		for t := 1; t < len(pts)-1; t++ {
			res.indices = append(res.indices,
				uint32(firstVertex), uint32(firstVertex+t), uint32(firstVertex+t+1))
		}

		res.polys = append(res.polys, Poly{
			FirstIndex:  firstIndex,
			IndexCount:  len(res.indices) - firstIndex,
			FirstVertex: firstVertex,
			VertexCount: len(pts),
			Texture:     plane.Texture,
			Normal:      plane.Normal,
			PlaneIndex:  firstPlane + i,
		})
	}

	return Brush{FirstPlane: firstPlane, PlaneCount: planeCount, Bounds: bounds}
}

// planeFaceArea is a diagnostic helper returning the sum
// of triangle areas making up one built poly.
func planeFaceArea(m *Map, polyIndex int) float64 {
	poly := m.Polys[polyIndex]
	area := 0.0
	for i := 0; i < poly.IndexCount; i += 3 {
		a := m.Vertices[m.Indices[poly.FirstIndex+i]].Position
		b := m.Vertices[m.Indices[poly.FirstIndex+i+1]].Position
		c := m.Vertices[m.Indices[poly.FirstIndex+i+2]].Position
		var e1, e2, cr lin.V3
		e1.Sub(&b, &a)
		e2.Sub(&c, &a)
		cr.Cross(&e1, &e2)
		area += 0.5 * cr.Len()
	}
	return area
}
