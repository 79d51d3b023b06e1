// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mapmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulsar3d/engine/math/lin"
)

func TestBuildExtractsLights(t *testing.T) {
	src := Source{
		Entities: []Entity{
			{Props: map[string]string{
				"classname": "light",
				"origin":    "10 20 30",
				"_color":    "1 0.5 0.25",
				"light":     "200",
			}},
			{Props: map[string]string{"classname": "worldspawn"}},
			{Props: map[string]string{"classname": "light", "origin": "not valid"}},
		},
	}
	m := Build(src)

	require.Len(t, m.Lights, 1, "malformed and non-light entities must be skipped")
	light := m.Lights[0]
	require.Equal(t, lin.V3{X: 10, Y: 20, Z: 30}, light.Origin)
	require.InDelta(t, 1, light.Color.X, 1e-9)
	require.InDelta(t, 0.5, light.Color.Y, 1e-9)
	require.InDelta(t, 0.25, light.Color.Z, 1e-9)
	require.Equal(t, 200.0, light.Brightness)
}

func TestBuildDefaultsMissingLightFields(t *testing.T) {
	src := Source{
		Entities: []Entity{
			{Props: map[string]string{"classname": "light", "origin": "0 0 0"}},
		},
	}
	m := Build(src)
	require.Len(t, m.Lights, 1)
	require.Equal(t, lin.V3{X: 1, Y: 1, Z: 1}, m.Lights[0].Color)
	require.Equal(t, 300.0, m.Lights[0].Brightness)
}

func TestBuildMultipleBrushesShareFlattenedBuffers(t *testing.T) {
	src := Source{
		Brushes: []BrushSource{
			{Planes: cubeBrushPlanes(lin.V3{X: -20}, 4)},
			{Planes: cubeBrushPlanes(lin.V3{X: 20}, 4)},
		},
	}
	m := Build(src)

	require.Len(t, m.Brushes, 2)
	require.Len(t, m.Polys, 12)

	for _, p := range m.Polys {
		require.True(t, p.FirstIndex+p.IndexCount <= len(m.Indices))
		require.True(t, p.FirstVertex+p.VertexCount <= len(m.Vertices))
	}

	require.NotEmpty(t, m.Nodes)
	require.Len(t, m.BrushEdges, 2)
}
