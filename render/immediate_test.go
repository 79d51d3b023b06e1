// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulsar3d/engine/rhi"
)

func triangle(cb *CommandBuffer) {
	a := cb.PushImmediateVertex(ImmediateVertex{})
	b := cb.PushImmediateVertex(ImmediateVertex{})
	c := cb.PushImmediateVertex(ImmediateVertex{})
	cb.PushImmediateTriangle(a, b, c)
}

func TestImmediateFlushOnSettingChangeSplitsBatches(t *testing.T) {
	cb := NewCommandBuffer()
	cb.BeginImmediate(ScreenScene, ViewLayerScene, 0, 0, 1)
	triangle(cb)

	cb.SetImmediateBlendMode(BlendAdditive)
	triangle(cb)
	cb.FlushImmediate()

	require.Len(t, cb.Commands(), 2)
	require.Equal(t, BlendPremultipliedAlpha, cb.Commands()[0].Immediate.BlendMode)
	require.Equal(t, BlendAdditive, cb.Commands()[1].Immediate.BlendMode)
	require.Equal(t, 3, cb.Commands()[0].Immediate.IndexCount)
	require.Equal(t, 3, cb.Commands()[1].Immediate.IndexCount)
}

func TestImmediateNoSettingChangeStaysOneBatch(t *testing.T) {
	cb := NewCommandBuffer()
	cb.BeginImmediate(ScreenScene, ViewLayerScene, 0, 0, 1)
	triangle(cb)
	triangle(cb)
	cb.FlushImmediate()

	require.Len(t, cb.Commands(), 1)
	require.Equal(t, 6, cb.Commands()[0].Immediate.IndexCount)
}

func TestImmediateSameSettingValueDoesNotFlush(t *testing.T) {
	cb := NewCommandBuffer()
	cb.BeginImmediate(ScreenScene, ViewLayerScene, 0, 0, 1)
	cb.SetImmediateTexture(rhi.TextureHandle(0))
	triangle(cb)
	cb.SetImmediateTexture(rhi.TextureHandle(0)) // same value, no flush
	triangle(cb)
	cb.FlushImmediate()

	require.Len(t, cb.Commands(), 1)
	require.Equal(t, 6, cb.Commands()[0].Immediate.IndexCount)
}

func TestImmediateEmptyBatchEmitsNoCommand(t *testing.T) {
	cb := NewCommandBuffer()
	cb.BeginImmediate(ScreenScene, ViewLayerScene, 0, 0, 1)
	cb.FlushImmediate()
	require.Empty(t, cb.Commands())
}

func TestImmediateBeginImplicitlyFlushesPrevious(t *testing.T) {
	cb := NewCommandBuffer()
	cb.BeginImmediate(ScreenScene, ViewLayerScene, 0, 0, 1)
	triangle(cb)
	cb.BeginImmediate(ScreenScene, ViewLayerScene, 0, 0, 2)
	triangle(cb)
	cb.FlushImmediate()

	require.Len(t, cb.Commands(), 2)
	require.Equal(t, uint64(1), cb.Commands()[0].Identifier)
	require.Equal(t, uint64(2), cb.Commands()[1].Identifier)
}

func TestImmediateResetClearsPools(t *testing.T) {
	cb := NewCommandBuffer()
	cb.BeginImmediate(ScreenScene, ViewLayerScene, 0, 0, 1)
	triangle(cb)
	cb.FlushImmediate()
	cb.Reset()

	require.Empty(t, cb.ImmVertices)
	require.Empty(t, cb.ImmIndices)
	require.Empty(t, cb.Commands())
}
