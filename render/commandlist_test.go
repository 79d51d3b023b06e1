// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRadixSortCommandsStableAndOrdered(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	var cmds []Command
	for i := 0; i < 500; i++ {
		cmds = append(cmds, Command{Key: uint64(r.Intn(64)), Identifier: uint64(i)})
	}

	// Group by key in submission order, to compare against the sorted
	// result's relative order within each key.
	bySubmission := map[uint64][]uint64{}
	for _, c := range cmds {
		bySubmission[c.Key] = append(bySubmission[c.Key], c.Identifier)
	}

	radixSortCommands(cmds)
	require.True(t, verifySorted(cmds))

	seen := map[uint64][]uint64{}
	for _, c := range cmds {
		seen[c.Key] = append(seen[c.Key], c.Identifier)
	}
	for k, want := range bySubmission {
		require.Equal(t, want, seen[k], "sort must preserve submission order for equal keys")
	}
}

func TestRadixSortCommandsSmallSlices(t *testing.T) {
	for _, n := range []int{0, 1, 2} {
		cmds := make([]Command, n)
		for i := range cmds {
			cmds[i].Key = uint64(n - i)
		}
		radixSortCommands(cmds)
		require.True(t, verifySorted(cmds))
	}
}

func TestPackKeyOrdersByScreenLayerThenView(t *testing.T) {
	scene := packKey(ScreenScene, 0, ViewLayerScene, KindModel, 0, 0)
	ui := packKey(ScreenUI, 0, ViewLayerUI, KindUIRects, 0, 0)
	require.Less(t, scene, ui, "scene layer must sort before UI layer")

	view0 := packKey(ScreenScene, 0, ViewLayerScene, KindModel, 100, 0)
	view1 := packKey(ScreenScene, 1, ViewLayerScene, KindModel, 0, 0)
	require.Less(t, view0, view1, "view index dominates depth in the sort key")
}

func TestPackKeyOrdersByDepth(t *testing.T) {
	near := packKey(ScreenScene, 0, ViewLayerScene, KindModel, 10, 0)
	far := packKey(ScreenScene, 0, ViewLayerScene, KindModel, 10000, 0)
	require.Less(t, near, far)
}

func TestCommandBufferViewStack(t *testing.T) {
	cb := NewCommandBuffer()
	require.Equal(t, 0, cb.ActiveView())

	a := cb.PushView(View{})
	b := cb.PushView(View{})
	require.Equal(t, b, cb.ActiveView())

	cb.PopView()
	require.Equal(t, a, cb.ActiveView())

	cb.PopView()
	require.Equal(t, 0, cb.ActiveView())
}

func TestCommandBufferSubmitUIRects(t *testing.T) {
	cb := NewCommandBuffer()
	first := cb.PushUIRect(UIRect{Rect: Rect{W: 10, H: 10}})
	cb.PushUIRect(UIRect{Rect: Rect{X: 10, W: 10, H: 10}})

	cb.SubmitUIRects(1, 0, first, 2, 42)
	require.Len(t, cb.Commands(), 1)
	cmd := cb.Commands()[0]
	require.Equal(t, KindUIRects, cmd.Kind)
	require.Equal(t, 2, cmd.UIRects.RectCount)
	require.Equal(t, uint64(42), cmd.Identifier)
}

func TestCommandBufferResetClearsEverything(t *testing.T) {
	cb := NewCommandBuffer()
	cb.PushView(View{})
	cb.PushUIRect(UIRect{})
	cb.SubmitUIRects(0, 0, 0, 1, 0)
	cb.Reset()

	require.Empty(t, cb.Commands())
	require.Empty(t, cb.Views())
	require.Empty(t, cb.UIRects)
	require.Equal(t, 0, cb.ActiveView())
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}
	got := a.Intersect(b)
	require.Equal(t, Rect{X: 5, Y: 5, W: 5, H: 5}, got)

	c := Rect{X: 100, Y: 100, W: 1, H: 1}
	require.True(t, a.Intersect(c).Empty())
}
