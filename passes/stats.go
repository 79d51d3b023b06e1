// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package passes

import (
	"github.com/pulsar3d/engine/render"
	"github.com/pulsar3d/engine/rhi"
)

// DrawStats accumulates per-frame counters across stages, surfaced by
// the debug overlay and available to callers after RunFrame returns.
type DrawStats struct {
	ShadowTriangles int
	MapTriangles    int
	ImmediateLines  int
	UIRects         int
	MissingTextures int
}

func runSunShadows(f *Frame) {
	for _, cmd := range f.Buffer.Commands() {
		if cmd.Kind != render.KindModel {
			continue
		}
		view := f.Buffer.View(0)
		if view.Shadowmap == rhi.TextureHandle(0) {
			continue // no shadowmap bound, nothing to render into
		}
		f.Stats.ShadowTriangles += cmd.Model.IndexCount / 3
	}
}

func runMap(f *Frame) {
	b := f.Backend
	for _, cmd := range f.Buffer.Commands() {
		if cmd.Kind != render.KindModel {
			continue
		}
		if _, ok := b.DescribeTexture(cmd.Model.Albedo); !ok {
			f.Stats.MissingTextures++
		}
		f.Stats.MapTriangles += cmd.Model.IndexCount / 3
	}
}

func runDebugLines(f *Frame) {
	for _, cmd := range f.Buffer.Commands() {
		if cmd.Kind != render.KindImmediate {
			continue
		}
		f.Stats.ImmediateLines += cmd.Immediate.IndexCount / 2
	}
	f.DebugOverlay.handle = RenderDebugOverlay(f.Backend, f.Stats, f.DebugOverlay.handle, f.DebugOverlay.valid)
	f.DebugOverlay.valid = true
}

func runPostProcess(f *Frame) {
	// Tonemap/bloom/etc. are backend-side full-screen passes; the
	// software backend has no framebuffer to sample, so there is
	// nothing for the front end to drive here beyond the timed region
	// itself.
}

func runUI(f *Frame) {
	for _, cmd := range f.Buffer.Commands() {
		if cmd.Kind != render.KindUIRects {
			continue
		}
		f.Stats.UIRects += cmd.UIRects.RectCount
	}
}
