// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package passes runs the fixed per-frame render schedule over a sorted
// render.CommandBuffer: begin frame, sun shadows, map, debug lines, post
// process, UI, end frame. Each stage is bracketed by a named timed
// region on the rhi.Backend so GetTimings reports per-stage cost.
package passes

import (
	"github.com/pulsar3d/engine/render"
	"github.com/pulsar3d/engine/rhi"
)

// Stage names, in schedule order. Fixed: the schedule never reorders or
// skips a stage, it only varies which commands each stage finds to
// process.
const (
	StageBeginFrame  = "begin_frame"
	StageSunShadows  = "sun_shadows"
	StageMap         = "map"
	StageDebugLines  = "debug_lines"
	StagePostProcess = "post_process"
	StageUI          = "ui"
	StageEndFrame    = "end_frame"
)

// Schedule lists the fixed stage order, for callers that want to report
// or log it without depending on RunFrame's internals.
var Schedule = []string{
	StageBeginFrame,
	StageSunShadows,
	StageMap,
	StageDebugLines,
	StagePostProcess,
	StageUI,
	StageEndFrame,
}

// Frame is the state threaded through one RunFrame call.
type Frame struct {
	Backend rhi.Backend
	Buffer  *render.CommandBuffer

	// DebugOverlay holds the overlay texture that the Debug lines stage
	// rebuilds each frame from the stats counted so far in that frame,
	// and rebinds before any consumer samples it.
	DebugOverlay TextureCache

	Stats DrawStats
}

// TextureCache holds the one texture the debug overlay reuses across
// frames instead of allocating a fresh one every frame.
type TextureCache struct {
	handle rhi.TextureHandle
	valid  bool
}

// RunFrame executes the fixed schedule once over f.Buffer, which must
// already be sorted (render.CommandBuffer.Sort). Each view in the buffer
// is assumed already current; RunFrame does not mutate view state.
func RunFrame(f *Frame) DrawStats {
	b := f.Backend
	b.BeginFrame()

	b.BeginRegion(StageBeginFrame)
	f.Stats = DrawStats{}
	b.EndRegion(StageBeginFrame)

	b.BeginRegion(StageSunShadows)
	runSunShadows(f)
	b.EndRegion(StageSunShadows)

	b.BeginRegion(StageMap)
	runMap(f)
	b.EndRegion(StageMap)

	b.BeginRegion(StageDebugLines)
	runDebugLines(f)
	b.EndRegion(StageDebugLines)

	b.BeginRegion(StagePostProcess)
	runPostProcess(f)
	b.EndRegion(StagePostProcess)

	b.BeginRegion(StageUI)
	runUI(f)
	b.EndRegion(StageUI)

	b.BeginRegion(StageEndFrame)
	b.EndRegion(StageEndFrame)
	b.EndFrame()

	return f.Stats
}
