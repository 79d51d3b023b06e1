// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package render is the render front-end: it collects one frame into a
// CommandBuffer (views, sorted keyed commands, the immediate-mode
// batcher, and the UI rect stream) which the passes package then
// consumes. It is not persistent across frames -- a fresh CommandBuffer
// (or a Reset one) is built each frame.
package render

import (
	"sort"

	"github.com/pulsar3d/engine/math/lin"
	"github.com/pulsar3d/engine/rhi"
)

// ScreenLayer and ViewLayer are the two orthogonal layer selectors that
// feed the sort key.
type ScreenLayer uint8
type ViewLayer uint8

const (
	ScreenScene ScreenLayer = iota
	ScreenUI
)

const (
	ViewLayerScene ViewLayer = iota
	ViewLayerUI
)

// CommandKind tags a command's payload type.
type CommandKind uint8

const (
	KindModel CommandKind = iota
	KindImmediate
	KindUIRects
)

const maxViews = 16
const farDepth = 1 << 20 // clamp used when encoding a command's depth to the key's 20-bit field.

// View holds one frame's camera/scene parameters.
type View struct {
	ViewMatrix   lin.M4
	ProjMatrix   lin.M4
	ClipRect     Rect
	CameraPos    lin.V3
	SunDirection lin.V3
	SunColor     lin.V3
	FogColor     lin.V3
	FogDensity   float64
	SkyboxColor  lin.V3
	Shadowmap    rhi.TextureHandle
}

// Rect is an axis-aligned 2D rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect returns the overlapping region of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0 := maxF(r.X, o.X)
	y0 := maxF(r.Y, o.Y)
	x1 := minF(r.X+r.W, o.X+o.W)
	y1 := minF(r.Y+r.H, o.Y+o.H)
	if x1 < x0 || y1 < y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// ModelCommand draws one map poly (or similar static mesh) from the given
// view.
type ModelCommand struct {
	Mesh        rhi.MeshHandle
	Albedo      rhi.TextureHandle
	Lightmap    rhi.TextureHandle
	Normal      lin.V3
	Transform   lin.M4
	FirstIndex  int
	IndexCount  int
}

// ImmediateCommand draws a contiguous range of the shared immediate
// vertex/index pools with the batcher settings active when it was
// flushed.
type ImmediateCommand struct {
	Topology   rhi.Topology
	BlendMode  BlendMode
	CullMode   CullMode
	Texture    rhi.TextureHandle
	ClipRect   Rect
	UseDepth   bool
	DepthBias  float64
	Transform  lin.M4
	FirstIndex int
	IndexCount int
}

// UIRectsCommand draws a contiguous run of the shared UI-rect pool.
type UIRectsCommand struct {
	Texture    rhi.TextureHandle
	FirstRect  int
	RectCount  int
}

// BlendMode selects the immediate-mode batcher's blend function.
type BlendMode int

const (
	BlendPremultipliedAlpha BlendMode = iota
	BlendAdditive
)

// CullMode selects backface culling behavior.
type CullMode int

const (
	CullBack CullMode = iota
	CullFront
	CullNone
)

// UIRect is one entry in the shared UI-rect pool.
type UIRect struct {
	Rect      Rect
	UV        Rect
	Color     [4]float32
	ClipRect  Rect
	Roundness float32
}

// Command is one entry in the sorted command stream: a 64-bit sort key
// plus a pointer to its typed payload.
type Command struct {
	Key        uint64
	Kind       CommandKind
	Identifier uint64 // application tag, e.g. entity id, for debugging.
	Model      *ModelCommand
	Immediate  *ImmediateCommand
	UIRects    *UIRectsCommand
}

// packKey packs, MSB->LSB: screen_layer:2 | view:6 | view_layer:2 |
// kind:4 | depth:20 | material_id:30.
func packKey(screenLayer ScreenLayer, view int, viewLayer ViewLayer, kind CommandKind, depth float64, materialID uint32) uint64 {
	d := depth / farDepth
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	depthBits := uint64(d * float64((1<<20)-1))
	return uint64(screenLayer&0x3)<<62 |
		uint64(view&0x3f)<<56 |
		uint64(viewLayer&0x3)<<54 |
		uint64(kind&0xf)<<50 |
		depthBits<<30 |
		uint64(materialID&0x3fffffff)
}

// CommandBuffer accumulates one frame's views and sorted commands. It is
// not persistent; a new frame either allocates a fresh CommandBuffer or
// calls Reset on a reused one.
type CommandBuffer struct {
	views     []View
	viewStack []int

	commands []Command

	// Shared pools sliced by immediate draws and UI batches.
	ImmIndices  []uint32
	ImmVertices []ImmediateVertex
	UIRects     []UIRect

	imm immediateState
}

// ImmediateVertex is the "immediate" RHI vertex format: v3 pos, v2 tex,
// u32 rgba, v3 normal.
type ImmediateVertex struct {
	Position lin.V3
	TexCoord [2]float64
	RGBA     uint32
	Normal   lin.V3
}

// NewCommandBuffer creates an empty per-frame command buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

// Reset clears a CommandBuffer for reuse next frame, keeping backing
// slice capacity.
func (cb *CommandBuffer) Reset() {
	cb.views = cb.views[:0]
	cb.viewStack = cb.viewStack[:0]
	cb.commands = cb.commands[:0]
	cb.ImmIndices = cb.ImmIndices[:0]
	cb.ImmVertices = cb.ImmVertices[:0]
	cb.UIRects = cb.UIRects[:0]
	cb.imm = immediateState{}
}

// PushView allocates a new view index (<=16) and makes it the active view
// for subsequent commands.
func (cb *CommandBuffer) PushView(v View) int {
	if len(cb.views) >= maxViews {
		panic("render: too many views pushed in one frame")
	}
	cb.views = append(cb.views, v)
	idx := len(cb.views) - 1
	cb.viewStack = append(cb.viewStack, idx)
	return idx
}

// PopView removes the most recently pushed view from the active stack.
func (cb *CommandBuffer) PopView() {
	if len(cb.viewStack) == 0 {
		panic("render: PopView with empty view stack")
	}
	cb.viewStack = cb.viewStack[:len(cb.viewStack)-1]
}

// ActiveView returns the index of the view new commands inherit.
func (cb *CommandBuffer) ActiveView() int {
	if len(cb.viewStack) == 0 {
		return 0
	}
	return cb.viewStack[len(cb.viewStack)-1]
}

// View returns the view at index i.
func (cb *CommandBuffer) View(i int) *View { return &cb.views[i] }

// Views returns every pushed view, in push order.
func (cb *CommandBuffer) Views() []View { return cb.views }

// SubmitModel appends a model draw command.
func (cb *CommandBuffer) SubmitModel(screenLayer ScreenLayer, viewLayer ViewLayer, depth float64, materialID uint32, cmd ModelCommand, identifier uint64) {
	payload := cmd
	cb.commands = append(cb.commands, Command{
		Key:        packKey(screenLayer, cb.ActiveView(), viewLayer, KindModel, depth, materialID),
		Kind:       KindModel,
		Identifier: identifier,
		Model:      &payload,
	})
}

func (cb *CommandBuffer) submitImmediate(screenLayer ScreenLayer, viewLayer ViewLayer, depth float64, materialID uint32, cmd ImmediateCommand, identifier uint64) {
	payload := cmd
	cb.commands = append(cb.commands, Command{
		Key:        packKey(screenLayer, cb.ActiveView(), viewLayer, KindImmediate, depth, materialID),
		Kind:       KindImmediate,
		Identifier: identifier,
		Immediate:  &payload,
	})
}

// SubmitUIRects appends a UI-rect draw command referencing count rects
// of the shared UIRects pool, starting at index first.
func (cb *CommandBuffer) SubmitUIRects(depth float64, texture rhi.TextureHandle, first, count int, identifier uint64) {
	payload := UIRectsCommand{Texture: texture, FirstRect: first, RectCount: count}
	cb.commands = append(cb.commands, Command{
		Key:        packKey(ScreenUI, cb.ActiveView(), ViewLayerUI, KindUIRects, depth, 0),
		Kind:       KindUIRects,
		Identifier: identifier,
		UIRects:    &payload,
	})
}

// PushUIRect appends one rect to the shared UI-rect pool and returns its
// index.
func (cb *CommandBuffer) PushUIRect(r UIRect) int {
	cb.UIRects = append(cb.UIRects, r)
	return len(cb.UIRects) - 1
}

// Sort radix-sorts commands by Key ascending. Submission order is
// preserved for equal keys.
func (cb *CommandBuffer) Sort() {
	radixSortCommands(cb.commands)
}

// Commands returns the (sorted, if Sort has been called) command stream.
func (cb *CommandBuffer) Commands() []Command { return cb.commands }

// radixSortCommands performs an 8-pass LSD radix sort (8 bits/pass) over
// the 64-bit Key, which is a stable sort by construction -- each pass is
// itself stable (counting sort), so equal keys retain submission order.
func radixSortCommands(cmds []Command) {
	n := len(cmds)
	if n < 2 {
		return
	}
	buf := make([]Command, n)
	src, dst := cmds, buf
	var count [257]int
	for pass := 0; pass < 8; pass++ {
		shift := uint(pass * 8)
		for i := range count {
			count[i] = 0
		}
		for i := 0; i < n; i++ {
			b := (src[i].Key >> shift) & 0xff
			count[b+1]++
		}
		for i := 0; i < 256; i++ {
			count[i+1] += count[i]
		}
		for i := 0; i < n; i++ {
			b := (src[i].Key >> shift) & 0xff
			dst[count[b]] = src[i]
			count[b]++
		}
		src, dst = dst, src
	}
	if &src[0] != &cmds[0] {
		copy(cmds, src)
	}
}

// verifySorted is a test/diagnostic helper asserting that Sort's output
// keys are non-decreasing.
func verifySorted(cmds []Command) bool {
	return sort.SliceIsSorted(cmds, func(i, j int) bool { return cmds[i].Key < cmds[j].Key })
}
