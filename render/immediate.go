// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"github.com/pulsar3d/engine/math/lin"
	"github.com/pulsar3d/engine/rhi"
)

// immediateState tracks the batcher's current draw settings plus the
// pool offsets of the in-progress (unflushed) batch. Any setter that
// changes a value the active ImmediateCommand payload carries flushes
// the pending batch first, so a single ImmediateCommand never mixes two
// different blend modes, textures, or transforms.
type immediateState struct {
	open bool

	screenLayer ScreenLayer
	viewLayer   ViewLayer
	depth       float64
	materialID  uint32
	identifier  uint64

	topology  rhi.Topology
	blend     BlendMode
	cull      CullMode
	texture   rhi.TextureHandle
	clipRect  Rect
	useDepth  bool
	depthBias float64
	transform lin.M4

	firstVertex int
	firstIndex  int
}

// BeginImmediate flushes any pending batch and opens a new one under the
// given sort-key grouping. Callers issue PushImmediateVertex/Index (or
// the triangle/line helpers) and then either change a setting, call
// FlushImmediate, or call BeginImmediate again; each of those implicitly
// closes the batch and appends an ImmediateCommand.
func (cb *CommandBuffer) BeginImmediate(screenLayer ScreenLayer, viewLayer ViewLayer, depth float64, materialID uint32, identifier uint64) {
	cb.FlushImmediate()
	cb.imm.open = true
	cb.imm.screenLayer = screenLayer
	cb.imm.viewLayer = viewLayer
	cb.imm.depth = depth
	cb.imm.materialID = materialID
	cb.imm.identifier = identifier
	cb.imm.firstVertex = len(cb.ImmVertices)
	cb.imm.firstIndex = len(cb.ImmIndices)
}

// SetImmediateTopology sets the primitive topology for subsequent
// vertices, flushing first if it differs from the current setting.
func (cb *CommandBuffer) SetImmediateTopology(t rhi.Topology) {
	if cb.imm.topology == t {
		return
	}
	cb.flushSettingChange()
	cb.imm.topology = t
}

// SetImmediateBlendMode selects additive vs. premultiplied-alpha
// blending for subsequent vertices.
func (cb *CommandBuffer) SetImmediateBlendMode(m BlendMode) {
	if cb.imm.blend == m {
		return
	}
	cb.flushSettingChange()
	cb.imm.blend = m
}

// SetImmediateCullMode selects backface culling for subsequent vertices.
func (cb *CommandBuffer) SetImmediateCullMode(m CullMode) {
	if cb.imm.cull == m {
		return
	}
	cb.flushSettingChange()
	cb.imm.cull = m
}

// SetImmediateTexture binds the texture sampled by subsequent vertices.
func (cb *CommandBuffer) SetImmediateTexture(tex rhi.TextureHandle) {
	if cb.imm.texture == tex {
		return
	}
	cb.flushSettingChange()
	cb.imm.texture = tex
}

// SetImmediateClipRect sets the scissor rect for subsequent vertices.
func (cb *CommandBuffer) SetImmediateClipRect(r Rect) {
	if cb.imm.clipRect == r {
		return
	}
	cb.flushSettingChange()
	cb.imm.clipRect = r
}

// SetImmediateDepth enables/disables depth testing and sets the depth
// bias for subsequent vertices.
func (cb *CommandBuffer) SetImmediateDepth(use bool, bias float64) {
	if cb.imm.useDepth == use && cb.imm.depthBias == bias {
		return
	}
	cb.flushSettingChange()
	cb.imm.useDepth = use
	cb.imm.depthBias = bias
}

// SetImmediateTransform sets the model transform applied to subsequent
// vertices.
func (cb *CommandBuffer) SetImmediateTransform(m lin.M4) {
	if cb.imm.transform == m {
		return
	}
	cb.flushSettingChange()
	cb.imm.transform = m
}

// flushSettingChange flushes the pending batch (if any) in place, then
// reopens an empty one under the same sort-key grouping so the next
// setter/vertex call extends a fresh batch rather than mutating one
// that's already been handed to a Command.
func (cb *CommandBuffer) flushSettingChange() {
	if !cb.imm.open {
		return
	}
	cb.flushLocked()
	cb.imm.firstVertex = len(cb.ImmVertices)
	cb.imm.firstIndex = len(cb.ImmIndices)
}

// PushImmediateVertex appends one vertex to the shared pool and returns
// its pool index (not relative to the open batch).
func (cb *CommandBuffer) PushImmediateVertex(v ImmediateVertex) uint32 {
	cb.ImmVertices = append(cb.ImmVertices, v)
	return uint32(len(cb.ImmVertices) - 1)
}

// PushImmediateIndex appends one vertex-pool index to the shared index
// pool.
func (cb *CommandBuffer) PushImmediateIndex(i uint32) {
	cb.ImmIndices = append(cb.ImmIndices, i)
}

// PushImmediateTriangle is shorthand for three PushImmediateIndex calls.
func (cb *CommandBuffer) PushImmediateTriangle(a, b, c uint32) {
	cb.ImmIndices = append(cb.ImmIndices, a, b, c)
}

// FlushImmediate closes the open batch, if any, and appends the
// resulting ImmediateCommand to the sorted command stream.
func (cb *CommandBuffer) FlushImmediate() {
	if !cb.imm.open {
		return
	}
	cb.flushLocked()
	cb.imm = immediateState{}
}

// flushLocked appends an ImmediateCommand for the non-empty portion of
// the open batch. It leaves cb.imm.open set; callers reset or reopen
// afterward as appropriate.
func (cb *CommandBuffer) flushLocked() {
	indexCount := len(cb.ImmIndices) - cb.imm.firstIndex
	if indexCount <= 0 {
		return
	}
	cmd := ImmediateCommand{
		Topology:   cb.imm.topology,
		BlendMode:  cb.imm.blend,
		CullMode:   cb.imm.cull,
		Texture:    cb.imm.texture,
		ClipRect:   cb.imm.clipRect,
		UseDepth:   cb.imm.useDepth,
		DepthBias:  cb.imm.depthBias,
		Transform:  cb.imm.transform,
		FirstIndex: cb.imm.firstIndex,
		IndexCount: indexCount,
	}
	cb.submitImmediate(cb.imm.screenLayer, cb.imm.viewLayer, cb.imm.depth, cb.imm.materialID, cmd, cb.imm.identifier)
}
