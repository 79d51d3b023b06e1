// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package ui is the immediate-mode UI layer: widgets derive a 64-bit id
// each frame, compute a rect from the active panel's rect-cut layout,
// run through a hot/active state machine, animate their color with a
// critically-damped spring, and lower to UI-rect/text draw commands on a
// render.CommandBuffer.
package ui

import (
	"github.com/pulsar3d/engine/platform"
	"github.com/pulsar3d/engine/render"
)

// Point is a 2D point or extent in UI pixel space.
type Point struct{ X, Y float64 }

// MouseButton identifies the mouse button an input edge belongs to in
// SubmitMouseButton.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// WidgetResult is the bitmask widget_behaviour returns.
type WidgetResult int

const (
	ResultNone     WidgetResult = 0
	ResultPressed  WidgetResult = 1 << 0
	ResultReleased WidgetResult = 1 << 1
	ResultFired    WidgetResult = 1 << 2
)

// Context is one UI instance's full frame-to-frame state: input
// latches, the id/panel stacks, hot/active tracking, and widget spring
// animations. The zero Context is not usable; construct with New.
type Context struct {
	buf *render.CommandBuffer

	frameIndex uint64

	mousePos     Point
	mouseDown    [3]bool
	mousePressed [3]bool
	mouseReleased [3]bool
	mouseWheel   float64
	textInput    []rune

	idStack    []uint64
	panelStack []*panel

	hot     uint64
	nextHot uint64
	active  uint64
	activeDragAnchor Point

	anims map[uint64]*AnimState

	windows []*Window

	cursorHint platform.CursorHint
}

// New creates an empty UI context bound to buf, the render.CommandBuffer
// widgets lower draw commands into.
func New(buf *render.CommandBuffer) *Context {
	return &Context{buf: buf, anims: map[uint64]*AnimState{}}
}

// SubmitMouseButton feeds one mouse button edge. Widgets see it from the
// moment it is submitted until End clears the edge latches.
func (c *Context) SubmitMouseButton(pressed bool, button MouseButton) {
	if pressed {
		c.mouseDown[button] = true
		c.mousePressed[button] = true
	} else {
		c.mouseDown[button] = false
		c.mouseReleased[button] = true
	}
}

// SubmitMouseMove updates the tracked mouse position.
func (c *Context) SubmitMouseMove(pos Point) { c.mousePos = pos }

// SubmitMouseWheel accumulates wheel delta for this frame.
func (c *Context) SubmitMouseWheel(delta float64) { c.mouseWheel += delta }

// SubmitText appends text-input runes for this frame, after NFC
// normalization (composing input method sequences into their canonical
// precomposed form before any widget sees them).
func (c *Context) SubmitText(s string) {
	c.textInput = append(c.textInput, normalizeText(s)...)
}

// Begin resets the cursor hint, advances the frame index, steps window
// tweens,
// latches next_hot into hot when no widget is active, steps widget
// animations, and garbage-collects animation state untouched since
// before the previous frame.
func (c *Context) Begin(dt float64) {
	c.frameIndex++
	c.cursorHint = platform.CursorArrow
	c.stepWindows(float32(dt))

	if c.active == 0 {
		c.hot = c.nextHot
	}
	c.nextHot = 0

	for id, a := range c.anims {
		a.step(dt)
		if a.lastTouched+1 < c.frameIndex {
			delete(c.anims, id)
		}
	}
}

// End consumes remaining per-frame input latches. Panics if the panel or
// id stack is not empty, since every Push must be matched by a Pop
// within the same frame.
func (c *Context) End() {
	if len(c.panelStack) != 0 {
		panic("ui: End called with non-empty panel stack")
	}
	if len(c.idStack) != 0 {
		panic("ui: End called with non-empty id stack")
	}
	c.mousePressed = [3]bool{}
	c.mouseReleased = [3]bool{}
	c.mouseWheel = 0
	c.textInput = c.textInput[:0]
}

// MousePos returns the most recently submitted mouse position.
func (c *Context) MousePos() Point { return c.mousePos }

func (c *Context) mouseDownAny(b MouseButton) bool      { return c.mouseDown[b] }
func (c *Context) mousePressedAny(b MouseButton) bool    { return c.mousePressed[b] }
func (c *Context) mouseReleasedAny(b MouseButton) bool   { return c.mouseReleased[b] }

func (c *Context) hotID() uint64    { return c.hot }
func (c *Context) activeID() uint64 { return c.active }

func (c *Context) setNextHot(id uint64) { c.nextHot = id }
func (c *Context) setActive(id uint64, anchor Point) {
	c.active = id
	c.activeDragAnchor = anchor
}
func (c *Context) clearActive() { c.active = 0 }

func rectContains(r render.Rect, p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}
