// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ui

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pulsar3d/engine/platform"
	"github.com/pulsar3d/engine/render"
)

const (
	trayWidth       = 6
	minWindowWidth  = 64
	minWindowHeight = 64
	headerHeight    = 22
	panelMargin     = 4
)

// resizeTray names the eight drag handles around a window's border.
type resizeTray int

const (
	trayNone resizeTray = iota
	trayN
	trayS
	trayE
	trayW
	trayNE
	trayNW
	traySE
	traySW
)

// Window is one floating panel: title bar, content rect, focus/z-order
// (draw/list order; front is the tail of Context.windows), and an
// open/close tween driven by github.com/tanema/gween -- a fixed,
// predefined animation curve, unlike the per-frame-retargeted widget
// color springs in spring.go.
type Window struct {
	id    uint64
	title string
	rect  render.Rect

	open       bool
	closing    bool
	openTween  *gween.Tween
	openAmount float32

	dragging  bool
	dragTray  resizeTray
	dragAnchor Point
}

// OpenWindow creates or returns an existing window by title, inserting
// it at the front (tail) of the window list the first time.
func (c *Context) OpenWindow(title string, initial render.Rect) *Window {
	id := hashID(0, title)
	for _, w := range c.windows {
		if w.id == id {
			return w
		}
	}
	w := &Window{
		id: id, title: title, rect: initial, open: true,
		openTween: gween.New(0, 1, 0.2, ease.OutQuad),
	}
	c.windows = append(c.windows, w)
	return w
}

// CloseWindow starts a window's closing tween; it is removed from the
// list once the tween finishes.
func (c *Context) CloseWindow(w *Window) {
	w.closing = true
	w.openTween = gween.New(w.openAmount, 0, 0.15, ease.InQuad)
}

// focusWindow brings w to the front of the window list (tail = drawn
// last = on top).
func (c *Context) focusWindow(w *Window) {
	for i, cur := range c.windows {
		if cur == w {
			c.windows = append(c.windows[:i], c.windows[i+1:]...)
			break
		}
	}
	c.windows = append(c.windows, w)
}

// stepWindows advances every window's open/close tween and drops
// windows whose close tween has finished.
func (c *Context) stepWindows(dt float32) {
	live := c.windows[:0]
	for _, w := range c.windows {
		if w.openTween != nil {
			amount, finished := w.openTween.Update(dt)
			w.openAmount = amount
			if finished {
				w.openTween = nil
			}
		} else if !w.closing {
			w.openAmount = 1
		}
		if w.closing && w.openTween == nil {
			continue // close tween finished, drop the window
		}
		live = append(live, w)
	}
	c.windows = live
}

// DrawWindow runs one window's title bar, resize trays, and a content
// panel for the caller to fill with widgets. It returns the content
// rect, already pushed onto the panel stack -- the caller must call
// PopPanel when done.
func (c *Context) DrawWindow(w *Window, theme Theme) render.Rect {
	clicked := rectContains(w.rect, c.mousePos) && c.mousePressedAny(MouseLeft)
	if clicked {
		c.focusWindow(w)
	}

	titleRect := render.Rect{X: w.rect.X, Y: w.rect.Y, W: w.rect.W, H: headerHeight}
	c.pushRect(titleRect, theme.colorFor(stateCold), render.Rect{})

	if clicked && rectContains(titleRect, c.mousePos) {
		w.dragging = true
		w.dragAnchor = Point{X: c.mousePos.X - w.rect.X, Y: c.mousePos.Y - w.rect.Y}
	}
	if w.dragging {
		if !c.mouseDownAny(MouseLeft) {
			w.dragging = false
		} else {
			w.rect.X = c.mousePos.X - w.dragAnchor.X
			w.rect.Y = c.mousePos.Y - w.dragAnchor.Y
		}
	}

	c.handleResizeTrays(w, clicked)

	content := render.Rect{
		X: w.rect.X + panelMargin,
		Y: w.rect.Y + headerHeight + panelMargin,
		W: w.rect.W - 2*panelMargin,
		H: w.rect.H - headerHeight - 2*panelMargin,
	}
	c.pushRect(content, theme.colorFor(stateCold), render.Rect{})
	c.PushPanel(w.title, content, PanelNone)
	return content
}

// trayAt classifies which resize tray (if any) contains p, within the
// union of title + content rect.
func trayAt(bounds render.Rect, p Point) resizeTray {
	onTop := p.Y >= bounds.Y && p.Y < bounds.Y+trayWidth
	onBottom := p.Y >= bounds.Y+bounds.H-trayWidth && p.Y < bounds.Y+bounds.H
	onLeft := p.X >= bounds.X && p.X < bounds.X+trayWidth
	onRight := p.X >= bounds.X+bounds.W-trayWidth && p.X < bounds.X+bounds.W

	switch {
	case onTop && onLeft:
		return trayNW
	case onTop && onRight:
		return trayNE
	case onBottom && onLeft:
		return traySW
	case onBottom && onRight:
		return traySE
	case onTop:
		return trayN
	case onBottom:
		return trayS
	case onLeft:
		return trayW
	case onRight:
		return trayE
	default:
		return trayNone
	}
}

// cursorHintFor maps a resize tray to the host cursor shape it should
// show while hovered or dragged.
func cursorHintFor(t resizeTray) platform.CursorHint {
	switch t {
	case trayN:
		return platform.CursorResizeN
	case trayS:
		return platform.CursorResizeS
	case trayE:
		return platform.CursorResizeE
	case trayW:
		return platform.CursorResizeW
	case trayNE:
		return platform.CursorResizeNE
	case trayNW:
		return platform.CursorResizeNW
	case traySE:
		return platform.CursorResizeSE
	case traySW:
		return platform.CursorResizeSW
	default:
		return platform.CursorArrow
	}
}

func (c *Context) handleResizeTrays(w *Window, clicked bool) {
	hover := trayAt(w.rect, c.mousePos)
	if hover != trayNone {
		c.cursorHint = cursorHintFor(hover)
	}

	if clicked && !w.dragging {
		if hover != trayNone {
			w.dragTray = hover
		}
	}
	if w.dragTray == trayNone {
		return
	}
	c.cursorHint = cursorHintFor(w.dragTray)
	if !c.mouseDownAny(MouseLeft) {
		w.dragTray = trayNone
		return
	}
	extrudeWindow(w, c.mousePos)
}

// CursorHint returns the host cursor shape the UI wants shown this
// frame, reset to the arrow at the start of every Begin.
func (c *Context) CursorHint() platform.CursorHint { return c.cursorHint }

// extrudeWindow grows or shrinks w.rect by dragging the active tray. A
// move that would take either side below the 64x64 minimum leaves that
// side unchanged.
func extrudeWindow(w *Window, mouse Point) {
	r := &w.rect
	switch w.dragTray {
	case trayN, trayNE, trayNW:
		newH := r.Y + r.H - mouse.Y
		if newH >= minWindowHeight {
			r.H = newH
			r.Y = mouse.Y
		}
	case trayS, traySE, traySW:
		newH := mouse.Y - r.Y
		if newH >= minWindowHeight {
			r.H = newH
		}
	}
	switch w.dragTray {
	case trayW, trayNW, traySW:
		newW := r.X + r.W - mouse.X
		if newW >= minWindowWidth {
			r.W = newW
			r.X = mouse.X
		}
	case trayE, trayNE, traySE:
		newW := mouse.X - r.X
		if newW >= minWindowWidth {
			r.W = newW
		}
	}
}
