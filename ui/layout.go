// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ui

import "github.com/pulsar3d/engine/render"

// PanelFlags controls a panel's layout behavior.
type PanelFlags int

const (
	PanelNone       PanelFlags = 0
	PanelScrollable PanelFlags = 1 << 0
)

// panel is one entry in the panel stack: a shrinking rect that widgets
// carve pieces from via the Add* rect-cut calls, plus scroll state when
// PanelScrollable is set.
type panel struct {
	id    uint64
	rect  render.Rect
	flags PanelFlags

	contentHeight float64
	scrollOffset  float64
	scrollTarget  float64
}

// PushPanel pushes a new panel covering rect and makes it the active
// layout target. id scopes the ids of widgets placed inside it.
func (c *Context) PushPanel(name string, rect render.Rect, flags PanelFlags) {
	id := c.pushID(name)
	c.panelStack = append(c.panelStack, &panel{id: id, rect: rect, flags: flags})
}

// PopPanel pops the active panel.
func (c *Context) PopPanel() {
	c.panelStack = c.panelStack[:len(c.panelStack)-1]
	c.popID()
}

func (c *Context) activePanel() *panel {
	if len(c.panelStack) == 0 {
		return nil
	}
	return c.panelStack[len(c.panelStack)-1]
}

// AddTop carves a height-tall strip from the top of the active panel's
// remaining rect and returns it.
func (c *Context) AddTop(height float64) render.Rect {
	p := c.activePanel()
	r := p.rect
	cut := render.Rect{X: r.X, Y: r.Y, W: r.W, H: height}
	p.rect = render.Rect{X: r.X, Y: r.Y + height, W: r.W, H: r.H - height}
	return cut
}

// AddBottom carves a height-tall strip from the bottom.
func (c *Context) AddBottom(height float64) render.Rect {
	p := c.activePanel()
	r := p.rect
	cut := render.Rect{X: r.X, Y: r.Y + r.H - height, W: r.W, H: height}
	p.rect = render.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H - height}
	return cut
}

// AddLeft carves a width-wide strip from the left.
func (c *Context) AddLeft(width float64) render.Rect {
	p := c.activePanel()
	r := p.rect
	cut := render.Rect{X: r.X, Y: r.Y, W: width, H: r.H}
	p.rect = render.Rect{X: r.X + width, Y: r.Y, W: r.W - width, H: r.H}
	return cut
}

// AddRight carves a width-wide strip from the right.
func (c *Context) AddRight(width float64) render.Rect {
	p := c.activePanel()
	r := p.rect
	cut := render.Rect{X: r.X + r.W - width, Y: r.Y, W: width, H: r.H}
	p.rect = render.Rect{X: r.X, Y: r.Y, W: r.W - width, H: r.H}
	return cut
}

// Remaining returns the active panel's not-yet-cut rect.
func (c *Context) Remaining() render.Rect { return c.activePanel().rect }

// scrollPanel applies accumulated wheel delta to a scrollable panel,
// clamping the offset to [0, content_height - view_height].
func (c *Context) scrollPanel(p *panel, viewHeight float64) {
	if p.flags&PanelScrollable == 0 {
		return
	}
	if !rectContains(p.rect, c.mousePos) {
		return
	}
	p.scrollTarget -= c.mouseWheel * 20
	maxOffset := p.contentHeight - viewHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.scrollTarget < 0 {
		p.scrollTarget = 0
	}
	if p.scrollTarget > maxOffset {
		p.scrollTarget = maxOffset
	}
}
