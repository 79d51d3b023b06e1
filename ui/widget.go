// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ui

import "github.com/pulsar3d/engine/render"

// widgetBehaviour runs the common hot/active state machine for a widget
// at id occupying rect, and returns which edges fired this frame.
//
// At most one widget is ever active; while one is, no widget claims hot
// status, so hovering a second widget while dragging the first doesn't
// steal focus.
func (c *Context) widgetBehaviour(id uint64, rect render.Rect) WidgetResult {
	var result WidgetResult

	if c.activeID() == id {
		if c.mouseReleasedAny(MouseLeft) {
			result |= ResultReleased
			if rectContains(rect, c.mousePos) {
				result |= ResultFired
			}
			c.clearActive()
		}
	} else if rectContains(rect, c.mousePos) && (c.activeID() == 0) {
		c.setNextHot(id)
	}

	if c.hotID() == id && c.mousePressedAny(MouseLeft) {
		result |= ResultPressed
		anchor := Point{X: c.mousePos.X - (rect.X + rect.W/2), Y: c.mousePos.Y - (rect.Y + rect.H/2)}
		c.setActive(id, anchor)
	}

	return result
}

// widgetState classifies id's current state for color animation
// purposes.
type widgetState int

const (
	stateCold widgetState = iota
	stateHot
	stateActive
	stateFired
)

func (c *Context) stateOf(id uint64, fired bool) widgetState {
	switch {
	case fired:
		return stateFired
	case c.activeID() == id:
		return stateActive
	case c.hotID() == id:
		return stateHot
	default:
		return stateCold
	}
}

// Theme maps each widgetState to an RGBA color a widget's spring
// animates toward.
type Theme struct {
	Cold, Hot, Active, Fired [4]float64
}

// DefaultTheme is a plain gray/blue scheme used when a caller doesn't
// supply one.
var DefaultTheme = Theme{
	Cold:   [4]float64{0.25, 0.25, 0.27, 1},
	Hot:    [4]float64{0.35, 0.35, 0.40, 1},
	Active: [4]float64{0.20, 0.45, 0.80, 1},
	Fired:  [4]float64{0.30, 0.70, 0.30, 1},
}

func (t Theme) colorFor(s widgetState) [4]float64 {
	switch s {
	case stateHot:
		return t.Hot
	case stateActive:
		return t.Active
	case stateFired:
		return t.Fired
	default:
		return t.Cold
	}
}

// Button lays out a clickable rect, animates its fill color, and lowers
// it to a UI-rect draw command. It returns true on the frame the button
// is clicked and released while still hovered.
func (c *Context) Button(name string, rect render.Rect, theme Theme) bool {
	id := c.pushID(name)
	defer c.popID()

	result := c.widgetBehaviour(id, rect)
	fired := result&ResultFired != 0
	state := c.stateOf(id, fired)

	anim := c.animFor(id)
	anim.SetTarget(theme.colorFor(state), c.frameIndex)

	c.pushRect(rect, anim.Current(), render.Rect{})
	return fired
}
