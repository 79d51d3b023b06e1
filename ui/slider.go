// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ui

import "github.com/pulsar3d/engine/render"

// Slider lays out a horizontal track and a draggable thumb positioned by
// value within [min, max]. It returns the (possibly updated) value: the
// value passed in unless the slider is the active (dragged) widget, in
// which case the result follows the mouse and is clamped to [min, max].
func (c *Context) Slider(name string, track render.Rect, value, min, max float64, theme Theme) float64 {
	trackID := c.pushID(name)
	defer c.popID()

	if max <= min {
		max = min + 1
	}
	t := (value - min) / (max - min)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	thumbW := 10.0
	thumbRect := render.Rect{X: track.X + t*(track.W-thumbW), Y: track.Y, W: thumbW, H: track.H}

	c.pushRect(track, theme.colorFor(stateCold), render.Rect{})

	result := c.widgetBehaviour(trackID, thumbRect)
	state := c.stateOf(trackID, result&ResultFired != 0)
	anim := c.animFor(trackID)
	anim.SetTarget(theme.colorFor(state), c.frameIndex)
	c.pushRect(thumbRect, anim.Current(), render.Rect{})

	if c.activeID() == trackID {
		newT := (c.mousePos.X - track.X - thumbW/2) / (track.W - thumbW)
		if newT < 0 {
			newT = 0
		} else if newT > 1 {
			newT = 1
		}
		value = min + newT*(max-min)
	}
	return value
}
