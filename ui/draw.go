// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ui

import "github.com/pulsar3d/engine/render"

// pushRect appends one colored rect to the render front end's shared
// UI-rect pool and immediately submits it as its own draw command. UI
// draw order is submission order (there is exactly one screen layer and
// view layer for UI), so widgets simply draw back-to-front as they run.
func (c *Context) pushRect(rect render.Rect, color [4]float64, clip render.Rect) {
	idx := c.buf.PushUIRect(render.UIRect{
		Rect:     rect,
		Color:    [4]float32{float32(color[0]), float32(color[1]), float32(color[2]), float32(color[3])},
		ClipRect: clip,
	})
	c.buf.SubmitUIRects(0, 0, idx, 1, 0)
}
