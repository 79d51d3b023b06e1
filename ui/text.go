// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ui

import (
	"golang.org/x/text/unicode/norm"

	"github.com/pulsar3d/engine/render"
)

// normalizeText runs incoming text-input bytes through NFC
// normalization before appending to the frame's text-input queue, so an
// IME that delivers a base letter and a combining accent as two runes
// merges them into one precomposed rune the way a single keystroke
// would.
func normalizeText(s string) []rune {
	composed := norm.NFC.String(s)
	return []rune(composed)
}

// TextEdit is a minimal single-line text-input widget: it consumes this
// frame's text-input runes while active and backspace deletes the last
// rune. It edits *buf in place and returns nothing.
func (c *Context) TextEdit(name string, rect render.Rect, buf *[]rune, theme Theme) {
	id := c.pushID(name)
	defer c.popID()

	c.widgetBehaviour(id, rect)
	state := c.stateOf(id, false)
	anim := c.animFor(id)
	anim.SetTarget(theme.colorFor(state), c.frameIndex)
	c.pushRect(rect, anim.Current(), render.Rect{})

	if c.activeID() != id {
		return
	}
	for _, r := range c.textInput {
		if r == '\b' {
			if len(*buf) > 0 {
				*buf = (*buf)[:len(*buf)-1]
			}
			continue
		}
		*buf = append(*buf, r)
	}
}
