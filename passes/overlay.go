// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package passes

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pulsar3d/engine/rhi"
)

const (
	overlayWidth  = 256
	overlayHeight = 96
	lineHeight    = 13 // basicfont.Face7x13's line advance.
)

// RenderDebugOverlay rasterizes stats as a few lines of text using the
// fixed 7x13 bitmap font and (re)populates the given texture handle. If
// prevValid is false, a new texture is reserved; otherwise the existing
// one is repopulated in place so the handle a caller has already bound
// into a UI draw stays valid frame to frame.
func RenderDebugOverlay(b rhi.Backend, stats DrawStats, prev rhi.TextureHandle, prevValid bool) rhi.TextureHandle {
	img := image.NewRGBA(image.Rect(0, 0, overlayWidth, overlayHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 200}), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{0, 255, 0, 255}),
		Face: basicfont.Face7x13,
	}

	lines := []string{
		fmt.Sprintf("map tris   %d", stats.MapTriangles),
		fmt.Sprintf("shadow tris %d", stats.ShadowTriangles),
		fmt.Sprintf("debug lines %d", stats.ImmediateLines),
		fmt.Sprintf("ui rects   %d", stats.UIRects),
		fmt.Sprintf("missing tex %d", stats.MissingTextures),
	}
	for i, line := range lines {
		d.Dot = fixed.P(4, (i+1)*lineHeight)
		d.DrawString(line)
	}

	upload := rhi.TextureUpload{
		Desc:   rhi.TextureDesc{Format: rhi.RGBA8, Type: rhi.Texture2D, Width: overlayWidth, Height: overlayHeight},
		Pixels: img.Pix,
	}
	if prevValid {
		b.PopulateTexture(prev, upload)
		return prev
	}
	return b.UploadTexture(upload)
}
