// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bake

import (
	"math"
	"math/rand"

	"github.com/pulsar3d/engine/rhi"
)

// AlbedoSource is the subset of a texture backend a bake run needs: pixel
// readback by handle. rhi.Backend itself doesn't expose this -- sampling
// texture bytes back on the CPU only makes sense against the CPU-resident
// rhi.Software a bake actually traces against, not a GPU-resident one.
type AlbedoSource interface {
	DescribeTexture(h rhi.TextureHandle) (rhi.TextureDesc, bool)
	Sample(h rhi.TextureHandle, cubemap bool) []byte
}

// sampleAlbedo reads the RGB color at wrapped UV (u,v) from h's backing
// pixels. Formats other than RGBA8/SRGB8A8 fall back to white -- a CPU
// bake pass has no need to decode HDR or compressed formats, since
// baked-lighting albedo inputs are always 8-bit source art.
func sampleAlbedo(src AlbedoSource, h rhi.TextureHandle, u, v float64) lin3 {
	desc, ok := src.DescribeTexture(h)
	if !ok || desc.Width == 0 || desc.Height == 0 {
		return lin3{1, 1, 1}
	}
	if desc.Format != rhi.RGBA8 && desc.Format != rhi.SRGB8A8 {
		return lin3{1, 1, 1}
	}
	pixels := src.Sample(h, false)
	if len(pixels) < desc.Width*desc.Height*4 {
		return lin3{1, 1, 1}
	}

	x := wrapIndex(u, desc.Width)
	y := wrapIndex(v, desc.Height)
	off := (y*desc.Width + x) * 4
	return lin3{
		float64(pixels[off]) / 255,
		float64(pixels[off+1]) / 255,
		float64(pixels[off+2]) / 255,
	}
}

// lin3 is a plain RGB triple, kept distinct from lin.V3 since it carries
// color, not a position/direction.
type lin3 struct{ R, G, B float64 }

func (a lin3) add(b lin3) lin3      { return lin3{a.R + b.R, a.G + b.G, a.B + b.B} }
func (a lin3) scale(s float64) lin3 { return lin3{a.R * s, a.G * s, a.B * s} }
func (a lin3) mul(b lin3) lin3      { return lin3{a.R * b.R, a.G * b.G, a.B * b.B} }

func wrapIndex(f float64, n int) int {
	i := int(math.Floor(f * float64(n)))
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// ditherJitter returns a per-texel perturbation in [-0.5, 0.5]/255,
// applied to each packed channel to break up banding in low-gradient
// regions of a baked lightmap.
func ditherJitter(rng *rand.Rand) float64 {
	return (rng.Float64() - 0.5) / 255
}

// packRGBA8 clamps c to [0,1], dithers, and packs to one RGBA8 texel with
// alpha fixed opaque.
func packRGBA8(c lin3, rng *rand.Rand) [4]byte {
	clampDither := func(v float64) byte {
		v += ditherJitter(rng)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		return byte(v*255 + 0.5)
	}
	return [4]byte{clampDither(c.R), clampDither(c.G), clampDither(c.B), 255}
}
