// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mapmodel

import (
	"math"

	"github.com/pulsar3d/engine/math/lin"
)

// Plane is a brush face: the plane equation (Normal, Dist such that
// Normal.Dot(p) == Dist for p on the plane), the texture painted on the
// face, and the texture-space S/T projection vectors used to compute
// albedo UVs directly from world position (no per-vertex UV stored by
// the source data).
type Plane struct {
	Normal lin.V3
	Dist   float64

	Texture string

	// S and T are the texture axis vectors; SOffset/TOffset translate the
	// projected coordinate before scaling by SScale/TScale. This mirrors a
	// Quake-style texture alignment (axis, offset, scale) rather than
	// storing explicit per-vertex UVs.
	S, T           lin.V3
	SOffset, TOffset float64
	SScale, TScale float64

	Basis LightmapBasis
}

// LightmapBasis is the per-plane orthonormal-ish basis used to project
// world positions into lightmap texel space: lightmapU = S.Dot(p-Origin)/ScaleX,
// lightmapV = T.Dot(p-Origin)/ScaleY, both normalized to [0,1] by TexW/TexH.
type LightmapBasis struct {
	Origin lin.V3
	S, T   lin.V3
	ScaleX float64
	ScaleY float64
	TexW   int
	TexH   int
}

// NewPlaneFromPoints builds a Plane from three non-collinear points given
// in clockwise winding order as seen from outside the brush (the
// convention every original brush face uses), producing an outward
// normal.
func NewPlaneFromPoints(a, b, c lin.V3) Plane {
	var e1, e2, n lin.V3
	e1.Sub(&b, &a)
	e2.Sub(&c, &a)
	n.Cross(&e2, &e1)
	n.Unit()
	dist := n.Dot(&a)
	return Plane{Normal: n, Dist: dist}
}

// SignedDistance returns the signed distance from p to the plane; positive
// is in the direction of Normal.
func (pl *Plane) SignedDistance(p lin.V3) float64 {
	return pl.Normal.Dot(&p) - pl.Dist
}

// onPlane reports whether p lies within planeEpsilon of the plane.
func (pl *Plane) onPlane(p lin.V3) bool {
	return math.Abs(pl.SignedDistance(p)) <= planeEpsilon
}

// chooseLightmapBasis picks the tangent-frame orientation (out of the two
// offered by lin.V3.Plane, S vs T swapped) that minimizes the lightmap
// texel-grid footprint covering bounds, and fills in TexW/TexH.
//
// lin.V3.Plane produces one canonical perpendicular pair (p, q) for a
// given normal; trying both (p,q) and (q,p) as (S,T) and keeping
// whichever yields the smaller tex_w*tex_h total resolves the otherwise
// underspecified choice of basis orientation.
func chooseLightmapBasis(normal lin.V3, bounds AABB) LightmapBasis {
	var p, q lin.V3
	n := normal
	n.Plane(&p, &q)

	candidates := [2][2]lin.V3{{p, q}, {q, p}}
	best := LightmapBasis{}
	bestArea := math.MaxFloat64
	for _, c := range candidates {
		s, t := c[0], c[1]
		origin := bounds.Min
		size := bounds.Size()
		width := s.X*size.X + s.Y*size.Y + s.Z*size.Z
		height := t.X*size.X + t.Y*size.Y + t.Z*size.Z
		width, height = math.Abs(width), math.Abs(height)
		texW := int(math.Ceil(width / LightmapScale))
		texH := int(math.Ceil(height / LightmapScale))
		if texW < 1 {
			texW = 1
		}
		if texH < 1 {
			texH = 1
		}
		area := float64(texW * texH)
		if area < bestArea {
			bestArea = area
			best = LightmapBasis{
				Origin: origin,
				S:      s,
				T:      t,
				ScaleX: LightmapScale,
				ScaleY: LightmapScale,
				TexW:   texW,
				TexH:   texH,
			}
		}
	}
	return best
}

// lightmapUV projects world position p into [0,1] lightmap-texture space
// using basis.
func lightmapUV(basis LightmapBasis, p lin.V3) (u, v float64) {
	rel := lin.V3{}
	rel.Sub(&p, &basis.Origin)
	u = basis.S.Dot(&rel) / (basis.ScaleX * float64(basis.TexW))
	v = basis.T.Dot(&rel) / (basis.ScaleY * float64(basis.TexH))
	return u, v
}

// textureUV projects world position p into this plane's albedo texture
// space using its S/T axis, offset, and scale.
func (pl *Plane) textureUV(p lin.V3) (u, v float64) {
	u = (pl.S.Dot(&p) + pl.SOffset) / nonZero(pl.SScale)
	v = (pl.T.Dot(&p) + pl.TOffset) / nonZero(pl.TScale)
	return u, v
}

func nonZero(f float64) float64 {
	if f == 0 {
		return 1
	}
	return f
}
