// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Q is a unit quaternion: the rotation axis scaled by sin(angle/2) in
// (X, Y, Z) and cos(angle/2) in W, used throughout the package anywhere a rotation needs to
// be composed or interpolated without the gimbal-lock issues an Euler
// representation would bring. Quaternion multiplication composes
// rotations but, unlike scalar multiplication, is not commutative --
// q.Mult(r, s) rotates s by r, not the other way around.

import (
	"log/slog"
	"math"
)

// Q is a rotation: the axis times sin(angle/2) in (X, Y, Z) and
// cos(angle/2) in W.
type Q struct {
	X float64
	Y float64
	Z float64
	W float64
}

// QI is the reference identity quaternion. Treat it as read-only.
var QI = &Q{0, 0, 0, 1}

// Eq reports whether q and r hold identical elements.
func (q *Q) Eq(r *Q) bool {
	return q.W == r.W && q.Z == r.Z && q.Y == r.Y && q.X == r.X
}

// Aeq reports whether q and r are equal to within Epsilon per element.
func (q *Q) Aeq(r *Q) bool {
	return Aeq(q.X, r.X) && Aeq(q.Y, r.Y) && Aeq(q.Z, r.Z) && Aeq(q.W, r.W)
}

// GetS returns q's components.
func (q *Q) GetS() (x, y, z, w float64) { return q.X, q.Y, q.Z, q.W }

// SetS sets q's elements, returning q.
func (q *Q) SetS(x, y, z, w float64) *Q {
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// Set copies r's elements into q, returning q.
func (q *Q) Set(r *Q) *Q {
	q.X, q.Y, q.Z, q.W = r.X, r.Y, r.Z, r.W
	return q
}

// Inv sets q to the inverse of r, returning q. For a unit quaternion the
// inverse is the same as the conjugate.
func (q *Q) Inv(r *Q) *Q {
	q.X, q.Y, q.Z, q.W = -r.X, -r.Y, -r.Z, r.W
	return q
}

// Add sets q to r+s, returning q.
func (q *Q) Add(r, s *Q) *Q {
	q.X, q.Y, q.Z, q.W = r.X+s.X, r.Y+s.Y, r.Z+s.Z, r.W+s.W
	return q
}

// Neg negates every element of q, returning q.
func (q *Q) Neg() *Q {
	q.X, q.Y, q.Z, q.W = -q.X, -q.Y, -q.Z, -q.W
	return q
}

// Sub sets q to r-s, returning q.
func (q *Q) Sub(r, s *Q) *Q {
	q.X, q.Y, q.Z, q.W = r.X-s.X, r.Y-s.Y, r.Z-s.Z, r.W-s.W
	return q
}

// Scale multiplies every element of q by s, returning q.
func (q *Q) Scale(s float64) *Q {
	q.X, q.Y, q.Z, q.W = q.X*s, q.Y*s, q.Z*s, q.W*s
	return q
}

// Div divides every element of q by s, returning q. q is left unchanged
// (and a warning logged) if s is zero.
func (q *Q) Div(s float64) *Q {
	if s == 0 {
		slog.Warn("lin: Q.Div called with a zero divisor")
		return q
	}
	inv := 1 / s
	q.X, q.Y, q.Z, q.W = q.X*inv, q.Y*inv, q.Z*inv, q.W*inv
	return q
}

// Mult sets q to the rotation of s by r, returning q. q may alias r or s
// (q.Mult(q, s) is *=).
func (q *Q) Mult(r, s *Q) *Q {
	x := r.W*s.X + r.X*s.W - r.Y*s.Z + r.Z*s.Y
	y := r.W*s.Y + r.X*s.Z + r.Y*s.W - r.Z*s.X
	z := r.W*s.Z - r.X*s.Y + r.Y*s.X + r.Z*s.W
	w := r.W*s.W - r.X*s.X - r.Y*s.Y - r.Z*s.Z
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// Unit normalizes q to unit length, returning q. q is unchanged if its
// length is zero.
func (q *Q) Unit() *Q {
	qlen := q.Len()
	if qlen != 0 {
		q.Scale(1 / qlen)
	}
	return q
}

// Dot returns the dot product of q and r.
func (q *Q) Dot(r *Q) float64 { return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W }

// Len returns the length of q.
func (q *Q) Len() float64 { return math.Sqrt(q.Dot(q)) }

// Ang returns the angle in radians between unit quaternions q and r.
func (q *Q) Ang(r *Q) float64 {
	qdotr := q.Dot(r)
	return math.Acos(2*(qdotr*qdotr) - 1)
}

// Nlerp sets q to the normalized linear interpolation between r and s at
// the given ratio (0 returns r, 1 returns s, normalized), returning q. r
// and s are unchanged.
func (q *Q) Nlerp(r, s *Q, ratio float64) *Q {
	q.X = (s.X-r.X)*ratio + r.X
	q.Y = (s.Y-r.Y)*ratio + r.Y
	q.Z = (s.Z-r.Z)*ratio + r.Z
	q.W = (s.W-r.W)*ratio + r.W
	return q.Unit()
}

// MultQV sets q to the product of quaternion r and vector v treated as a
// pure quaternion, returning q.
func (q *Q) MultQV(r *Q, v *V3) *Q {
	x := +r.W*v.X + r.Y*v.Z - r.Z*v.Y
	y := +r.W*v.Y + r.Z*v.X - r.X*v.Z
	z := +r.W*v.Z + r.X*v.Y - r.Y*v.X
	w := -r.X*v.X - r.Y*v.Y - r.Z*v.Z
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// Aa returns q's rotation as an axis (ax, ay, az) and angle in radians.
// The axis defaults to (1, 0, 0) if q has no rotational component.
func (q *Q) Aa() (ax, ay, az, angle float64) {
	sinSqr := 1 - q.W*q.W
	if AeqZ(sinSqr) {
		return 1, 0, 0, 2 * math.Acos(q.W)
	}
	sin := 1 / math.Sqrt(sinSqr)
	return q.X * sin, q.Y * sin, q.Z * sin, 2 * math.Acos(q.W)
}

// SetAa sets q to the rotation for the given axis (ax, ay, az) and angle
// in radians, returning q. q is set to identity if the axis has zero
// length. q is kept with W >= 0, so for angles beyond PI, Aa reports the
// same rotation as 2*PI-angle about the negated axis.
func (q *Q) SetAa(ax, ay, az, angle float64) *Q {
	alenSqr := ax*ax + ay*ay + az*az
	if alenSqr == 0 {
		q.X, q.Y, q.Z, q.W = 0, 0, 0, 1
		return q
	}
	s := math.Sin(angle*0.5) / math.Sqrt(alenSqr)
	q.X, q.Y, q.Z, q.W = ax*s, ay*s, az*s, math.Cos(angle*0.5)
	if q.W < 0 {
		q.X, q.Y, q.Z, q.W = -q.X, -q.Y, -q.Z, -q.W
	}
	return q
}

// SetM sets q to the rotation equivalent to matrix m, returning q. The
// result has W >= 0, matching SetAa.
func (q *Q) SetM(m *M3) *Q {
	trace := m.Xx + m.Yy + m.Zz
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q.W = 0.25 * s
		q.X = (m.Zy - m.Yz) / s
		q.Y = (m.Xz - m.Zx) / s
		q.Z = (m.Yx - m.Xy) / s
	case m.Xx > m.Yy && m.Xx > m.Zz:
		s := math.Sqrt(m.Xx-m.Yy-m.Zz+1) * 2
		q.W = (m.Zy - m.Yz) / s
		q.X = 0.25 * s
		q.Y = (m.Xy + m.Yx) / s
		q.Z = (m.Xz + m.Zx) / s
	case m.Yy > m.Zz:
		s := math.Sqrt(m.Yy-m.Xx-m.Zz+1) * 2
		q.W = (m.Xz - m.Zx) / s
		q.X = (m.Xy + m.Yx) / s
		q.Y = 0.25 * s
		q.Z = (m.Yz + m.Zy) / s
	default:
		s := math.Sqrt(m.Zz-m.Xx-m.Yy+1) * 2
		q.W = (m.Yx - m.Xy) / s
		q.X = (m.Xz + m.Zx) / s
		q.Y = (m.Yz + m.Zy) / s
		q.Z = 0.25 * s
	}
	if q.W < 0 {
		q.X, q.Y, q.Z, q.W = -q.X, -q.Y, -q.Z, -q.W
	}
	return q
}

// MultT applies transform t's rotation to q, returning q.
func (q *Q) MultT(t *T) *Q { return q.Mult(q, t.Rot) }

// SetT sets q to transform t's rotation, returning q.
func (q *Q) SetT(t *T) *Q {
	q.Set(t.Rot)
	return q
}

// NewQ returns a new zero quaternion.
func NewQ() *Q { return &Q{} }

// NewQI returns a new identity quaternion.
func NewQI() *Q { return &Q{W: 1} }
