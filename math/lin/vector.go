// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// V3/V4 cover the vector side of this package's linear algebra: point
// and direction arithmetic, and the cross-type operations (vector times
// matrix, vector times quaternion, vector through transform) that the
// matrix/quaternion/transform files extend with their own receivers.

import (
	"log/slog"
	"math"
)

// V3 is a 3 element vector, also used as a 3D point.
type V3 struct {
	X float64
	Y float64
	Z float64
}

// V4 is a 4 element vector. As a point W is 1; as a direction W is 0.
type V4 struct {
	X float64
	Y float64
	Z float64
	W float64
}

// Eq reports whether v and a hold identical elements.
func (v *V3) Eq(a *V3) bool {
	return v.X == a.X && v.Y == a.Y && v.Z == a.Z
}

// Eq reports whether v and a hold identical elements.
func (v *V4) Eq(a *V4) bool {
	return v.X == a.X && v.Y == a.Y && v.Z == a.Z && v.W == a.W
}

// Aeq reports whether v and a are equal to within Epsilon per element.
func (v *V3) Aeq(a *V3) bool {
	return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z)
}

// AeqZ reports whether v's squared length is close enough to zero to
// treat v as the zero vector.
func (v *V3) AeqZ() bool { return v.Dot(v) < Epsilon }

// AeqZ reports whether v's squared length is close enough to zero to
// treat v as the zero vector.
func (v *V4) AeqZ() bool { return v.Dot(v) < Epsilon }

// GetS returns v's components as scalars.
func (v *V3) GetS() (x, y, z float64) { return v.X, v.Y, v.Z }

// GetS returns v's components as scalars.
func (v *V4) GetS() (x, y, z, w float64) { return v.X, v.Y, v.Z, v.W }

// SetS sets v's elements and returns v.
func (v *V3) SetS(x, y, z float64) *V3 {
	v.X, v.Y, v.Z = x, y, z
	return v
}

// SetS sets v's elements and returns v.
func (v *V4) SetS(x, y, z, w float64) *V4 {
	v.X, v.Y, v.Z, v.W = x, y, z, w
	return v
}

// Set copies a's elements into v and returns v.
func (v *V3) Set(a *V3) *V3 {
	v.X, v.Y, v.Z = a.X, a.Y, a.Z
	return v
}

// Set copies a's elements into v and returns v.
func (v *V4) Set(a *V4) *V4 {
	v.X, v.Y, v.Z, v.W = a.X, a.Y, a.Z, a.W
	return v
}

// Swap exchanges the element values of v and a, returning v.
func (v *V3) Swap(a *V3) *V3 {
	v.X, a.X = a.X, v.X
	v.Y, a.Y = a.Y, v.Y
	v.Z, a.Z = a.Z, v.Z
	return v
}

// Swap exchanges the element values of v and a, returning v.
func (v *V4) Swap(a *V4) *V4 {
	v.X, a.X = a.X, v.X
	v.Y, a.Y = a.Y, v.Y
	v.Z, a.Z = a.Z, v.Z
	v.W, a.W = a.W, v.W
	return v
}

// Min sets v to the element-wise minimum of a and b, returning v.
func (v *V3) Min(a, b *V3) *V3 {
	v.X, v.Y, v.Z = math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)
	return v
}

// Min sets v to the element-wise minimum of a and b, returning v.
func (v *V4) Min(a, b *V4) *V4 {
	v.X, v.Y, v.Z, v.W = math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z), math.Min(a.W, b.W)
	return v
}

// Max sets v to the element-wise maximum of a and b, returning v.
func (v *V3) Max(a, b *V3) *V3 {
	v.X, v.Y, v.Z = math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)
	return v
}

// Max sets v to the element-wise maximum of a and b, returning v.
func (v *V4) Max(a, b *V4) *V4 {
	v.X, v.Y, v.Z, v.W = math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z), math.Max(a.W, b.W)
	return v
}

// Abs sets v's elements to their absolute values, returning v.
func (v *V3) Abs() *V3 {
	v.X, v.Y, v.Z = math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	return v
}

// Abs sets v's elements to their absolute values, returning v.
func (v *V4) Abs() *V4 {
	v.X, v.Y, v.Z, v.W = math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z), math.Abs(v.W)
	return v
}

// Neg sets v to the negation of a, returning v.
func (v *V3) Neg(a *V3) *V3 {
	v.X, v.Y, v.Z = -a.X, -a.Y, -a.Z
	return v
}

// Neg sets v to the negation of a, returning v.
func (v *V4) Neg(a *V4) *V4 {
	v.X, v.Y, v.Z, v.W = -a.X, -a.Y, -a.Z, -a.W
	return v
}

// Add sets v to a+b, returning v. v may alias a or b (v.Add(v, b) is +=).
func (v *V3) Add(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X+b.X, a.Y+b.Y, a.Z+b.Z
	return v
}

// Add sets v to a+b, returning v. v may alias a or b.
func (v *V4) Add(a, b *V4) *V4 {
	v.X, v.Y, v.Z, v.W = a.X+b.X, a.Y+b.Y, a.Z+b.Z, a.W+b.W
	return v
}

// Sub sets v to a-b, returning v. v may alias a or b (v.Sub(v, b) is -=).
func (v *V3) Sub(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return v
}

// Sub sets v to a-b, returning v. v may alias a or b.
func (v *V4) Sub(a, b *V4) *V4 {
	v.X, v.Y, v.Z, v.W = a.X-b.X, a.Y-b.Y, a.Z-b.Z, a.W-b.W
	return v
}

// Mult sets v to the element-wise product of a and b, returning v.
func (v *V3) Mult(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X*b.X, a.Y*b.Y, a.Z*b.Z
	return v
}

// Mult sets v to the element-wise product of a and b, returning v.
func (v *V4) Mult(a, b *V4) *V4 {
	v.X, v.Y, v.Z, v.W = a.X*b.X, a.Y*b.Y, a.Z*b.Z, a.W*b.W
	return v
}

// MultQ sets v to vector a rotated by quaternion q, leaving a and q
// unchanged. Uses the cross-product expansion of q*v*q^-1 rather than
// two full quaternion multiplies.
func (v *V3) MultQ(a *V3, q *Q) *V3 {
	tx, ty, tz := 2*(q.Y*a.Z-q.Z*a.Y), 2*(q.Z*a.X-q.X*a.Z), 2*(q.X*a.Y-q.Y*a.X)
	cx, cy, cz := q.Y*tz-q.Z*ty, q.Z*tx-q.X*tz, q.X*ty-q.Y*tx
	v.X, v.Y, v.Z = a.X+q.W*tx+cx, a.Y+q.W*ty+cy, a.Z+q.W*tz+cz
	return v
}

// Scale sets v to a scaled by s, returning v.
func (v *V3) Scale(a *V3, s float64) *V3 {
	v.X, v.Y, v.Z = a.X*s, a.Y*s, a.Z*s
	return v
}

// Scale sets v to a scaled by s, returning v.
func (v *V4) Scale(a *V4, s float64) *V4 {
	v.X, v.Y, v.Z, v.W = a.X*s, a.Y*s, a.Z*s, a.W*s
	return v
}

// Div divides v's elements by s, returning v. v is left unchanged if s
// is zero.
func (v *V3) Div(s float64) *V3 {
	if s != 0 {
		inv := 1 / s
		v.X, v.Y, v.Z = v.X*inv, v.Y*inv, v.Z*inv
	}
	return v
}

// Div divides v's elements by s, returning v. v is left unchanged if s
// is zero.
func (v *V4) Div(s float64) *V4 {
	if s != 0 {
		inv := 1 / s
		v.X, v.Y, v.Z, v.W = v.X*inv, v.Y*inv, v.Z*inv, v.W*inv
	}
	return v
}

// Dot returns the dot product of v and a.
func (v *V3) Dot(a *V3) float64 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Dot returns the dot product of v and a.
func (v *V4) Dot(a *V4) float64 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z + v.W*a.W }

// Len returns the length of v.
func (v *V3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// LenSqr returns the squared length of v, avoiding the square root when
// only relative comparisons are needed.
func (v *V3) LenSqr() float64 { return v.Dot(v) }

// Len returns the length of v.
func (v *V4) Len() float64 { return math.Sqrt(v.Dot(v)) }

// LenSqr returns the squared length of v.
func (v *V4) LenSqr() float64 { return v.Dot(v) }

// Dist returns the distance between points v and a.
func (v *V3) Dist(a *V3) float64 { return math.Sqrt(v.DistSqr(a)) }

// DistSqr returns the squared distance between points v and a.
func (v *V3) DistSqr(a *V3) float64 {
	dx, dy, dz := a.X-v.X, a.Y-v.Y, a.Z-v.Z
	return dx*dx + dy*dy + dz*dz
}

// Ang returns the angle in radians between v and a. Returns 0 (and logs
// a warning) if either vector has zero length, since the angle is
// undefined in that case.
func (v *V3) Ang(a *V3) float64 {
	magnitude := math.Sqrt(v.Dot(v) * a.Dot(a))
	if magnitude != 0 {
		return math.Acos(v.Dot(a) / magnitude)
	}
	slog.Warn("lin: V3.Ang called with a zero-length vector")
	return 0
}

// Unit normalizes v to length 1, returning v. v is left unchanged if its
// length is zero.
func (v *V3) Unit() *V3 {
	length := v.Len()
	if length != 0 {
		return v.Div(length)
	}
	return v
}

// Unit normalizes v to length 1, returning v. v is left unchanged if its
// length is zero.
func (v *V4) Unit() *V4 {
	length := v.Len()
	if length != 0 {
		return v.Div(length)
	}
	return v
}

// Cross sets v to the cross product of a and b -- the vector
// perpendicular to both, following the right-hand rule. v may alias a
// or b.
func (v *V3) Cross(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X
	return v
}

// Lerp sets v to the linear interpolation between a and b at the given
// fraction (not clamped to [0,1]).
func (v *V3) Lerp(a, b *V3, fraction float64) *V3 {
	v.X = (b.X-a.X)*fraction + a.X
	v.Y = (b.Y-a.Y)*fraction + a.Y
	v.Z = (b.Z-a.Z)*fraction + a.Z
	return v
}

// Lerp sets v to the linear interpolation between a and b at the given
// ratio (not clamped to [0,1]).
func (v *V4) Lerp(a, b *V4, ratio float64) *V4 {
	v.X = (b.X-a.X)*ratio + a.X
	v.Y = (b.Y-a.Y)*ratio + a.Y
	v.Z = (b.Z-a.Z)*ratio + a.Z
	v.W = (b.W-a.W)*ratio + a.W
	return v
}

// Nlerp sets v to the normalized linear interpolation between a and b.
// Cheaper than a spherical interpolation and adequate when a and b are
// already close together, which is the common case for per-frame
// orientation blending.
func (v *V3) Nlerp(a, b *V3, ratio float64) *V3 { return v.Lerp(a, b, ratio).Unit() }

// Nlerp sets v to the normalized linear interpolation between a and b.
func (v *V4) Nlerp(a, b *V4, ratio float64) *V4 { return v.Lerp(a, b, ratio).Unit() }

// Plane derives two vectors p and q that, together with v, form an
// orthogonal basis -- v is treated as the plane normal and p, q span the
// plane. Picks whichever of the X-Y or Y-Z plane keeps the division
// well-conditioned, following the same branch Bullet's btPlaneSpace1
// uses.
func (v *V3) Plane(p, q *V3) {
	const invSqrt2 = 0.7071067811865475244008443621048490
	if math.Abs(v.Z) > invSqrt2 {
		a := v.Y*v.Y + v.Z*v.Z
		k := 1 / math.Sqrt(a)
		p.X, p.Y, p.Z = 0, -v.Z*k, v.Y*k
		q.X, q.Y, q.Z = a*k, -v.X*p.Z, v.X*p.Y
		return
	}
	a := v.X*v.X + v.Y*v.Y
	k := 1 / math.Sqrt(a)
	p.X, p.Y, p.Z = -v.Y*k, v.X*k, 0
	q.X, q.Y, q.Z = -v.Z*p.Y, v.Z*p.X, a*k
}

// ----------------------------------------------------------------------
// vector-matrix

// MultvM sets v to row vector rv times matrix m:
//
//	               [ Xx Xy Xz ]
//	[ vx vy vz ] x [ Yx Yy Yz ] = [ vx' vy' vz' ]
//	               [ Zx Zy Zz ]
func (v *V3) MultvM(rv *V3, m *M3) *V3 {
	x := rv.X*m.Xx + rv.Y*m.Yx + rv.Z*m.Zx
	y := rv.X*m.Xy + rv.Y*m.Yy + rv.Z*m.Zy
	z := rv.X*m.Xz + rv.Y*m.Yz + rv.Z*m.Zz
	v.X, v.Y, v.Z = x, y, z
	return v
}

// MultvM sets v to row vector rv times matrix m (4x4 form of V3.MultvM).
func (v *V4) MultvM(rv *V4, m *M4) *V4 {
	x := rv.X*m.Xx + rv.Y*m.Yx + rv.Z*m.Zx + rv.W*m.Wx
	y := rv.X*m.Xy + rv.Y*m.Yy + rv.Z*m.Zy + rv.W*m.Wy
	z := rv.X*m.Xz + rv.Y*m.Yz + rv.Z*m.Zz + rv.W*m.Wz
	w := rv.X*m.Xw + rv.Y*m.Yw + rv.Z*m.Zw + rv.W*m.Ww
	v.X, v.Y, v.Z, v.W = x, y, z, w
	return v
}

// MultMv sets v to matrix m times column vector cv:
//
//	[ Xx Xy Xz ]   [ vx ]   [ vx' ]
//	[ Yx Yy Yz ] x [ vy ] = [ vy' ]
//	[ Zx Zy Zz ]   [ vz ]   [ vz' ]
func (v *V3) MultMv(m *M3, cv *V3) *V3 {
	x := m.Xx*cv.X + m.Xy*cv.Y + m.Xz*cv.Z
	y := m.Yx*cv.X + m.Yy*cv.Y + m.Yz*cv.Z
	z := m.Zx*cv.X + m.Zy*cv.Y + m.Zz*cv.Z
	v.X, v.Y, v.Z = x, y, z
	return v
}

// MultMv sets v to matrix m times column vector cv (4x4 form of V3.MultMv).
func (v *V4) MultMv(m *M4, cv *V4) *V4 {
	x := m.Xx*cv.X + m.Xy*cv.Y + m.Xz*cv.Z + m.Xw*cv.W
	y := m.Yx*cv.X + m.Yy*cv.Y + m.Yz*cv.Z + m.Yw*cv.W
	z := m.Zx*cv.X + m.Zy*cv.Y + m.Zz*cv.Z + m.Zw*cv.W
	w := m.Wx*cv.X + m.Wy*cv.Y + m.Wz*cv.Z + m.Ww*cv.W
	v.X, v.Y, v.Z, v.W = x, y, z, w
	return v
}

// ----------------------------------------------------------------------
// vector-quaternion

// MultvQ sets v to vector a rotated by quaternion q.
func (v *V3) MultvQ(a *V3, q *Q) *V3 {
	v.X, v.Y, v.Z = multSQ(a.X, a.Y, a.Z, q.X, q.Y, q.Z, q.W)
	return v
}

// MultSQ rotates the scalar vector (x,y,z) by quaternion q, returning
// the rotated scalar vector.
func MultSQ(x, y, z float64, q *Q) (vx, vy, vz float64) {
	return multSQ(x, y, z, q.X, q.Y, q.Z, q.W)
}

// multSQ is the scalar core MultvQ and MultSQ both call into, taking the
// quaternion apart into components so transform.go can apply an inverse
// rotation without building a throwaway *Q.
func multSQ(x, y, z, qx, qy, qz, qw float64) (vx, vy, vz float64) {
	k0 := qw*qw - 0.5
	k1 := x*qx + y*qy + z*qz // k1 = q.xyz . v

	rx := x*k0 + qx*k1
	ry := y*k0 + qy*k1
	rz := z*k0 + qz*k1

	rx += qw * (qy*z - qz*y)
	ry += qw * (qz*x - qx*z)
	rz += qw * (qx*y - qy*x)

	return rx + rx, ry + ry, rz + rz
}

// ----------------------------------------------------------------------
// vector-transform

// AppT sets v to transform t applied to vector a, leaving a unchanged.
func (v *V3) AppT(t *T, a *V3) *V3 {
	v.X, v.Y, v.Z = t.AppS(a.X, a.Y, a.Z)
	return v
}

// ----------------------------------------------------------------------
// constructors -- call sites that need a heap-allocated vector rather
// than reusing caller-owned storage use these; nothing else in this
// package allocates.

// NewV3 returns a new zero vector.
func NewV3() *V3 { return &V3{} }

// NewV3S returns a new vector with the given components.
func NewV3S(x, y, z float64) *V3 { return &V3{x, y, z} }

// NewV4 returns a new zero vector.
func NewV4() *V4 { return &V4{} }

// NewV4S returns a new vector with the given components.
func NewV4S(x, y, z, w float64) *V4 { return &V4{x, y, z, w} }
