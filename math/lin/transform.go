// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "math"

// T is a rigid transform: rotation and translation without scale or
// shear, cheaper to compose and invert than a full 4x4 matrix. Entity
// placement throughout the engine is tracked as a T and only expanded
// into an M4 at the point a draw call needs one.
type T struct {
	Loc *V3
	Rot *Q
}

// Eq reports whether t and a hold identical rotation and location.
func (t *T) Eq(a *T) bool { return t.Rot.Eq(a.Rot) && t.Loc.Eq(a.Loc) }

// Aeq reports whether t and a are equal to within Epsilon.
func (t *T) Aeq(a *T) bool { return t.Rot.Aeq(a.Rot) && t.Loc.Aeq(a.Loc) }

// Set copies a's rotation and location into t, returning t.
func (t *T) Set(a *T) *T {
	t.Loc.Set(a.Loc)
	t.Rot.Set(a.Rot)
	return t
}

// SetI resets t to the identity transform, returning t.
func (t *T) SetI() *T {
	t.Loc.SetS(0, 0, 0)
	t.Rot.Set(QI)
	return t
}

// SetVQ sets t's location and rotation from loc and rot, returning t.
func (t *T) SetVQ(loc *V3, rot *Q) *T {
	t.Loc.Set(loc)
	t.Rot.Set(rot)
	return t
}

// SetAa sets t's rotation to the given axis and angle in radians,
// returning t.
func (t *T) SetAa(ax, ay, az, ang float64) *T {
	t.Rot.SetAa(ax, ay, az, ang)
	return t
}

// SetLoc sets t's location, returning t.
func (t *T) SetLoc(lx, ly, lz float64) *T {
	t.Loc.X, t.Loc.Y, t.Loc.Z = lx, ly, lz
	return t
}

// SetRot sets t's rotation components directly, returning t.
func (t *T) SetRot(x, y, z, w float64) *T {
	t.Rot.X, t.Rot.Y, t.Rot.Z, t.Rot.W = x, y, z, w
	return t
}

// Mult sets t to the composition of a followed by b (apply b's local
// offset rotated into a's frame, then a's own placement), returning t. t
// may alias a or b.
func (t *T) Mult(a, b *T) *T {
	tx, ty, tz := a.Loc.GetS()
	t.Loc.MultvQ(b.Loc, a.Rot)
	t.Loc.X, t.Loc.Y, t.Loc.Z = t.Loc.X+tx, t.Loc.Y+ty, t.Loc.Z+tz
	t.Rot.Mult(a.Rot, b.Rot)
	return t
}

// App applies t's rotation then translation to v in place, returning v.
func (t *T) App(v *V3) *V3 {
	v.MultvQ(v, t.Rot)
	v.Add(v, t.Loc)
	return v
}

// AppS applies t's rotation then translation to the scalar vector
// (x, y, z), returning the transformed components.
func (t *T) AppS(x, y, z float64) (vx, vy, vz float64) {
	vx, vy, vz = MultSQ(x, y, z, t.Rot)
	return vx + t.Loc.X, vy + t.Loc.Y, vz + t.Loc.Z
}

// AppR applies just t's rotation to the scalar vector (x, y, z),
// returning the rotated components.
func (t *T) AppR(x, y, z float64) (vx, vy, vz float64) {
	return MultSQ(x, y, z, t.Rot)
}

// Inv applies the inverse of t (inverse translation then inverse
// rotation) to v in place, returning v.
func (t *T) Inv(v *V3) *V3 {
	v.Sub(v, t.Loc)
	ix, iy, iz := -t.Rot.X, -t.Rot.Y, -t.Rot.Z
	v.X, v.Y, v.Z = multSQ(v.X, v.Y, v.Z, ix, iy, iz, t.Rot.W)
	return v
}

// InvS applies the inverse of t to the scalar vector (x, y, z),
// returning the transformed components.
func (t *T) InvS(x, y, z float64) (vx, vy, vz float64) {
	vx, vy, vz = x-t.Loc.X, y-t.Loc.Y, z-t.Loc.Z
	ix, iy, iz := -t.Rot.X, -t.Rot.Y, -t.Rot.Z
	return multSQ(vx, vy, vz, ix, iy, iz, t.Rot.W)
}

// Integrate sets t to transform a advanced by linear velocity linv and
// angular velocity angv over dt, returning t. t and a must be distinct;
// linv and angv are unchanged. This is the exponential-map integrator
// described in F. Sebastian Grassia's "Practical Parameterization of
// Rotations Using the Exponential Map", adapted from Bullet's
// btTransformUtil::integrateTransform -- used to advance any physics-
// driven placement (e.g. a dynamic light or camera rig) a frame at a
// time without re-deriving Euler angles.
func (t *T) Integrate(a *T, linv, angv *V3, dt float64) *T {
	t.Loc.X = a.Loc.X + linv.X*dt
	t.Loc.Y = a.Loc.Y + linv.Y*dt
	t.Loc.Z = a.Loc.Z + linv.Z*dt

	angularMotionLimit := 0.5 * HalfPi
	angLen := angv.Len()
	if angLen*dt > angularMotionLimit {
		angLen = angularMotionLimit / dt
	}
	var fac float64
	if angLen < 0.001 {
		fac = 0.5*dt - dt*dt*dt*0.020833333333*angLen*angLen
	} else {
		fac = math.Sin(0.5*angLen*dt) / angLen
	}

	rx, ry, rz, rw := a.Rot.X, a.Rot.Y, a.Rot.Z, a.Rot.W
	sx, sy, sz, sw := angv.X*fac, angv.Y*fac, angv.Z*fac, math.Cos(angLen*dt*0.5)
	t.Rot.X = rw*sx + rx*sw - ry*sz + rz*sy
	t.Rot.Y = rw*sy + rx*sz + ry*sw - rz*sx
	t.Rot.Z = rw*sz - rx*sy + ry*sx + rz*sw
	t.Rot.W = rw*sw - rx*sx - ry*sy - rz*sz
	t.Rot.Unit()
	return t
}

// NewT returns a new transform at the origin with no rotation.
func NewT() *T {
	return &T{&V3{}, &Q{0, 0, 0, 1}}
}
