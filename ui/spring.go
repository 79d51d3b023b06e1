// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package ui

// AnimState is a per-widget critically-damped spring animating toward a
// target color. Unlike the window open/close and tray tweens (driven by
// github.com/tanema/gween), this is pure hand-rolled data: a widget's
// color target changes every frame in response to its hot/active state,
// which a keyframed tween library isn't built to retarget on the fly.
type AnimState struct {
	current  [4]float64
	velocity [4]float64
	target   [4]float64

	lastTouched uint64
}

// springConstant and dampingConstant are the spring's stiffness and
// damping coefficients, chosen so the spring is critically damped for a
// target that holds still for a few frames at 60 Hz.
const (
	springConstant  = 60.0
	dampingConstant = 2 * 7.75 // 2*sqrt(springConstant), critical damping.
)

// SetTarget retargets the spring without resetting its current value or
// velocity, so a state change (hot -> active) smoothly redirects an
// in-flight animation instead of snapping.
func (a *AnimState) SetTarget(target [4]float64, frameIndex uint64) {
	a.target = target
	a.lastTouched = frameIndex
}

// Current returns the spring's current value.
func (a *AnimState) Current() [4]float64 { return a.current }

// step advances the spring by dt seconds: a = c_t*(target-current) -
// c_v*velocity; velocity += dt*a; current += dt*velocity.
func (a *AnimState) step(dt float64) {
	for i := 0; i < 4; i++ {
		accel := springConstant*(a.target[i]-a.current[i]) - dampingConstant*a.velocity[i]
		a.velocity[i] += dt * accel
		a.current[i] += dt * a.velocity[i]
	}
}

// animFor fetches or creates the AnimState for id, touching it with the
// current frame index.
func (c *Context) animFor(id uint64) *AnimState {
	a, ok := c.anims[id]
	if !ok {
		a = &AnimState{}
		c.anims[id] = a
	}
	a.lastTouched = c.frameIndex
	return a
}
