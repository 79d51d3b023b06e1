// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mixer

import (
	"math"

	"github.com/pulsar3d/engine/math/lin"
)

const invSqrt2 = 0.70710678118654752440

// mixMatrix maps up to 2 input channels to 2 output channels:
// mixMatrix[inChannel][outChannel].
type mixMatrix [2][2]float64

// unspatializedMatrix is the channel-mix matrix used when Spatial is not
// set, or blended toward at close range: identity for a stereo source,
// equal-power dual-mono for a mono source, and, when ForceMono is set,
// every input channel feeding both outputs at 1/sqrt2.
func unspatializedMatrix(channels int, forceMono bool) mixMatrix {
	var m mixMatrix
	if channels <= 1 {
		m[0][0], m[0][1] = 1, 1
	} else {
		m[0][0], m[1][1] = 1, 1
	}
	if forceMono {
		for c := 0; c < 2; c++ {
			m[c][0], m[c][1] = invSqrt2, invSqrt2
		}
	}
	return m
}

// spatialAttenuationAndPan computes the distance attenuation and the
// equal-power left/right pan gains for a voice at position relative to
// the listener at listenerPos, facing with right-basis vector
// listenerX.
func spatialAttenuationAndPan(position, listenerPos, listenerX lin.V3, minDistance float64) (attenuation, left, right float64) {
	var toSound lin.V3
	toSound.Sub(&position, &listenerPos)
	dist := toSound.Len()
	distSqr := dist * dist

	attenuation = minDistance / (minDistance + distSqr)

	if dist > 1e-9 {
		toSound.Unit()
	}
	cosTheta := toSound.Dot(&listenerX)

	left = math.Sqrt(0.5 * (1 - cosTheta))
	right = math.Sqrt(0.5 * (1 + cosTheta))
	return attenuation, left, right
}

// spatialMatrix builds the pan-only mix matrix (before blending toward
// unspatializedMatrix): every input channel is panned identically, since
// a voice's spatial position describes one point in space regardless of
// how many channels its waveform carries.
func spatialMatrix(channels int, left, right float64) mixMatrix {
	var m mixMatrix
	for c := 0; c < channels && c < 2; c++ {
		m[c][0] = left
		m[c][1] = right
	}
	return m
}

// blendMatrix linearly interpolates from spatial toward unspatialized by
// factor (0 = fully spatial, 1 = fully unspatialized), flattening the
// pan as the listener gets close to the source.
func blendMatrix(spatial, unspatialized mixMatrix, factor float64) mixMatrix {
	var m mixMatrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			m[i][j] = spatial[i][j] + (unspatialized[i][j]-spatial[i][j])*factor
		}
	}
	return m
}

// nearFieldBlendFactor is the weight toward the unspatialized matrix:
// 1 at zero distance (fully flattened, no panning), falling toward 0 as
// distSqr grows past minDistance.
func nearFieldBlendFactor(minDistance, distSqr float64) float64 {
	d := 0.2 * minDistance
	return d / (d + distSqr)
}

// voiceMixMatrix computes the full channel-mix matrix and overall
// attenuation for one voice this mix block, given the current listener
// state.
func voiceMixMatrix(v *voice, listenerPos, listenerX lin.V3) (m mixMatrix, attenuation float64) {
	channels := 1
	if v.waveform != nil {
		channels = v.waveform.Channels
	}
	unspatial := unspatializedMatrix(channels, v.flags&FlagForceMono != 0)
	if v.flags&FlagSpatial == 0 {
		return unspatial, 1
	}

	var toSound lin.V3
	toSound.Sub(&v.position, &listenerPos)
	distSqr := toSound.Dot(&toSound)

	atten, left, right := spatialAttenuationAndPan(v.position, listenerPos, listenerX, v.minDistance)
	spatial := spatialMatrix(channels, left, right)
	factor := nearFieldBlendFactor(v.minDistance, distSqr)
	return blendMatrix(spatial, unspatial, factor), atten
}
