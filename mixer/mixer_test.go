// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mixer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulsar3d/engine/math/lin"
)

func sineWaveform(n, channels int) *Waveform {
	samples := make([]float32, n*channels)
	for i := range samples {
		samples[i] = 0.5
	}
	return &Waveform{Samples: samples, Channels: channels}
}

func TestPlaySoundProducesOutput(t *testing.T) {
	m := New()
	id := m.PlaySound(sineWaveform(1000, 2), 1, 0, lin.V3{}, 1)
	require.NotEqual(t, VoiceID(0), id)

	out := make([]float32, 256*2)
	m.Mix(out, 256)

	nonZero := false
	for _, s := range out {
		if s != 0 {
			nonZero = true
			break
		}
	}
	require.True(t, nonZero, "a playing voice must produce non-zero output")
}

func TestStopSoundRetiresVoice(t *testing.T) {
	m := New()
	id := m.PlaySound(sineWaveform(1000, 2), 1, 0, lin.V3{}, 1)
	out := make([]float32, 256*2)
	m.Mix(out, 256)
	require.Equal(t, 1, m.VoiceCount())

	m.StopSound(id)
	m.Mix(out, 256)
	require.Equal(t, 0, m.VoiceCount())
}

func TestNonLoopingVoiceRetiresAtEnd(t *testing.T) {
	m := New()
	m.PlaySound(sineWaveform(100, 2), 1, 0, lin.V3{}, 1)
	out := make([]float32, 256*2)
	m.Mix(out, 256)
	require.Equal(t, 0, m.VoiceCount(), "a non-looping voice shorter than one mix block must retire")
}

func TestLoopingVoiceSurvivesPastEnd(t *testing.T) {
	m := New()
	m.PlaySound(sineWaveform(100, 2), 1, FlagLooping, lin.V3{}, 1)
	out := make([]float32, 256*2)
	m.Mix(out, 256)
	require.Equal(t, 1, m.VoiceCount())
}

func TestOutputClampedToUnitRange(t *testing.T) {
	m := New()
	m.PlaySound(&Waveform{Samples: []float32{10, 10, 10, 10}, Channels: 2}, 1, FlagLooping, lin.V3{}, 1)
	out := make([]float32, 8*2)
	m.Mix(out, 8)
	for _, s := range out {
		require.LessOrEqual(t, s, float32(1))
		require.GreaterOrEqual(t, s, float32(-1))
	}
}

func TestFadeInterpolatesVolume(t *testing.T) {
	m := New()
	id := m.PlaySound(&Waveform{Samples: []float32{1, 1}, Channels: 2}, 1, FlagLooping|FlagForceMono, lin.V3{}, 1)
	m.Fade(id, 0, 1, FadeLinear, 100, 0)

	out := make([]float32, 2)
	m.Mix(out, 1)
	require.InDelta(t, 0, out[0], 0.05, "fade must start near 0")
}

func TestFadeStopsVoiceAtEndWhenFlagged(t *testing.T) {
	m := New()
	id := m.PlaySound(&Waveform{Samples: []float32{1, 1}, Channels: 2}, 1, FlagLooping, lin.V3{}, 1)
	m.Fade(id, 1, 0, FadeLinear, 4, FadeStopsVoiceAtEnd)

	out := make([]float32, 4*2)
	m.Mix(out, 4)
	m.Mix(out, 4)
	require.Equal(t, 0, m.VoiceCount())
}

func TestSpatialAttenuationDecreasesWithDistance(t *testing.T) {
	_, leftNear, _ := spatialAttenuationAndPan(lin.V3{X: 1}, lin.V3{}, lin.V3{X: 1}, 1)
	attenNear, _, _ := spatialAttenuationAndPan(lin.V3{X: 1}, lin.V3{}, lin.V3{X: 1}, 1)
	attenFar, _, _ := spatialAttenuationAndPan(lin.V3{X: 100}, lin.V3{}, lin.V3{X: 1}, 1)
	require.Greater(t, attenNear, attenFar)
	_ = leftNear
}

func TestSpatialPanFavorsRightWhenSoundOnListenerRight(t *testing.T) {
	_, left, right := spatialAttenuationAndPan(lin.V3{X: 1}, lin.V3{}, lin.V3{X: 1}, 1)
	require.Greater(t, right, left)
}

func TestUnspatializedMatrixForceMonoScalesDown(t *testing.T) {
	plain := unspatializedMatrix(2, false)
	mono := unspatializedMatrix(2, true)
	require.Greater(t, plain[0][0], mono[0][0])
}

func TestMixerCommandRingDropsOldestWhenFull(t *testing.T) {
	m := New()
	for i := 0; i < ringSize+10; i++ {
		m.UpdateListener(lin.V3{X: float64(i)}, lin.V3{X: 1})
	}
	require.Equal(t, uint32(ringSize+10), m.write.v.Load())
	require.Greater(t, m.read.v.Load(), uint32(0), "producer must advance read past dropped entries when the ring is full")
}
