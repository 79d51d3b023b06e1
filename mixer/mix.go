// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mixer

import (
	"github.com/pulsar3d/engine/arena"
	"github.com/pulsar3d/engine/math/lin"
)

// denormalFloor is the threshold below which an accumulated sample is
// snapped to zero. Go exposes no portable flush-to-zero FPU control
// register, so this stands in for it: subnormal float64 accumulation
// is what actually costs cycles on the audio thread, and snapping
// anything this small to zero has no audible effect.
const denormalFloor = 1e-30

func flushDenormal(v float64) float64 {
	if v > -denormalFloor && v < denormalFloor {
		return 0
	}
	return v
}

// Mix drains the command ring and sums every active voice into out, an
// interleaved stereo buffer of frameCount*2 samples. Its own scratch
// accumulation buffer is reused across calls rather than reallocated per
// frame; walking the voices locks the voice pool and allocates its
// snapshot.
func (m *Mixer) Mix(out []float32, frameCount int) {
	m.drainCommands()

	need := frameCount * 2
	if cap(m.scratch) < need {
		m.scratch = make([]float64, need)
	}
	scratch := m.scratch[:need]
	for i := range scratch {
		scratch[i] = 0
	}

	m.voices.Each(func(h arena.Handle, v *voice) {
		m.mixVoice(v, scratch, frameCount)
		if v.stopQueued || (v.waveform != nil && v.atIndex >= int64(len(v.waveform.Samples)/voiceChannels(v)) && v.flags&FlagLooping == 0) {
			m.voices.Remove(h)
		}
	})

	for i := 0; i < frameCount*2; i++ {
		s := scratch[i]
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = float32(s)
	}
}

func voiceChannels(v *voice) int {
	if v.waveform == nil || v.waveform.Channels <= 0 {
		return 1
	}
	return v.waveform.Channels
}

func (m *Mixer) mixVoice(v *voice, scratch []float64, frameCount int) {
	if v.waveform == nil || len(v.waveform.Samples) == 0 {
		return
	}
	channels := voiceChannels(v)
	frameTotal := len(v.waveform.Samples) / channels
	if frameTotal == 0 {
		return
	}

	mat, attenuation := voiceMixMatrix(v, m.listenerPos, m.listenerX)

	for f := 0; f < frameCount; f++ {
		frameIndex := v.atIndex + int64(f)
		if v.flags&FlagLooping != 0 {
			frameIndex %= int64(frameTotal)
		} else if frameIndex >= int64(frameTotal) {
			break
		}

		gain := v.volume * attenuation
		for _, fd := range v.fades {
			gain *= fd.step(1)
		}

		for c := 0; c < channels && c < 2; c++ {
			sample := float64(v.waveform.Samples[int(frameIndex)*channels+c]) * gain
			scratch[f*2+0] = flushDenormal(scratch[f*2+0] + sample*mat[c][0])
			scratch[f*2+1] = flushDenormal(scratch[f*2+1] + sample*mat[c][1])
		}
	}

	v.atIndex += int64(frameCount)
	if v.flags&FlagLooping != 0 {
		v.atIndex %= int64(frameTotal)
	}

	v.fades = retireFades(v.fades, &v.stopQueued)
}

func retireFades(fades []*fade, stopQueued *bool) []*fade {
	n := 0
	for _, fd := range fades {
		if fd.done {
			if fd.flags&FadeStopsVoiceAtEnd != 0 {
				*stopQueued = true
			}
			continue
		}
		fades[n] = fd
		n++
	}
	return fades[:n]
}

// drainCommands applies every command enqueued since the last Mix call.
func (m *Mixer) drainCommands() {
	w := m.write.v.Load() // acquire: pairs with the producer's release-store on write.
	for m.read.v.Load() != w {
		r := m.read.v.Load()
		m.applyCommand(&m.ring[r&ringMask])
		m.read.v.Store(r + 1)
	}
}

func (m *Mixer) applyCommand(cmd *command) {
	switch cmd.kind {
	case cmdPlaySound:
		if v, ok := m.voices.Get(cmd.voice.handle()); ok {
			v.waveform = cmd.waveform
			v.volume = cmd.volume
			v.flags = cmd.flags
			v.position = cmd.position
			v.minDistance = cmd.minDistance
			if v.minDistance <= 0 {
				v.minDistance = 1
			}
			v.atIndex = 0
		}
	case cmdStopSound:
		if v, ok := m.voices.Get(cmd.voice.handle()); ok {
			v.stopQueued = true
		}
	case cmdFade:
		if v, ok := m.voices.Get(cmd.voice.handle()); ok {
			v.fades = append(v.fades, &fade{
				style: cmd.fadeStyle, start: cmd.fadeStart, target: cmd.fadeTarget,
				durationSamples: cmd.fadeDuration, flags: cmd.fadeFlags,
			})
		}
	case cmdUpdateListener:
		m.listenerPos = cmd.listenerPos
		var p, q lin.V3
		dir := cmd.listenerDir
		dir.Plane(&p, &q)
		m.listenerX = p
	case cmdSoundPosition:
		if v, ok := m.voices.Get(cmd.voice.handle()); ok {
			v.position = cmd.position
		}
	case cmdSetPlayingSoundFlags:
		if v, ok := m.voices.Get(cmd.voice.handle()); ok {
			v.flags &^= cmd.unsetMask
			v.flags |= cmd.setMask
		}
	}
}
