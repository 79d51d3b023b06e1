// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package mixer is the audio-thread sample mixer: a lock-free command
// ring accepts play/stop/fade/listener updates from the main thread, and
// Mix drains it and sums active voices into an interleaved stereo
// output buffer. The voice table is an arena.ConcurrentPool: Mix takes
// its mutex, which PlaySound also takes to add a voice, and each Mix call
// allocates the pool's snapshot of live voices.
package mixer

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/pulsar3d/engine/arena"
	"github.com/pulsar3d/engine/math/lin"
)

const (
	ringSize = 4096 // power of two
	ringMask = ringSize - 1
)

// VoiceKind tags a VoiceID's high byte, catching use of a stale or
// wrong-kind id.
type VoiceKind uint8

const (
	VoiceNone         VoiceKind = iota
	VoicePlayingSound
)

// VoiceID is {kind:8 | low 56 bits of the voice pool's arena.Handle}.
// An arena.Handle is {generation:32 | index:32}, so the kind byte takes
// the place of the generation's top 8 bits.
type VoiceID uint64

func newVoiceID(kind VoiceKind, h arena.Handle) VoiceID {
	return VoiceID(uint64(kind)<<56 | uint64(h)&0x00ffffffffffffff)
}

func (id VoiceID) kind() VoiceKind   { return VoiceKind(id >> 56) }
func (id VoiceID) handle() arena.Handle { return arena.Handle(id & 0x00ffffffffffffff) }

// Waveform is an in-memory PCM source: interleaved float32 samples at
// Channels channels.
type Waveform struct {
	Samples  []float32
	Channels int
}

// FadeStyle selects the easing curve a Fade interpolates with.
type FadeStyle int

const (
	FadeLinear FadeStyle = iota
	FadeSmoothstep
	FadeSmootherstep
)

// VoiceFlags are the per-voice playback flags set at PlaySound time and
// adjustable afterward via SetPlayingSoundFlags.
type VoiceFlags uint32

const (
	FlagLooping VoiceFlags = 1 << iota
	FlagSpatial
	FlagForceMono
)

// FadeFlags modify a Fade's behavior when it completes.
type FadeFlags uint32

const (
	FadeStopsVoiceAtEnd FadeFlags = 1 << iota
)

type fade struct {
	style           FadeStyle
	start, target   float64
	durationSamples int64
	elapsedSamples  int64
	flags           FadeFlags
	done            bool
}

// step advances the fade by n samples and returns its current scalar
// value.
func (f *fade) step(n int64) float64 {
	f.elapsedSamples += n
	t := 1.0
	if f.durationSamples > 0 {
		t = float64(f.elapsedSamples) / float64(f.durationSamples)
	}
	if t >= 1 {
		t = 1
		f.done = true
	}
	return f.start + (f.target-f.start)*ease(f.style, t)
}

func ease(style FadeStyle, t float64) float64 {
	switch style {
	case FadeSmoothstep:
		return t * t * (3 - 2*t)
	case FadeSmootherstep:
		return t * t * t * (t*(6*t-15) + 10)
	default:
		return t
	}
}

// voice is the audio-thread-owned playback state for one PlaySound
// call. Only Mix mutates it after creation; the command ring is the
// only channel through which the main thread affects it.
type voice struct {
	waveform    *Waveform
	volume      float64
	flags       VoiceFlags
	position    lin.V3
	minDistance float64

	atIndex    int64
	fades      []*fade
	stopQueued bool
}

type commandKind uint8

const (
	cmdPlaySound commandKind = iota
	cmdStopSound
	cmdFade
	cmdUpdateListener
	cmdSoundPosition
	cmdSetPlayingSoundFlags
)

// command is the POD payload copied into the ring by the producer and
// read back by Mix on the audio thread.
type command struct {
	kind commandKind

	voice VoiceID

	waveform    *Waveform
	volume      float64
	flags       VoiceFlags
	position    lin.V3
	minDistance float64

	fadeStyle    FadeStyle
	fadeStart    float64
	fadeTarget   float64
	fadeDuration int64
	fadeFlags    FadeFlags

	listenerPos lin.V3
	listenerDir lin.V3

	unsetMask VoiceFlags
	setMask   VoiceFlags
}

// paddedIndex separates the ring's read and write cursors onto their own
// cache lines so the producer and consumer never false-share, resolving
// the cache-line-padding this ring calls for.
type paddedIndex struct {
	v atomic.Uint32
	_ cpu.CacheLinePad
}

// Mixer owns the command ring, the voice table, and listener state. One
// Mixer drives one audio output stream; PlaySound et al. are safe to
// call from the main thread while Mix runs concurrently on the audio
// thread.
type Mixer struct {
	ring [ringSize]command
	read  paddedIndex
	write paddedIndex

	voices *arena.ConcurrentPool[*voice]

	listenerPos lin.V3
	listenerX   lin.V3 // listener's right-facing basis vector, from update_listener's direction.

	scratch []float64 // reused across Mix calls, grown on demand.
}

// New creates an empty Mixer.
func New() *Mixer {
	return &Mixer{voices: arena.NewConcurrentPool[*voice](256)}
}

// enqueue appends cmd to the ring. If the ring is full -- which correct
// use never triggers, since the ring is sized well above the per-frame
// event count -- the oldest unconsumed command is dropped to make room,
// rather than blocking the producer.
func (m *Mixer) enqueue(cmd command) {
	w := m.write.v.Load()
	r := m.read.v.Load()
	if w-r >= ringSize {
		m.read.v.Store(r + 1)
	}
	m.ring[w&ringMask] = cmd
	m.write.v.Store(w + 1)
}

// PlaySound reserves a voice slot immediately (so the returned id is
// usable right away for StopSound/Fade/SoundPosition calls issued later
// the same frame) and enqueues the command that populates its playback
// state on the audio thread, mirroring the RHI's reserve-then-populate
// texture pattern.
func (m *Mixer) PlaySound(waveform *Waveform, volume float64, flags VoiceFlags, position lin.V3, minDistance float64) VoiceID {
	h := m.voices.Add(&voice{})
	id := newVoiceID(VoicePlayingSound, h)
	m.enqueue(command{
		kind: cmdPlaySound, voice: id,
		waveform: waveform, volume: volume, flags: flags,
		position: position, minDistance: minDistance,
	})
	return id
}

// StopSound requests immediate stop (applied on the next Mix call, not
// synchronously).
func (m *Mixer) StopSound(id VoiceID) {
	m.enqueue(command{kind: cmdStopSound, voice: id})
}

// Fade enqueues a volume fade from start to target over durationSamples,
// using the given easing style.
func (m *Mixer) Fade(id VoiceID, start, target float64, style FadeStyle, durationSamples int64, flags FadeFlags) {
	m.enqueue(command{
		kind: cmdFade, voice: id,
		fadeStart: start, fadeTarget: target, fadeStyle: style,
		fadeDuration: durationSamples, fadeFlags: flags,
	})
}

// UpdateListener sets the listener position and facing direction used
// for spatialization.
func (m *Mixer) UpdateListener(pos, dir lin.V3) {
	m.enqueue(command{kind: cmdUpdateListener, listenerPos: pos, listenerDir: dir})
}

// SoundPosition updates a playing voice's world position.
func (m *Mixer) SoundPosition(id VoiceID, pos lin.V3) {
	m.enqueue(command{kind: cmdSoundPosition, voice: id, position: pos})
}

// SetPlayingSoundFlags clears unsetMask bits then sets setMask bits on a
// voice's flags.
func (m *Mixer) SetPlayingSoundFlags(id VoiceID, unsetMask, setMask VoiceFlags) {
	m.enqueue(command{kind: cmdSetPlayingSoundFlags, voice: id, unsetMask: unsetMask, setMask: setMask})
}

// VoiceCount returns the number of live (not yet retired) voices. Test
// and diagnostic use only.
func (m *Mixer) VoiceCount() int { return m.voices.Len() }
