// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pulsar3d/engine/config"
	"github.com/pulsar3d/engine/platform"
	"github.com/pulsar3d/engine/rhi"
)

type recordingApp struct {
	created bool
	updates int
	onUpdate func(e *Engine, io *platform.IO)
}

func (a *recordingApp) Create(e *Engine) { a.created = true }

func (a *recordingApp) Update(e *Engine, io *platform.IO) {
	a.updates++
	if a.onUpdate != nil {
		a.onUpdate(e, io)
	}
}

func TestNewCallsAppCreate(t *testing.T) {
	app := &recordingApp{}
	backend := rhi.NewSoftware(640, 480, 2)
	New(config.Default(), backend, app)
	require.True(t, app.created)
}

func TestTickCallsUpdateExactlyOnce(t *testing.T) {
	app := &recordingApp{}
	backend := rhi.NewSoftware(640, 480, 2)
	e := New(config.Default(), backend, app)

	io := &platform.IO{HasFocus: true, Dt: 16 * time.Millisecond}
	e.Tick(io)
	require.Equal(t, 1, app.updates)
}

func TestTickResetsCommandBufferEachFrame(t *testing.T) {
	app := &recordingApp{}
	backend := rhi.NewSoftware(640, 480, 2)
	e := New(config.Default(), backend, app)

	io := &platform.IO{Dt: 16 * time.Millisecond}
	e.Tick(io)
	require.Empty(t, e.Buffer().Commands(), "no draw calls were submitted this frame")
}

func TestTickRoutesMouseMoveIntoUI(t *testing.T) {
	app := &recordingApp{}
	backend := rhi.NewSoftware(640, 480, 2)
	e := New(config.Default(), backend, app)

	app.onUpdate = func(e *Engine, io *platform.IO) {
		require.Equal(t, 42.0, e.UI().MousePos().X)
	}

	io := &platform.IO{Dt: 16 * time.Millisecond, MouseX: 42, MouseY: 7}
	e.Tick(io)
}

func TestTickAudioMixesIntoOutputBuffer(t *testing.T) {
	app := &recordingApp{}
	backend := rhi.NewSoftware(640, 480, 2)
	e := New(config.Default(), backend, app)

	out := make([]float32, 256*int(platform.AudioChannels))
	e.TickAudio(&platform.AudioIO{FrameCount: 256, Out: out})
}

func TestTickAudioRejectsUndersizedBuffer(t *testing.T) {
	app := &recordingApp{}
	backend := rhi.NewSoftware(640, 480, 2)
	e := New(config.Default(), backend, app)

	out := make([]float32, 10)
	e.TickAudio(&platform.AudioIO{FrameCount: 256, Out: out}) // must not panic.
}

func TestStatsReflectMostRecentFrame(t *testing.T) {
	app := &recordingApp{}
	backend := rhi.NewSoftware(640, 480, 2)
	e := New(config.Default(), backend, app)

	io := &platform.IO{Dt: 16 * time.Millisecond}
	e.Tick(io)
	require.Zero(t, e.Stats().MapTriangles, "no model commands were submitted this frame")
}
