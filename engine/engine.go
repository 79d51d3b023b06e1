// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package engine wires the per-frame pipeline together: UI input feeds
// ui.Context, ui.Context and application draw calls feed a
// render.CommandBuffer, passes.RunFrame submits the sorted buffer to an
// rhi.Backend, and a separate audio-thread entry point drains mixer.Mixer
// into the platform's audio callback. It implements platform.Host so a
// concrete platform.AudioOutput/tick-loop host can drive it directly.
package engine

import (
	"log/slog"

	"github.com/pulsar3d/engine/config"
	"github.com/pulsar3d/engine/mixer"
	"github.com/pulsar3d/engine/passes"
	"github.com/pulsar3d/engine/platform"
	"github.com/pulsar3d/engine/render"
	"github.com/pulsar3d/engine/rhi"
	"github.com/pulsar3d/engine/ui"
)

// App is the application callback registered with New. Create runs once
// after the engine's subsystems are ready; Update runs once per video
// frame, before the frame's UI is finalized and submitted.
type App interface {
	Create(e *Engine)
	Update(e *Engine, io *platform.IO)
}

// Engine owns one frame's worth of pipeline state plus the mixer feeding
// the audio thread. Tick and TickAudio are safe to call from their
// respective platform.Host threads only -- Tick from the main thread,
// TickAudio from the dedicated audio thread -- matching the thread
// inventory the command buffer, UI context, and mixer ring are each built
// around.
type Engine struct {
	cfg     config.Config
	backend rhi.Backend
	app     App

	buffer *render.CommandBuffer
	uiCtx  *ui.Context
	mix    *mixer.Mixer

	frame      passes.Frame
	frameIndex uint64
}

var _ platform.Host = (*Engine)(nil)

// New constructs an Engine over backend and immediately calls app.Create.
func New(cfg config.Config, backend rhi.Backend, app App) *Engine {
	buf := render.NewCommandBuffer()
	e := &Engine{
		cfg:     cfg,
		backend: backend,
		app:     app,
		buffer:  buf,
		uiCtx:   ui.New(buf),
		mix:     mixer.New(),
	}
	e.frame.Backend = backend
	e.frame.Buffer = buf
	app.Create(e)
	return e
}

// Backend returns the RHI backend this Engine submits to.
func (e *Engine) Backend() rhi.Backend { return e.backend }

// Buffer returns the per-frame command buffer the application draws
// into during Update.
func (e *Engine) Buffer() *render.CommandBuffer { return e.buffer }

// UI returns the immediate-mode UI context for the current frame.
func (e *Engine) UI() *ui.Context { return e.uiCtx }

// Mixer returns the audio mixer; application code calls PlaySound/
// StopSound/Fade etc. on it from the main thread, same as any other
// mixer command producer.
func (e *Engine) Mixer() *mixer.Mixer { return e.mix }

// Config returns the tuning values this Engine was constructed with.
func (e *Engine) Config() config.Config { return e.cfg }

// Stats returns the most recently completed frame's draw-call counters.
func (e *Engine) Stats() passes.DrawStats { return e.frame.Stats }

// Tick runs one full frame: resets the command buffer, feeds platform
// input into the UI context, calls the application's Update, finalizes
// the UI (ending its frame so widget GC/animation runs), sorts the
// buffer, and submits the fixed render schedule. io.Cursor is set to
// whatever the UI wants the host to show (a resize-tray hint takes
// priority over the default arrow).
func (e *Engine) Tick(io *platform.IO) {
	e.frameIndex++
	e.buffer.Reset()

	for _, ev := range io.Events {
		switch ev.Kind {
		case platform.EventMouseButton:
			e.uiCtx.SubmitMouseButton(ev.Pressed, ui.MouseButton(ev.Button))
		case platform.EventText:
			e.uiCtx.SubmitText(string(ev.Text[:ev.TextLen]))
		}
	}
	e.uiCtx.SubmitMouseMove(ui.Point{X: io.MouseX, Y: io.MouseY})
	e.uiCtx.SubmitMouseWheel(io.MouseWheel)

	e.uiCtx.Begin(io.Dt.Seconds())
	e.app.Update(e, io)
	e.uiCtx.End()

	io.Cursor = e.uiCtx.CursorHint()

	e.buffer.Sort()
	e.frame.Stats = passes.RunFrame(&e.frame)
}

// TickAudio drains the mixer's command ring and mixes io.Out in place.
// Called from the dedicated audio thread; never blocks, per the ring's
// own contract.
func (e *Engine) TickAudio(io *platform.AudioIO) {
	if len(io.Out) < io.FrameCount*platform.AudioChannels {
		slog.Error("engine: audio buffer too small", "want", io.FrameCount*platform.AudioChannels, "got", len(io.Out))
		return
	}
	e.mix.Mix(io.Out, io.FrameCount)
}
