// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package platform states the external contracts the core depends on:
// the host tick loop, the filesystem, and the audio-output thread. The
// filesystem contract has one implementation here, LocalFS, which reads
// and writes the local disk. Concrete Win32/Cocoa/X11 window plumbing
// and a driver-level audio callback are out of scope for this module; a
// real build wires a concrete implementation of those interfaces in
// behind these same small contracts.
package platform

import "time"

// MouseButton identifies a physical mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// EventKind tags which field of Event is populated.
type EventKind int

const (
	EventMouseButton EventKind = iota
	EventKey
	EventText
)

// Event is one input event delivered through IO.Events, in occurrence
// order within the frame.
type Event struct {
	Kind EventKind

	// EventMouseButton
	Pressed bool
	Button  MouseButton

	// EventKey
	KeyCode int

	// EventText: up to 4 bytes of UTF-8 (one code point), matching the
	// host's native text-input event size.
	Text [4]byte
	TextLen int
}

// Gamepad is one connected controller's digital/analog state snapshot.
type Gamepad struct {
	Connected bool
	Buttons   uint32
	LeftStick, RightStick   [2]float64
	LeftTrigger, RightTrigger float64
}

// CursorHint selects the shape the host should draw for the mouse
// cursor, including the eight window-resize-tray directions used by
// tray-based window resize: N/S/E/W and the four diagonals, each with a
// distinct host cursor shape.
type CursorHint int

const (
	CursorArrow CursorHint = iota
	CursorText
	CursorResizeN
	CursorResizeS
	CursorResizeE
	CursorResizeW
	CursorResizeNE
	CursorResizeNW
	CursorResizeSE
	CursorResizeSW
)

// IO is the per-frame input handed to Host.Tick, and the output written
// back for the host to apply (cursor shape, cursor lock, exit request).
type IO struct {
	HasFocus   bool
	Dt         time.Duration
	MouseX, MouseY float64
	MouseDX, MouseDY float64
	MouseWheel float64
	Gamepads   [4]Gamepad
	Events     []Event

	Cursor       CursorHint
	LockCursor   bool
	RequestExit  bool
}

// AudioIO is the per-callback input/output for the audio thread tick:
// Out is a caller-owned interleaved 2-channel float32 buffer of
// FrameCount*2 samples that Host.TickAudio fills in place.
type AudioIO struct {
	FrameCount int
	Out        []float32
}

// Host is the application contract the platform's tick loop drives.
// Tick is called once per video frame on the main thread; TickAudio is
// called from the dedicated audio thread started by an AudioOutput.
type Host interface {
	Tick(io *IO)
	TickAudio(io *AudioIO)
}

// DirEntry is one entry returned by FileSystem.ScanDirectory.
type DirEntry struct {
	Name    string
	IsDir   bool
	ModTime time.Time
}

// FileSystem is the filesystem plugin contract. ModTime is a proper
// 64-bit time.Time rather than an assembled high/low Win32 FILETIME
// pair, so there is no window for a truncated or misassembled value.
type FileSystem interface {
	ReadEntireFile(path string) ([]byte, error)
	WriteEntireFile(path string, data []byte) error
	Copy(src, dst string) error
	Move(src, dst string) error
	CopyDirectory(src, dst string) error

	// ScanDirectory lists path's entries, descending into subdirectories
	// when recursive is true. Entries whose name starts with "." are
	// omitted unless includeDotfiles is true.
	ScanDirectory(path string, recursive, includeDotfiles bool) ([]DirEntry, error)

	// CreateDirectory creates a fixed subdirectory named "generated"
	// under path. The source this contract is ported from formats a
	// directory name with a missing format argument
	// (string_format(temp, "%.*s/generated")); the only call site always
	// passes the same static suffix, so that is pinned here as the
	// literal behavior rather than exposed as a parameter.
	CreateDirectory(path string) error

	FullPath(path string) (string, error)
}

// AudioOutput starts the dedicated audio thread that repeatedly invokes
// callback with a buffer to fill. Audio format is fixed: 2-channel IEEE
// float at 44.1 kHz, matching the mixer's output contract.
type AudioOutput interface {
	StartAudioThread(callback func(io *AudioIO)) error
	StopAudioThread()
}

const AudioSampleRate = 44100
const AudioChannels = 2
