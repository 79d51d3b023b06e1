// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package core holds the small set of cross-cutting failure-handling
// helpers shared by every other package: fatal process termination for
// unrecoverable conditions (OOM, shader compile failure, device removal)
// and debug-build assertions for programmer errors (invariant violations).
// Recoverable errors never go through this package -- they are returned
// as ordinary Go errors or zero values and handled by the caller.
package core

import (
	"fmt"
	"log/slog"
	"os"
)

// Debug enables assertion checking. Production builds are expected to
// set this false so Assert calls become no-ops (the condition is still
// evaluated at the call site, but the panic is skipped).
var Debug = true

// Fatal reports an unrecoverable error and terminates the process.
// Used for arena/pool OOM, shader compile failure during startup, and
// RHI device-removed.
func Fatal(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Assert panics with a formatted message if cond is false and Debug is
// enabled. Used for invariant violations -- programmer errors that should
// break into a debugger during development rather than silently corrupt
// state.
func Assert(cond bool, format string, args ...any) {
	if !cond && Debug {
		panic(fmt.Sprintf("assertion failed: %s", fmt.Sprintf(format, args...)))
	}
}
