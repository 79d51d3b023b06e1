// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package hull

import "github.com/pulsar3d/engine/math/lin"

// DebugEdge is one edge in a recorded step's queue snapshot.
type DebugEdge struct {
	Edge              Edge
	ProcessedThisStep bool
}

// DebugTriangle is one triangle in a recorded step's hull snapshot.
type DebugTriangle struct {
	Triangle      Triangle
	AddedThisStep bool
}

// DebugStep is one iteration of Build's gift-wrap loop: the hull as it
// stood going in (plus the triangle just added), and the edge queue as it
// stood going in (plus the edge just processed).
type DebugStep struct {
	Triangles []DebugTriangle
	Edges     []DebugEdge
}

// Debug accumulates every step of a Build call for visualization.
type Debug struct {
	InitialPoints []lin.V3
	Steps         []DebugStep
}
