// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"github.com/pulsar3d/engine/bake"
	"github.com/pulsar3d/engine/mapmodel"
)

// BakeLighting starts an offline bake.State over m using this Engine's
// tuned Config values as bake.Options defaults, sampling albedo through
// albedo. The caller polls State.Progress and calls State.Finalize once
// satisfied (or after cancelling).
func (e *Engine) BakeLighting(m *mapmodel.Map, albedo bake.AlbedoSource, opts bake.Options) *bake.State {
	if opts.RayCount <= 0 {
		opts.RayCount = e.cfg.BakeRayCount
	}
	if opts.RayRecursion <= 0 {
		opts.RayRecursion = e.cfg.BakeRayRecursion
	}
	if opts.FogSampleCount <= 0 {
		opts.FogSampleCount = e.cfg.BakeFogSampleCount
	}
	if opts.FogmapScale <= 0 {
		opts.FogmapScale = e.cfg.BakeFogmapScale
	}
	if opts.ShadowmapSize <= 0 {
		opts.ShadowmapSize = e.cfg.ShadowmapSize
	}
	if opts.Workers <= 0 {
		opts.Workers = e.cfg.BakeJobWorkers
	}

	s := bake.New(e.backend, albedo, m, opts)
	s.Start()
	return s
}
