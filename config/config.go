// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package config loads the engine's tuning knobs from a string-keyed
// YAML file. Nothing here is required for correctness -- every field has
// a documented default -- it exists so an application can retune MSAA,
// shadow resolution, bake quality, and mixer ring size without
// recompiling.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// MipMode resolves MipLevels=0 (full auto chain) vs MipLevels=1 (single,
// unfiltered) per texture kind, rather than deciding it per upload
// call-site.
type MipMode int

const (
	// MipSingle uploads exactly one mip level (MipLevels=1). Used for
	// render targets and other textures that are never minified.
	MipSingle MipMode = iota
	// MipAuto generates a full mip chain (MipLevels=0, driver picks the
	// count). Used for sampled asset textures (albedo, lightmaps).
	MipAuto
)

// Texture holds per-kind texture upload defaults.
type Texture struct {
	AutoMip MipMode `yaml:"auto_mip"`
}

// Config is the full set of tunables consumed by rhi, passes, bake, and
// mixer. Zero-value Config is invalid; use Default() as a starting point.
type Config struct {
	// Render.
	MSAASamples      int `yaml:"msaa_samples"`
	ShadowmapSize    int `yaml:"shadowmap_size"`
	MaxTimedRegions  int `yaml:"max_timed_regions"`
	FrameRingDepth   int `yaml:"frame_ring_depth"` // N in-flight timestamp frames.
	RenderTarget     Texture
	AssetTexture     Texture
	LightmapTexel    int `yaml:"lightmap_scale"` // LIGHTMAP_SCALE texel size.

	// Bake.
	BakeRayCount       int     `yaml:"bake_ray_count"`
	BakeRayRecursion   int     `yaml:"bake_ray_recursion"`
	BakeFogSampleCount int     `yaml:"bake_fog_sample_count"`
	BakeFogmapScale    float64 `yaml:"bake_fogmap_scale"` // fraction of shadowmap resolution.
	BakeJobWorkers     int     `yaml:"bake_job_workers"`  // 0 = processor_count-2.

	// Mixer.
	MixerSampleRate   int `yaml:"mixer_sample_rate"`
	MixerRingCapacity int `yaml:"mixer_ring_capacity"` // must be a power of two.

	// UI.
	UIAnimationRate float64 `yaml:"ui_animation_rate"`
}

// Default returns reasonable tuning values suitable for development and
// test use.
func Default() Config {
	return Config{
		MSAASamples:     4,
		ShadowmapSize:   1024,
		MaxTimedRegions: 16,
		FrameRingDepth:  3,
		RenderTarget:    Texture{AutoMip: MipSingle},
		AssetTexture:    Texture{AutoMip: MipAuto},
		LightmapTexel:   16,

		BakeRayCount:       16,
		BakeRayRecursion:   2,
		BakeFogSampleCount: 8,
		BakeFogmapScale:    1.0 / 16.0,
		BakeJobWorkers:     0,

		MixerSampleRate:   44100,
		MixerRingCapacity: 4096,

		UIAnimationRate: 1.0,
	}
}

// Load reads a YAML file and overlays it on top of Default(), so a config
// file only needs to mention the fields it wants to change.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
