// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bake offline-computes static lighting for a built map: one
// path-traced lightmap per poly and a single volumetric fogmap, run
// across a job.Queue worker pool and uploaded to a texture backend once
// every job has finished.
package bake

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pulsar3d/engine/core"
	"github.com/pulsar3d/engine/job"
	"github.com/pulsar3d/engine/math/lin"
	"github.com/pulsar3d/engine/mapmodel"
	"github.com/pulsar3d/engine/rhi"
)

// Options configures one bake run.
type Options struct {
	SunDirection lin.V3 // normalized, pointing from the sun toward the scene.
	SunColor     lin3
	AmbientColor lin3 // sky/ambient contribution on ray miss.

	// DynamicSunShadows, when true, skips baking a hard sun shadow term
	// into the lightmap -- the runtime shadow pass supplies it instead.
	DynamicSunShadows bool

	RayCount       int // diffuse hemisphere samples per texel.
	RayRecursion   int // max bounce depth per diffuse sample.
	FogSampleCount int // single-scattering samples per fogmap cell.

	// FogmapScale is the fogmap grid's resolution as a fraction of
	// ShadowmapSize (1/16 is typical): the grid's longest axis gets
	// round(ShadowmapSize*FogmapScale) cells, the other two are sized to
	// match that cell's world-space footprint.
	FogmapScale   float64
	ShadowmapSize int

	Workers int

	// AlbedoTextures maps a Poly's Texture field to the handle bake
	// should sample for that poly's surface color. A poly whose texture
	// isn't present samples as white.
	AlbedoTextures map[string]rhi.TextureHandle

	// DebugPaths records a full per-sample vertex chain for later
	// visualization. Expensive; off by default.
	DebugPaths bool
}

// PathVertex is one bounce of a recorded debug path.
type PathVertex struct {
	Position     lin.V3
	Contribution lin3
	SunShadowed  bool
}

// PathTrace is one fully recorded diffuse sample, kept only when
// Options.DebugPaths is set.
type PathTrace struct {
	TexelX, TexelY int
	PolyIndex      int
	Vertices       []PathVertex
}

// State owns one bake run's progress tracking, job queue, and results.
// Construct with New; drive with Start, poll with Progress, and collect
// results with Finalize.
type State struct {
	opts    Options
	backend rhi.Backend
	albedo  AlbedoSource
	m       *mapmodel.Map
	geo     *staticGeometry

	queue *job.Queue

	jobsCompleted atomic.Int64
	jobCount      int64
	cancelFlag    atomic.Bool
	startedAt     time.Time
	finishedAt    time.Time

	mu         sync.Mutex
	finalized  bool
	lightmaps  [][]byte // one RGBA8 buffer per poly, indexed by poly index.
	lightmapWH [][2]int // (w, h) per poly.
	fogmap     []byte
	fogmapDims [3]int
	paths      []PathTrace
}

// New prepares (but does not start) a bake run over m, sampling albedo
// and uploading results through backend/albedo.
func New(backend rhi.Backend, albedo AlbedoSource, m *mapmodel.Map, opts Options) *State {
	core.Assert(m != nil, "bake.New: m must not be nil")
	if opts.RayCount <= 0 {
		opts.RayCount = 16
	}
	if opts.RayRecursion <= 0 {
		opts.RayRecursion = 2
	}
	if opts.FogSampleCount <= 0 {
		opts.FogSampleCount = 8
	}
	if opts.FogmapScale <= 0 {
		opts.FogmapScale = 1.0 / 16.0
	}
	if opts.ShadowmapSize <= 0 {
		opts.ShadowmapSize = 1024
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtimeWorkerCount()
	}

	s := &State{
		opts:       opts,
		backend:    backend,
		albedo:     albedo,
		m:          m,
		geo:        newStaticGeometry(m),
		lightmaps:  make([][]byte, len(m.Polys)),
		lightmapWH: make([][2]int, len(m.Polys)),
	}
	s.queue = job.NewQueue(workers, len(m.Polys)+fogmapJobCount+1)
	return s
}

func runtimeWorkerCount() int {
	n := runtime.NumCPU() - 2
	if n < 1 {
		n = 1
	}
	return n
}

const fogmapSlices = 8 // parallelize the fogmap grid by Z slice.
const fogmapJobCount = fogmapSlices

// Start enqueues every per-plane lightmap job plus the fogmap slice jobs.
// It returns immediately; poll Progress or block on Finalize.
func (s *State) Start() {
	s.startedAt = time.Now()
	s.jobCount = int64(len(s.m.Polys)) + fogmapJobCount

	for i := range s.m.Polys {
		basis := s.m.Planes[s.m.Polys[i].PlaneIndex].Basis
		s.queue.Add(func(ctx job.Context) {
			polyIndex, _, _ := decodePlaneJob(ctx.Payload)
			s.runPlaneJob(ctx, polyIndex)
			s.jobsCompleted.Add(1)
		}, encodePlaneJob(i, basis.TexW, basis.TexH))
	}

	dims := fogmapGridDims(s.m, s.opts.ShadowmapSize, s.opts.FogmapScale)
	s.fogmapDims = dims
	s.fogmap = make([]byte, dims[0]*dims[1]*dims[2]*4)
	for slice := 0; slice < fogmapSlices; slice++ {
		z0, z1 := fogmapSliceRange(dims[2], slice, fogmapSlices)
		s.queue.Add(func(ctx job.Context) {
			s.runFogmapSlice(ctx, dims, z0, z1)
			s.jobsCompleted.Add(1)
		}, job.Payload{})
	}
}

// Progress returns the fraction of jobs completed so far, in [0,1].
func (s *State) Progress() float64 {
	if s.jobCount == 0 {
		return 1
	}
	return float64(s.jobsCompleted.Load()) / float64(s.jobCount)
}

// Cancel requests that running and not-yet-started jobs stop producing
// output. Once cancelled, Finalize uploads no lightmap or fogmap
// textures, including those of jobs that had already finished.
func (s *State) Cancel() { s.cancelFlag.Store(true) }

func (s *State) cancelled() bool { return s.cancelFlag.Load() }

// Finalize is idempotent: it blocks until every job has finished (or been
// cancelled out), then uploads lightmap/fogmap textures and assigns them
// to the map. Calling it again after a successful finalize is a no-op
// that returns true immediately.
func (s *State) Finalize() bool {
	s.mu.Lock()
	if s.finalized {
		s.mu.Unlock()
		return true
	}
	s.mu.Unlock()

	s.queue.Wait()
	s.queue.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return true
	}

	if !s.cancelled() {
		for i := range s.m.Polys {
			wh := s.lightmapWH[i]
			if wh[0] == 0 || wh[1] == 0 {
				continue
			}
			handle := s.backend.UploadTexture(rhi.TextureUpload{
				Desc: rhi.TextureDesc{Format: rhi.RGBA8, Type: rhi.Texture2D, Width: wh[0], Height: wh[1]},
				Pixels: s.lightmaps[i],
			})
			s.m.Polys[i].Lightmap = handle
		}

		fogHandle := s.backend.UploadTexture(rhi.TextureUpload{
			Desc: rhi.TextureDesc{
				Format: rhi.RGBA8, Type: rhi.Texture3D,
				Width: s.fogmapDims[0], Height: s.fogmapDims[1], Depth: s.fogmapDims[2],
			},
			Pixels: s.fogmap,
		})
		s.m.Fogmap = fogHandle
	}

	s.finalized = true
	s.finishedAt = time.Now()
	return true
}

// Paths returns the recorded debug path traces, if Options.DebugPaths was
// set. Results are only meaningful after Finalize.
func (s *State) Paths() []PathTrace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paths
}

// Duration reports how long the run took, valid once Finalize has
// returned true.
func (s *State) Duration() time.Duration { return s.finishedAt.Sub(s.startedAt) }

func (s *State) recordPath(p PathTrace) {
	if !s.opts.DebugPaths {
		return
	}
	s.mu.Lock()
	s.paths = append(s.paths, p)
	s.mu.Unlock()
}

func (s *State) runPlaneJob(ctx job.Context, polyIndex int) {
	poly := &s.m.Polys[polyIndex]
	plane := &s.m.Planes[poly.PlaneIndex]
	basis := plane.Basis
	w, h := basis.TexW, basis.TexH
	if w <= 0 || h <= 0 {
		return
	}

	rng := rand.New(rand.NewSource(int64(polyIndex)*2654435761 + 1))
	buf := make([]byte, w*h*4)

	for ty := 0; ty < h; ty++ {
		if s.cancelled() {
			return
		}
		for tx := 0; tx < w; tx++ {
			var origin lin.V3
			u, v := (float64(tx)+0.5), (float64(ty)+0.5)
			origin.X = basis.Origin.X + u*basis.ScaleX*basis.S.X + v*basis.ScaleY*basis.T.X
			origin.Y = basis.Origin.Y + u*basis.ScaleX*basis.S.Y + v*basis.ScaleY*basis.T.Y
			origin.Z = basis.Origin.Z + u*basis.ScaleX*basis.S.Z + v*basis.ScaleY*basis.T.Z

			accum := s.texelLighting(rng, origin, plane.Normal, polyIndex, tx, ty)
			off := (ty*w + tx) * 4
			packed := packRGBA8(accum, rng)
			copy(buf[off:off+4], packed[:])
		}
	}

	s.mu.Lock()
	s.lightmaps[polyIndex] = buf
	s.lightmapWH[polyIndex] = [2]int{w, h}
	s.mu.Unlock()
}

// texelLighting evaluates direct sun lighting plus RayCount cosine-
// weighted diffuse samples for one lightmap texel.
func (s *State) texelLighting(rng *rand.Rand, origin, normal lin.V3, polyIndex, tx, ty int) lin3 {
	var total lin3
	var direct lin3
	var shadowed bool
	if !s.opts.DynamicSunShadows {
		direct, shadowed = s.directSun(origin, normal)
		total = total.add(direct)
	}

	n := s.opts.RayCount
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		var trace PathTrace
		if s.opts.DebugPaths {
			trace = PathTrace{TexelX: tx, TexelY: ty, PolyIndex: polyIndex}
			trace.Vertices = append(trace.Vertices, PathVertex{
				Position: origin, Contribution: direct, SunShadowed: shadowed,
			})
		}

		dir := cosineWeightedHemisphere(rng, normal)
		c := s.pathTrace(rng, origin, dir, 0, &trace)
		total = total.add(c.scale(1.0 / float64(n)))
		if s.opts.DebugPaths {
			s.recordPath(trace)
		}
	}

	return total
}

// directSun returns the sun's direct-lighting contribution at origin with
// surface normal n, and whether it was occluded.
func (s *State) directSun(origin, n lin.V3) (lin3, bool) {
	var toSun lin.V3
	toSun.Neg(&s.opts.SunDirection)
	ndotl := n.Dot(&toSun)
	if ndotl <= 0 {
		return lin3{}, true
	}

	var shadowOrigin lin.V3
	var bias lin.V3
	bias.Scale(&n, 0.01)
	shadowOrigin.Add(&origin, &bias)

	if _, hit := s.geo.Raycast(shadowOrigin, toSun, 1e30); hit {
		return lin3{}, true
	}
	return s.opts.SunColor.scale(ndotl), false
}

// pathTrace recursively traces one diffuse sample: on miss, contributes
// ambient; on hit, samples albedo and recurses for indirect light.
func (s *State) pathTrace(rng *rand.Rand, origin, dir lin.V3, depth int, trace *PathTrace) lin3 {
	if s.cancelled() {
		return lin3{}
	}

	hit, ok := s.geo.Raycast(origin, dir, 1e30)
	if !ok {
		if s.opts.DebugPaths {
			trace.Vertices = append(trace.Vertices, PathVertex{Position: origin, Contribution: s.opts.AmbientColor})
		}
		return s.opts.AmbientColor
	}

	direct, shadowed := s.directSun(hit.Position, hit.Normal)

	var indirect lin3
	if depth < s.opts.RayRecursion {
		bounceDir := cosineWeightedHemisphere(rng, hit.Normal)
		var biased lin.V3
		var bias lin.V3
		bias.Scale(&hit.Normal, 0.01)
		biased.Add(&hit.Position, &bias)
		indirect = s.pathTrace(rng, biased, bounceDir, depth+1, trace)
	}

	albedo := lin3{1, 1, 1}
	if hit.Poly != nil {
		if handle, ok := s.opts.AlbedoTextures[hit.Poly.Texture]; ok {
			uv := interpolateUV(s.m, hit)
			albedo = sampleAlbedo(s.albedo, handle, uv[0], uv[1])
		}
	}

	contribution := albedo.mul(direct.add(indirect))
	if s.opts.DebugPaths {
		trace.Vertices = append(trace.Vertices, PathVertex{
			Position: hit.Position, Contribution: contribution, SunShadowed: shadowed,
		})
	}
	return contribution
}

func interpolateUV(m *mapmodel.Map, hit Hit) [2]float64 {
	a := m.Vertices[hit.TriVerts[0]].UV
	b := m.Vertices[hit.TriVerts[1]].UV
	c := m.Vertices[hit.TriVerts[2]].UV
	w := 1 - hit.U - hit.V
	return [2]float64{
		w*a[0] + hit.U*b[0] + hit.V*c[0],
		w*a[1] + hit.U*b[1] + hit.V*c[1],
	}
}

// cosineWeightedHemisphere samples a direction in the hemisphere above n,
// weighted toward the normal (Malley's method: uniform disk sample
// projected up onto the hemisphere).
func cosineWeightedHemisphere(rng *rand.Rand, n lin.V3) lin.V3 {
	var tangent, bitangent lin.V3
	n.Plane(&tangent, &bitangent)

	r := math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	x := r * math.Cos(theta)
	y := r * math.Sin(theta)
	z := math.Sqrt(math.Max(0, 1-x*x-y*y))

	var dir lin.V3
	dir.X = tangent.X*x + bitangent.X*y + n.X*z
	dir.Y = tangent.Y*x + bitangent.Y*y + n.Y*z
	dir.Z = tangent.Z*x + bitangent.Z*y + n.Z*z
	dir.Unit()
	return dir
}
