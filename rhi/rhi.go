// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rhi defines the capability-oriented rendering backend interface
// the core depends on, plus a software reference implementation good
// enough to drive the render front-end and passes in tests without a real
// GPU. Concrete GPU backends (OpenGL/Vulkan/D3D11) are external
// collaborators out of scope for this module, so only the interface and
// the software backend live here; a GPU backend implements the same
// Backend interface outside this module.
package rhi

import (
	"sync"
	"sync/atomic"

	"github.com/pulsar3d/engine/arena"
)

// PixelFormat enumerates the supported texture pixel formats.
type PixelFormat int

const (
	R8 PixelFormat = iota
	RG8
	RGBA8
	SRGB8A8
	R11G11B10F
	R32G32B32F
	R32G32B32A32F
)

// TextureType distinguishes 2D (optionally cubemap) from 3D textures.
type TextureType int

const (
	Texture2D TextureType = iota
	Texture3D
)

// VertexFormat enumerates the supported vertex layouts.
type VertexFormat int

const (
	VertexPos       VertexFormat = iota // v3 pos
	VertexImmediate                     // v3 pos, v2 tex, u32 rgba, v3 normal
	VertexBrush                         // pos, uv, lightmap-uv, normal
)

// Topology enumerates the supported primitive topologies.
type Topology int

const (
	TriangleList Topology = iota
	TriangleStrip
	LineList
	LineStrip
	PointList
)

// TextureHandle identifies a texture resource. The zero value is never a
// valid handle (see arena.NullHandle).
type TextureHandle arena.Handle

// MeshHandle identifies a mesh resource.
type MeshHandle arena.Handle

// TextureState is the texture lifecycle state machine:
// None -> Reserved -> Loading -> Loaded -> (DestroyPending) -> None.
type TextureState int32

const (
	TextureNone TextureState = iota
	TextureReserved
	TextureLoading
	TextureLoaded
	TextureDestroyPending
)

// TextureDesc describes a texture's shape.
type TextureDesc struct {
	Format      PixelFormat
	Type        TextureType
	Width       int
	Height      int
	Depth       int // 3D textures only.
	Cubemap     bool
	AutoMip     bool
}

// TextureUpload is the payload passed to PopulateTexture/UploadTexture.
type TextureUpload struct {
	Desc TextureDesc
	// Pixels holds Desc's data; for cubemaps, 6 consecutive faces. Layout
	// is tightly packed rows, no mip chain (mip generation is a backend
	// detail pinned by Desc.AutoMip).
	Pixels []byte
}

// VertexLayout names the vertex format and topology of an uploaded mesh.
type VertexLayout struct {
	Format   VertexFormat
	Topology Topology
}

// MeshUpload is the payload passed to UploadMesh. Immutable once uploaded.
type MeshUpload struct {
	Layout   VertexLayout
	Vertices []byte // tightly packed per VertexFormat's stride.
	Indices  []uint32
}

// RegionTiming is one named GPU timed region from the frame GetTimings
// reports (the oldest completed ring slot).
type RegionTiming struct {
	Name     string
	BeginNS  uint64
	EndNS    uint64
}

// FrameTimings is the result of GetTimings: every named region recorded
// during the oldest completed ring slot.
type FrameTimings struct {
	FrameIndex uint64
	Regions    []RegionTiming
}

// Backend is the capability-oriented interface the core depends on. All
// methods are safe to call from any goroutine unless documented otherwise.
type Backend interface {
	// GetResolution returns the current backbuffer size.
	GetResolution() (w, h int)

	// DescribeTexture returns a texture's shape. ok is false for a
	// missing/unknown handle.
	DescribeTexture(h TextureHandle) (desc TextureDesc, ok bool)

	// ReserveTexture allocates a handle immediately usable as a
	// missing-texture fallback until Populate completes. Thread-safe.
	ReserveTexture() TextureHandle

	// PopulateTexture uploads pixel data for a previously reserved
	// handle, transitioning Reserved -> Loading -> Loaded. May be called
	// from any thread. Sampling while Loading returns the missing
	// texture.
	PopulateTexture(h TextureHandle, upload TextureUpload)

	// UploadTexture is ReserveTexture+PopulateTexture.
	UploadTexture(upload TextureUpload) TextureHandle

	// DestroyTexture blocks while the texture is Loading, then releases
	// it at once (Loaded -> None); the release is not deferred to a frame
	// boundary. Safe to call from any thread.
	DestroyTexture(h TextureHandle)

	// UploadMesh creates immutable vertex/index buffers tagged with a
	// topology.
	UploadMesh(upload MeshUpload) MeshHandle

	// DestroyMesh releases a mesh's buffers.
	DestroyMesh(h MeshHandle)

	// GetTimings returns the per-region timings of the oldest completed
	// slot of the timestamp ring.
	GetTimings() FrameTimings

	// MissingTexture2D / MissingCubemap return the built-in fallback
	// texture handles sampled when a requested texture is unavailable.
	MissingTexture2D() TextureHandle
	MissingCubemap() TextureHandle

	// BeginFrame/EndFrame bracket timestamp-ring bookkeeping for one
	// frame.
	BeginFrame()
	EndFrame()

	// BeginRegion/EndRegion bracket a named GPU-timed region within the
	// current frame.
	BeginRegion(name string)
	EndRegion(name string)
}

var _ Backend = (*Software)(nil)

// textureEntry is the pool value backing a Software texture handle.
type textureEntry struct {
	state atomic.Int32 // TextureState
	desc  TextureDesc
	data  []byte
}

type meshEntry struct {
	upload MeshUpload
}

// Software is a CPU-side reference Backend: it tracks resource state
// machines and timing correctly but never touches a real GPU. It exists
// so render-front-end and passes logic can be exercised and tested
// without a graphics driver, and so a real GPU backend has a
// known-correct contract to implement against.
type Software struct {
	mu sync.Mutex // guards resolution + frame ring bookkeeping.

	width, height int

	textures *arena.ConcurrentPool[*textureEntry]
	meshes   *arena.ConcurrentPool[*meshEntry]

	missing2D    TextureHandle
	missingCube  TextureHandle

	ringDepth int
	ring      []frameRegions
	ringHead  int
	frameIdx  uint64

	currentRegions map[string]*RegionTiming
	regionOrder    []string
}

type frameRegions struct {
	frameIndex uint64
	complete   bool
	regions    []RegionTiming
}

// NewSoftware creates a Software backend with the given backbuffer size
// and timestamp ring depth.
func NewSoftware(width, height, ringDepth int) *Software {
	if ringDepth <= 0 {
		ringDepth = 3
	}
	s := &Software{
		width:    width,
		height:   height,
		textures: arena.NewConcurrentPool[*textureEntry](16),
		meshes:   arena.NewConcurrentPool[*meshEntry](16),
		ringDepth: ringDepth,
		ring:      make([]frameRegions, ringDepth),
	}
	s.missing2D = s.UploadTexture(TextureUpload{Desc: TextureDesc{Format: RGBA8, Type: Texture2D, Width: 4, Height: 4}, Pixels: checkerboard(4, 4)})
	s.missingCube = s.UploadTexture(TextureUpload{Desc: TextureDesc{Format: RGBA8, Type: Texture2D, Width: 4, Height: 4, Cubemap: true}, Pixels: checkerboard(4, 4*6)})
	return s
}

func (s *Software) GetResolution() (w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Resize updates the tracked backbuffer size.
func (s *Software) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = w, h
}

func (s *Software) DescribeTexture(h TextureHandle) (TextureDesc, bool) {
	e, ok := s.textures.Get(arena.Handle(h))
	if !ok {
		return TextureDesc{}, false
	}
	return e.desc, true
}

func (s *Software) ReserveTexture() TextureHandle {
	e := &textureEntry{}
	e.state.Store(int32(TextureReserved))
	return TextureHandle(s.textures.Add(e))
}

func (s *Software) PopulateTexture(h TextureHandle, upload TextureUpload) {
	e, ok := s.textures.Get(arena.Handle(h))
	if !ok {
		return
	}
	if TextureState(e.state.Load()) == TextureDestroyPending {
		return // destroy was requested before populate landed; don't publish.
	}
	e.state.Store(int32(TextureLoading))
	e.desc = upload.Desc
	e.data = upload.Pixels
	e.state.Store(int32(TextureLoaded)) // release-store: desc/data writes happen-before this.
}

func (s *Software) UploadTexture(upload TextureUpload) TextureHandle {
	h := s.ReserveTexture()
	s.PopulateTexture(h, upload)
	return h
}

func (s *Software) DestroyTexture(h TextureHandle) {
	e, ok := s.textures.Get(arena.Handle(h))
	if !ok {
		return
	}
	for TextureState(e.state.Load()) == TextureLoading {
		// block until Loading completes.
	}
	e.state.CompareAndSwap(int32(TextureLoaded), int32(TextureDestroyPending))
	s.textures.Remove(arena.Handle(h))
}

// TextureStateOf returns the current state of h, or TextureNone if h is
// unknown (already destroyed or never reserved).
func (s *Software) TextureStateOf(h TextureHandle) TextureState {
	e, ok := s.textures.Get(arena.Handle(h))
	if !ok {
		return TextureNone
	}
	return TextureState(e.state.Load())
}

// Sample returns the backing pixel bytes for h if Loaded, otherwise the
// appropriate missing-texture fallback.
func (s *Software) Sample(h TextureHandle, cubemap bool) []byte {
	e, ok := s.textures.Get(arena.Handle(h))
	if ok && TextureState(e.state.Load()) == TextureLoaded {
		return e.data
	}
	fallback := s.missing2D
	if cubemap {
		fallback = s.missingCube
	}
	fe, _ := s.textures.Get(arena.Handle(fallback))
	return fe.data
}

func (s *Software) MissingTexture2D() TextureHandle { return s.missing2D }
func (s *Software) MissingCubemap() TextureHandle   { return s.missingCube }

func (s *Software) UploadMesh(upload MeshUpload) MeshHandle {
	h := s.meshes.Add(&meshEntry{upload: upload})
	return MeshHandle(h)
}

func (s *Software) DestroyMesh(h MeshHandle) {
	s.meshes.Remove(arena.Handle(h))
}

func (s *Software) BeginFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentRegions = map[string]*RegionTiming{}
	s.regionOrder = nil
}

func (s *Software) EndFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	regions := make([]RegionTiming, 0, len(s.regionOrder))
	for _, name := range s.regionOrder {
		regions = append(regions, *s.currentRegions[name])
	}
	s.ring[s.ringHead] = frameRegions{frameIndex: s.frameIdx, complete: true, regions: regions}
	s.ringHead = (s.ringHead + 1) % s.ringDepth
	s.frameIdx++
}

func (s *Software) BeginRegion(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.currentRegions[name]; !ok {
		s.regionOrder = append(s.regionOrder, name)
	}
	s.currentRegions[name] = &RegionTiming{Name: name, BeginNS: s.frameIdx * 1_000_000}
}

func (s *Software) EndRegion(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.currentRegions[name]; ok {
		r.EndNS = r.BeginNS + 1000
	}
}

// GetTimings returns the oldest completed ring slot.
func (s *Software) GetTimings() FrameTimings {
	s.mu.Lock()
	defer s.mu.Unlock()
	oldest := s.ring[s.ringHead]
	if !oldest.complete {
		return FrameTimings{}
	}
	return FrameTimings{FrameIndex: oldest.frameIndex, Regions: oldest.regions}
}

func checkerboard(w, h int) []byte {
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			if (x+y)%2 == 0 {
				out[i], out[i+1], out[i+2], out[i+3] = 0xff, 0x00, 0xff, 0xff // magenta
			} else {
				out[i], out[i+1], out[i+2], out[i+3] = 0x00, 0x00, 0x00, 0xff // black
			}
		}
	}
	return out
}
