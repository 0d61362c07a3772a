package world

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"voxview/internal/camera"
	"voxview/internal/profiling"
)

// ManagerOptions configures a ChunkManager.
type ManagerOptions struct {
	ChunkSize        int
	RenderDistance   float64 // world units
	FrustumMargin    float64 // NDC units added on every side
	AlwaysNearRadius float64 // world units, horizontal
}

// ChunkManager decides which chunks a frame needs, generates missing ones and
// evicts distant ones. It is the only writer of its store.
type ChunkManager struct {
	opts     ManagerOptions
	gen      ChunkGenerator
	store    *ChunkStore
	streamer *ChunkStreamer
}

// NewChunkManager creates a manager with an empty store. streamer may be nil,
// in which case every chunk is generated on the calling goroutine.
func NewChunkManager(gen ChunkGenerator, opts ManagerOptions, streamer *ChunkStreamer) *ChunkManager {
	return &ChunkManager{
		opts:     opts,
		gen:      gen,
		store:    NewChunkStore(),
		streamer: streamer,
	}
}

// Store exposes the resident chunks for read-only use.
func (m *ChunkManager) Store() *ChunkStore {
	return m.store
}

// SetRenderDistance changes the load radius for subsequent frames.
func (m *ChunkManager) SetRenderDistance(d float64) {
	m.opts.RenderDistance = d
}

// ChunkCoords returns the chunk the camera stands in.
func (m *ChunkManager) ChunkCoords(cam *camera.Camera) ChunkCoord {
	return ChunkCoordOf(cam.Position[0], cam.Position[1], m.opts.ChunkSize)
}

// chunkRadius is the render distance in whole chunks.
func (m *ChunkManager) chunkRadius() int {
	return int(math.Ceil(m.opts.RenderDistance / float64(m.opts.ChunkSize)))
}

// ChunksAroundCamera returns the chunks to draw this frame, farthest first.
// A chunk qualifies when any corner, taken at its surface height or at
// canopy height above it, lands inside the (enlarged) view, or when its
// center is within the always-near radius of the camera.
func (m *ChunkManager) ChunksAroundCamera(cam *camera.Camera, width, height int) []*Chunk {
	defer profiling.Track("world.ChunksAroundCamera")()

	if m.streamer != nil {
		m.streamer.Drain(func(c *Chunk) { m.store.Add(c) })
	}

	size := m.opts.ChunkSize
	center := m.ChunkCoords(cam)
	r := m.chunkRadius()
	aspect := float64(width) / float64(height)
	nearSq := m.opts.AlwaysNearRadius * m.opts.AlwaysNearRadius

	var out []*Chunk
	for cy := center.Y - r; cy <= center.Y+r; cy++ {
		for cx := center.X - r; cx <= center.X+r; cx++ {
			coord := ChunkCoord{cx, cy}
			if !m.isCandidate(coord, cam, aspect, nearSq) {
				continue
			}
			out = append(out, m.loadOrGenerate(coord))
		}
	}

	pos := cam.Position
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].Coord.Center(size).Sub(pos).LenSqr()
		dj := out[j].Coord.Center(size).Sub(pos).LenSqr()
		return di > dj
	})
	return out
}

// canopyClearance is the height above the surface that a tree can reach.
const canopyClearance = TrunkHeight + 2

func (m *ChunkManager) isCandidate(coord ChunkCoord, cam *camera.Camera, aspect, nearSq float64) bool {
	size := m.opts.ChunkSize
	for _, p := range m.cornerPoints(coord) {
		if camera.InView(p, cam, aspect, m.opts.FrustumMargin) {
			return true
		}
	}
	c := coord.Center(size)
	dx := c[0] - cam.Position[0]
	dy := c[1] - cam.Position[1]
	return dx*dx+dy*dy <= nearSq
}

// cornerPoints lifts each chunk corner to the surface height of the nearest
// column inside the chunk, plus a copy at canopy height.
func (m *ChunkManager) cornerPoints(coord ChunkCoord) [8]mgl64.Vec3 {
	size := m.opts.ChunkSize
	x0, y0 := coord.X*size, coord.Y*size
	x1, y1 := x0+size-1, y0+size-1
	columns := [4][2]int{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}

	var pts [8]mgl64.Vec3
	for i, corner := range coord.Corners(size) {
		h := float64(m.gen.HeightAt(columns[i][0], columns[i][1]))
		pts[2*i] = mgl64.Vec3{corner[0], corner[1], h}
		pts[2*i+1] = mgl64.Vec3{corner[0], corner[1], h + canopyClearance}
	}
	return pts
}

func (m *ChunkManager) loadOrGenerate(coord ChunkCoord) *Chunk {
	if c := m.store.Get(coord); c != nil {
		return c
	}
	c := m.gen.Generate(coord.X, coord.Y, m.opts.ChunkSize)
	m.store.Add(c)
	return c
}

// EvictDistant drops every chunk more than one ring beyond the render radius
// from the camera chunk. The extra ring keeps chunks at the boundary from
// being regenerated on every step back and forth.
func (m *ChunkManager) EvictDistant(cam *camera.Camera) int {
	defer profiling.Track("world.EvictDistant")()
	return m.store.EvictOutside(m.ChunkCoords(cam), m.chunkRadius()+1)
}

// Prefetch queues background generation for missing chunks inside the
// eviction ring. It is a no-op without a streamer.
func (m *ChunkManager) Prefetch(cam *camera.Camera) int {
	if m.streamer == nil {
		return 0
	}
	center := m.ChunkCoords(cam)
	r := m.chunkRadius() + 1
	queued := 0
	for cy := center.Y - r; cy <= center.Y+r; cy++ {
		for cx := center.X - r; cx <= center.X+r; cx++ {
			coord := ChunkCoord{cx, cy}
			if m.store.Has(coord) || m.streamer.IsPending(coord) {
				continue
			}
			if m.streamer.Request(coord) {
				queued++
			}
		}
	}
	return queued
}
