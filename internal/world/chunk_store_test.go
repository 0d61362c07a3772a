package world

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"voxview/internal/camera"
)

func TestChunkStoreAddKeepsFirst(t *testing.T) {
	s := NewChunkStore()
	first := NewChunk(1, 1, 8)
	if !s.Add(first) {
		t.Fatal("first Add rejected")
	}
	if s.Add(NewChunk(1, 1, 8)) {
		t.Error("second Add for the same coordinate accepted")
	}
	if s.Get(ChunkCoord{1, 1}) != first {
		t.Error("resident chunk was replaced")
	}
	if s.ModCount() != 1 {
		t.Errorf("ModCount = %d, want 1", s.ModCount())
	}
}

func TestChunkStoreCoordsOrdered(t *testing.T) {
	s := NewChunkStore()
	for _, c := range []ChunkCoord{{2, 1}, {-1, 1}, {5, -3}, {0, 0}} {
		s.Add(NewChunk(c.X, c.Y, 8))
	}
	want := []ChunkCoord{{5, -3}, {0, 0}, {-1, 1}, {2, 1}}
	got := s.Coords()
	if len(got) != len(want) {
		t.Fatalf("Coords = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Coords = %v, want %v", got, want)
		}
	}
}

func TestChunkStoreEvictOutside(t *testing.T) {
	s := NewChunkStore()
	for cy := -3; cy <= 3; cy++ {
		for cx := -3; cx <= 3; cx++ {
			s.Add(NewChunk(cx, cy, 8))
		}
	}

	if n := s.EvictOutside(ChunkCoord{0, 0}, 3); n != 0 {
		t.Errorf("evicted %d chunks inside radius", n)
	}
	if n := s.EvictOutside(ChunkCoord{1, 0}, 3); n != 7 {
		t.Errorf("evicted %d chunks, want the 7 in column -3", n)
	}
	if s.Has(ChunkCoord{-3, 0}) {
		t.Error("chunk (-3,0) still resident")
	}
	if !s.Has(ChunkCoord{-2, 3}) {
		t.Error("chunk (-2,3) evicted")
	}
	if s.Len() != 42 {
		t.Errorf("Len = %d, want 42", s.Len())
	}
}

func TestChunkStreamerRequestAndDrain(t *testing.T) {
	cs := NewChunkStreamer(NewFlatGenerator(0), 4, 2, 2)
	defer cs.Close()

	if !cs.Request(ChunkCoord{1, 2}) {
		t.Fatal("Request rejected")
	}
	if cs.Request(ChunkCoord{1, 2}) {
		t.Error("duplicate Request accepted")
	}
	if !cs.Request(ChunkCoord{0, 0}) {
		t.Fatal("second coordinate rejected")
	}
	if cs.Request(ChunkCoord{9, 9}) {
		t.Error("Request accepted beyond the pending limit")
	}

	got := map[ChunkCoord]*Chunk{}
	deadline := time.Now().Add(5 * time.Second)
	for len(got) < 2 && time.Now().Before(deadline) {
		cs.Drain(func(c *Chunk) { got[c.Coord] = c })
		time.Sleep(time.Millisecond)
	}
	if len(got) != 2 {
		t.Fatalf("drained %d chunks, want 2", len(got))
	}
	if c := got[ChunkCoord{1, 2}]; len(c.Cubes) != 16 {
		t.Errorf("streamed chunk has %d cubes, want 16", len(c.Cubes))
	}
	if cs.IsPending(ChunkCoord{1, 2}) {
		t.Error("drained chunk still pending")
	}
}

func TestChunkStreamerClosed(t *testing.T) {
	cs := NewChunkStreamer(NewFlatGenerator(0), 4, 1, 4)
	cs.Close()
	if cs.Request(ChunkCoord{0, 0}) {
		t.Error("Request accepted after Close")
	}
}

func testManager(streamer *ChunkStreamer) *ChunkManager {
	return NewChunkManager(NewFlatGenerator(-1), ManagerOptions{
		ChunkSize:        8,
		RenderDistance:   16,
		FrustumMargin:    0.5,
		AlwaysNearRadius: 12,
	}, streamer)
}

func testCamera() *camera.Camera {
	cam := camera.New()
	cam.Position = mgl64.Vec3{4, 4, 2}
	return cam
}

func TestChunksAroundCameraFarthestFirst(t *testing.T) {
	m := testManager(nil)
	cam := testCamera()
	chunks := m.ChunksAroundCamera(cam, 800, 600)
	if len(chunks) == 0 {
		t.Fatal("no chunks selected")
	}

	prev := -1.0
	for i, c := range chunks {
		d := c.Coord.Center(8).Sub(cam.Position).LenSqr()
		if i > 0 && d > prev {
			t.Fatalf("chunk %v at index %d is farther than its predecessor", c.Coord, i)
		}
		prev = d
		if abs(c.Coord.X) > 2 || abs(c.Coord.Y) > 2 {
			t.Errorf("chunk %v outside render radius", c.Coord)
		}
	}
	if m.Store().Len() != len(chunks) {
		t.Errorf("store holds %d chunks, returned %d", m.Store().Len(), len(chunks))
	}
}

func TestChunksAroundCameraCandidates(t *testing.T) {
	m := testManager(nil)
	chunks := m.ChunksAroundCamera(testCamera(), 800, 600)

	selected := map[ChunkCoord]bool{}
	for _, c := range chunks {
		selected[c.Coord] = true
	}
	// Own chunk and the one directly behind are within the near radius;
	// two chunks behind is neither near nor in view.
	if !selected[ChunkCoord{0, 0}] {
		t.Error("camera chunk not selected")
	}
	if !selected[ChunkCoord{0, -1}] {
		t.Error("near chunk behind the camera not selected")
	}
	if selected[ChunkCoord{0, -2}] {
		t.Error("far chunk behind the camera selected")
	}
	if !selected[ChunkCoord{0, 2}] {
		t.Error("chunk straight ahead not selected")
	}
}

func TestChunksAroundCameraRaisedTerrain(t *testing.T) {
	opts := ManagerOptions{
		ChunkSize:        8,
		RenderDistance:   16,
		FrustumMargin:    0.5,
		AlwaysNearRadius: 12,
	}
	// Looking up steeply: the ground-plane corners of (0,2) fall below the
	// view but terrain standing on it is on screen.
	cam := testCamera()
	cam.Pitch = 0.9
	ahead := ChunkCoord{0, 2}

	tests := []struct {
		name  string
		level int
		want  bool
	}{
		{"raised", 5, true},
		{"sunken", -20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewChunkManager(NewFlatGenerator(tt.level), opts, nil)
			var got bool
			for _, c := range m.ChunksAroundCamera(cam, 800, 600) {
				if c.Coord == ahead {
					got = true
				}
			}
			if got != tt.want {
				t.Errorf("chunk %v selected = %v, want %v", ahead, got, tt.want)
			}
		})
	}
}

func TestCornerPointsFollowSurface(t *testing.T) {
	m := NewChunkManager(NewFlatGenerator(3), ManagerOptions{ChunkSize: 8}, nil)
	pts := m.cornerPoints(ChunkCoord{1, -1})
	for i, p := range pts {
		want := 3.0
		if i%2 == 1 {
			want += canopyClearance
		}
		if p[2] != want {
			t.Errorf("point %d height = %v, want %v", i, p[2], want)
		}
	}
	if pts[0][0] != 8 || pts[0][1] != -8 || pts[4][0] != 16 || pts[4][1] != 0 {
		t.Errorf("corners = %v", pts)
	}
}

func TestChunksAroundCameraReusesResident(t *testing.T) {
	m := testManager(nil)
	cam := testCamera()
	first := m.ChunksAroundCamera(cam, 800, 600)
	mods := m.Store().ModCount()
	second := m.ChunksAroundCamera(cam, 800, 600)

	if m.Store().ModCount() != mods {
		t.Error("resident chunks regenerated")
	}
	if len(first) != len(second) {
		t.Fatalf("selection changed: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("index %d: got a different chunk instance", i)
		}
	}
}

func TestEvictDistantHysteresis(t *testing.T) {
	m := testManager(nil)
	for cy := -3; cy <= 3; cy++ {
		for cx := -3; cx <= 3; cx++ {
			m.Store().Add(NewChunk(cx, cy, 8))
		}
	}
	cam := testCamera()

	if n := m.EvictDistant(cam); n != 0 {
		t.Errorf("evicted %d chunks one ring past the radius", n)
	}

	cam.Position[0] += 8 // into chunk (1,0)
	if n := m.EvictDistant(cam); n != 7 {
		t.Errorf("evicted %d chunks, want 7", n)
	}
	if got := m.ChunkCoords(cam); got != (ChunkCoord{1, 0}) {
		t.Errorf("ChunkCoords = %v", got)
	}
}

func TestPrefetchInstallsOnNextFrame(t *testing.T) {
	streamer := NewChunkStreamer(NewFlatGenerator(-1), 8, 2, 64)
	defer streamer.Close()
	m := testManager(streamer)
	cam := testCamera()

	// Ring of radius 3 around chunk (0,0).
	if n := m.Prefetch(cam); n != 49 {
		t.Fatalf("Prefetch queued %d, want 49", n)
	}
	if m.Store().Len() != 0 {
		t.Fatal("prefetched chunks installed before the next frame")
	}
	if n := m.Prefetch(cam); n != 0 {
		t.Errorf("second Prefetch queued %d pending chunks again", n)
	}

	deadline := time.Now().Add(5 * time.Second)
	for m.Store().Len() < 49 && time.Now().Before(deadline) {
		m.ChunksAroundCamera(cam, 800, 600)
		time.Sleep(time.Millisecond)
	}
	if m.Store().Len() != 49 {
		t.Errorf("store holds %d chunks, want 49", m.Store().Len())
	}
}
