package world

import (
	"sort"
	"sync"
)

// ChunkStore holds the resident chunks, keyed by coordinate.
// Only the ChunkManager mutates it, and only between render passes; the
// lock guards readers such as debug overlays running on other goroutines.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates an empty chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// Get returns the chunk at coord, or nil.
func (cs *ChunkStore) Get(coord ChunkCoord) *Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.chunks[coord]
}

// Has checks if a chunk is resident.
func (cs *ChunkStore) Has(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// Add installs a generated chunk. An already resident chunk for the same
// coordinate is kept and Add reports false.
func (cs *ChunkStore) Add(chunk *Chunk) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.chunks[chunk.Coord]; ok {
		return false
	}
	cs.chunks[chunk.Coord] = chunk
	cs.modCount++
	return true
}

// Len returns the number of resident chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// Coords returns the resident coordinates in row-major order.
func (cs *ChunkStore) Coords() []ChunkCoord {
	cs.mu.RLock()
	out := make([]ChunkCoord, 0, len(cs.chunks))
	for coord := range cs.chunks {
		out = append(out, coord)
	}
	cs.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// ModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) ModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// EvictOutside removes every chunk farther than radius from center on
// either axis. Returns number of removed chunks.
func (cs *ChunkStore) EvictOutside(center ChunkCoord, radius int) int {
	removed := 0
	cs.mu.Lock()
	for coord := range cs.chunks {
		if abs(coord.X-center.X) > radius || abs(coord.Y-center.Y) > radius {
			delete(cs.chunks, coord)
			cs.modCount++
			removed++
		}
	}
	cs.mu.Unlock()
	return removed
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
