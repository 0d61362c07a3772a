package world

import (
	"context"
	"sync"
)

// ChunkStreamer generates chunks on background workers. Workers only ever
// hand over fully generated chunks; installing them into a store is left to
// the caller of Drain, so nothing partially built is ever visible.
type ChunkStreamer struct {
	jobs    chan ChunkCoord
	results chan *Chunk

	pending    map[ChunkCoord]struct{}
	pendingMu  sync.Mutex
	maxPending int

	size int
	gen  ChunkGenerator

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewChunkStreamer starts workers generating size x size chunks with gen.
func NewChunkStreamer(gen ChunkGenerator, size, workers, maxPending int) *ChunkStreamer {
	ctx, cancel := context.WithCancel(context.Background())
	cs := &ChunkStreamer{
		// Both queues hold maxPending entries, so a worker never blocks on send.
		jobs:       make(chan ChunkCoord, maxPending),
		results:    make(chan *Chunk, maxPending),
		pending:    make(map[ChunkCoord]struct{}),
		maxPending: maxPending,
		size:       size,
		gen:        gen,
		ctx:        ctx,
		cancel:     cancel,
	}

	workers = max(workers, 1)
	for range workers {
		cs.wg.Add(1)
		go cs.worker()
	}
	return cs
}

// Close stops the background generation workers and waits for them.
func (cs *ChunkStreamer) Close() {
	cs.cancel()
	cs.wg.Wait()
}

func (cs *ChunkStreamer) worker() {
	defer cs.wg.Done()
	for {
		select {
		case <-cs.ctx.Done():
			return
		case coord := <-cs.jobs:
			chunk := cs.gen.Generate(coord.X, coord.Y, cs.size)
			select {
			case cs.results <- chunk:
			case <-cs.ctx.Done():
				return
			}
		}
	}
}

// Request queues coord unless it is already pending or the queue is full.
// Returns true if enqueued.
func (cs *ChunkStreamer) Request(coord ChunkCoord) bool {
	if cs.ctx.Err() != nil {
		return false
	}

	cs.pendingMu.Lock()
	defer cs.pendingMu.Unlock()
	if _, ok := cs.pending[coord]; ok {
		return false
	}
	if len(cs.pending) >= cs.maxPending {
		return false
	}

	select {
	case cs.jobs <- coord:
		cs.pending[coord] = struct{}{}
		return true
	default:
		return false
	}
}

// IsPending reports whether coord is queued or being generated.
func (cs *ChunkStreamer) IsPending(coord ChunkCoord) bool {
	cs.pendingMu.Lock()
	defer cs.pendingMu.Unlock()
	_, ok := cs.pending[coord]
	return ok
}

// Drain passes every finished chunk to install without blocking and returns
// how many were handed over.
func (cs *ChunkStreamer) Drain(install func(*Chunk)) int {
	n := 0
	for {
		select {
		case chunk := <-cs.results:
			cs.pendingMu.Lock()
			delete(cs.pending, chunk.Coord)
			cs.pendingMu.Unlock()
			install(chunk)
			n++
		default:
			return n
		}
	}
}
