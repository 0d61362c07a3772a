// Package frame runs one viewer frame in a fixed order: clear, move, pick
// chunks, draw, evict.
package frame

import (
	"time"

	"voxview/internal/camera"
	"voxview/internal/config"
	"voxview/internal/graphics"
	"voxview/internal/profiling"
	"voxview/internal/world"
)

// IntentSource supplies one input sample per frame.
type IntentSource interface {
	Intent() camera.Intent
}

// Stats summarizes one Tick.
type Stats struct {
	graphics.Stats
	Resident  int // chunks in the store after eviction
	Installed int // chunks generated or drained into the store this frame
	Evicted   int
	Queued    int // background requests issued this frame
	Duration  time.Duration
	WorldTime time.Duration // time spent in world.* this frame
}

// Driver owns the per-frame sequencing. It is not safe for concurrent use.
type Driver struct {
	Surface  graphics.Surface
	Camera   *camera.Camera
	Input    IntentSource
	Chunks   *world.ChunkManager
	Renderer *graphics.Renderer
	Settings *config.RenderSettings // optional

	MoveSpeed        float64
	MouseSensitivity float64
	Prefetch         bool

	paused bool
}

// NewDriver assembles a driver with movement settings from cfg.
func NewDriver(cfg *config.Config, s graphics.Surface, cam *camera.Camera, in IntentSource, chunks *world.ChunkManager) *Driver {
	r := graphics.NewRenderer()
	r.Outlines = cfg.Outlines
	return &Driver{
		Surface:          s,
		Camera:           cam,
		Input:            in,
		Chunks:           chunks,
		Renderer:         r,
		Settings:         config.NewRenderSettings(cfg),
		MoveSpeed:        cfg.MoveSpeed,
		MouseSensitivity: cfg.MouseSensitivity,
		Prefetch:         cfg.AsyncGeneration,
	}
}

// SetPaused freezes the camera. Input is still sampled and discarded so
// motion made while paused does not jump the view on resume.
func (d *Driver) SetPaused(paused bool) {
	d.paused = paused
}

// Paused reports whether the camera is frozen.
func (d *Driver) Paused() bool {
	return d.paused
}

// Tick renders one frame. dt is the time since the previous frame in seconds.
func (d *Driver) Tick(dt float64) Stats {
	start := time.Now()
	profiling.ResetFrame()

	d.Surface.Clear()

	if d.Input != nil {
		in := d.Input.Intent()
		if !d.paused {
			func() {
				defer profiling.Track("camera.Apply")()
				d.Camera.Apply(in, d.MoveSpeed, d.MouseSensitivity, dt)
			}()
		}
	}

	if d.Settings != nil {
		d.Chunks.SetRenderDistance(float64(d.Settings.RenderDistance()))
		d.Renderer.Outlines = d.Settings.Outlines()
	}

	width, height := d.Surface.Size()
	store := d.Chunks.Store()
	mods := store.ModCount()
	chunks := d.Chunks.ChunksAroundCamera(d.Camera, width, height)

	var stats Stats
	stats.Installed = int(store.ModCount() - mods)
	stats.Stats = d.Renderer.Draw(d.Surface, d.Camera, chunks)
	stats.Evicted = d.Chunks.EvictDistant(d.Camera)
	if d.Prefetch {
		func() {
			defer profiling.Track("world.Prefetch")()
			stats.Queued = d.Chunks.Prefetch(d.Camera)
		}()
	}
	stats.Resident = store.Len()
	stats.WorldTime = profiling.SumWithPrefix("world.")
	stats.Duration = time.Since(start)
	return stats
}
