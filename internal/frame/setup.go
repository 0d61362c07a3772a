package frame

import (
	"fmt"
	"image/color"

	"voxview/internal/camera"
	"voxview/internal/config"
	"voxview/internal/world"
)

// NewGenerator builds the chunk generator selected by cfg.
func NewGenerator(cfg *config.Config) (world.ChunkGenerator, error) {
	if cfg.WorldType == "flat" {
		return world.NewFlatGenerator(cfg.FlatLevel), nil
	}
	noise, err := world.NewNoise(cfg.Noise, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("noise: %w", err)
	}
	return world.NewGenerator(cfg.Seed, noise), nil
}

// NewChunkManager wires a generator, an optional background streamer and
// the scheduling options from cfg. The returned streamer is nil unless
// async generation is enabled; the caller closes it.
func NewChunkManager(cfg *config.Config) (*world.ChunkManager, *world.ChunkStreamer, error) {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}

	var streamer *world.ChunkStreamer
	if cfg.AsyncGeneration {
		r := cfg.RenderDistance/cfg.ChunkSize + 2
		ring := (2*r + 1) * (2*r + 1)
		streamer = world.NewChunkStreamer(gen, cfg.ChunkSize, cfg.Workers, ring)
	}

	m := world.NewChunkManager(gen, world.ManagerOptions{
		ChunkSize:        cfg.ChunkSize,
		RenderDistance:   float64(cfg.RenderDistance),
		FrustumMargin:    cfg.FrustumMargin,
		AlwaysNearRadius: cfg.AlwaysNearRadius,
	}, streamer)
	return m, streamer, nil
}

// NewCamera returns the default camera with the lens from cfg.
func NewCamera(cfg *config.Config) *camera.Camera {
	cam := camera.New()
	cam.FOV = cfg.FOV
	cam.ZNear = cfg.ZNear
	cam.ZFar = cfg.ZFar
	return cam
}

// Background converts the configured clear color.
func Background(cfg *config.Config) color.NRGBA {
	bg := cfg.Background
	return color.NRGBA{bg[0], bg[1], bg[2], 255}
}
