package config

import (
	"flag"
	"fmt"
)

// Flags holds a Config bound to a FlagSet plus the -config path.
type Flags struct {
	fs   *flag.FlagSet
	cfg  *Config
	path string
}

// BindFlags registers the shared viewer flags on fs, defaulting to Default().
func BindFlags(fs *flag.FlagSet) *Flags {
	cfg := Default()
	f := &Flags{fs: fs, cfg: cfg}

	fs.StringVar(&f.path, "config", "", "path to a JSON config file")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	fs.StringVar(&cfg.Noise, "noise", cfg.Noise, "noise backend: perlin or simplex")
	fs.StringVar(&cfg.WorldType, "world", cfg.WorldType, "world type: default or flat")
	fs.IntVar(&cfg.FlatLevel, "flat-level", cfg.FlatLevel, "surface height of the flat world")
	fs.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "chunk edge length in cubes")
	fs.IntVar(&cfg.RenderDistance, "render-distance", cfg.RenderDistance, "render distance in world units")
	fs.Float64Var(&cfg.FOV, "fov", cfg.FOV, "vertical field of view in degrees")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "viewport width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "viewport height in pixels")
	fs.IntVar(&cfg.FPSLimit, "fps", cfg.FPSLimit, "frame rate cap, 0 for none")
	fs.BoolVar(&cfg.AsyncGeneration, "async", cfg.AsyncGeneration, "generate chunks on background workers")
	fs.BoolVar(&cfg.Outlines, "outlines", cfg.Outlines, "stroke face outlines")
	return f
}

// Resolve loads the -config file, if any, lets explicit flags win over it
// and validates the result. Call after fs.Parse.
func (f *Flags) Resolve() (*Config, error) {
	if f.path != "" {
		fromFile, err := Load(f.path)
		if err != nil {
			return nil, err
		}
		explicit := make(map[string]bool)
		f.fs.Visit(func(fl *flag.Flag) { explicit[fl.Name] = true })
		Merge(f.cfg, fromFile, explicit)
	}
	if err := f.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return f.cfg, nil
}
