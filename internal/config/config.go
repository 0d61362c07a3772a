package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds viewer configuration.
type Config struct {
	Seed      int64  `json:"seed"`
	Noise     string `json:"noise"`      // "perlin" or "simplex"
	WorldType string `json:"world_type"` // "default" or "flat"
	FlatLevel int    `json:"flat_level"`

	ChunkSize        int     `json:"chunk_size"`
	RenderDistance   int     `json:"render_distance"` // world units
	FrustumMargin    float64 `json:"frustum_margin"`  // added to the ±1 NDC bounds
	AlwaysNearRadius float64 `json:"always_near_radius"`

	FOV   float64 `json:"fov"`    // degrees
	ZNear float64 `json:"z_near"` // informational, not a clip plane
	ZFar  float64 `json:"z_far"`

	MoveSpeed        float64 `json:"move_speed"` // units per second
	MouseSensitivity float64 `json:"mouse_sensitivity"`

	Width      int      `json:"width"`
	Height     int      `json:"height"`
	FPSLimit   int      `json:"fps_limit"`
	Outlines   bool     `json:"outlines"`
	Background [3]uint8 `json:"background"`
	HUDFont    string   `json:"hud_font"` // optional TTF/OTF path; empty uses the built-in face

	AsyncGeneration bool `json:"async_generation"`
	Workers         int  `json:"workers"`
}

// Default returns a Config with the stock viewer settings.
func Default() *Config {
	return &Config{
		Seed:             0,
		Noise:            "perlin",
		WorldType:        "default",
		FlatLevel:        -1,
		ChunkSize:        8,
		RenderDistance:   32,
		FrustumMargin:    0.5,
		AlwaysNearRadius: 12,
		FOV:              60,
		ZNear:            0.1,
		ZFar:             30,
		MoveSpeed:        6,
		MouseSensitivity: 0.002,
		Width:            900,
		Height:           600,
		FPSLimit:         60,
		Outlines:         true,
		Background:       [3]uint8{135, 206, 235},
		AsyncGeneration:  false,
		Workers:          2,
	}
}

// Load reads a JSON config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge applies file-loaded values into cfg, but only for fields that were
// NOT explicitly set via CLI flags. explicitFlags holds the flag names given
// on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["noise"] {
		cfg.Noise = fromFile.Noise
	}
	if !explicitFlags["world"] {
		cfg.WorldType = fromFile.WorldType
	}
	if !explicitFlags["flat-level"] {
		cfg.FlatLevel = fromFile.FlatLevel
	}
	if !explicitFlags["chunk-size"] {
		cfg.ChunkSize = fromFile.ChunkSize
	}
	if !explicitFlags["render-distance"] {
		cfg.RenderDistance = fromFile.RenderDistance
	}
	if !explicitFlags["fov"] {
		cfg.FOV = fromFile.FOV
	}
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["fps"] {
		cfg.FPSLimit = fromFile.FPSLimit
	}
	if !explicitFlags["async"] {
		cfg.AsyncGeneration = fromFile.AsyncGeneration
	}
	if !explicitFlags["outlines"] {
		cfg.Outlines = fromFile.Outlines
	}

	// No flags for these; the file always wins.
	cfg.FrustumMargin = fromFile.FrustumMargin
	cfg.AlwaysNearRadius = fromFile.AlwaysNearRadius
	cfg.ZNear = fromFile.ZNear
	cfg.ZFar = fromFile.ZFar
	cfg.MoveSpeed = fromFile.MoveSpeed
	cfg.MouseSensitivity = fromFile.MouseSensitivity
	cfg.Background = fromFile.Background
	cfg.Workers = fromFile.Workers
	cfg.HUDFont = fromFile.HUDFont
}

// Validate reports the first setting that cannot drive the viewer.
func (c *Config) Validate() error {
	switch {
	case c.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	case c.RenderDistance <= 0:
		return fmt.Errorf("%w: render_distance must be positive, got %d", ErrInvalidConfig, c.RenderDistance)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov must be in (0, 180), got %g", ErrInvalidConfig, c.FOV)
	case c.ZFar <= 0:
		return fmt.Errorf("%w: z_far must be positive, got %g", ErrInvalidConfig, c.ZFar)
	case c.FrustumMargin < 0:
		return fmt.Errorf("%w: frustum_margin must not be negative", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.WorldType != "default" && c.WorldType != "flat":
		return fmt.Errorf("%w: unknown world_type %q", ErrInvalidConfig, c.WorldType)
	case c.AsyncGeneration && c.Workers <= 0:
		return fmt.Errorf("%w: async_generation needs at least one worker", ErrInvalidConfig)
	}
	return nil
}

// RenderSettings holds settings the viewer may change while running.
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int // world units
	outlines       bool
}

// NewRenderSettings seeds runtime settings from cfg.
func NewRenderSettings(cfg *Config) *RenderSettings {
	return &RenderSettings{
		renderDistance: cfg.RenderDistance,
		outlines:       cfg.Outlines,
	}
}

// RenderDistance returns the current render distance in world units.
func (s *RenderSettings) RenderDistance() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.renderDistance
}

// SetRenderDistance sets the render distance in world units.
func (s *RenderSettings) SetRenderDistance(distance int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clamp to reasonable values
	if distance < 8 {
		distance = 8
	}
	if distance > 256 {
		distance = 256
	}

	s.renderDistance = distance
}

// Outlines reports whether face outlines are drawn.
func (s *RenderSettings) Outlines() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outlines
}

// ToggleOutlines flips outline drawing and returns the new state.
func (s *RenderSettings) ToggleOutlines() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outlines = !s.outlines
	return s.outlines
}
