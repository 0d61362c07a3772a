package world

import "github.com/ojrac/opensimplex-go"

// Simplex adapts OpenSimplex noise to NoiseSource.
type Simplex struct {
	noise opensimplex.Noise
}

// NewSimplex creates an OpenSimplex field for seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{noise: opensimplex.New(seed)}
}

// Noise samples the field at (x, y, z).
func (s *Simplex) Noise(x, y, z float64) float64 {
	return s.noise.Eval3(x, y, z)
}
