package world

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownNoise is returned by NewNoise for an unsupported backend name.
var ErrUnknownNoise = errors.New("unknown noise backend")

// NoiseSource is a deterministic scalar field in roughly [-1, 1].
type NoiseSource interface {
	Noise(x, y, z float64) float64
}

// NewNoise builds the named backend ("perlin" or "simplex") for seed.
func NewNoise(kind string, seed int64) (NoiseSource, error) {
	switch kind {
	case "", "perlin":
		return NewPerlin(seed), nil
	case "simplex":
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNoise, kind)
	}
}

// Perlin is improved gradient noise over a seeded permutation table.
// The table is built once and never written again, so a Perlin may be
// shared between goroutines.
type Perlin struct {
	perm [512]int
}

// NewPerlin shuffles 0..255 with a sin-based generator driven by seed.
// The generator is weak but fully reproducible for a given seed.
func NewPerlin(seed int64) *Perlin {
	var p [256]int
	for i := range p {
		p[i] = i
	}

	s := float64(seed)
	for i := 255; i > 0; i-- {
		j := int(math.Floor(seededRandom(s) * float64(i+1)))
		p[i], p[j] = p[j], p[i]
		s++
	}

	n := &Perlin{}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

// seededRandom maps seed to [0,1) as frac(sin(seed)*10000).
func seededRandom(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Noise samples the field at (x, y, z). Pass z = 0 for 2D use.
func (n *Perlin) Noise(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi := int(fx) & 255
	yi := int(fy) & 255
	zi := int(fz) & 255

	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	p := &n.perm
	a := p[xi] + yi
	aa := p[a] + zi
	ab := p[a+1] + zi
	b := p[xi+1] + yi
	ba := p[b] + zi
	bb := p[b+1] + zi

	return lerp(w,
		lerp(v,
			lerp(u, grad(p[aa], x, y, z), grad(p[ba], x-1, y, z)),
			lerp(u, grad(p[ab], x, y-1, z), grad(p[bb], x-1, y-1, z)),
		),
		lerp(v,
			lerp(u, grad(p[aa+1], x, y, z-1), grad(p[ba+1], x-1, y, z-1)),
			lerp(u, grad(p[ab+1], x, y-1, z-1), grad(p[bb+1], x-1, y-1, z-1)),
		),
	)
}
