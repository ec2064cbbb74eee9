package noise

import (
	"fmt"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Kind names a coherent noise implementation
type Kind string

const (
	Perlin  Kind = "perlin"
	Simplex Kind = "simplex"
)

// Source is coherent 2d noise in [0,1]
type Source interface {
	Sample(x, y float64) float64
}

// perlinSource wraps go-perlin, whose raw output is roughly [-1,1]
type perlinSource struct {
	p *perlin.Perlin
}

// Sample returns noise at (x,y) in [0,1]
func (s *perlinSource) Sample(x, y float64) float64 {
	return clamp01((s.p.Noise2D(x, y) + 1) / 2)
}

type simplexSource struct {
	n opensimplex.Noise
}

// Sample returns noise at (x,y) in [0,1]
func (s *simplexSource) Sample(x, y float64) float64 {
	return clamp01(s.n.Eval2(x, y))
}

// New returns a noise source of the given kind seeded from rng.
// An empty kind is Perlin.
func New(kind Kind, rng *rand.Rand) (Source, error) {
	seed := rng.Int63()
	switch kind {
	case Perlin, "":
		// alpha 2, beta 2, 3 octaves of internal detail
		return &perlinSource{p: perlin.NewPerlin(2, 2, 3, seed)}, nil
	case Simplex:
		return &simplexSource{n: opensimplex.NewNormalized(seed)}, nil
	}
	return nil, fmt.Errorf("unknown noise kind %q", kind)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
