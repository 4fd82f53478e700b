// Package noise provides the deterministic 2D scalar fields the terrain
// deriver samples. Every Sampler is a pure function of its configuration and
// the sample coordinate and may be shared between goroutines.
package noise

import (
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"tileworld/internal/config"
)

// Sampler returns a value roughly in [-1, 1] for a world position.
type Sampler interface {
	Noise(x, y float64) float64
}

// Constant is a Sampler that returns the same value everywhere.
type Constant float64

func (c Constant) Noise(x, y float64) float64 { return float64(c) }

// Func adapts a plain function to the Sampler interface.
type Func func(x, y float64) float64

func (f Func) Noise(x, y float64) float64 { return f(x, y) }

// basis is a single octave field for one seed, sampled in frequency space.
type basis func(x, y float64) float64

// New builds a sampler from a validated noise layer configuration.
func New(cfg config.NoiseConfig) (Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("noise config: %w", err)
	}

	kind, fractal := strings.CutSuffix(cfg.Type, "_fractal")
	var factory func(seed int64) basis
	switch kind {
	case "simplex":
		factory = simplexBasis
	case "perlin":
		factory = perlinBasis
	case "value":
		interp, err := interpolation(cfg.Interp)
		if err != nil {
			return nil, err
		}
		factory = func(seed int64) basis { return valueBasis(seed, interp) }
	default:
		return nil, fmt.Errorf("noise type %q is unknown", cfg.Type)
	}

	if !fractal {
		return &single{frequency: cfg.Frequency, eval: factory(cfg.Seed)}, nil
	}
	return newFractal(cfg, factory)
}

// MustNew is New for configurations already checked by config.Validate.
func MustNew(cfg config.NoiseConfig) Sampler {
	s, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

type single struct {
	frequency float64
	eval      basis
}

func (s *single) Noise(x, y float64) float64 {
	return s.eval(x*s.frequency, y*s.frequency)
}

func simplexBasis(seed int64) basis {
	n := opensimplex.New(seed)
	return n.Eval2
}

// go-perlin yields roughly [-0.7, 0.7] for a single octave; the scale brings
// it in line with the other bases.
const perlinScale = 1.4

func perlinBasis(seed int64) basis {
	p := perlin.NewPerlin(2, 2, 1, seed)
	return func(x, y float64) float64 {
		return p.Noise2D(x, y) * perlinScale
	}
}
