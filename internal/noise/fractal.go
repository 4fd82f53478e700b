package noise

import (
	"fmt"
	"math"

	"tileworld/internal/config"
)

type fractalKind int

const (
	fbm fractalKind = iota
	billow
	rigidMulti
)

// fractal layers octaves of a basis. Octave i uses seed+i, its coordinates are
// scaled by lacunarity^i and its amplitude by gain^i.
type fractal struct {
	kind       fractalKind
	frequency  float64
	lacunarity float64
	gain       float64
	octaves    []basis
	bounding   float64
}

func newFractal(cfg config.NoiseConfig, factory func(seed int64) basis) (*fractal, error) {
	f := &fractal{
		frequency:  cfg.Frequency,
		lacunarity: cfg.Lacunarity,
		gain:       cfg.Gain,
		octaves:    make([]basis, cfg.Octaves),
	}
	switch cfg.FractalType {
	case "fbm":
		f.kind = fbm
	case "billow":
		f.kind = billow
	case "rigid_multi":
		f.kind = rigidMulti
	default:
		return nil, fmt.Errorf("fractal type %q is unknown", cfg.FractalType)
	}
	for i := range f.octaves {
		f.octaves[i] = factory(cfg.Seed + int64(i))
	}

	amp := cfg.Gain
	total := 1.0
	for i := 1; i < cfg.Octaves; i++ {
		total += amp
		amp *= cfg.Gain
	}
	f.bounding = 1 / total
	return f, nil
}

func (f *fractal) Noise(x, y float64) float64 {
	x *= f.frequency
	y *= f.frequency

	switch f.kind {
	case billow:
		sum := math.Abs(f.octaves[0](x, y))*2 - 1
		amp := 1.0
		for _, octave := range f.octaves[1:] {
			x *= f.lacunarity
			y *= f.lacunarity
			amp *= f.gain
			sum += (math.Abs(octave(x, y))*2 - 1) * amp
		}
		return sum * f.bounding
	case rigidMulti:
		sum := 1 - math.Abs(f.octaves[0](x, y))
		amp := 1.0
		for _, octave := range f.octaves[1:] {
			x *= f.lacunarity
			y *= f.lacunarity
			amp *= f.gain
			sum -= (1 - math.Abs(octave(x, y))) * amp
		}
		return sum
	default:
		sum := f.octaves[0](x, y)
		amp := 1.0
		for _, octave := range f.octaves[1:] {
			x *= f.lacunarity
			y *= f.lacunarity
			amp *= f.gain
			sum += octave(x, y) * amp
		}
		return sum * f.bounding
	}
}
