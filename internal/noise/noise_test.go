package noise

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tileworld/internal/config"
)

func layer(kind string) config.NoiseConfig {
	return config.NoiseConfig{
		Seed:        1337,
		Frequency:   0.02,
		Type:        kind,
		Interp:      "quintic",
		Octaves:     4,
		Lacunarity:  2,
		Gain:        0.5,
		FractalType: "fbm",
	}
}

func TestSamplersAreDeterministic(t *testing.T) {
	for _, kind := range []string{"simplex", "simplex_fractal", "perlin", "perlin_fractal", "value", "value_fractal"} {
		t.Run(kind, func(t *testing.T) {
			a, err := New(layer(kind))
			require.NoError(t, err)
			b, err := New(layer(kind))
			require.NoError(t, err)

			for x := -40; x <= 40; x += 7 {
				for y := -40; y <= 40; y += 5 {
					va := a.Noise(float64(x), float64(y))
					assert.Equal(t, va, b.Noise(float64(x), float64(y)), "sample at (%d,%d)", x, y)
					assert.False(t, math.IsNaN(va))
					assert.LessOrEqual(t, math.Abs(va), 1.5, "sample at (%d,%d) out of range", x, y)
				}
			}
		})
	}
}

func TestSeedChangesField(t *testing.T) {
	cfg := layer("simplex_fractal")
	a := MustNew(cfg)
	cfg.Seed = 2345
	b := MustNew(cfg)

	differs := false
	for x := 0; x < 50 && !differs; x++ {
		if a.Noise(float64(x), 3) != b.Noise(float64(x), 3) {
			differs = true
		}
	}
	assert.True(t, differs, "different seeds should produce different fields")
}

func TestZeroFrequencyIsConstant(t *testing.T) {
	cfg := layer("value_fractal")
	cfg.Frequency = 0
	s := MustNew(cfg)
	first := s.Noise(0, 0)
	for x := -10; x < 10; x++ {
		assert.Equal(t, first, s.Noise(float64(x), float64(x*3)))
	}
}

func TestFractalBoundingNormalisesOctaves(t *testing.T) {
	f, err := newFractal(layer("value_fractal"), func(int64) basis {
		return func(x, y float64) float64 { return 1 }
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f.Noise(3, 4), 1e-12)

	cfg := layer("value_fractal")
	cfg.FractalType = "rigid_multi"
	r, err := newFractal(cfg, func(int64) basis {
		return func(x, y float64) float64 { return 0 }
	})
	require.NoError(t, err)
	assert.InDelta(t, 1-0.5-0.25-0.125, r.Noise(3, 4), 1e-12)
}

func TestConcurrentSampling(t *testing.T) {
	s := MustNew(layer("simplex_fractal"))
	want := s.Noise(12.5, -3)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := s.Noise(12.5, -3); got != want {
					t.Errorf("concurrent sample drifted: %v != %v", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewRejectsUnknownType(t *testing.T) {
	_, err := New(layer("worley"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worley")
}

func TestAdapters(t *testing.T) {
	assert.Equal(t, -0.5, Constant(-0.5).Noise(10, 20))
	sum := Func(func(x, y float64) float64 { return x + y })
	assert.Equal(t, 30.0, sum.Noise(10, 20))
}
