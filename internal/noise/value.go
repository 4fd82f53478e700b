package noise

import (
	"fmt"
	"math"
)

// valueBasis interpolates hashed lattice values. The hash is stable across
// platforms so seeds reproduce the same terrain everywhere.
func valueBasis(seed int64, interp func(float64) float64) basis {
	return func(x, y float64) float64 {
		x0 := int(math.Floor(x))
		y0 := int(math.Floor(y))
		x1 := x0 + 1
		y1 := y0 + 1

		sx := interp(x - float64(x0))
		sy := interp(y - float64(y0))

		ix0 := lerp(lattice(x0, y0, seed), lattice(x1, y0, seed), sx)
		ix1 := lerp(lattice(x0, y1, seed), lattice(x1, y1, seed), sx)
		return lerp(ix0, ix1, sy)
	}
}

func interpolation(name string) (func(float64) float64, error) {
	switch name {
	case "linear":
		return func(t float64) float64 { return t }, nil
	case "hermite":
		return func(t float64) float64 { return t * t * (3 - 2*t) }, nil
	case "quintic":
		return func(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }, nil
	}
	return nil, fmt.Errorf("interpolation %q is unknown", name)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// lattice maps a lattice point to [-1, 1).
func lattice(x, y int, seed int64) float64 {
	return float64(hash3(x, y, int(seed))&0xFFFF)/0x8000 - 1.0
}

func hash3(x, y, z int) uint32 {
	h := uint32(x*374761393 + y*668265263 + z*2147483647)
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}
