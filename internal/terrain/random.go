package terrain

import "math/rand/v2"

// CellRandom is a random stream owned by one tile cell. Its sequence is a pure
// function of the cell coordinate, so placements do not depend on which
// goroutine derives a chunk or on what was derived before.
type CellRandom struct {
	pcg rand.PCG
}

// NewCellRandom seeds a stream for cell (x, y).
func NewCellRandom(x, y int) *CellRandom {
	key := uint64(uint32(x))<<32 | uint64(uint32(y))
	hi := mix64(key)
	lo := mix64(hi ^ 0x9e3779b97f4a7c15)

	r := &CellRandom{}
	r.pcg.Seed(hi, lo)
	return r
}

// Unit returns a value in [0, 1).
func (r *CellRandom) Unit() float32 {
	return float32(r.pcg.Uint64()>>40) / (1 << 24)
}

// Uniform returns a value in [lo, hi).
func (r *CellRandom) Uniform(lo, hi float32) float32 {
	return lo + (hi-lo)*r.Unit()
}

// mix64 is the splitmix64 finaliser.
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
