package terrain

import (
	"fmt"

	"tileworld/internal/config"
	"tileworld/internal/noise"
	"tileworld/internal/world"
)

// Terrain and grass thresholds.
const (
	waterBelow = -0.1
	grassBelow = 0.4

	grassPlainBelow    = -0.2
	grassVariantABelow = 0.2
)

// NoiseGenerator derives chunk content from three independent noise fields:
// terrain class at lattice corners, grass variant and vegetation placement.
// It holds no mutable state and may be shared across goroutines.
type NoiseGenerator struct {
	terrain noise.Sampler
	grass   noise.Sampler
	tree    noise.Sampler
}

func NewNoiseGenerator(terrain, grass, tree noise.Sampler) *NoiseGenerator {
	return &NoiseGenerator{terrain: terrain, grass: grass, tree: tree}
}

// NewNoiseGeneratorFromConfig builds the three samplers from configuration.
func NewNoiseGeneratorFromConfig(cfg config.NoiseLayers) (*NoiseGenerator, error) {
	terrain, err := noise.New(cfg.Terrain)
	if err != nil {
		return nil, fmt.Errorf("terrain noise: %w", err)
	}
	grass, err := noise.New(cfg.Grass)
	if err != nil {
		return nil, fmt.Errorf("grass noise: %w", err)
	}
	tree, err := noise.New(cfg.Tree)
	if err != nil {
		return nil, fmt.Errorf("tree noise: %w", err)
	}
	return NewNoiseGenerator(terrain, grass, tree), nil
}

// Generate implements world.Generator.
func (g *NoiseGenerator) Generate(coord world.ChunkCoord, bounds world.Rect) *world.Chunk {
	chunk := world.NewChunk(coord, bounds)
	corners := g.sampleCorners(bounds)
	g.assignTiles(chunk, corners)
	g.placeVegetation(chunk)
	return chunk
}

// ClassifyCorner maps a terrain sample to its corner class.
func ClassifyCorner(v float64) world.Corner {
	switch {
	case v < waterBelow:
		return world.CornerWater
	case v < grassBelow:
		return world.CornerGrass
	default:
		return world.CornerDirt
	}
}

// RefineGrass picks the plain or a variant grass tile from a grass sample.
func RefineGrass(v float64) uint8 {
	switch {
	case v < grassPlainBelow:
		return world.TileGrass
	case v < grassVariantABelow:
		return world.TileGrassVariantA
	default:
		return world.TileGrassVariantB
	}
}

func (g *NoiseGenerator) sampleCorners(b world.Rect) []world.Corner {
	corners := make([]world.Corner, b.Width()*b.Height())
	for y := b.Bottom; y < b.Top; y++ {
		for x := b.Left; x < b.Right; x++ {
			corners[b.Index(x, y)] = ClassifyCorner(g.terrain.Noise(float64(x), float64(y)))
		}
	}
	return corners
}

// assignTiles fills every cell except row 0 and column 0. The tile at (x, y)
// spans corners x-1..x and y-1..y.
func (g *NoiseGenerator) assignTiles(chunk *world.Chunk, corners []world.Corner) {
	b := chunk.Bounds
	w := b.Width()
	for y := b.Bottom + 1; y < b.Top; y++ {
		for x := b.Left + 1; x < b.Right; x++ {
			idx := b.Index(x, y)
			tile := world.TileID(corners[idx-1], corners[idx], corners[idx-w-1], corners[idx-w])
			if tile == world.TileGrass {
				tile = RefineGrass(g.grass.Noise(float64(x), float64(y)))
			}
			chunk.Ground[idx] = tile
		}
	}
}
