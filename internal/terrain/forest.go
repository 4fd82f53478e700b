package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"tileworld/internal/world"
)

// Vegetation thresholds on the tree noise field and acceptance odds.
const (
	largeTreeAbove  = 0.45
	largeTreeChance = 0.3
	smallTreeChance = 0.2

	smallShrubAbove   = 0.7
	smallShrubChance  = 0.6
	largeShrubChance  = 0.5
	extraShrubChance  = 0.5
	vegetationAbove   = 0.0
	treeDepthBias     = 0.8
	shadowDepthBias   = 0.9
	depthScaleDivisor = 10
)

// placeVegetation scans tiles bottom to top, left to right. Each eligible cell
// draws from its own CellRandom, so placements are independent of scan order.
func (g *NoiseGenerator) placeVegetation(chunk *world.Chunk) {
	b := chunk.Bounds
	for y := b.Bottom + 1; y < b.Top; y++ {
		for x := b.Left + 1; x < b.Right; x++ {
			tile := chunk.Ground[b.Index(x, y)]
			switch {
			case world.IsGrassTile(tile):
				g.plantTree(chunk, x, y)
			case tile > world.TileGrass:
				g.plantShrubs(chunk, x, y)
			}
		}
	}
}

func (g *NoiseGenerator) plantTree(chunk *world.Chunk, x, y int) {
	v := g.tree.Noise(float64(x), float64(y))
	rng := NewCellRandom(x, y)

	var (
		kind       world.TreeType
		shadowLift float32
		shadowSize float32
	)
	switch {
	case v > largeTreeAbove:
		if rng.Unit() >= largeTreeChance {
			return
		}
		kind, shadowLift, shadowSize = world.TreeLargeLightGreen, 0.36, 1.2
	case v > vegetationAbove:
		if rng.Unit() >= smallTreeChance {
			return
		}
		kind, shadowLift, shadowSize = world.TreeSmallLightGreen, 0.3, 1.0
	default:
		return
	}

	xo := rng.Uniform(0.2, 0.8)
	yo := rng.Uniform(0.2, 0.8)
	scale := rng.Uniform(0.8, 1.2)
	ax := float32(x) - xo
	ay := float32(y) - yo
	chunk.AddTree(
		world.Tree{
			Type:     kind,
			Position: mgl32.Vec3{ax, ay + scale, depth(chunk.Bounds, y, yo, treeDepthBias)},
			Scale:    mgl32.Vec2{scale, 2 * scale},
		},
		world.Shadow{
			Position: mgl32.Vec3{ax, ay + shadowLift*scale, depth(chunk.Bounds, y, yo, shadowDepthBias)},
			Size:     mgl32.Vec2{shadowSize * scale, shadowSize * scale},
		},
	)
}

func (g *NoiseGenerator) plantShrubs(chunk *world.Chunk, x, y int) {
	v := g.tree.Noise(float64(x), float64(y))
	rng := NewCellRandom(x, y)

	switch {
	case v > smallShrubAbove:
		if rng.Unit() >= smallShrubChance {
			return
		}
		xo, yo := rng.Unit(), rng.Unit()
		addShrub(chunk, x, y, world.ShrubSmallOrange, xo, yo, 1, 0, 1)
	case v > vegetationAbove:
		if rng.Unit() >= largeShrubChance {
			return
		}
		xo, yo := rng.Unit(), rng.Unit()
		scale := rng.Uniform(0.8, 1.2)
		addShrub(chunk, x, y, world.ShrubLargeOrange, xo, yo, scale, -0.1, 1)

		if rng.Unit() < extraShrubChance {
			xo, yo := rng.Unit(), rng.Unit()
			scale := rng.Uniform(0.8, 1.2)
			addShrub(chunk, x, y, world.ShrubSmallOrange, xo, yo, scale, -0.21, 0.7)
		}
	}
}

// addShrub anchors a square sprite at the cell offset; the shadow is shifted
// by shadowLift*scale and sized shadowSize*scale.
func addShrub(chunk *world.Chunk, x, y int, kind world.TreeType, xo, yo, scale, shadowLift, shadowSize float32) {
	ax := float32(x) - xo
	ay := float32(y) - yo
	chunk.AddTree(
		world.Tree{
			Type:     kind,
			Position: mgl32.Vec3{ax, ay, depth(chunk.Bounds, y, yo, treeDepthBias)},
			Scale:    mgl32.Vec2{scale, scale},
		},
		world.Shadow{
			Position: mgl32.Vec3{ax, ay + shadowLift*scale, depth(chunk.Bounds, y, yo, shadowDepthBias)},
			Size:     mgl32.Vec2{shadowSize * scale, shadowSize * scale},
		},
	)
}

// depth orders sprites by their anchor: lower on screen draws in front.
func depth(b world.Rect, y int, yo, bias float32) float32 {
	return (float32(b.Top)-(float32(y)-yo))/float32(b.Height())/depthScaleDivisor - bias
}
