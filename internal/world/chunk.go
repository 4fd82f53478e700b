package world

import "github.com/go-gl/mathgl/mgl32"

// Corner is the terrain class sampled at a lattice point.
type Corner uint8

const (
	CornerWater Corner = 0
	CornerGrass Corner = 1
	CornerDirt  Corner = 2
)

// Ground tile ids. Ids 0..80 encode the four corner classes of a tile in base
// three; 81 and 82 are the two grass variants.
const (
	TileWater         uint8 = 0
	TileGrass         uint8 = 40
	TileDirt          uint8 = 80
	TileGrassVariantA uint8 = 81
	TileGrassVariantB uint8 = 82

	GroundTileCount = 83
)

// TileID combines the corner classes of a tile into its ground tile id.
func TileID(topLeft, topRight, bottomLeft, bottomRight Corner) uint8 {
	return 27*uint8(topLeft) + 9*uint8(topRight) + 3*uint8(bottomLeft) + uint8(bottomRight)
}

// TileCorners is the inverse of TileID. Grass variants report all grass.
func TileCorners(id uint8) (topLeft, topRight, bottomLeft, bottomRight Corner) {
	if id == TileGrassVariantA || id == TileGrassVariantB {
		id = TileGrass
	}
	return Corner(id / 27 % 3), Corner(id / 9 % 3), Corner(id / 3 % 3), Corner(id % 3)
}

// IsGrassTile reports whether a tile is solid grass, refined or not.
func IsGrassTile(id uint8) bool {
	return id == TileGrass || id == TileGrassVariantA || id == TileGrassVariantB
}

// Tree is a vegetation sprite placement. Position is the sprite anchor with
// depth in Z; Scale is the sprite size in world units.
type Tree struct {
	Type     TreeType
	Position mgl32.Vec3
	Scale    mgl32.Vec2
}

// Shadow is the ground shadow drawn under a tree.
type Shadow struct {
	Position mgl32.Vec3
	Size     mgl32.Vec2
}

// Chunk is the derived content of one chunk region. It is written once by the
// deriver and never mutated afterwards. Ground holds one tile id per cell of
// Bounds in row-major order; row 0 and column 0 are unused and stay zero.
// Trees and Shadows are parallel: Shadows[k] belongs to Trees[k].
type Chunk struct {
	Key     ChunkCoord
	Bounds  Rect
	Ground  []uint8
	Trees   []Tree
	Shadows []Shadow
}

// NewChunk allocates an empty chunk for the given region.
func NewChunk(key ChunkCoord, bounds Rect) *Chunk {
	return &Chunk{
		Key:    key,
		Bounds: bounds,
		Ground: make([]uint8, bounds.Width()*bounds.Height()),
	}
}

// GroundAt returns the tile id at a world tile coordinate.
func (c *Chunk) GroundAt(x, y int) (uint8, bool) {
	if !c.Bounds.Contains(x, y) {
		return 0, false
	}
	return c.Ground[c.Bounds.Index(x, y)], true
}

// AddTree appends a tree together with its shadow.
func (c *Chunk) AddTree(tree Tree, shadow Shadow) {
	c.Trees = append(c.Trees, tree)
	c.Shadows = append(c.Shadows, shadow)
}
