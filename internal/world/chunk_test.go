package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTileIDIsBijectiveOverCornerCombinations(t *testing.T) {
	seen := make(map[uint8]bool, 81)
	corners := []Corner{CornerWater, CornerGrass, CornerDirt}
	for _, tl := range corners {
		for _, tr := range corners {
			for _, bl := range corners {
				for _, br := range corners {
					id := TileID(tl, tr, bl, br)
					if id > 80 {
						t.Fatalf("tile id %d out of range for %v %v %v %v", id, tl, tr, bl, br)
					}
					if seen[id] {
						t.Fatalf("tile id %d produced twice", id)
					}
					seen[id] = true

					gtl, gtr, gbl, gbr := TileCorners(id)
					if gtl != tl || gtr != tr || gbl != bl || gbr != br {
						t.Fatalf("TileCorners(%d) = %v %v %v %v, want %v %v %v %v", id, gtl, gtr, gbl, gbr, tl, tr, bl, br)
					}
				}
			}
		}
	}
	if len(seen) != 81 {
		t.Fatalf("expected 81 distinct ids, got %d", len(seen))
	}
}

func TestTileIDLandmarks(t *testing.T) {
	if id := TileID(CornerWater, CornerWater, CornerWater, CornerWater); id != TileWater {
		t.Fatalf("all water should be %d, got %d", TileWater, id)
	}
	if id := TileID(CornerGrass, CornerGrass, CornerGrass, CornerGrass); id != TileGrass {
		t.Fatalf("all grass should be %d, got %d", TileGrass, id)
	}
	if id := TileID(CornerDirt, CornerDirt, CornerDirt, CornerDirt); id != TileDirt {
		t.Fatalf("all dirt should be %d, got %d", TileDirt, id)
	}
	for _, id := range []uint8{TileGrass, TileGrassVariantA, TileGrassVariantB} {
		if !IsGrassTile(id) {
			t.Fatalf("%d should be a grass tile", id)
		}
	}
	if IsGrassTile(TileDirt) {
		t.Fatalf("dirt is not grass")
	}
}

func TestChunkGroundAt(t *testing.T) {
	bounds := NewLayout(4, 3).ChunkBounds(ChunkCoord{I: 1, J: -1})
	chunk := NewChunk(ChunkCoord{I: 1, J: -1}, bounds)
	chunk.Ground[bounds.Index(bounds.Left+2, bounds.Bottom+1)] = TileDirt

	if id, ok := chunk.GroundAt(bounds.Left+2, bounds.Bottom+1); !ok || id != TileDirt {
		t.Fatalf("expected dirt, got %d (ok=%v)", id, ok)
	}
	if _, ok := chunk.GroundAt(bounds.Right, bounds.Bottom); ok {
		t.Fatalf("right edge is outside the chunk")
	}
}

func TestChunkAddTreeKeepsShadowsParallel(t *testing.T) {
	chunk := NewChunk(ChunkCoord{}, NewLayout(2, 2).ChunkBounds(ChunkCoord{}))
	chunk.AddTree(Tree{Type: ShrubSmallOrange, Position: mgl32.Vec3{1, 1, -0.8}, Scale: mgl32.Vec2{1, 1}}, Shadow{Position: mgl32.Vec3{1, 1, -0.9}, Size: mgl32.Vec2{1, 1}})
	chunk.AddTree(Tree{Type: ShrubLargeOrange}, Shadow{})
	if len(chunk.Trees) != 2 || len(chunk.Shadows) != 2 {
		t.Fatalf("expected parallel slices of length 2, got %d/%d", len(chunk.Trees), len(chunk.Shadows))
	}
	if chunk.Trees[0].Type.String() != "small orange shrub" {
		t.Fatalf("unexpected catalog name %q", chunk.Trees[0].Type.String())
	}
}
