package stream

import (
	"github.com/go-gl/mathgl/mgl32"

	"tileworld/internal/world"
)

// Depth of the ground layer; sprites sit between it and the camera.
const groundDepth = -0.99

// Renderer receives draw calls for one frame. Implementations live outside
// this module (a GPU batch renderer, a test recorder, a headless counter).
type Renderer interface {
	DrawGround(pos mgl32.Vec3, tile uint8)
	DrawShadow(pos mgl32.Vec3, size mgl32.Vec2)
	DrawTree(pos mgl32.Vec3, size mgl32.Vec2, kind world.TreeType)
}

// DrawStats counts the calls issued by Frame.Draw.
type DrawStats struct {
	Ground  int
	Shadows int
	Trees   int
}

// Frame is the read handle for one frame: the viewer's current chunk and the
// tiles around the viewer that must be drawn. The zero Frame reads nothing.
type Frame struct {
	Coord    world.ChunkCoord
	Chunk    world.Rect
	Viewport world.Rect

	layout  world.Layout
	manager *world.Manager
}

// Read calls fn with the current chunk under the coordination lock. It
// reports false, without calling fn, if the chunk is not resident yet.
func (f Frame) Read(fn func(*world.Chunk)) bool {
	if f.manager == nil {
		return false
	}
	found := false
	f.manager.View(func(v world.View) {
		chunk, ok := v.Chunk(f.Coord)
		if !ok {
			return
		}
		found = true
		fn(chunk)
	})
	return found
}

// Draw issues ground tiles for the viewport interior, then every shadow, then
// every tree of the current chunk.
func (f Frame) Draw(r Renderer) (DrawStats, bool) {
	var stats DrawStats
	ok := f.Read(func(chunk *world.Chunk) {
		left, bottom := f.Viewport.Left, f.Viewport.Bottom
		for y := bottom + 1; y < bottom+f.layout.ViewportHeight; y++ {
			for x := left + 1; x < left+f.layout.ViewportWidth; x++ {
				tile, ok := chunk.GroundAt(x, y)
				if !ok {
					continue
				}
				r.DrawGround(mgl32.Vec3{float32(x) - 0.5, float32(y) - 0.5, groundDepth}, tile)
				stats.Ground++
			}
		}
		for _, shadow := range chunk.Shadows {
			r.DrawShadow(shadow.Position, shadow.Size)
			stats.Shadows++
		}
		for _, tree := range chunk.Trees {
			r.DrawTree(tree.Position, tree.Scale, tree.Type)
			stats.Trees++
		}
	})
	return stats, ok
}

// PlayerDepth places a sprite standing at y among the trees of the current
// chunk.
func (f Frame) PlayerDepth(y float32) float32 {
	return (float32(f.Chunk.Top)-y+0.3)/float32(f.layout.ChunkHeight)/10 - 0.8
}
