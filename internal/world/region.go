package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord identifies a chunk in chunk space. Chunk (0,0) is centred on the
// world origin.
type ChunkCoord struct {
	I int
	J int
}

// Less orders coordinates lexicographically, I first. Pending work is always
// served in this order.
func (c ChunkCoord) Less(o ChunkCoord) bool {
	if c.I != o.I {
		return c.I < o.I
	}
	return c.J < o.J
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.I, c.J)
}

// Rect is a half-open rectangle of integer tile coordinates:
// Left <= x < Right, Bottom <= y < Top.
type Rect struct {
	Left   int
	Bottom int
	Right  int
	Top    int
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Top - r.Bottom }

func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Bottom && y < r.Top
}

// Index maps a world tile coordinate inside r to its row-major offset.
func (r Rect) Index(x, y int) int {
	return (y-r.Bottom)*r.Width() + (x - r.Left)
}

// Layout fixes the chunk and viewport dimensions in tiles for the lifetime of
// a session. Chunks are twice the viewport on each axis so neighbouring chunk
// regions overlap by one viewport.
type Layout struct {
	ChunkWidth     int
	ChunkHeight    int
	ViewportWidth  int
	ViewportHeight int
}

// NewLayout derives chunk dimensions from a viewport size.
func NewLayout(viewportWidth, viewportHeight int) Layout {
	return Layout{
		ChunkWidth:     2 * viewportWidth,
		ChunkHeight:    2 * viewportHeight,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
}

func (l Layout) Validate() error {
	if l.ViewportWidth <= 0 || l.ViewportHeight <= 0 {
		return fmt.Errorf("viewport %dx%d must be positive", l.ViewportWidth, l.ViewportHeight)
	}
	if l.ChunkWidth <= l.ViewportWidth || l.ChunkHeight <= l.ViewportHeight {
		return fmt.Errorf("chunk %dx%d must exceed viewport %dx%d", l.ChunkWidth, l.ChunkHeight, l.ViewportWidth, l.ViewportHeight)
	}
	return nil
}

// Stride is the distance in tiles between the origins of adjacent chunks.
func (l Layout) Stride() (x, y int) {
	return l.ChunkWidth - l.ViewportWidth, l.ChunkHeight - l.ViewportHeight
}

// ChunkBounds returns the tile rectangle covered by a chunk.
func (l Layout) ChunkBounds(c ChunkCoord) Rect {
	sx, sy := l.Stride()
	left := c.I*sx - l.ChunkWidth/2
	bottom := c.J*sy - l.ChunkHeight/2
	return Rect{
		Left:   left,
		Bottom: bottom,
		Right:  left + l.ChunkWidth,
		Top:    bottom + l.ChunkHeight,
	}
}

// Locate returns the chunk whose centre is nearest to a world position.
// Halves round away from zero.
func (l Layout) Locate(pos mgl32.Vec2) ChunkCoord {
	sx, sy := l.Stride()
	return ChunkCoord{
		I: int(math.Round(float64(pos.X()) / float64(sx))),
		J: int(math.Round(float64(pos.Y()) / float64(sy))),
	}
}

// Neighborhood lists the 3x3 block of chunks centred on c, row by row.
func (l Layout) Neighborhood(c ChunkCoord) []ChunkCoord {
	out := make([]ChunkCoord, 0, 9)
	for j := c.J - 1; j <= c.J+1; j++ {
		for i := c.I - 1; i <= c.I+1; i++ {
			out = append(out, ChunkCoord{I: i, J: j})
		}
	}
	return out
}
