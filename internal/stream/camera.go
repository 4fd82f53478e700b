// Package stream decides which chunks must be resident as the viewer moves
// and exposes the frame-facing API of the tile world.
package stream

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"tileworld/internal/config"
	"tileworld/internal/world"
)

// Camera is an orthographic camera: Zoom is the half height of the view in
// world units and Aspect is width over height.
type Camera struct {
	Aspect float64
	Zoom   float64
}

func NewCamera(cfg config.ViewportConfig) Camera {
	return Camera{Aspect: cfg.Aspect, Zoom: cfg.Zoom}
}

// ViewportAt returns the tile rectangle that must be drawn around pos,
// padded by one tile horizontally and two vertically for tall sprites.
func (c Camera) ViewportAt(pos mgl32.Vec2) world.Rect {
	px, py := float64(pos.X()), float64(pos.Y())
	return world.Rect{
		Left:   int(math.Floor(-c.Aspect*c.Zoom + px - 1)),
		Right:  int(math.Ceil(c.Aspect*c.Zoom + px + 1)),
		Bottom: int(math.Floor(-c.Zoom + py - 2)),
		Top:    int(math.Ceil(c.Zoom + py + 2)),
	}
}

// Layout derives the session chunk layout from the viewport at the origin.
func (c Camera) Layout() world.Layout {
	vp := c.ViewportAt(mgl32.Vec2{})
	return world.NewLayout(vp.Width(), vp.Height())
}
