package stream

import (
	"github.com/go-gl/mathgl/mgl32"

	"tileworld/internal/world"
)

// Scheduler accepts generation and eviction requests. *world.Manager
// implements it.
type Scheduler interface {
	RequestGeneration(world.ChunkCoord)
	RequestEviction(world.ChunkCoord)
}

// Controller tracks the chunk the viewer is in and requests the leading
// edge of the 3x3 neighbourhood when it changes, evicting the trailing edge.
type Controller struct {
	layout world.Layout
	sched  Scheduler
	prev   world.ChunkCoord
}

func NewController(layout world.Layout, sched Scheduler) *Controller {
	return &Controller{layout: layout, sched: sched}
}

// Begin requests the full neighbourhood around the starting position.
func (c *Controller) Begin(pos mgl32.Vec2) world.ChunkCoord {
	c.prev = c.layout.Locate(pos)
	for _, coord := range c.layout.Neighborhood(c.prev) {
		c.sched.RequestGeneration(coord)
	}
	return c.prev
}

// Step updates the current chunk for a new viewer position. A horizontal
// change requests column i+di and evicts column prevI-di; a vertical change
// does the same for rows. Both run when the viewer crosses diagonally.
func (c *Controller) Step(pos mgl32.Vec2) world.ChunkCoord {
	cur := c.layout.Locate(pos)
	prev := c.prev

	if di := cur.I - prev.I; di != 0 {
		for dj := -1; dj <= 1; dj++ {
			c.sched.RequestGeneration(world.ChunkCoord{I: cur.I + di, J: cur.J + dj})
			c.sched.RequestEviction(world.ChunkCoord{I: prev.I - di, J: prev.J + dj})
		}
	}
	if dj := cur.J - prev.J; dj != 0 {
		for di := -1; di <= 1; di++ {
			c.sched.RequestGeneration(world.ChunkCoord{I: cur.I + di, J: cur.J + dj})
			c.sched.RequestEviction(world.ChunkCoord{I: prev.I + di, J: prev.J - dj})
		}
	}

	c.prev = cur
	return cur
}

// Current returns the chunk recorded by the last Begin or Step.
func (c *Controller) Current() world.ChunkCoord {
	return c.prev
}
