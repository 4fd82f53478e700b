// Package player animates and moves the viewer's avatar.
package player

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// State selects an animation. The four idle states combine a blink bit and a
// foot-tap bit.
type State uint8

const (
	Idle0 State = iota
	Idle1       // blinking
	Idle2       // tapping foot
	Idle3       // blinking and tapping foot
	WalkLeft
	WalkRight
	WalkUp
	WalkDown

	stateCount
)

const (
	blinkBit   State = 1
	footTapBit State = 2
)

func (s State) IsIdle() bool { return s <= Idle3 }

func (s State) WithBlink() State    { return s | blinkBit }
func (s State) WithoutBlink() State { return s &^ blinkBit }
func (s State) SwapFootTap() State  { return s ^ footTapBit }

func (s State) String() string {
	switch s {
	case Idle0, Idle1, Idle2, Idle3:
		return "idle"
	case WalkLeft:
		return "walk-left"
	case WalkRight:
		return "walk-right"
	case WalkUp:
		return "walk-up"
	case WalkDown:
		return "walk-down"
	}
	return "unknown"
}

// animations lists sprite indices per state, eight frames each.
var animations = [stateCount][]int{
	Idle0:     {8, 8, 8, 8, 8, 8, 8, 8},
	Idle1:     {8, 9, 10, 9, 8, 8, 8, 8},
	Idle2:     {12, 12, 13, 13, 12, 12, 13, 13},
	Idle3:     {12, 14, 15, 11, 12, 12, 13, 13},
	WalkLeft:  {0, 1, 2, 3, 4, 5, 6, 7},
	WalkRight: {0, 1, 2, 3, 4, 5, 6, 7},
	WalkUp:    {24, 25, 26, 27, 28, 29, 30, 31},
	WalkDown:  {16, 17, 18, 19, 20, 21, 22, 23},
}

const (
	MoveSpeed     = 1.5 // world units per second
	frameInterval = 0.1 // seconds per animation frame
	blinkChance   = 0.25
	footTapChance = 1.0 / 8.0
)

// Input is the set of movement keys held this frame.
type Input struct {
	Left, Right, Up, Down bool
}

type Player struct {
	Position mgl32.Vec2
	Size     mgl32.Vec2 // negative width mirrors the sprite
	State    State
	Frame    int

	acc float32
	rng *rand.Rand
}

// New places a player at pos. seed drives idle fidgeting.
func New(pos mgl32.Vec2, seed uint64) *Player {
	return &Player{
		Position: pos,
		Size:     mgl32.Vec2{1, 1},
		State:    Idle0,
		rng:      rand.New(rand.NewPCG(seed, seed^0x5deece66d)),
	}
}

// Update moves the player for dt seconds. Left wins over right and up over
// down; vertical movement decides the animation when both axes move.
func (p *Player) Update(dt float32, in Input) {
	step := dt * MoveSpeed
	next := Idle0
	switch {
	case in.Left:
		p.Position[0] -= step
		p.Size = mgl32.Vec2{-1, 1}
		next = WalkLeft
	case in.Right:
		p.Position[0] += step
		p.Size = mgl32.Vec2{1, 1}
		next = WalkRight
	}
	switch {
	case in.Up:
		p.Position[1] += step
		next = WalkUp
	case in.Down:
		p.Position[1] -= step
		next = WalkDown
	}

	// Idle variants persist while standing still.
	if next != p.State && (!next.IsIdle() || !p.State.IsIdle()) {
		p.State = next
		p.Frame = 0
	}
}

// Animate advances the animation clock by dt seconds. Each time an idle
// animation wraps, the player may start or stop blinking and toggle foot
// tapping.
func (p *Player) Animate(dt float32) {
	p.acc += dt
	if p.acc <= frameInterval {
		return
	}
	p.acc = 0
	p.Frame = (p.Frame + 1) % len(animations[p.State])
	if !p.State.IsIdle() || p.Frame != 0 {
		return
	}
	if p.rng.Float32() < blinkChance {
		p.State = p.State.WithBlink()
	} else {
		p.State = p.State.WithoutBlink()
	}
	if p.rng.Float32() < footTapChance {
		p.State = p.State.SwapFootTap()
	}
}

// Sprite returns the sprite index for the current frame.
func (p *Player) Sprite() int {
	return animations[p.State][p.Frame]
}
