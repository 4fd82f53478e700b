package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestStateBits(t *testing.T) {
	assert.Equal(t, Idle1, Idle0.WithBlink())
	assert.Equal(t, Idle0, Idle1.WithoutBlink())
	assert.Equal(t, Idle3, Idle2.WithBlink())
	assert.Equal(t, Idle2, Idle0.SwapFootTap())
	assert.Equal(t, Idle1, Idle3.SwapFootTap())
	for s := Idle0; s < stateCount; s++ {
		assert.Equal(t, s <= Idle3, s.IsIdle(), "state %d", s)
		assert.Len(t, animations[s], 8)
	}
}

func TestUpdateMovesAndMirrors(t *testing.T) {
	p := New(mgl32.Vec2{0, 0}, 1)

	p.Update(1, Input{Left: true})
	assert.InDelta(t, -MoveSpeed, p.Position.X(), 1e-6)
	assert.Equal(t, WalkLeft, p.State)
	assert.Equal(t, float32(-1), p.Size.X())

	p.Update(2, Input{Right: true, Up: true})
	assert.InDelta(t, MoveSpeed, p.Position.X(), 1e-6)
	assert.InDelta(t, 2*MoveSpeed, p.Position.Y(), 1e-6)
	assert.Equal(t, WalkUp, p.State)
	assert.Equal(t, float32(1), p.Size.X())

	p.Update(1, Input{Up: true, Down: true})
	assert.InDelta(t, 3*MoveSpeed, p.Position.Y(), 1e-6, "up wins over down")
}

func TestStateChangeResetsFrameExceptBetweenIdles(t *testing.T) {
	p := New(mgl32.Vec2{}, 1)
	p.Update(0.01, Input{Down: true})
	p.Frame = 5

	p.Update(0.01, Input{Down: true})
	assert.Equal(t, 5, p.Frame, "same state keeps its frame")

	p.Update(0.01, Input{})
	assert.Equal(t, Idle0, p.State)
	assert.Equal(t, 0, p.Frame)

	p.State = Idle3
	p.Frame = 4
	p.Update(0.01, Input{})
	assert.Equal(t, Idle3, p.State, "idle variants persist while standing")
	assert.Equal(t, 4, p.Frame)
}

func TestAnimateAdvancesEveryTenthOfASecond(t *testing.T) {
	p := New(mgl32.Vec2{}, 7)
	p.Update(0.01, Input{Right: true})

	p.Animate(0.05)
	assert.Equal(t, 0, p.Frame)
	p.Animate(0.06)
	assert.Equal(t, 1, p.Frame)
	assert.Equal(t, 1, p.Sprite())

	for i := 0; i < 7; i++ {
		p.Animate(0.11)
	}
	assert.Equal(t, 0, p.Frame, "walk cycle wraps after eight frames")
	assert.Equal(t, WalkRight, p.State, "walking never fidgets")
}

func TestIdleFidgetsOnlyAtWrap(t *testing.T) {
	p := New(mgl32.Vec2{}, 42)
	seen := map[State]bool{}
	for i := 0; i < 8*400; i++ {
		before := p.State
		p.Animate(0.11)
		if p.Frame != 0 {
			assert.Equal(t, before, p.State, "state changed mid-cycle")
		}
		assert.True(t, p.State.IsIdle())
		seen[p.State] = true
	}
	assert.Len(t, seen, 4, "all idle variants should appear over many cycles")
}
