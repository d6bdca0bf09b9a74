package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testDT = 1.0 / 60

func groundBlock() Block {
	return Block{ID: 100, Collider: Collider{Local: RectFromCenterSize(V(0, -300), V(2000, 200)), Solid: true}}
}

func TestHorizontalVelocityConverges(t *testing.T) {
	tun := DefaultTuning().Player

	tests := []struct {
		name   string
		start  float64
		intent float64
	}{
		{"accelerate right", 0, 1},
		{"accelerate left half", 0, -0.5},
		{"reverse", 200, -1},
		{"stop", 200, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.intent * tun.XSpeed
			v := tt.start
			for i := 0; i < 600; i++ {
				next := HorizontalVelocity(v, tt.intent, testDT, tun)
				if target >= tt.start {
					assert.GreaterOrEqual(t, next, v)
					assert.LessOrEqual(t, next, target)
				} else {
					assert.LessOrEqual(t, next, v)
					assert.GreaterOrEqual(t, next, target)
				}
				v = next
			}
			assert.InDelta(t, target, v, 0.01)
		})
	}
}

func TestVerticalVelocityGrounded(t *testing.T) {
	tun := DefaultTuning().Player

	v, js := VerticalVelocity(0, 0, JumpState{Phase: Grounded}, testDT, tun)
	assert.Equal(t, tun.RestingVelocity, v)
	assert.Equal(t, Grounded, js.Phase)

	v, js = VerticalVelocity(0, 1, JumpState{Phase: Grounded}, testDT, tun)
	assert.Equal(t, tun.JumpSpeed, v)
	assert.Equal(t, JumpState{Phase: Jumping, Power: 1}, js)
}

func TestJumpMonotonicity(t *testing.T) {
	tun := DefaultTuning().Player

	v, js := VerticalVelocity(0, 1, JumpState{Phase: Grounded}, testDT, tun)
	assert.Equal(t, Jumping, js.Phase)

	steps := 0
	for js.Phase == Jumping {
		prev := js.Power
		v, js = VerticalVelocity(v, 1, js, testDT, tun)
		if js.Phase == Jumping {
			assert.Less(t, js.Power, prev)
			assert.Greater(t, js.Power, 0.0)
		}
		steps++
		if !assert.Less(t, steps, 1000, "jump never ended") {
			return
		}
	}
	assert.Equal(t, Falling, js.Phase)

	for i := 0; i < 120; i++ {
		next, nextJS := VerticalVelocity(v, 1, js, testDT, tun)
		assert.LessOrEqual(t, next, v)
		assert.GreaterOrEqual(t, next, -tun.FallSpeed)
		assert.Equal(t, Falling, nextJS.Phase)
		v, js = next, nextJS
	}
	assert.Equal(t, -tun.FallSpeed, v)
}

func TestJumpCancel(t *testing.T) {
	tun := DefaultTuning().Player
	v, js := VerticalVelocity(250, -1, JumpState{Phase: Jumping, Power: 0.8}, testDT, tun)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, JumpState{Phase: Falling}, js)
}

func TestPlayerGroundedSnap(t *testing.T) {
	tun := DefaultTuning()
	p := newPlayer(1, V(0, -199), tun)
	p.Body.Vel = V(0, -100)

	onGround := p.Update(Vec2{}, []Block{groundBlock()}, testDT, tun.Player)

	assert.True(t, onGround)
	assert.Equal(t, -200.0, p.WorldRect().Min.Y)
	assert.Equal(t, 0.0, p.Body.Vel.Y)
	assert.Equal(t, Grounded, p.Jump.Phase)
}

func TestPlayerRestsOnGround(t *testing.T) {
	tun := DefaultTuning()
	p := newPlayer(1, V(0, -200), tun)
	p.Jump = JumpState{Phase: Grounded}
	blocks := []Block{groundBlock()}

	for i := 0; i < 60; i++ {
		p.Update(Vec2{}, blocks, testDT, tun.Player)
	}

	assert.Equal(t, -200.0, p.Body.Pos.Y)
	assert.Equal(t, 0.0, p.Body.Vel.X)
	assert.GreaterOrEqual(t, p.Body.Vel.Y, -1.0)
	assert.LessOrEqual(t, p.Body.Vel.Y, 0.0)
	assert.Equal(t, Grounded, p.Jump.Phase)
}

func TestPlayerJumpsOffGround(t *testing.T) {
	tun := DefaultTuning()
	p := newPlayer(1, V(0, -200), tun)
	p.Jump = JumpState{Phase: Grounded}

	p.Update(V(0, 1), []Block{groundBlock()}, testDT, tun.Player)

	assert.Equal(t, JumpState{Phase: Jumping, Power: 1}, p.Jump)
	assert.Equal(t, tun.Player.JumpSpeed, p.Body.Vel.Y)
	assert.Greater(t, p.Body.Pos.Y, -200.0)
}

func TestPlayerWalksOffLedge(t *testing.T) {
	tun := DefaultTuning()
	p := newPlayer(1, V(1500, -200), tun)
	p.Jump = JumpState{Phase: Grounded}

	onGround := p.Update(Vec2{}, []Block{groundBlock()}, testDT, tun.Player)

	assert.False(t, onGround)
	assert.Equal(t, Falling, p.Jump.Phase)
}

func TestPlayerPassesUpThroughPlatform(t *testing.T) {
	tun := DefaultTuning()
	ledge := Block{ID: 7, Collider: Collider{Local: RectFromCenterSize(V(100, -50), V(150, 20)), Solid: true}}
	p := newPlayer(1, V(100, -60), tun)
	p.Jump = JumpState{Phase: Jumping, Power: 1}
	p.Body.Vel = V(0, 400)

	p.Update(V(0, 1), []Block{ledge}, testDT, tun.Player)

	assert.Equal(t, Jumping, p.Jump.Phase)
	assert.Greater(t, p.Body.Pos.Y, -60.0)
	assert.Less(t, p.Body.Pos.Y, -40.0)
}

func TestPlayerStopsAtWall(t *testing.T) {
	tun := DefaultTuning()
	wall := Block{ID: 8, Collider: Collider{Local: RectFromCenterSize(V(-400, 0), V(200, 100)), Solid: true}}
	p := newPlayer(1, V(-516.5, -20), tun)
	p.Body.Vel = V(200, 0)

	p.Update(V(1, 0), []Block{wall}, testDT, tun.Player)

	assert.Equal(t, -516.0, p.Body.Pos.X)
	assert.Equal(t, 0.0, p.Body.Vel.X)
	assert.Equal(t, Falling, p.Jump.Phase)
}

func TestPlayerIgnoresNonSolidBlocks(t *testing.T) {
	tun := DefaultTuning()
	ghost := groundBlock()
	ghost.Collider.Solid = false
	p := newPlayer(1, V(0, -199), tun)
	p.Body.Vel = V(0, -100)

	onGround := p.Update(Vec2{}, []Block{ghost}, testDT, tun.Player)

	assert.False(t, onGround)
	assert.Less(t, p.Body.Pos.Y, -200.0)
}

func TestHorizontalVelocityLongSteps(t *testing.T) {
	tun := DefaultTuning().Player

	for _, dt := range []float64{1.0 / 5, 1.0 / 10, 1.0 / 15, 1.0 / 20} {
		for _, c := range []struct{ start, intent float64 }{{200, 0}, {0, 1}, {-200, 1}} {
			target := c.intent * tun.XSpeed
			v := c.start
			for i := 0; i < 200; i++ {
				next := HorizontalVelocity(v, c.intent, dt, tun)
				if target >= c.start {
					assert.GreaterOrEqual(t, next, v, "dt=%v start=%v", dt, c.start)
					assert.LessOrEqual(t, next, target, "dt=%v start=%v", dt, c.start)
				} else {
					assert.LessOrEqual(t, next, v, "dt=%v start=%v", dt, c.start)
					assert.GreaterOrEqual(t, next, target, "dt=%v start=%v", dt, c.start)
				}
				v = next
			}
			assert.InDelta(t, target, v, 0.01, "dt=%v start=%v", dt, c.start)
		}
	}
}

func TestPlayerContactSides(t *testing.T) {
	tun := DefaultTuning()

	tests := []struct {
		name   string
		block  Rect
		pos    Vec2
		vel    Vec2
		intent Vec2
		jump   JumpState
		check  func(t *testing.T, p *Player)
	}{
		{
			name:  "head bump from below",
			block: RectFromCenterSize(V(100, -50), V(150, 20)),
			pos:   V(100, -95),
			vel:   V(0, 400),
			jump:  JumpState{Phase: Jumping, Power: 1},
			check: func(t *testing.T, p *Player) {
				assert.Equal(t, -60.0, p.WorldRect().Max.Y)
				assert.Equal(t, 0.0, p.Body.Vel.Y)
			},
		},
		{
			name:   "right face while moving left",
			block:  RectFromCenterSize(V(-400, 0), V(200, 100)),
			pos:    V(-283.5, -20),
			vel:    V(-200, 0),
			intent: V(-1, 0),
			jump:   JumpState{Phase: Falling},
			check: func(t *testing.T, p *Player) {
				assert.Equal(t, -300.0, p.WorldRect().Min.X)
				assert.Equal(t, 0.0, p.Body.Vel.X)
				assert.Equal(t, Falling, p.Jump.Phase)
			},
		},
		{
			name:   "left face while moving right",
			block:  RectFromCenterSize(V(-400, 0), V(200, 100)),
			pos:    V(-516.5, -20),
			vel:    V(200, 0),
			intent: V(1, 0),
			jump:   JumpState{Phase: Falling},
			check: func(t *testing.T, p *Player) {
				assert.Equal(t, -500.0, p.WorldRect().Max.X)
				assert.Equal(t, 0.0, p.Body.Vel.X)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlayer(1, tt.pos, tun)
			p.Body.Vel = tt.vel
			p.Jump = tt.jump
			block := Block{ID: 9, Collider: Collider{Local: tt.block, Solid: true}}

			onGround := p.Update(tt.intent, []Block{block}, testDT, tun.Player)

			assert.False(t, onGround)
			tt.check(t, p)
		})
	}
}
