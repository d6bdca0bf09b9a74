package sim

import "math"

// JumpPhase is the vertical movement mode of the player.
type JumpPhase int

const (
	Grounded JumpPhase = iota
	Jumping
	Falling
)

// String returns a human-readable name for the phase.
func (p JumpPhase) String() string {
	switch p {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case Falling:
		return "falling"
	default:
		return "unknown"
	}
}

// JumpState is the jump state machine. Power is only meaningful while
// Jumping and lies in (0, 1].
type JumpState struct {
	Phase JumpPhase
	Power float64
}

// Player is the controlled actor. Its position is the bottom centre of the
// sprite.
type Player struct {
	ID       EntityID
	Body     Body
	Collider Collider
	Jump     JumpState
	Flash    Flash
}

// newPlayer spawns a falling player at pos.
func newPlayer(id EntityID, pos Vec2, t Tuning) *Player {
	size := t.Player.Size
	return &Player{
		ID:       id,
		Body:     Body{Pos: pos, Z: 1},
		Collider: NewCollider(V(0, size.Y/2), size),
		Jump:     JumpState{Phase: Falling},
		Flash:    NewFlash(PlayerBaseColor, t.Health.FlashRate),
	}
}

// Center returns the centre of the player's collider in world space.
func (p *Player) Center() Vec2 {
	return p.Collider.WorldRect(p.Body.Pos).Center()
}

// WorldRect returns the player's collider in world space.
func (p *Player) WorldRect() Rect {
	return p.Collider.WorldRect(p.Body.Pos)
}

// HorizontalVelocity approaches intentX*XSpeed exponentially, decelerating
// faster than it accelerates. The step factor is capped at 1 so long steps
// land on the target instead of overshooting it.
func HorizontalVelocity(vx, intentX, dt float64, t PlayerTuning) float64 {
	rate := t.Acceleration
	if intentX == 0 {
		rate = t.Deceleration
	}
	target := intentX * t.XSpeed
	return vx + (target-vx)*math.Min(rate*dt, 1)
}

// VerticalVelocity advances the jump state machine by one step.
//
// Jump thrust decays multiplicatively: the harder the player keeps pushing
// up, the slower the power drains, which gives variable jump height.
func VerticalVelocity(vy, intentY float64, js JumpState, dt float64, t PlayerTuning) (float64, JumpState) {
	switch js.Phase {
	case Grounded:
		if intentY > 0 {
			return t.JumpSpeed, JumpState{Phase: Jumping, Power: 1}
		}
		return t.RestingVelocity, JumpState{Phase: Grounded}

	case Jumping:
		if intentY < 0 {
			return 0, JumpState{Phase: Falling}
		}
		loss := (0.9 - intentY*0.85) * dt
		power := js.Power * (1 - loss)
		v := vy*power + t.JumpGravity*dt
		if v >= 0 {
			return v, JumpState{Phase: Jumping, Power: power}
		}
		return v, JumpState{Phase: Falling}

	default:
		v := vy + t.FallGravity*dt
		if v < -t.FallSpeed {
			v = -t.FallSpeed
		}
		return v, JumpState{Phase: Falling}
	}
}

// Update runs the controller for one step: velocity update, position
// prediction and collision resolution against every solid block.
// It reports whether the player ended the step standing on a block.
//
// Blocks are resolved one after another against the corrected position, so a
// later block can override an earlier correction.
func (p *Player) Update(intent Vec2, blocks []Block, dt float64, t PlayerTuning) bool {
	vel := Vec2{
		X: HorizontalVelocity(p.Body.Vel.X, intent.X, dt, t),
	}
	var jump JumpState
	vel.Y, jump = VerticalVelocity(p.Body.Vel.Y, intent.Y, p.Jump, dt, t)

	pos := Body{Pos: p.Body.Pos, Vel: vel}.Predict(dt)
	local := p.Collider.Local
	onGround := false

	for _, b := range blocks {
		if !b.Collider.Solid {
			continue
		}
		block := b.Rect()
		switch Collide(p.Collider.WorldRect(pos), block) {
		case CollisionNone:
			continue
		case CollisionTop, CollisionInside:
			// Rising players pass up through platforms.
			if jump.Phase == Jumping {
				continue
			}
			vel.Y = 0
			jump = JumpState{Phase: Grounded}
			onGround = true
			pos.Y = block.Max.Y - local.Min.Y
		case CollisionBottom:
			vel.Y = 0
			pos.Y = block.Min.Y - local.Max.Y
		case CollisionLeft:
			vel.X = 0
			pos.X = block.Min.X - local.Max.X
		case CollisionRight:
			vel.X = 0
			pos.X = block.Max.X - local.Min.X
		}
	}

	// Walked off a ledge.
	if !onGround && jump.Phase == Grounded {
		jump = JumpState{Phase: Falling}
	}

	p.Body.Pos = pos
	p.Body.Vel = vel
	p.Jump = jump
	return onGround
}
