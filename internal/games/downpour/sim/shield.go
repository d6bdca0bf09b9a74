package sim

// Shield is a deflector attached to the player. It never leaves the world
// while gameplay runs; switching it off clears its collider's Solid flag.
type Shield struct {
	ID       EntityID
	Owner    *Player
	Offset   Vec2 // from the owner's position
	Z        float64
	Collider Collider
	Visible  bool
	Flash    Flash
}

// newShield attaches a hidden, non-solid shield centred on the owner.
func newShield(id EntityID, owner *Player, t Tuning) *Shield {
	size := V(t.Shield.Size, t.Shield.Size)
	c := NewCollider(Vec2{}, size)
	c.Solid = false
	return &Shield{
		ID:       id,
		Owner:    owner,
		Offset:   owner.Collider.Local.Center(),
		Z:        -10,
		Collider: c,
		Flash:    NewFlash(ShieldBaseColor, t.Health.FlashRate),
	}
}

// Pos returns the shield's world position.
func (s *Shield) Pos() Vec2 {
	return s.Owner.Body.Pos.Add(s.Offset)
}

// WorldRect returns the shield's collider in world space.
func (s *Shield) WorldRect() Rect {
	return s.Collider.WorldRect(s.Pos())
}

// Update switches the shield for this step and settles the power budget.
// Cost and recharge are quoted per 1/60 s and scaled by dt. Activation is
// refused while the budget cannot cover one step. power stays in [0, 1].
func (s *Shield) Update(activate bool, power *float64, dt float64, t ShieldTuning) {
	cost := t.Cost * frames(dt)
	recharge := t.Recharge * frames(dt)

	if activate && *power >= cost {
		*power -= cost
		s.Collider.Solid = true
		s.Visible = true
	} else {
		s.Collider.Solid = false
		s.Visible = false
	}

	if !activate && *power < 1 {
		*power += recharge
		if *power > 1 {
			*power = 1
		}
	}
}
