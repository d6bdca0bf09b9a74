package sim

// EntityID identifies an object in the world. Hit events carry the ID of the
// object that was struck. Zero is never assigned.
type EntityID uint32

// Collider is an object's collision box in its local space.
// A non-solid collider stays attached to its owner but is skipped by every
// collision query.
type Collider struct {
	Local Rect
	Solid bool
}

// NewCollider returns a solid collider centred on center with the given size.
func NewCollider(center, size Vec2) Collider {
	return Collider{Local: RectFromCenterSize(center, size), Solid: true}
}

// WorldRect returns the collider translated to the owner's world position.
func (c Collider) WorldRect(pos Vec2) Rect {
	return c.Local.Translate(pos)
}

// Body is the kinematic state of a movable object.
// Z orders drawing and never changes during simulation.
type Body struct {
	Pos Vec2
	Z   float64
	Vel Vec2
}

// Integrate advances the position by one step of the current velocity.
func (b *Body) Integrate(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// Predict returns where the body would be after dt without moving it.
func (b Body) Predict(dt float64) Vec2 {
	return b.Pos.Add(b.Vel.Scale(dt))
}
