// Package sim is the movement and collision core of Downpour: the player's
// kinematic controller, the AABB resolver against level geometry, the rain
// drop simulation and the damage bookkeeping that ties them together.
//
// World space is y-up with the origin at the centre of the level. The package
// has no terminal or storage dependencies; the arcade adapter owns those.
package sim

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// FromAngle returns the unit vector pointing at angle radians from +X.
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Rect is an axis-aligned rectangle stored as its min and max corners.
type Rect struct {
	Min, Max Vec2
}

// RectFromMinMax builds a rect from two corners in any order.
func RectFromMinMax(a, b Vec2) Rect {
	return Rect{
		Min: Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// RectFromCenterSize builds a rect centred on c with the given size.
func RectFromCenterSize(c, size Vec2) Rect {
	half := size.Scale(0.5)
	return Rect{Min: c.Sub(half), Max: c.Add(half)}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Size returns the rect's dimensions.
func (r Rect) Size() Vec2 {
	return Vec2{X: r.Width(), Y: r.Height()}
}

// Center returns the centre point.
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Translate returns the rect moved by offset.
func (r Rect) Translate(offset Vec2) Rect {
	return Rect{Min: r.Min.Add(offset), Max: r.Max.Add(offset)}
}

// Overlaps reports whether the interiors of r and o intersect.
// Rects that only share an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && r.Max.X > o.Min.X &&
		r.Min.Y < o.Max.Y && r.Max.Y > o.Min.Y
}

// Contains reports whether p lies inside r (min inclusive, max exclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Collision names the side of the target rect that a moving rect struck.
// Top means the mover sits on top of the target.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionTop
	CollisionInside
	CollisionBottom
	CollisionLeft
	CollisionRight
)

// String returns a human-readable name for the collision side.
func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionTop:
		return "top"
	case CollisionInside:
		return "inside"
	case CollisionBottom:
		return "bottom"
	case CollisionLeft:
		return "left"
	case CollisionRight:
		return "right"
	default:
		return "unknown"
	}
}

// Collide classifies how mover a overlaps target b.
//
// Each axis is classified on its own: the mover straddles the target's near
// edge (Left/Bottom), its far edge (Right/Top), or neither (Inside, infinite
// depth). The axis with the shallower penetration decides the result, and on
// equal depth the vertical axis wins.
func Collide(a, b Rect) Collision {
	if !a.Overlaps(b) {
		return CollisionNone
	}

	xSide, xDepth := CollisionInside, math.Inf(1)
	switch {
	case a.Min.X < b.Min.X && a.Max.X > b.Min.X && a.Max.X < b.Max.X:
		xSide, xDepth = CollisionLeft, a.Max.X-b.Min.X
	case a.Min.X > b.Min.X && a.Min.X < b.Max.X && a.Max.X > b.Max.X:
		xSide, xDepth = CollisionRight, b.Max.X-a.Min.X
	}

	ySide, yDepth := CollisionInside, math.Inf(1)
	switch {
	case a.Min.Y < b.Min.Y && a.Max.Y > b.Min.Y && a.Max.Y < b.Max.Y:
		ySide, yDepth = CollisionBottom, a.Max.Y-b.Min.Y
	case a.Min.Y > b.Min.Y && a.Min.Y < b.Max.Y && a.Max.Y > b.Max.Y:
		ySide, yDepth = CollisionTop, b.Max.Y-a.Min.Y
	}

	if yDepth <= xDepth {
		return ySide
	}
	return xSide
}
