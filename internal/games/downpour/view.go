package downpour

import (
	"math"

	"github.com/vovakirdan/downpour/internal/core"
	"github.com/vovakirdan/downpour/internal/games/downpour/sim"
)

// Projection maps the level viewport (world units, y up) onto a screen
// area (cells, y down). The axes are scaled independently so the whole
// viewport always fills the area.
type Projection struct {
	world  sim.Rect
	area   core.Rect
	sx, sy float64
}

// NewProjection maps world onto area.
func NewProjection(world sim.Rect, area core.Rect) Projection {
	p := Projection{world: world, area: area}
	if world.Width() > 0 {
		p.sx = float64(area.W) / world.Width()
	}
	if world.Height() > 0 {
		p.sy = float64(area.H) / world.Height()
	}
	return p
}

// Area returns the screen area being drawn into.
func (p Projection) Area() core.Rect {
	return p.area
}

// Point returns the cell containing world point v.
func (p Projection) Point(v sim.Vec2) (x, y int) {
	fx := (v.X - p.world.Min.X) * p.sx
	fy := (p.world.Max.Y - v.Y) * p.sy
	return p.area.X + int(math.Floor(fx)), p.area.Y + int(math.Floor(fy))
}

// Rect returns the cells covered by world rect r, clipped to the area.
// A non-empty rect always covers at least one cell so thin geometry stays
// visible.
func (p Projection) Rect(r sim.Rect) core.Rect {
	x0 := math.Floor((r.Min.X - p.world.Min.X) * p.sx)
	x1 := math.Ceil((r.Max.X - p.world.Min.X) * p.sx)
	y0 := math.Floor((p.world.Max.Y - r.Max.Y) * p.sy)
	y1 := math.Ceil((p.world.Max.Y - r.Min.Y) * p.sy)

	cells := core.NewRect(
		p.area.X+int(x0),
		p.area.Y+int(y0),
		max(1, int(x1-x0)),
		max(1, int(y1-y0)),
	)
	return cells.Intersect(p.area)
}
