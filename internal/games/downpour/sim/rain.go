package sim

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
)

// DropState is the lifecycle of a drop. Drops never return to Falling once
// they start Splashing.
type DropState int

const (
	DropFalling DropState = iota
	DropSplashing
)

// String returns a human-readable name for the state.
func (s DropState) String() string {
	switch s {
	case DropFalling:
		return "falling"
	case DropSplashing:
		return "splashing"
	default:
		return "unknown"
	}
}

// wallRunAngle is the direction of a drop sliding down the left face of a
// block: straight down, leaning slightly away from the wall.
const wallRunAngle = -math.Pi/2 - 0.05

// Drop is one rain particle. Its position is the bottom centre of the streak.
type Drop struct {
	Body     Body
	State    DropState
	Width    float64
	Height   float64
	Scale    Vec2
	Rotation float64 // radians; 0 is a vertical streak
}

// Rect returns the drop's collision box in world space.
func (d *Drop) Rect() Rect {
	w := d.Width * d.Scale.X
	h := d.Height * d.Scale.Y
	return Rect{
		Min: V(d.Body.Pos.X-w/2, d.Body.Pos.Y),
		Max: V(d.Body.Pos.X+w/2, d.Body.Pos.Y+h),
	}
}

// Direction returns the unit vector along the streak, pointing the way the
// drop is travelling.
func (d *Drop) Direction() Vec2 {
	return FromAngle(d.Rotation - math.Pi/2)
}

// Target is a solid object a drop can strike this step.
type Target struct {
	ID       EntityID
	Rect     Rect
	Listener bool // emits a HitEvent when struck
}

// Rain owns every live drop.
type Rain struct {
	drops        []Drop
	rng          *rand.Rand
	t            RainTuning
	densityScale float64
	logger       *log.Logger
}

// NewRain creates an empty rain field.
func NewRain(rng *rand.Rand, t RainTuning, logger *log.Logger) *Rain {
	return &Rain{
		drops:        make([]Drop, 0, 256),
		rng:          rng,
		t:            t,
		densityScale: 1,
		logger:       logger,
	}
}

// SetDensityScale multiplies the configured spawn density.
func (r *Rain) SetDensityScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	r.densityScale = scale
}

// Drops returns the live drops. Callers must not retain the slice.
func (r *Rain) Drops() []Drop {
	return r.drops
}

// Len returns the number of live drops.
func (r *Rain) Len() int {
	return len(r.drops)
}

// Clear removes every drop.
func (r *Rain) Clear() {
	r.drops = r.drops[:0]
}

// Add inserts a drop as-is.
func (r *Rain) Add(d Drop) {
	r.drops = append(r.drops, d)
}

// NewDrop returns a falling drop at pos moving along the configured angle.
func (r *Rain) NewDrop(pos Vec2, width float64) Drop {
	return Drop{
		Body: Body{
			Pos: pos,
			Z:   2,
			Vel: FromAngle(r.t.Angle).Scale(r.t.Speed),
		},
		State:    DropFalling,
		Width:    width,
		Height:   r.t.DropHeight,
		Scale:    V(1, 1),
		Rotation: r.t.Angle + math.Pi/2,
	}
}

// Spawn creates round(density*dt*60) drops along the top of view, spread
// slightly beyond its horizontal edges. It returns the number spawned.
func (r *Rain) Spawn(view Rect, dt float64) int {
	n := int(math.Round(r.t.Density * r.densityScale * frames(dt)))
	overscan := view.Width() * r.t.SpawnOverscan
	minX := view.Min.X - overscan
	spanX := view.Width() + 2*overscan

	for i := 0; i < n; i++ {
		x := minX + r.rng.Float64()*spanX
		width := r.t.MinWidth + r.rng.Float64()*(r.t.MaxWidth-r.t.MinWidth)
		r.drops = append(r.drops, r.NewDrop(V(x, view.Max.Y), width))
	}
	return n
}

// Advance moves every drop, resolves falling drops against targets and
// returns a hit event for each listener struck. Targets are tried in order
// and the first overlap wins.
func (r *Rain) Advance(targets []Target, dt float64) []HitEvent {
	var hits []HitEvent
	decay := math.Pow(r.t.SplashDecay, frames(dt))

	for i := range r.drops {
		d := &r.drops[i]
		d.Body.Integrate(dt)

		if d.State == DropSplashing {
			d.Scale.Y *= decay
			continue
		}

		rect := d.Rect()
		for _, target := range targets {
			side := Collide(rect, target.Rect)
			if side == CollisionNone {
				continue
			}
			r.respond(d, side, target.Rect)
			if target.Listener {
				hits = append(hits, HitEvent{Target: target.ID})
			}
			break
		}
	}
	return hits
}

// respond applies the collision response for a falling drop.
func (r *Rain) respond(d *Drop, side Collision, target Rect) {
	switch side {
	case CollisionTop, CollisionInside:
		d.State = DropSplashing
		d.Body.Pos.Y = target.Max.Y
		d.Scale.X *= 0.3 + 0.5*r.rng.Float64()

		// Wider splashes are slower.
		deviation := (r.rng.Float64()*2 - 1) * math.Pi / 2
		angle := math.Pi/2 + deviation
		speed := r.t.SplashSpeed * (0.5 + 0.5*r.rng.Float64()) * math.Cos(deviation)
		d.Body.Vel = FromAngle(angle).Scale(speed)
		d.Rotation = angle + math.Pi/2

	case CollisionLeft:
		d.Scale.X *= 0.8
		d.Body.Pos.X = target.Min.X - d.Width*d.Scale.X/2
		d.Body.Vel = FromAngle(wallRunAngle).Scale(r.t.WallSpeed)
		d.Rotation = wallRunAngle + math.Pi/2

	default:
		if r.logger != nil {
			r.logger.Debug("anomalous drop contact", "side", side, "x", d.Body.Pos.X, "y", d.Body.Pos.Y)
		}
		d.State = DropSplashing
		d.Scale.X = 0
	}
}

// Despawn removes drops that have evaporated or fallen below view by more
// than the despawn margin. It returns the number removed.
func (r *Rain) Despawn(view Rect) int {
	floor := view.Min.Y - r.t.DespawnMargin
	kept := r.drops[:0]
	for _, d := range r.drops {
		if d.Scale.Y < r.t.DespawnScale || d.Body.Pos.Y < floor {
			continue
		}
		kept = append(kept, d)
	}
	removed := len(r.drops) - len(kept)
	r.drops = kept
	return removed
}
