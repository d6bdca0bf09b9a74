package sim

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colours of the hit-listening objects.
var (
	PlayerBaseColor = colorful.Color{R: 0, G: 0.5, B: 0.8}
	PlayerHitColor  = colorful.Color{R: 0.5, G: 0.19, B: 0.38}
	ShieldBaseColor = colorful.Color{R: 0, G: 1, B: 1}
	ShieldHitColor  = colorful.Color{R: 1, G: 1, B: 1}
)

// colorEpsilon is the per-channel difference below which two colours look
// the same on an 8-bit display.
const colorEpsilon = 1.0 / 255.0

// ColorsEqual reports whether a and b are indistinguishable per channel.
func ColorsEqual(a, b colorful.Color) bool {
	return math.Abs(a.R-b.R) < colorEpsilon &&
		math.Abs(a.G-b.G) < colorEpsilon &&
		math.Abs(a.B-b.B) < colorEpsilon
}

// Flash is the damage feedback colour of an object. After a hit it fades
// back to Base, snapping once the difference is no longer visible.
type Flash struct {
	Base    colorful.Color
	Current colorful.Color
	Rate    float64
}

// NewFlash returns a flash resting at base.
func NewFlash(base colorful.Color, rate float64) Flash {
	return Flash{Base: base, Current: base, Rate: rate}
}

// Trigger sets the colour to hit.
func (f *Flash) Trigger(hit colorful.Color) {
	f.Current = hit
}

// Active reports whether the colour differs from Base.
func (f Flash) Active() bool {
	return f.Current != f.Base
}

// Fade moves the colour one step back towards Base.
func (f *Flash) Fade(dt float64) {
	if !f.Active() {
		return
	}
	if ColorsEqual(f.Current, f.Base) {
		f.Current = f.Base
		return
	}
	f.Current = blendLinear(f.Current, f.Base, math.Min(f.Rate*dt, 1))
}

// blendLinear interpolates two colours in linear RGB, t in [0, 1].
func blendLinear(from, to colorful.Color, t float64) colorful.Color {
	r1, g1, b1 := from.LinearRgb()
	r2, g2, b2 := to.LinearRgb()
	return colorful.LinearRgb(r1+t*(r2-r1), g1+t*(g2-g1), b1+t*(b2-b1))
}

// HitEvent reports that a drop struck a hit-listening object.
type HitEvent struct {
	Target EntityID
}

// Health is the session's hit-point pool. Value stays in [0, Max].
type Health struct {
	Value int
	Max   int
}

// Reset refills the pool.
func (h *Health) Reset() {
	h.Value = h.Max
}

// Fraction returns Value/Max for bar rendering.
func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Value) / float64(h.Max)
}

// applyDamage fades every flash, then consumes the step's hit events.
// A hit on the player costs one point of health; a hit arriving at zero
// health ends the game instead. A hit on the shield only flashes it.
func (w *World) applyDamage(events []HitEvent, dt float64) (damage int, gameOver bool) {
	w.player.Flash.Fade(dt)
	w.shield.Flash.Fade(dt)

	for _, ev := range events {
		switch ev.Target {
		case w.player.ID:
			if w.health.Value > 0 {
				w.health.Value--
				damage++
				w.player.Flash.Trigger(PlayerHitColor)
			} else {
				gameOver = true
			}
		case w.shield.ID:
			w.shield.Flash.Trigger(ShieldHitColor)
		}
	}
	return damage, gameOver
}
