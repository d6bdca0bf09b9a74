package sim

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorsEqual(t *testing.T) {
	base := colorful.Color{R: 0.2, G: 0.4, B: 0.6}

	assert.True(t, ColorsEqual(base, base))
	assert.True(t, ColorsEqual(base, colorful.Color{R: 0.2 + 0.5/255, G: 0.4, B: 0.6}))
	assert.False(t, ColorsEqual(base, colorful.Color{R: 0.2 + 2.0/255, G: 0.4, B: 0.6}))
}

func TestBlendLinear(t *testing.T) {
	from := colorful.Color{R: 1, G: 0.2, B: 0}
	to := colorful.Color{R: 0.1, G: 0.3, B: 0.9}

	assert.True(t, ColorsEqual(from, blendLinear(from, to, 0)))
	assert.True(t, ColorsEqual(to, blendLinear(from, to, 1)))

	// Linear-light midpoints sit above the sRGB average
	mid := blendLinear(from, to, 0.5)
	assert.Greater(t, mid.R, (from.R+to.R)/2)
	assert.Less(t, mid.R, from.R)
	assert.Greater(t, mid.B, to.B/2)
	assert.Less(t, mid.B, to.B)
}

func TestFlashFadesBackToBase(t *testing.T) {
	f := NewFlash(PlayerBaseColor, DefaultFlashRate)
	assert.False(t, f.Active())

	f.Trigger(PlayerHitColor)
	require.True(t, f.Active())

	steps := 0
	for f.Active() && steps < 1000 {
		f.Fade(testDT)
		steps++
	}

	assert.False(t, f.Active(), "flash never settled")
	assert.Equal(t, PlayerBaseColor, f.Current)
	assert.Greater(t, steps, 1)
}

func TestFlashFadeMovesTowardsBase(t *testing.T) {
	f := NewFlash(ShieldBaseColor, DefaultFlashRate)
	f.Trigger(ShieldHitColor)

	before := f.Current.R - f.Base.R
	f.Fade(testDT)
	after := f.Current.R - f.Base.R

	assert.Less(t, after, before)
	assert.Greater(t, after, 0.0)
}

func TestHealthFraction(t *testing.T) {
	h := Health{Value: 25, Max: 100}
	assert.InDelta(t, 0.25, h.Fraction(), 1e-9)

	h.Reset()
	assert.Equal(t, 100, h.Value)
	assert.Equal(t, 0.0, Health{}.Fraction())
}

func TestApplyDamage(t *testing.T) {
	w := NewWorld(DefaultTuning(), nil, nil)
	w.Enter(testLevel())
	player, shield := w.Player().ID, w.Shield().ID

	damage, over := w.applyDamage([]HitEvent{{Target: player}, {Target: player}}, testDT)
	assert.Equal(t, 2, damage)
	assert.False(t, over)
	assert.Equal(t, 98, w.Health().Value)
	assert.True(t, w.Player().Flash.Active())

	damage, over = w.applyDamage([]HitEvent{{Target: shield}}, testDT)
	assert.Equal(t, 0, damage)
	assert.False(t, over)
	assert.Equal(t, 98, w.Health().Value)
	assert.Equal(t, ShieldHitColor, w.Shield().Flash.Current)
}

func TestApplyDamageAtZeroHealth(t *testing.T) {
	w := NewWorld(DefaultTuning(), nil, nil)
	w.Enter(testLevel())
	player := w.Player().ID
	w.health.Value = 1

	damage, over := w.applyDamage([]HitEvent{{Target: player}}, testDT)
	assert.Equal(t, 1, damage)
	assert.False(t, over)
	assert.Equal(t, 0, w.Health().Value)

	damage, over = w.applyDamage([]HitEvent{{Target: player}, {Target: player}}, testDT)
	assert.Equal(t, 0, damage)
	assert.True(t, over)
	assert.Equal(t, 0, w.Health().Value)

	damage, over = w.applyDamage(nil, testDT)
	assert.Equal(t, 0, damage)
	assert.False(t, over)
}

func TestApplyDamageIgnoresUnknownTargets(t *testing.T) {
	w := NewWorld(DefaultTuning(), nil, nil)
	w.Enter(testLevel())

	damage, over := w.applyDamage([]HitEvent{{Target: 9999}}, testDT)
	assert.Equal(t, 0, damage)
	assert.False(t, over)
	assert.Equal(t, 100, w.Health().Value)
}
