package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShieldFollowsOwner(t *testing.T) {
	tun := DefaultTuning()
	p := newPlayer(1, V(10, 20), tun)
	s := newShield(2, p, tun)

	assert.Equal(t, V(10, 36), s.Pos())
	assert.False(t, s.Collider.Solid)

	p.Body.Pos = V(-50, 0)
	r := s.WorldRect()
	assert.Equal(t, V(-82, -16), r.Min)
	assert.Equal(t, V(-18, 48), r.Max)
}

func TestShieldUpdate(t *testing.T) {
	tun := DefaultTuning()

	tests := []struct {
		name      string
		power     float64
		activate  bool
		wantSolid bool
		wantPower float64
	}{
		{"active with full power", 1, true, true, 0.97},
		{"active with exact cost", 0.03, true, true, 0},
		{"refused below cost", 0.02, true, false, 0.02},
		{"idle recharges", 0.5, false, false, 0.52},
		{"recharge clamps at one", 0.99, false, false, 1},
		{"idle at full stays full", 1, false, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlayer(1, Vec2{}, tun)
			s := newShield(2, p, tun)
			power := tt.power

			s.Update(tt.activate, &power, testDT, tun.Shield)

			assert.Equal(t, tt.wantSolid, s.Collider.Solid)
			assert.Equal(t, tt.wantSolid, s.Visible)
			assert.InDelta(t, tt.wantPower, power, 1e-9)
			assert.GreaterOrEqual(t, power, 0.0)
			assert.LessOrEqual(t, power, 1.0)
		})
	}
}

func TestShieldDrainsThenRefuses(t *testing.T) {
	tun := DefaultTuning()
	p := newPlayer(1, Vec2{}, tun)
	s := newShield(2, p, tun)
	power := 1.0

	active := 0
	for i := 0; i < 100; i++ {
		s.Update(true, &power, testDT, tun.Shield)
		if s.Collider.Solid {
			active++
		}
	}

	assert.Equal(t, 33, active)
	assert.False(t, s.Collider.Solid)
	assert.Less(t, power, tun.Shield.Cost)
}
