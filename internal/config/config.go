// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/downpour/internal/games/downpour/sim"
)

// DownpourConfig contains all configuration for the Downpour game.
type DownpourConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	Shield     ShieldConfig     `yaml:"shield"`
	Rain       RainConfig       `yaml:"rain"`
	Health     HealthConfig     `yaml:"health"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines the player's movement model. Speeds are world units
// per second.
type PlayerConfig struct {
	XSpeed          float64 `yaml:"x_speed"`
	Acceleration    float64 `yaml:"acceleration"`
	Deceleration    float64 `yaml:"deceleration"`
	JumpSpeed       float64 `yaml:"jump_speed"`
	JumpGravity     float64 `yaml:"jump_gravity"`
	FallSpeed       float64 `yaml:"fall_speed"`
	FallGravity     float64 `yaml:"fall_gravity"`
	RestingVelocity float64 `yaml:"resting_velocity"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
}

// ShieldConfig defines the shield footprint and power economy.
type ShieldConfig struct {
	Size     float64 `yaml:"size"`
	Cost     float64 `yaml:"cost"`     // per 1/60 s while active
	Recharge float64 `yaml:"recharge"` // per 1/60 s while idle
}

// RainConfig defines drop spawning and splashing.
type RainConfig struct {
	Density       float64 `yaml:"density"` // drops per 1/60 s
	Speed         float64 `yaml:"speed"`
	Angle         float64 `yaml:"angle"` // radians from +x
	Height        float64 `yaml:"height"`
	MinWidth      float64 `yaml:"min_width"`
	MaxWidth      float64 `yaml:"max_width"`
	SplashDecay   float64 `yaml:"splash_decay"`
	DespawnScale  float64 `yaml:"despawn_scale"`
	DespawnMargin float64 `yaml:"despawn_margin"`
	SplashSpeed   float64 `yaml:"splash_speed"`
	WallSpeed     float64 `yaml:"wall_speed"`
	SpawnOverscan float64 `yaml:"spawn_overscan"`
}

// HealthConfig defines the health pool and the damage flash.
type HealthConfig struct {
	Max       int     `yaml:"max"`
	FlashRate float64 `yaml:"flash_rate"`
}

// InputConfig defines how terminal key events become held actions.
type InputConfig struct {
	HoldTicks int `yaml:"hold_ticks"` // ticks an action stays held after its last key event
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DensityMultiplier float64 `yaml:"density_multiplier"` // added to the rain density factor at max difficulty
}

// Tuning converts the config into simulation tuning.
func (c DownpourConfig) Tuning() sim.Tuning {
	return sim.Tuning{
		Player: sim.PlayerTuning{
			XSpeed:          c.Player.XSpeed,
			Acceleration:    c.Player.Acceleration,
			Deceleration:    c.Player.Deceleration,
			JumpSpeed:       c.Player.JumpSpeed,
			JumpGravity:     c.Player.JumpGravity,
			FallSpeed:       c.Player.FallSpeed,
			FallGravity:     c.Player.FallGravity,
			RestingVelocity: c.Player.RestingVelocity,
			Size:            sim.V(c.Player.Width, c.Player.Height),
		},
		Shield: sim.ShieldTuning{
			Size:     c.Shield.Size,
			Cost:     c.Shield.Cost,
			Recharge: c.Shield.Recharge,
		},
		Rain: sim.RainTuning{
			Density:       c.Rain.Density,
			Speed:         c.Rain.Speed,
			Angle:         c.Rain.Angle,
			DropHeight:    c.Rain.Height,
			MinWidth:      c.Rain.MinWidth,
			MaxWidth:      c.Rain.MaxWidth,
			SplashDecay:   c.Rain.SplashDecay,
			DespawnScale:  c.Rain.DespawnScale,
			DespawnMargin: c.Rain.DespawnMargin,
			SplashSpeed:   c.Rain.SplashSpeed,
			WallSpeed:     c.Rain.WallSpeed,
			SpawnOverscan: c.Rain.SpawnOverscan,
		},
		Health: sim.HealthTuning{
			Max:       c.Health.Max,
			FlashRate: c.Health.FlashRate,
		},
	}
}

// Validate reports values the simulation cannot run with.
func (c DownpourConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Player.Width > 0 && c.Player.Height > 0, "player: size must be positive, got %gx%g", c.Player.Width, c.Player.Height)
	check(c.Player.FallSpeed > 0, "player: fall_speed must be positive, got %g", c.Player.FallSpeed)
	check(c.Player.Acceleration > 0 && c.Player.Deceleration > 0, "player: acceleration and deceleration must be positive")
	check(c.Shield.Size > 0, "shield: size must be positive, got %g", c.Shield.Size)
	check(c.Shield.Cost >= 0 && c.Shield.Recharge >= 0, "shield: cost and recharge must not be negative")
	check(c.Rain.Density >= 0, "rain: density must not be negative, got %g", c.Rain.Density)
	check(c.Rain.Speed > 0, "rain: speed must be positive, got %g", c.Rain.Speed)
	check(c.Rain.MinWidth > 0 && c.Rain.MaxWidth >= c.Rain.MinWidth, "rain: need 0 < min_width <= max_width")
	check(c.Rain.SplashDecay > 0 && c.Rain.SplashDecay < 1, "rain: splash_decay must be in (0, 1), got %g", c.Rain.SplashDecay)
	check(c.Rain.DespawnScale > 0 && c.Rain.DespawnScale < 1, "rain: despawn_scale must be in (0, 1), got %g", c.Rain.DespawnScale)
	check(c.Health.Max > 0, "health: max must be positive, got %d", c.Health.Max)
	check(c.Health.FlashRate >= 0, "health: flash_rate must not be negative, got %g", c.Health.FlashRate)
	check(c.Input.HoldTicks > 0, "input: hold_ticks must be positive, got %d", c.Input.HoldTicks)

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
