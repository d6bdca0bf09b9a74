package sim

import "math"

// Reference tuning. Rates are expressed per second unless noted; the shield
// cost and recharge are per 1/60 s and are rescaled by the actual step.
const (
	DefaultXSpeed          = 200.0
	DefaultAccelerationX   = 10.0
	DefaultDecelerationX   = 15.0
	DefaultJumpSpeed       = 400.0
	DefaultJumpGravity     = -1000.0
	DefaultFallSpeed       = 400.0
	DefaultFallGravity     = -1000.0
	DefaultRestingVelocity = -1.0
	DefaultPlayerSize      = 32.0

	DefaultShieldSize     = 64.0
	DefaultShieldCost     = 0.03
	DefaultShieldRecharge = 0.02

	DefaultRainDensity   = 3.0
	DefaultRainSpeed     = 800.0
	DefaultDropHeight    = 16.0
	DefaultDropMinWidth  = 1.0
	DefaultDropMaxWidth  = 3.0
	DefaultSplashDecay   = 0.5
	DefaultDespawnScale  = 0.1
	DefaultDespawnMargin = 50.0
	DefaultSplashSpeed   = 250.0
	DefaultWallSpeed     = 1000.0
	DefaultSpawnOverscan = 0.1
	DefaultMaxHealth     = 100
	DefaultFlashRate     = 3.0
)

// baselineStepsPerSecond is the step rate that per-frame rates are quoted at.
const baselineStepsPerSecond = 60.0

// DefaultRainAngle is the falling direction: mostly down, drifting right.
var DefaultRainAngle = math.Atan2(-800, 50)

// Tuning holds every constant the simulation reads.
type Tuning struct {
	Player PlayerTuning
	Shield ShieldTuning
	Rain   RainTuning
	Health HealthTuning
}

// PlayerTuning drives the kinematic controller.
type PlayerTuning struct {
	XSpeed          float64
	Acceleration    float64
	Deceleration    float64
	JumpSpeed       float64
	JumpGravity     float64
	FallSpeed       float64
	FallGravity     float64
	RestingVelocity float64
	Size            Vec2
}

// ShieldTuning sets the shield's footprint and power economy.
type ShieldTuning struct {
	Size     float64
	Cost     float64 // power spent per 1/60 s while active
	Recharge float64 // power regained per 1/60 s while idle
}

// RainTuning shapes drop spawning and splash response.
type RainTuning struct {
	Density       float64 // drops per 1/60 s
	Speed         float64
	Angle         float64 // radians from +X
	DropHeight    float64
	MinWidth      float64
	MaxWidth      float64
	SplashDecay   float64 // vertical scale factor per 1/60 s once splashing
	DespawnScale  float64
	DespawnMargin float64
	SplashSpeed   float64
	WallSpeed     float64
	SpawnOverscan float64 // fraction of the view width added on each side
}

// HealthTuning bounds the health pool and the flash fade.
type HealthTuning struct {
	Max       int
	FlashRate float64
}

// DefaultTuning returns the reference tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Player: PlayerTuning{
			XSpeed:          DefaultXSpeed,
			Acceleration:    DefaultAccelerationX,
			Deceleration:    DefaultDecelerationX,
			JumpSpeed:       DefaultJumpSpeed,
			JumpGravity:     DefaultJumpGravity,
			FallSpeed:       DefaultFallSpeed,
			FallGravity:     DefaultFallGravity,
			RestingVelocity: DefaultRestingVelocity,
			Size:            V(DefaultPlayerSize, DefaultPlayerSize),
		},
		Shield: ShieldTuning{
			Size:     DefaultShieldSize,
			Cost:     DefaultShieldCost,
			Recharge: DefaultShieldRecharge,
		},
		Rain: RainTuning{
			Density:       DefaultRainDensity,
			Speed:         DefaultRainSpeed,
			Angle:         DefaultRainAngle,
			DropHeight:    DefaultDropHeight,
			MinWidth:      DefaultDropMinWidth,
			MaxWidth:      DefaultDropMaxWidth,
			SplashDecay:   DefaultSplashDecay,
			DespawnScale:  DefaultDespawnScale,
			DespawnMargin: DefaultDespawnMargin,
			SplashSpeed:   DefaultSplashSpeed,
			WallSpeed:     DefaultWallSpeed,
			SpawnOverscan: DefaultSpawnOverscan,
		},
		Health: HealthTuning{
			Max:       DefaultMaxHealth,
			FlashRate: DefaultFlashRate,
		},
	}
}

// frames converts a step duration to 1/60 s units.
func frames(dt float64) float64 {
	return dt * baselineStepsPerSecond
}
