package config

import (
	_ "embed"

	"github.com/vovakirdan/downpour/internal/games/downpour/sim"
)

//go:embed defaults/downpour.yaml
var defaultDownpourYAML []byte

// DefaultDownpourConfig returns the hardcoded Downpour configuration.
func DefaultDownpourConfig() DownpourConfig {
	return DownpourConfig{
		Player: PlayerConfig{
			XSpeed:          sim.DefaultXSpeed,
			Acceleration:    sim.DefaultAccelerationX,
			Deceleration:    sim.DefaultDecelerationX,
			JumpSpeed:       sim.DefaultJumpSpeed,
			JumpGravity:     sim.DefaultJumpGravity,
			FallSpeed:       sim.DefaultFallSpeed,
			FallGravity:     sim.DefaultFallGravity,
			RestingVelocity: sim.DefaultRestingVelocity,
			Width:           sim.DefaultPlayerSize,
			Height:          sim.DefaultPlayerSize,
		},
		Shield: ShieldConfig{
			Size:     sim.DefaultShieldSize,
			Cost:     sim.DefaultShieldCost,
			Recharge: sim.DefaultShieldRecharge,
		},
		Rain: RainConfig{
			Density:       sim.DefaultRainDensity,
			Speed:         sim.DefaultRainSpeed,
			Angle:         sim.DefaultRainAngle,
			Height:        sim.DefaultDropHeight,
			MinWidth:      sim.DefaultDropMinWidth,
			MaxWidth:      sim.DefaultDropMaxWidth,
			SplashDecay:   sim.DefaultSplashDecay,
			DespawnScale:  sim.DefaultDespawnScale,
			DespawnMargin: sim.DefaultDespawnMargin,
			SplashSpeed:   sim.DefaultSplashSpeed,
			WallSpeed:     sim.DefaultWallSpeed,
			SpawnOverscan: sim.DefaultSpawnOverscan,
		},
		Health: HealthConfig{
			Max:       sim.DefaultMaxHealth,
			FlashRate: sim.DefaultFlashRate,
		},
		Input: InputConfig{
			HoldTicks: 6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 7200,
			},
			Scaling: ScalingConfig{
				DensityMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDownpourYAML
}
