package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name searched for in the config directories.
const configFile = "downpour.yaml"

// LoadDownpour loads the Downpour configuration.
// Search order: customPath -> ~/.downpour/configs/downpour.yaml ->
// ./configs/downpour.yaml -> embedded default -> hardcoded default.
// Keys missing from a file keep their default values. Only an explicit
// customPath that cannot be read or is invalid is an error; the other
// locations are skipped when absent or invalid.
func LoadDownpour(customPath string) (DownpourConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DownpourConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DownpourConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultDownpourYAML); err == nil {
		return cfg, nil
	}
	return DefaultDownpourConfig(), nil
}

// parse decodes data over the hardcoded defaults and validates the result.
func parse(data []byte) (DownpourConfig, error) {
	cfg := DefaultDownpourConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DownpourConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return DownpourConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".downpour", "configs", filename)
}

// ApplyDownpourPreset modifies the config based on a difficulty preset.
// Easy also cheapens the shield; hard slows its recharge.
func ApplyDownpourPreset(cfg *DownpourConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Shield.Cost *= 0.75
	case DifficultyHard:
		cfg.Shield.Recharge *= 0.75
	}
}
