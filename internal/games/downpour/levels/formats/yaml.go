package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var raw RawLevel
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return Convert(raw)
}
