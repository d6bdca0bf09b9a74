package formats

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML level file. Unknown keys are an error.
func ParseTOML(data []byte) (Level, error) {
	var raw RawLevel
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Level{}, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Level{}, fmt.Errorf("toml decode: unknown keys %s", strings.Join(keys, ", "))
	}
	return Convert(raw)
}
