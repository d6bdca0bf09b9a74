package levels

import (
	"embed"
	"path"
	"strings"

	"github.com/vovakirdan/downpour/internal/games/downpour/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultID is the level played when none is chosen.
const DefaultID = "level1"

// Builtin returns the levels embedded in the binary, sorted by ID.
// The embedded files are part of the build, so a parse failure is a
// programming error and panics.
func Builtin() []Level {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		panic("levels: reading embedded levels: " + err.Error())
	}

	levels := make([]Level, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			panic("levels: reading embedded level " + e.Name() + ": " + err.Error())
		}
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			panic("levels: parsing embedded level " + e.Name() + ": " + err.Error())
		}
		levels = append(levels, Level{Level: parsed})
	}

	sortByID(levels)
	return levels
}
