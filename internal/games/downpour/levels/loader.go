// Package levels provides level loading for Downpour.
// This package depends on sim but sim does not depend on levels.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/downpour/internal/games/downpour/levels/formats"
)

// Level represents a complete level definition.
type Level struct {
	formats.Level
	FilePath string // empty for built-in levels
}

// Builtin reports whether the level ships inside the binary.
func (l Level) Builtin() bool {
	return l.FilePath == ""
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			return nil
		}

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sortByID(levels)
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	return Level{Level: parsed, FilePath: path}, nil
}

// Catalog returns the built-in levels merged with the levels found under
// dir. A user level replaces a built-in level with the same ID. An empty
// dir yields only the built-in levels.
func Catalog(dir string) ([]Level, error) {
	all := Builtin()
	if dir == "" {
		return all, nil
	}

	user, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(all))
	for i, lvl := range all {
		byID[lvl.ID] = i
	}
	for _, lvl := range user {
		if i, ok := byID[lvl.ID]; ok {
			all[i] = lvl
			continue
		}
		byID[lvl.ID] = len(all)
		all = append(all, lvl)
	}

	sortByID(all)
	return all, nil
}

// Find returns the catalog level with the given ID.
func Find(dir, id string) (Level, error) {
	all, err := Catalog(dir)
	if err != nil {
		return Level{}, err
	}
	return find(all, id)
}

func find(levels []Level, id string) (Level, error) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

func sortByID(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".toml":
		return formats.ParseTOML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
