// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/downpour/internal/games/downpour/sim"
)

// DefaultViewport is the visible area used when a level does not set one:
// a 1920x1080 camera centred on the origin.
var DefaultViewport = sim.RectFromMinMax(sim.V(-960, -540), sim.V(960, 540))

// RawRect is a rectangle as written in a level file. Either Min/Max or
// Center/Size must be given.
type RawRect struct {
	Min    []float64 `yaml:"min,omitempty" toml:"min,omitempty"`
	Max    []float64 `yaml:"max,omitempty" toml:"max,omitempty"`
	Center []float64 `yaml:"center,omitempty" toml:"center,omitempty"`
	Size   []float64 `yaml:"size,omitempty" toml:"size,omitempty"`
}

// RawLevel is the on-disk level structure shared by every format.
type RawLevel struct {
	ID       string            `yaml:"id" toml:"id"`
	Name     string            `yaml:"name" toml:"name"`
	Viewport *RawRect          `yaml:"viewport,omitempty" toml:"viewport,omitempty"`
	Spawn    []float64         `yaml:"spawn" toml:"spawn"`
	Blocks   []RawRect         `yaml:"blocks" toml:"blocks"`
	Metadata map[string]string `yaml:"metadata,omitempty" toml:"metadata,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Viewport sim.Rect
	Spawn    sim.Vec2
	Blocks   []sim.Rect
	Metadata map[string]string
}

// ErrEmptyRect is returned for a rect with no area.
var ErrEmptyRect = errors.New("rect has no area")

func vec(field string, v []float64) (sim.Vec2, error) {
	if len(v) != 2 {
		return sim.Vec2{}, fmt.Errorf("%s: expected [x, y], got %d values", field, len(v))
	}
	return sim.V(v[0], v[1]), nil
}

// Rect converts r to a world rect.
func (r RawRect) Rect() (sim.Rect, error) {
	var out sim.Rect
	switch {
	case r.Min != nil || r.Max != nil:
		lo, err := vec("min", r.Min)
		if err != nil {
			return sim.Rect{}, err
		}
		hi, err := vec("max", r.Max)
		if err != nil {
			return sim.Rect{}, err
		}
		out = sim.RectFromMinMax(lo, hi)
	case r.Center != nil || r.Size != nil:
		c, err := vec("center", r.Center)
		if err != nil {
			return sim.Rect{}, err
		}
		s, err := vec("size", r.Size)
		if err != nil {
			return sim.Rect{}, err
		}
		if s.X < 0 || s.Y < 0 {
			return sim.Rect{}, fmt.Errorf("size: negative extent %v", s)
		}
		out = sim.RectFromCenterSize(c, s)
	default:
		return sim.Rect{}, errors.New("rect needs min/max or center/size")
	}

	if out.Width() <= 0 || out.Height() <= 0 {
		return sim.Rect{}, ErrEmptyRect
	}
	return out, nil
}

// Convert validates raw and turns it into a Level.
func Convert(raw RawLevel) (Level, error) {
	if raw.ID == "" {
		return Level{}, errors.New("missing id")
	}

	level := Level{
		ID:       raw.ID,
		Name:     raw.Name,
		Viewport: DefaultViewport,
		Metadata: raw.Metadata,
	}
	if level.Name == "" {
		level.Name = raw.ID
	}

	if raw.Viewport != nil {
		vp, err := raw.Viewport.Rect()
		if err != nil {
			return Level{}, fmt.Errorf("viewport: %w", err)
		}
		level.Viewport = vp
	}

	spawn, err := vec("spawn", raw.Spawn)
	if err != nil {
		return Level{}, err
	}
	if !level.Viewport.Contains(spawn) {
		return Level{}, fmt.Errorf("spawn %v outside viewport", spawn)
	}
	level.Spawn = spawn

	if len(raw.Blocks) == 0 {
		return Level{}, errors.New("level has no blocks")
	}
	level.Blocks = make([]sim.Rect, 0, len(raw.Blocks))
	for i, b := range raw.Blocks {
		r, err := b.Rect()
		if err != nil {
			return Level{}, fmt.Errorf("block %d: %w", i, err)
		}
		level.Blocks = append(level.Blocks, r)
	}

	return level, nil
}

// Def returns the simulation's view of the level.
func (l Level) Def() sim.LevelDef {
	blocks := make([]sim.Rect, len(l.Blocks))
	copy(blocks, l.Blocks)
	return sim.LevelDef{
		ID:       l.ID,
		Name:     l.Name,
		Viewport: l.Viewport,
		Spawn:    l.Spawn,
		Blocks:   blocks,
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}
