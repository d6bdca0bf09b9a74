package formats

import (
	"errors"
	"testing"

	"github.com/vovakirdan/downpour/internal/games/downpour/sim"
)

func TestRawRect(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawRect
		want    sim.Rect
		wantErr bool
	}{
		{"min max", RawRect{Min: []float64{-1, -2}, Max: []float64{3, 4}}, sim.RectFromMinMax(sim.V(-1, -2), sim.V(3, 4)), false},
		{"swapped corners", RawRect{Min: []float64{3, 4}, Max: []float64{-1, -2}}, sim.RectFromMinMax(sim.V(-1, -2), sim.V(3, 4)), false},
		{"center size", RawRect{Center: []float64{0, -300}, Size: []float64{2000, 200}}, sim.RectFromMinMax(sim.V(-1000, -400), sim.V(1000, -200)), false},
		{"missing max", RawRect{Min: []float64{0, 0}}, sim.Rect{}, true},
		{"short vector", RawRect{Center: []float64{0}, Size: []float64{1, 1}}, sim.Rect{}, true},
		{"negative size", RawRect{Center: []float64{0, 0}, Size: []float64{-1, 1}}, sim.Rect{}, true},
		{"empty", RawRect{}, sim.Rect{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.raw.Rect()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Rect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Rect() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestRawRectZeroArea(t *testing.T) {
	_, err := RawRect{Min: []float64{0, 0}, Max: []float64{10, 0}}.Rect()
	if !errors.Is(err, ErrEmptyRect) {
		t.Errorf("Rect() error = %v, expected ErrEmptyRect", err)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: test
spawn: [10, 20]
blocks:
  - center: [0, 0]
    size: [100, 10]
`)
	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.Name != "test" {
		t.Errorf("Name = %q, expected id fallback %q", lvl.Name, "test")
	}
	if lvl.Viewport != DefaultViewport {
		t.Errorf("Viewport = %v, expected default", lvl.Viewport)
	}
	if lvl.Spawn != sim.V(10, 20) {
		t.Errorf("Spawn = %v", lvl.Spawn)
	}

	def := lvl.Def()
	def.Blocks[0] = sim.Rect{}
	if lvl.Blocks[0] == def.Blocks[0] {
		t.Error("Def() shares the block slice")
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "id: [unterminated"},
		{"missing id", "spawn: [0, 0]\nblocks:\n  - center: [0, 0]\n    size: [1, 1]\n"},
		{"no blocks", "id: x\nspawn: [0, 0]\n"},
		{"spawn outside view", "id: x\nspawn: [5000, 0]\nblocks:\n  - center: [0, 0]\n    size: [1, 1]\n"},
		{"bad block", "id: x\nspawn: [0, 0]\nblocks:\n  - center: [0, 0]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
id = "t"
name = "Toml"
spawn = [0, 0]

[[blocks]]
min = [-10, -10]
max = [10, -5]
`)
	lvl, err := ParseTOML(data)
	if err != nil {
		t.Fatalf("ParseTOML failed: %v", err)
	}
	if lvl.Name != "Toml" || len(lvl.Blocks) != 1 {
		t.Errorf("ParseTOML() = %+v", lvl)
	}
}

func TestParseTOMLUnknownKey(t *testing.T) {
	data := []byte(`
id = "t"
spawn = [0, 0]

[[blocks]]
centre = [0, 0]
size = [1, 1]
`)
	if _, err := ParseTOML(data); err == nil {
		t.Error("expected error for unknown key")
	}
}
