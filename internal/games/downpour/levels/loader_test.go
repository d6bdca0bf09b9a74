package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/downpour/internal/games/downpour/sim"
)

const testdataDir = "testdata/levels"

func ids(levels []Level) []string {
	out := make([]string, len(levels))
	for i, lvl := range levels {
		out[i] = lvl.ID
	}
	return out
}

func TestLoaderLoadAll(t *testing.T) {
	lvls, err := NewLoader(testdataDir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// broken.yaml and notes.txt are skipped
	got := ids(lvls)
	expected := []string{"alley", "courtyard"}
	if len(got) != len(expected) {
		t.Fatalf("LoadAll() ids = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("LoadAll()[%d] = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestLoaderLoadTOML(t *testing.T) {
	lvl, err := Find(testdataDir, "courtyard")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if lvl.Name != "Courtyard" {
		t.Errorf("Name = %q, expected %q", lvl.Name, "Courtyard")
	}
	if lvl.Builtin() {
		t.Error("file level reported as built-in")
	}
	if lvl.Viewport != sim.RectFromMinMax(sim.V(-480, -270), sim.V(480, 270)) {
		t.Errorf("Viewport = %v", lvl.Viewport)
	}
	if len(lvl.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(lvl.Blocks))
	}
	platform := lvl.Blocks[1]
	if platform.Min != sim.V(-310, -70) || platform.Max != sim.V(-190, -50) {
		t.Errorf("Blocks[1] = %v, expected (-310,-70)..(-190,-50)", platform)
	}
	if lvl.Metadata["author"] != "downpour" {
		t.Errorf("Metadata[author] = %q", lvl.Metadata["author"])
	}
}

func TestFindMissing(t *testing.T) {
	if _, err := Find(testdataDir, "nope"); err == nil {
		t.Error("expected error for missing level")
	}
}

func TestLoaderLoadFileInvalid(t *testing.T) {
	if _, err := NewLoader(testdataDir).LoadFile(filepath.Join(testdataDir, "broken.yaml")); err == nil {
		t.Error("expected error for broken level")
	}
}

func TestBuiltin(t *testing.T) {
	lvls := Builtin()
	if len(lvls) != 2 {
		t.Fatalf("expected 2 built-in levels, got %d", len(lvls))
	}
	if lvls[0].ID != "level1" || lvls[1].ID != "meadow" {
		t.Errorf("Builtin() ids = %v", ids(lvls))
	}

	level1 := lvls[0]
	if !level1.Builtin() {
		t.Error("level1 not reported as built-in")
	}
	if len(level1.Blocks) != 6 {
		t.Errorf("level1 blocks = %d, expected 6", len(level1.Blocks))
	}
	if level1.Spawn != sim.V(-550, -184) {
		t.Errorf("level1 spawn = %v", level1.Spawn)
	}

	meadow := lvls[1].Def()
	ground := sim.RectFromCenterSize(sim.V(0, -300), sim.V(2000, 200))
	if meadow.Blocks[0] != ground {
		t.Errorf("meadow ground = %v, expected %v", meadow.Blocks[0], ground)
	}
}

func TestCatalogOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	override := "id: meadow\nname: Wet Meadow\nspawn: [0, 0]\nblocks:\n  - center: [0, -100]\n    size: [100, 10]\n"
	if err := os.WriteFile(filepath.Join(dir, "meadow.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	all, err := Catalog(dir)
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Catalog() = %v, expected 2 levels", ids(all))
	}

	lvl, err := Find(dir, "meadow")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if lvl.Name != "Wet Meadow" || lvl.Builtin() {
		t.Errorf("Find(meadow) = %q builtin=%v, expected user override", lvl.Name, lvl.Builtin())
	}
}

func TestCatalogMergesUserLevels(t *testing.T) {
	all, err := Catalog(testdataDir)
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	expected := []string{"alley", "courtyard", "level1", "meadow"}
	got := ids(all)
	if len(got) != len(expected) {
		t.Fatalf("Catalog() ids = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Catalog()[%d] = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestCatalogMissingDir(t *testing.T) {
	if _, err := Catalog(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
