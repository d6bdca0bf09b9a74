package downpour

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/downpour/internal/core"
	"github.com/vovakirdan/downpour/internal/games/downpour/levels"
	"github.com/vovakirdan/downpour/internal/games/downpour/sim"
	"github.com/vovakirdan/downpour/internal/registry"
)

const openLevel = `id: open
name: Open Field
spawn: [0, -180]
blocks:
  - min: [-1000, -400]
    max: [1000, -200]
`

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newTestGame isolates the game from any user config.
func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewWithOptions(opts)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(gameID) {
		t.Fatalf("%s not registered", gameID)
	}
	g, err := registry.Create(gameID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := g.(registry.Varianted); !ok {
		t.Error("game does not offer variants")
	}
	if _, ok := g.(registry.Resizer); !ok {
		t.Error("game does not follow resizes")
	}
}

func TestResetEntersDefaultLevel(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Reset(testRuntime(1))

	state := g.State()
	if state.Variant != levels.DefaultID {
		t.Errorf("Variant = %q, want %q", state.Variant, levels.DefaultID)
	}
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("unexpected state after reset: %+v", state)
	}
	if !g.World().InGameplay() {
		t.Error("world not in gameplay after reset")
	}
}

func TestUnknownLevelFallsBackToDefault(t *testing.T) {
	g := newTestGame(t, Options{LevelID: "missing"})
	g.Reset(testRuntime(1))

	if got := g.State().Variant; got != levels.DefaultID {
		t.Errorf("Variant = %q, want %q", got, levels.DefaultID)
	}
	if g.State().GameOver {
		t.Error("fallback run should be playable")
	}
}

func TestScoreCountsSteps(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Reset(testRuntime(1))

	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if got := g.State().Score; got != 30 {
		t.Errorf("Score = %d, want 30", got)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 180)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%20 < 10 {
			inputs[i].Set(core.ActionRight)
		}
		if i%45 == 0 {
			inputs[i].Set(core.ActionUp)
		}
	}

	run := func() *Game {
		g := newTestGame(t, Options{})
		g.Reset(testRuntime(12345))
		for _, in := range inputs {
			g.Step(in)
		}
		return g
	}
	g1, g2 := run(), run()

	if p1, p2 := g1.World().Player().Body, g2.World().Player().Body; p1 != p2 {
		t.Errorf("player diverged: %+v vs %+v", p1, p2)
	}
	if n1, n2 := len(g1.World().Drops()), len(g2.World().Drops()); n1 != n2 {
		t.Errorf("drop count diverged: %d vs %d", n1, n2)
	}
	if g1.State() != g2.State() {
		t.Errorf("state diverged: %+v vs %+v", g1.State(), g2.State())
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Reset(testRuntime(1))
	g.Step(core.NewInputFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if got := g.State().Score; got != 1 {
		t.Errorf("Score = %d while paused, want 1", got)
	}

	g.Step(pause)
	if g.State().Paused || g.State().Score != 1 {
		t.Errorf("state on the resume tick = %+v, want unpaused with score 1", g.State())
	}
	g.Step(core.NewInputFrame())
	if got := g.State().Score; got != 2 {
		t.Errorf("Score after one resumed tick = %d, want 2", got)
	}
}

func TestRainEndsTheRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "open.yaml", openLevel)
	cfg := writeFile(t, t.TempDir(), "downpour.yaml", "health:\n  max: 1\nrain:\n  density: 30\ndifficulty:\n  enabled: false\n")

	g := newTestGame(t, Options{ConfigPath: cfg, LevelsDir: dir, LevelID: "open"})
	g.Reset(testRuntime(7))
	if got := g.State().Variant; got != "open" {
		t.Fatalf("Variant = %q, want open", got)
	}

	for i := 0; i < 2000 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("run survived a downpour with one hit point")
	}

	score := g.State().Score
	g.Step(core.NewInputFrame())
	if g.State().Score != score {
		t.Error("score changed after game over")
	}
}

func TestShieldPowerCarriesAcrossReset(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Reset(testRuntime(1))

	shield := core.NewInputFrame()
	shield.Set(core.ActionShield)
	for i := 0; i < 10; i++ {
		g.Step(shield)
	}
	power := g.World().Power()
	if power >= 1 {
		t.Fatalf("power = %v, want drained", power)
	}

	g.Reset(testRuntime(1))
	if got := g.World().Power(); got != power {
		t.Errorf("power after reset = %v, want %v", got, power)
	}
	if got := g.World().Health().Value; got != 100 {
		t.Errorf("health after reset = %d, want 100", got)
	}
}

func TestSelectVariant(t *testing.T) {
	g := newTestGame(t, Options{})

	variants, err := g.Variants()
	if err != nil {
		t.Fatalf("Variants: %v", err)
	}
	if len(variants) < 2 {
		t.Fatalf("got %d variants, want the built-in levels", len(variants))
	}

	if err := g.SelectVariant("meadow"); err != nil {
		t.Fatalf("SelectVariant: %v", err)
	}
	g.Reset(testRuntime(1))
	if got := g.State().Variant; got != "meadow" {
		t.Errorf("Variant = %q, want meadow", got)
	}

	if err := g.SelectVariant("nope"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Reset(testRuntime(1))
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}

	g.Resize(120, 40)
	if got := g.State().Score; got != 5 {
		t.Errorf("Score = %d after resize, want 5", got)
	}
	if area := g.view.Area(); area != core.NewRect(0, hudHeight, 120, 40-hudHeight) {
		t.Errorf("view area = %+v", area)
	}
}

func TestStepAfterCloseEndsRun(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Reset(testRuntime(1))
	g.Close()

	g.Step(core.NewInputFrame())
	if !g.State().GameOver {
		t.Error("expected game over once the world has left gameplay")
	}
	if !errors.Is(g.failure, sim.ErrNotInGameplay) {
		t.Errorf("failure = %v, want ErrNotInGameplay", g.failure)
	}
}

func TestRenderDrawsWorldAndHUD(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Reset(testRuntime(1))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"Score: 0", "Shelters", "HP", "SH"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	tint := hex(sim.PlayerBaseColor)
	var player, blocks int
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			c := screen.GetCell(x, y)
			switch {
			case c.Rune == PlayerChar && c.Tint == tint:
				player++
			case c.Rune == BlockChar:
				blocks++
			}
		}
	}
	if player == 0 {
		t.Error("player not drawn")
	}
	if blocks == 0 {
		t.Error("blocks not drawn")
	}
}

func TestRenderGameOverAndTooSmall(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Reset(testRuntime(1))
	g.gameOver = true

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over message missing")
	}

	small := core.NewScreen(20, 5)
	g.Resize(20, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "Terminal too small") {
		t.Errorf("got %q", small.String())
	}
}

func TestDropGlyph(t *testing.T) {
	tests := []struct {
		dir  sim.Vec2
		want rune
	}{
		{sim.V(0.06, -1), '|'},
		{sim.V(0.7, -0.7), '\\'},
		{sim.V(-0.7, -0.7), '/'},
		{sim.V(0.7, 0.7), '/'},
	}
	for _, tt := range tests {
		if got := dropGlyph(tt.dir); got != tt.want {
			t.Errorf("dropGlyph(%v) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestBar(t *testing.T) {
	if got := bar(0.5); got != "█████░░░░░" {
		t.Errorf("bar(0.5) = %q", got)
	}
	if got := bar(2); got != strings.Repeat("█", barWidth) {
		t.Errorf("bar(2) = %q", got)
	}
}
