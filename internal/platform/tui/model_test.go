package tui

import (
	"maps"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/downpour/internal/core"
	"github.com/vovakirdan/downpour/internal/storage"
)

// fakeGame ends after a fixed number of steps.
type fakeGame struct {
	steps    int
	endAt    int
	resets   int
	closed   bool
	resizedW int
	last     core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.last = core.InputFrame{Actions: maps.Clone(in.Actions)}
	if g.steps < g.endAt {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.steps, Variant: "level1", GameOver: g.steps >= g.endAt}
}

func (g *fakeGame) Resize(w, _ int) { g.resizedW = w }
func (g *fakeGame) Close()          { g.closed = true }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	game := &fakeGame{endAt: 3}
	m := NewModel(game, store, testConfig(), ModelOptions{Player: "alice"})
	m.Init()

	for i := 0; i < 6; i++ {
		m = update(t, m, TickMsg{})
	}

	scores, err := store.AllScores("fake", "")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("got %d saved runs, want 1", len(scores))
	}
	got := scores[0]
	if got.Score != 3 || got.LevelID != "level1" || got.Player != "alice" || got.RunID != m.runID {
		t.Errorf("unexpected saved run: %+v", got)
	}
}

func TestModelShowsRunRank(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for _, score := range []int{10, 2} {
		if _, err := store.SaveScore(storage.Run{GameID: "fake", LevelID: "level1", Score: score}); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}

	game := &fakeGame{endAt: 3}
	m := NewModel(game, store, testConfig(), ModelOptions{})
	m.Init()
	for i := 0; i < 4; i++ {
		m = update(t, m, TickMsg{})
	}

	if m.rank != 2 {
		t.Fatalf("rank = %d, want 2", m.rank)
	}
	view := m.View()
	if !strings.Contains(view, "Rank #2 on level1") || !strings.Contains(view, shortRunID(m.runID)) {
		t.Errorf("game-over view does not show the rank:\n%s", view)
	}

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if m.rank != 0 {
		t.Errorf("rank = %d after restart, want 0", m.rank)
	}
}

func TestModelRestartStartsNewRun(t *testing.T) {
	game := &fakeGame{endAt: 1}
	m := NewModel(game, nil, testConfig(), ModelOptions{})
	m.Init()
	m = update(t, m, TickMsg{})
	first := m.runID

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})

	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.runID == first {
		t.Error("restart kept the run ID")
	}
}

func TestModelForwardsInput(t *testing.T) {
	game := &fakeGame{endAt: 100}
	m := NewModel(game, nil, testConfig(), ModelOptions{})
	m.Init()

	m = update(t, m, runeKey('d'))
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})

	if !game.last.Has(core.ActionRight) || !game.last.Has(core.ActionShield) {
		t.Error("game did not receive the pressed actions")
	}

	// Input is cleared between ticks
	update(t, m, TickMsg{})
	if game.last.Has(core.ActionRight) || game.last.Has(core.ActionShield) {
		t.Error("input leaked into the next tick")
	}
}

func TestModelResizeFollowsGame(t *testing.T) {
	game := &fakeGame{endAt: 100}
	m := NewModel(game, nil, testConfig(), ModelOptions{})
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if game.resizedW != 120 {
		t.Errorf("resized width = %d, want 120", game.resizedW)
	}
	if game.resets != 1 {
		t.Errorf("resize restarted the game (%d resets)", game.resets)
	}
}

func TestModelQuitClosesGame(t *testing.T) {
	game := &fakeGame{endAt: 100}
	m := NewModel(game, nil, testConfig(), ModelOptions{})
	m.Init()

	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() || !game.closed {
		t.Errorf("quitting=%v closed=%v", m.IsQuitting(), game.closed)
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestModelBackOnlyWhenOver(t *testing.T) {
	game := &fakeGame{endAt: 1}
	m := NewModel(game, nil, testConfig(), ModelOptions{})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() {
		t.Fatal("back accepted during play")
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() || !game.closed {
		t.Errorf("backToMenu=%v closed=%v", m.BackToMenu(), game.closed)
	}
}
