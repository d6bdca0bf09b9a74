package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/downpour/internal/registry"
)

var testVariants = []registry.Variant{
	{ID: "level1", Name: "Shelters"},
	{ID: "meadow", Name: "Meadow"},
}

func pressLevels(t *testing.T, m LevelSelectModel, msgs ...tea.Msg) LevelSelectModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(LevelSelectModel)
	}
	return m
}

func TestLevelSelectPicksHighlighted(t *testing.T) {
	m := NewLevelSelectModel("Downpour", testVariants, 80, 24)
	if !strings.Contains(m.View(), "Shelters") {
		t.Fatal("level names not listed")
	}

	m = pressLevels(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.Selected() == nil || m.Selected().ID != "meadow" {
		t.Errorf("Selected() = %+v, want meadow", m.Selected())
	}
}

func TestLevelSelectBack(t *testing.T) {
	m := pressLevels(t, NewLevelSelectModel("Downpour", testVariants, 80, 24), tea.KeyMsg{Type: tea.KeyEscape})
	if !m.WantsBack() || m.Selected() != nil {
		t.Errorf("back=%v selected=%+v", m.WantsBack(), m.Selected())
	}
}
