// Package tui runs downpour in a terminal with Bubble Tea: the game loop,
// key bindings, menus, the scoreboard and the SSH front end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the game by one simulation step.
type TickMsg time.Time

// frameMsg advances menu animations.
type frameMsg time.Time

// menuFrameRate is the refresh rate of the animated menus.
const menuFrameRate = 12

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(interval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func frameCmd() tea.Cmd {
	return tea.Tick(interval(menuFrameRate), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// interval is the period of a rate given in ticks per second.
// Non-positive rates run at 60.
func interval(rate int) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}
