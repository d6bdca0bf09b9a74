package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/downpour/internal/core"
)

// GameKeyMap holds the in-game bindings. It doubles as a help.KeyMap so the
// menus can show the controls.
type GameKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Drop    key.Binding
	Shield  key.Binding
	Confirm key.Binding
	Back    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// DefaultGameKeyMap returns WASD/arrow movement with space for the shield.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left:    key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("→/d", "right")),
		Jump:    key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("↑/w", "jump")),
		Drop:    key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("↓/s", "drop")),
		Shield:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "shield")),
		Confirm: key.NewBinding(key.WithKeys("enter")),
		Back:    key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "menu")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Shield, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Drop},
		{k.Shield, k.Pause, k.Restart, k.Back, k.Quit},
	}
}

type boundAction struct {
	binding key.Binding
	action  core.Action
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	keys    GameKeyMap
	actions []boundAction
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWith(DefaultGameKeyMap())
}

// NewKeyMapperWith creates a key mapper for custom bindings.
func NewKeyMapperWith(keys GameKeyMap) *KeyMapper {
	return &KeyMapper{
		keys: keys,
		actions: []boundAction{
			{keys.Left, core.ActionLeft},
			{keys.Right, core.ActionRight},
			{keys.Jump, core.ActionUp},
			{keys.Drop, core.ActionDown},
			{keys.Shield, core.ActionShield},
			{keys.Confirm, core.ActionConfirm},
			{keys.Back, core.ActionBack},
			{keys.Pause, core.ActionPause},
			{keys.Restart, core.ActionRestart},
		},
	}
}

// Keys returns the bindings the mapper was built with.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.keys.Quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.actions {
		if key.Matches(msg, b.binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

var (
	menuUp     = key.NewBinding(key.WithKeys("k"))
	menuDown   = key.NewBinding(key.WithKeys("j"))
	menuSelect = key.NewBinding(key.WithKeys("enter", " "))
	menuScores = key.NewBinding(key.WithKeys("tab"))
)

// MapKeyToMenuAction translates a key to a menu action. Menus share the
// game's movement keys and add vim-style j/k.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return MenuActionQuit
	case key.Matches(msg, km.keys.Jump, menuUp):
		return MenuActionUp
	case key.Matches(msg, km.keys.Drop, menuDown):
		return MenuActionDown
	case key.Matches(msg, menuSelect):
		return MenuActionSelect
	case key.Matches(msg, km.keys.Back):
		return MenuActionBack
	case key.Matches(msg, menuScores):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
