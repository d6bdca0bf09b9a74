package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/downpour/internal/core"
	"github.com/vovakirdan/downpour/internal/registry"
)

var levelHelp = []key.Binding{
	key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
	key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// LevelSelectModel lets users pick a variant (level) of a game.
type LevelSelectModel struct {
	title    string
	variants []registry.Variant
	cursor   int
	width    int
	height   int
	keys     *KeyMapper
	frame    int
	selected *registry.Variant
	quitting bool
	back     bool
}

// NewLevelSelectModel creates a level selection model.
func NewLevelSelectModel(title string, variants []registry.Variant, width, height int) LevelSelectModel {
	return LevelSelectModel{
		title:    title,
		variants: variants,
		width:    width,
		height:   height,
		keys:     NewKeyMapper(),
	}
}

// Init starts the drizzle animation.
func (m LevelSelectModel) Init() tea.Cmd {
	return frameCmd()
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case frameMsg:
		m.frame++
		return m, frameCmd()
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.variants)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.variants) > 0 {
			v := m.variants[m.cursor]
			m.selected = &v
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}

	screen := core.NewScreen(m.width, m.height)
	drawDrizzle(screen, m.frame)

	names := make([]string, len(m.variants))
	for i, v := range m.variants {
		names[i] = fmt.Sprintf("%2d. %s", i+1, v.Name)
	}

	y := max(1, (m.height-len(names)-6)/2)
	drawCentered(screen, y, "  "+strings.ToUpper(m.title)+"  ", core.ColorBrightCyan)
	drawCentered(screen, y+2, " Select level ", core.ColorDefault)
	drawList(screen, y+4, names, m.cursor)
	drawCentered(screen, m.height-2, " "+helpLine(levelHelp)+" ", core.ColorGray)

	return RenderScreen(screen)
}

// Selected returns the chosen variant, or nil if none was chosen.
func (m LevelSelectModel) Selected() *registry.Variant {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// SelectLevel offers the game's variants and applies the player's choice.
// Games without variants, or with a single one, are returned unchanged.
// ok is false when the player backed out or quit.
func SelectLevel(game registry.Game, cfg core.RuntimeConfig) (ok bool, err error) {
	vg, isVarianted := game.(registry.Varianted)
	if !isVarianted {
		return true, nil
	}
	variants, err := vg.Variants()
	if err != nil {
		return false, err
	}
	if len(variants) < 2 {
		return true, nil
	}

	p := tea.NewProgram(
		NewLevelSelectModel(game.Title(), variants, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, isModel := finalModel.(LevelSelectModel)
	if !isModel || m.Selected() == nil {
		return false, nil
	}
	return true, vg.SelectVariant(m.Selected().ID)
}
