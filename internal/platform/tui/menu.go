package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/downpour/internal/core"
	"github.com/vovakirdan/downpour/internal/registry"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
}

var menuHelp = []key.Binding{
	key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
	key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
	key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// MenuModel is the title screen: the registered games over a light drizzle.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	config         core.RuntimeConfig
	keys           *KeyMapper
	frame          int
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model listing every registered game.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{
			GameID:      g.ID,
			Title:       g.Title,
			Description: g.Description,
		})
	}

	return MenuModel{
		items:  items,
		config: cfg,
		keys:   NewKeyMapper(),
	}
}

// Init starts the drizzle animation.
func (m MenuModel) Init() tea.Cmd {
	return frameCmd()
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case frameMsg:
		m.frame++
		return m, frameCmd()
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w, h := m.config.ScreenW, m.config.ScreenH
	if w <= 0 || h <= 0 {
		return ""
	}

	screen := core.NewScreen(w, h)
	drawDrizzle(screen, m.frame)

	titles := make([]string, len(m.items))
	for i, item := range m.items {
		titles[i] = item.Title
	}

	y := max(1, (h-len(titles)-10)/2)
	drawCentered(screen, y, "  D O W N P O U R  ", core.ColorBrightCyan)
	drawCentered(screen, y+2, " Select a game ", core.ColorDefault)
	y = drawList(screen, y+4, titles, m.cursor)

	if len(m.items) > 0 && m.items[m.cursor].Description != "" {
		drawCentered(screen, y+1, " "+m.items[m.cursor].Description+" ", core.ColorGray)
	}
	drawCentered(screen, h-3, " "+helpLine(m.keys.Keys().ShortHelp())+" ", core.ColorGray)
	drawCentered(screen, h-2, " "+helpLine(menuHelp)+" ", core.ColorGray)

	return RenderScreen(screen)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// drawDrizzle scatters short rain streaks over the screen. Each column has a
// fixed phase, so the pattern scrolls down one row per frame.
func drawDrizzle(s *core.Screen, frame int) {
	h := s.Height()
	if h == 0 {
		return
	}
	period := h * 2
	for x := range s.Width() {
		hash := uint32(x+1) * 2654435761
		if hash>>29 != 0 {
			continue
		}
		head := (frame + int(hash>>8)%period) % period
		s.SetColored(x, head, '|', core.ColorBrightBlue)
		s.SetColored(x, head-1, '|', core.ColorBlue)
	}
}

// drawCentered writes text centered on row y.
func drawCentered(s *core.Screen, y int, text string, c core.Color) {
	s.DrawTextColored((s.Width()-len([]rune(text)))/2, y, text, c)
}

// drawList writes a centered list with a cursor and returns the row below it.
func drawList(s *core.Screen, y int, lines []string, cursor int) int {
	for i, line := range lines {
		c := core.ColorDefault
		prefix := "   "
		if i == cursor {
			c = core.ColorBrightCyan
			prefix = " > "
		}
		drawCentered(s, y+i, prefix+line+"   ", c)
	}
	return y + len(lines)
}

// helpLine renders bindings as "key desc • key desc".
func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
