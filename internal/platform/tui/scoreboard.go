package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/downpour/internal/registry"
	"github.com/vovakirdan/downpour/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 24
	maxScores          = 100
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Help key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Help, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next level")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev level")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// board is one leaderboard: a game, or one level of a game.
type board struct {
	GameID  string
	LevelID string // empty for games without variants
	Title   string
}

// listBoards lists a leaderboard per level of every registered game.
func listBoards() []board {
	var out []board
	for _, info := range registry.List() {
		whole := board{GameID: info.ID, Title: info.Title}
		game, err := registry.Create(info.ID)
		if err != nil {
			continue
		}
		vg, ok := game.(registry.Varianted)
		if !ok {
			out = append(out, whole)
			continue
		}
		variants, err := vg.Variants()
		if err != nil || len(variants) == 0 {
			out = append(out, whole)
			continue
		}
		for _, v := range variants {
			out = append(out, board{GameID: info.ID, LevelID: v.ID, Title: v.Name})
		}
	}
	return out
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
)

// ScoreboardModel shows the best runs of each level.
type ScoreboardModel struct {
	boards      []board
	boardCursor int
	store       *storage.Store
	stats       map[string]map[string]*storage.LevelStats // game -> level -> stats
	scores      []storage.ScoreEntry
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: listBoards(),
		store:  store,
		stats:  make(map[string]map[string]*storage.LevelStats),
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.load()
	return m
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

func (m *ScoreboardModel) createTable() table.Model {
	avail := m.width - 8
	if m.showSidebar() {
		avail -= sidebarWidth + 4
	}
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Survived", Width: 9},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 13},
		{Title: "Run", Width: 8},
	}
	if avail < 55 {
		columns = columns[:4]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// current returns the board under the cursor.
func (m ScoreboardModel) current() (board, bool) {
	if len(m.boards) == 0 {
		return board{}, false
	}
	return m.boards[m.boardCursor], true
}

// load fetches scores, and stats once per game, for the current board.
func (m *ScoreboardModel) load() {
	m.scores = nil
	b, ok := m.current()
	if ok && m.store != nil {
		if scores, err := m.store.TopScores(b.GameID, b.LevelID, maxScores); err == nil {
			m.scores = scores
		}
		if _, cached := m.stats[b.GameID]; !cached {
			if stats, err := m.store.GetLevelStats(b.GameID); err == nil {
				m.stats[b.GameID] = stats
			}
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	cols := len(m.table.Columns())
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			playerName(s.Player),
			s.CreatedAt.Format("Jan 02 15:04"),
			shortRunID(s.RunID),
		}
		rows[i] = row[:cols]
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) move(delta int) {
	if len(m.boards) == 0 {
		return
	}
	m.boardCursor = (m.boardCursor + delta + len(m.boards)) % len(m.boards)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.move(-1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.fillRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if b, ok := m.current(); ok {
		title += " - " + b.Title
	}

	var body string
	if m.showSidebar() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", boardPanelStyle.Render(m.renderTable()))
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center, m.renderTabs(), "", boardPanelStyle.Render(m.renderTable()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boardTitleStyle.Render(centerText(title, m.width)),
		boardDimStyle.Render(centerText(m.statsLine(), m.width)),
		"",
		body,
		"",
		boardDimStyle.Render(m.help.View(m.keys)),
	)
}

// statsLine summarizes every run of the current board.
func (m ScoreboardModel) statsLine() string {
	b, ok := m.current()
	if !ok {
		return "No games registered."
	}
	st := m.stats[b.GameID][b.LevelID]
	if st == nil || st.RunsCount == 0 {
		return "No runs yet."
	}
	return fmt.Sprintf("Runs %d • Best %d • Average %.0f • Last played %s",
		st.RunsCount, st.HighScore, st.AvgScore, st.LastPlayed.Format("Jan 02 15:04"))
}

func (m ScoreboardModel) renderSidebar() string {
	lines := []string{"Levels", strings.Repeat("─", sidebarWidth-4)}
	for i, b := range m.boards {
		name := truncate(b.Title, sidebarWidth-6)
		if i == m.boardCursor {
			lines = append(lines, boardTitleStyle.Render("> "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return boardPanelStyle.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.boards))
	for i, b := range m.boards {
		name := truncate(b.Title, 10)
		if i == m.boardCursor {
			tabs[i] = boardActiveStyle.Render(name)
		} else {
			tabs[i] = boardDimStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		if b, ok := m.current(); ok {
			line = fmt.Sprintf("< %s >", b.Title)
		}
	}
	return centerText(line, m.width)
}

func (m ScoreboardModel) renderTable() string {
	if len(m.scores) == 0 {
		return boardDimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nPlay this level to set a high score!")
	}
	return m.table.View()
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// shortRunID is the first block of a run UUID.
func shortRunID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// playerName labels runs played locally.
func playerName(p string) string {
	if p == "" {
		return "local"
	}
	return p
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
