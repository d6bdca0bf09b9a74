package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/downpour/internal/core"
	"github.com/vovakirdan/downpour/internal/registry"
	"github.com/vovakirdan/downpour/internal/storage"
)

// ModelOptions configures a game model.
type ModelOptions struct {
	Player string // recorded with scores; empty for local play
	Logger *log.Logger
}

// Model is the Bubble Tea model for running a game. It is used both for
// local play and inside SSH sessions.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string
	logger     *log.Logger
	runID      string
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	rank       int  // leaderboard position of the saved run, 0 if unknown
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		player:     opts.Player,
		logger:     logger,
		runID:      uuid.NewString(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("run started", "game", m.game.ID(), "run", m.runID, "variant", m.game.State().Variant)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.closeGame()
		return m, tea.Quit
	}

	// Back to menu from pause or game over
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		m.closeGame()
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Games that cannot follow a resize restart instead
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.runID = uuid.NewString()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.rank = 0
		m.inputFrame.Clear()
		m.logger.Info("run started", "game", m.game.ID(), "run", m.runID, "variant", m.gameState.Variant)
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.rank = m.saveScore()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished run and returns its rank on the level's
// leaderboard. Saving is best-effort; the game continues regardless.
func (m Model) saveScore() int {
	m.logger.Info("run ended", "game", m.game.ID(), "run", m.runID, "score", m.gameState.Score)
	if m.store == nil || m.gameState.Score <= 0 {
		return 0
	}
	_, err := m.store.SaveScore(storage.Run{
		RunID:   m.runID,
		GameID:  m.game.ID(),
		LevelID: m.gameState.Variant,
		Player:  m.player,
		Score:   m.gameState.Score,
	})
	if err != nil {
		m.logger.Warn("could not save score", "run", m.runID, "error", err)
		return 0
	}

	rank, _, err := m.store.RunRank(m.runID)
	if err != nil {
		m.logger.Warn("could not rank run", "run", m.runID, "error", err)
		return 0
	}
	return rank
}

func (m Model) closeGame() {
	if c, ok := m.game.(registry.Closer); ok {
		c.Close()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".downpour", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.gameState.GameOver && m.rank > 0 {
		m.drawRank()
	}
	return RenderScreen(m.screen)
}

// drawRank puts the run's leaderboard position under the game-over box.
func (m Model) drawRank() {
	line := fmt.Sprintf(" Rank #%d on %s  (run %s) ", m.rank, m.gameState.Variant, shortRunID(m.runID))
	m.screen.DrawTextColored((m.screen.Width()-len([]rune(line)))/2, m.screen.Height()/2+4, line, core.ColorYellow)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model. It returns true
// when the player quit the arcade rather than going back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) (quit bool, err error) {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	if m, ok := final.(Model); ok {
		return m.IsQuitting(), nil
	}
	return true, nil
}
