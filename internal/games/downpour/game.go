// Package downpour is the arcade adapter for the Downpour simulation: it
// feeds platform input into a sim.World at the platform tick rate, keeps
// score and draws the world onto the terminal screen.
package downpour

import (
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/downpour/internal/config"
	"github.com/vovakirdan/downpour/internal/core"
	"github.com/vovakirdan/downpour/internal/games/downpour/levels"
	"github.com/vovakirdan/downpour/internal/games/downpour/sim"
	"github.com/vovakirdan/downpour/internal/registry"
)

const (
	gameID    = "downpour"
	gameTitle = "Downpour"

	hudHeight = 1
	minWidth  = 30
	minHeight = 8
)

// Options configures new games.
type Options struct {
	ConfigPath string                  // custom config file; empty searches the defaults
	Difficulty config.DifficultyPreset // empty keeps the config's difficulty
	LevelID    string                  // empty plays levels.DefaultID
	LevelsDir  string                  // extra YAML/TOML levels
	Logger     *log.Logger
}

var (
	optsMu      sync.RWMutex
	defaultOpts Options
)

// SetOptions sets the options used by games created through the registry.
func SetOptions(opts Options) {
	optsMu.Lock()
	defer optsMu.Unlock()
	defaultOpts = opts
}

func currentOptions() Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return defaultOpts
}

// Game implements registry.Game for Downpour.
type Game struct {
	opts   Options
	logger *log.Logger

	cfg        config.DownpourConfig
	world      *sim.World
	hold       *HoldTracker
	difficulty *config.DifficultyManager
	level      levels.Level

	runtime core.RuntimeConfig
	view    Projection

	ticks    int
	score    int
	gameOver bool
	paused   bool
	failure  error
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          gameID,
		Title:       gameTitle,
		Description: "Dodge the rain. Hold space to raise the shield.",
	}, func() registry.Game {
		return New()
	})
}

// New creates a game with the options last passed to SetOptions.
func New() *Game {
	return NewWithOptions(currentOptions())
}

// NewWithOptions creates a game with explicit options.
func NewWithOptions(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		opts:   opts,
		logger: logger.WithPrefix(gameID),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return gameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return gameTitle
}

// Reset starts a new run on the selected level. Shield power carries over
// from the previous run of this game instance.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.ticks, g.score = 0, 0
	g.gameOver, g.paused = false, false
	g.failure = nil

	cfg, err := config.LoadDownpour(g.opts.ConfigPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultDownpourConfig()
	}
	if g.opts.Difficulty != "" {
		config.ApplyDownpourPreset(&cfg, g.opts.Difficulty)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.hold = NewHoldTracker(cfg.Input.HoldTicks)

	level, err := g.findLevel()
	if err != nil {
		g.fail(err)
		return
	}
	g.level = level

	tuning := cfg.Tuning()
	if g.world == nil || g.world.Tuning() != tuning {
		seed := runtime.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.world = sim.NewWorld(tuning, rand.New(rand.NewSource(seed)), g.logger)
	}
	g.world.Enter(level.Def())
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// findLevel resolves the selected level, falling back to the default
// built-in level when the selection is unavailable.
func (g *Game) findLevel() (levels.Level, error) {
	id := g.opts.LevelID
	if id == "" {
		id = levels.DefaultID
	}
	level, err := levels.Find(g.opts.LevelsDir, id)
	if err == nil {
		return level, nil
	}

	g.logger.Warn("level unavailable, playing default", "level", id, "err", err)
	fallback, ferr := levels.Find("", levels.DefaultID)
	if ferr != nil {
		return levels.Level{}, errors.Join(err, ferr)
	}
	return fallback, nil
}

func (g *Game) fail(err error) {
	g.logger.Error("run aborted", "err", err)
	g.failure = err
	g.gameOver = true
}

// Resize fits the projection to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	if g.world == nil || g.world.Level() == nil {
		return
	}
	area := core.NewRect(0, hudHeight, w, max(0, h-hudHeight))
	g.view = NewProjection(g.world.Level().Viewport(), area)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// The tick that toggles pause never simulates, in either direction.
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.hold.Reset()
		return core.StepResult{State: g.State()}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	intent := g.hold.Update(in)
	g.world.SetDensityScale(g.difficulty.DensityScale(g.score, g.ticks))

	dt := 1.0 / float64(g.runtime.TickRate)
	report, err := g.world.Step(intent, dt)
	if err != nil {
		g.fail(err)
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	g.score = g.world.Steps()
	if report.GameOver {
		g.gameOver = true
	}
	return core.StepResult{State: g.State()}
}

// Close despawns the current run.
func (g *Game) Close() {
	if g.world != nil {
		g.world.Exit()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Variant:  g.level.ID,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Variants lists the playable levels.
func (g *Game) Variants() ([]registry.Variant, error) {
	all, err := levels.Catalog(g.opts.LevelsDir)
	if err != nil {
		return nil, err
	}
	out := make([]registry.Variant, len(all))
	for i, lvl := range all {
		out[i] = registry.Variant{ID: lvl.ID, Name: lvl.Name}
	}
	return out, nil
}

// SelectVariant chooses the level played from the next Reset on.
func (g *Game) SelectVariant(id string) error {
	if _, err := levels.Find(g.opts.LevelsDir, id); err != nil {
		return err
	}
	g.opts.LevelID = id
	return nil
}

// World exposes the simulation for inspection.
func (g *Game) World() *sim.World {
	return g.world
}
