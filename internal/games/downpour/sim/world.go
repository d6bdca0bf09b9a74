package sim

import (
	"errors"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNotInGameplay is returned by Step when the world has no level, player
// or shield, i.e. Enter has not been called or Exit has run since.
var ErrNotInGameplay = errors.New("sim: world is not in gameplay")

// Input is the per-step intent supplied by the input provider.
// Move components are clamped to [-1, 1].
type Input struct {
	Move   Vec2
	Shield bool
}

// StepReport summarises one step for the caller.
type StepReport struct {
	Grounded  bool
	Spawned   int
	Despawned int
	Hits      []HitEvent
	Damage    int
	GameOver  bool
}

// World is the gameplay session: the level, the player and its shield, the
// rain, and the shared health and power counters.
type World struct {
	tuning Tuning
	rng    *rand.Rand
	logger *log.Logger

	nextID  EntityID
	level   *Level
	player  *Player
	shield  *Shield
	rain    *Rain
	targets []Target

	health Health
	power  float64
	steps  int
}

// NewWorld creates a world outside gameplay. A nil rng is seeded from the
// clock; a nil logger discards output.
func NewWorld(t Tuning, rng *rand.Rand, logger *log.Logger) *World {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{
		tuning: t,
		rng:    rng,
		logger: logger,
		rain:   NewRain(rng, t.Rain, logger),
		health: Health{Value: t.Health.Max, Max: t.Health.Max},
		power:  1,
	}
}

func (w *World) newID() EntityID {
	w.nextID++
	return w.nextID
}

// Enter starts gameplay on def: health is refilled and the level, player and
// shield are spawned. Shield power carries over from any previous run.
// Entering while already in gameplay exits first.
func (w *World) Enter(def LevelDef) {
	if w.InGameplay() {
		w.Exit()
	}

	w.health.Reset()
	w.level = newLevel(def, w.newID)
	w.player = newPlayer(w.newID(), def.Spawn, w.tuning)
	w.shield = newShield(w.newID(), w.player, w.tuning)
	w.rain.Clear()
	w.steps = 0

	w.logger.Info("gameplay entered", "level", def.ID, "blocks", len(def.Blocks), "power", w.power)
}

// Exit despawns the player, the shield, the level geometry and every drop.
func (w *World) Exit() {
	if !w.InGameplay() {
		return
	}
	w.logger.Info("gameplay exited", "level", w.level.ID(), "steps", w.steps, "health", w.health.Value)

	w.level = nil
	w.player = nil
	w.shield = nil
	w.rain.Clear()
	w.targets = w.targets[:0]
}

// InGameplay reports whether Enter has run without a matching Exit.
func (w *World) InGameplay() bool {
	return w.level != nil && w.player != nil && w.shield != nil
}

// Step advances the session by dt seconds. The phases run in a fixed order:
// player controller, shield, drop spawn, drop motion and collision, damage,
// despawn. Drops see the player's resolved position of the same step and the
// damage phase sees the hits produced by it.
func (w *World) Step(in Input, dt float64) (StepReport, error) {
	if !w.InGameplay() {
		return StepReport{}, ErrNotInGameplay
	}

	var report StepReport
	intent := V(clampUnit(in.Move.X), clampUnit(in.Move.Y))
	report.Grounded = w.player.Update(intent, w.level.Blocks(), dt, w.tuning.Player)
	w.shield.Update(in.Shield, &w.power, dt, w.tuning.Shield)

	view := w.level.Viewport()
	report.Spawned = w.rain.Spawn(view, dt)
	report.Hits = w.rain.Advance(w.collectTargets(), dt)
	report.Damage, report.GameOver = w.applyDamage(report.Hits, dt)
	report.Despawned = w.rain.Despawn(view)

	w.steps++
	if report.GameOver {
		w.logger.Info("game over", "level", w.level.ID(), "steps", w.steps)
	}
	return report, nil
}

// collectTargets lists the solid colliders a drop can strike, in the order
// they are tried: shield, player, then level blocks.
func (w *World) collectTargets() []Target {
	w.targets = w.targets[:0]
	if w.shield.Collider.Solid {
		w.targets = append(w.targets, Target{ID: w.shield.ID, Rect: w.shield.WorldRect(), Listener: true})
	}
	if w.player.Collider.Solid {
		w.targets = append(w.targets, Target{ID: w.player.ID, Rect: w.player.WorldRect(), Listener: true})
	}
	for _, b := range w.level.Blocks() {
		if b.Collider.Solid {
			w.targets = append(w.targets, Target{ID: b.ID, Rect: b.Rect()})
		}
	}
	return w.targets
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// SetDensityScale multiplies the rain density, e.g. for difficulty
// progression.
func (w *World) SetDensityScale(scale float64) {
	w.rain.SetDensityScale(scale)
}

// Tuning returns the tuning the world was built with.
func (w *World) Tuning() Tuning {
	return w.tuning
}

// Level returns the current level, or nil outside gameplay.
func (w *World) Level() *Level {
	return w.level
}

// Player returns the player, or nil outside gameplay.
func (w *World) Player() *Player {
	return w.player
}

// Shield returns the shield, or nil outside gameplay.
func (w *World) Shield() *Shield {
	return w.shield
}

// Drops returns the live drops. Callers must not retain the slice.
func (w *World) Drops() []Drop {
	return w.rain.Drops()
}

// Health returns the health pool.
func (w *World) Health() Health {
	return w.health
}

// Power returns the shield power budget in [0, 1].
func (w *World) Power() float64 {
	return w.power
}

// Steps returns the number of steps since the last Enter.
func (w *World) Steps() int {
	return w.steps
}
