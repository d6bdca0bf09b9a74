package downpour

import (
	"github.com/vovakirdan/downpour/internal/core"
	"github.com/vovakirdan/downpour/internal/games/downpour/sim"
)

// heldActions are the actions that describe continuous movement.
var heldActions = []core.Action{
	core.ActionLeft,
	core.ActionRight,
	core.ActionUp,
	core.ActionDown,
	core.ActionShield,
}

// opposite maps each direction to the one it cancels.
var opposite = map[core.Action]core.Action{
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
}

// HoldTracker turns terminal key events into held actions. Terminals report
// presses (and auto-repeat) but no releases, so an action stays held for
// holdTicks ticks after its last event.
type HoldTracker struct {
	holdTicks int
	remaining map[core.Action]int
}

// NewHoldTracker creates a tracker. holdTicks below 1 is treated as 1.
func NewHoldTracker(holdTicks int) *HoldTracker {
	return &HoldTracker{
		holdTicks: max(1, holdTicks),
		remaining: make(map[core.Action]int, len(heldActions)),
	}
}

// Update consumes one tick of input and returns the intent for this tick.
func (h *HoldTracker) Update(in core.InputFrame) sim.Input {
	for _, a := range heldActions {
		if in.Has(a) {
			h.remaining[a] = h.holdTicks
			if o, ok := opposite[a]; ok && !in.Has(o) {
				delete(h.remaining, o)
			}
		}
	}

	out := sim.Input{
		Move: sim.V(
			h.axis(core.ActionRight)-h.axis(core.ActionLeft),
			h.axis(core.ActionUp)-h.axis(core.ActionDown),
		),
		Shield: h.remaining[core.ActionShield] > 0,
	}

	for a, n := range h.remaining {
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
	return out
}

// Held reports whether a is currently held.
func (h *HoldTracker) Held(a core.Action) bool {
	return h.remaining[a] > 0
}

// Reset releases every action.
func (h *HoldTracker) Reset() {
	clear(h.remaining)
}

func (h *HoldTracker) axis(a core.Action) float64 {
	if h.remaining[a] > 0 {
		return 1
	}
	return 0
}
