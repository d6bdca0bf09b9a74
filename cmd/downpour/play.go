package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/downpour/internal/core"
	"github.com/vovakirdan/downpour/internal/platform/tui"
	"github.com/vovakirdan/downpour/internal/registry"
	"github.com/vovakirdan/downpour/internal/storage"
)

var flagLevel string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. The game defaults to downpour.

Controls:
  A/D, Left/Right  - Move
  W/Up             - Jump (hold for a higher jump)
  S/Down           - Drop through platforms you stand on
  Space            - Shield (drains power while held)
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Back (when paused or after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, shield is cheaper
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, shield recharges slower
  fixed  - No progression, stays at config's initial level

Without --level a level picker is shown.

Examples:
  downpour play
  downpour play --level meadow
  downpour play --difficulty hard
  downpour play --levels-dir ./levels --level alley
  downpour play --config ./my-downpour.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level ID to play (see 'downpour levels')")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := "downpour"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'downpour list' to see available games)", gameID)
	}

	logger, closeLog, err := setup(nil, flagLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := runtimeConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if flagLevel == "" {
		ok, err := tui.SelectLevel(game, cfg)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, cfg, tui.ModelOptions{Logger: logger}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the run to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
