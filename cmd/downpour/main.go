// downpour is a terminal side-scroller: keep out of the rain, or raise the
// shield while it lasts.
//
// Usage:
//
//	downpour list                  - List available games
//	downpour play [game]           - Play a game (default: downpour)
//	downpour menu                  - Start menu to pick games interactively
//	downpour levels                - List built-in and custom levels
//	downpour serve                 - Start SSH server for remote play
//	downpour scores [level]        - Show high scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate, 20 to 240 (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.downpour/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--levels-dir <dir>    - Directory of custom YAML/TOML levels
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/downpour/internal/config"
	"github.com/vovakirdan/downpour/internal/games/downpour"
	"github.com/vovakirdan/downpour/internal/logging"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "downpour",
	Short: "Downpour - dodge the rain in your terminal",
	Long: `Downpour is a terminal side-scroller. Rain falls at a slant across the
level; stay under the shelters, jump between them, and raise the shield
when you have to cross open ground. Every drop that reaches you costs a
hit point. Your score is the number of ticks survived.

Available commands:
  list     - Show all available games
  play     - Play directly
  menu     - Interactive game picker menu
  levels   - List levels
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  downpour play
  downpour play --level meadow --difficulty hard
  downpour levels --levels-dir ./levels
  downpour serve --ssh :2222
  downpour scores level1`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, fmt.Sprintf("Tick rate (frames per second, %d-%d)", minFPS, maxFPS))
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.downpour/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevelsDir, "levels-dir", "", "Directory with custom YAML/TOML levels")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup builds the logger and applies the game flags. Interactive commands
// own the terminal, so they only log when --log-file is given; out is used
// otherwise.
func setup(out io.Writer, levelID string) (*log.Logger, func() error, error) {
	if err := validateFPS(flagFPS); err != nil {
		return nil, nil, err
	}

	preset := config.DifficultyPreset("")
	if flagDifficulty != "" {
		p, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return nil, nil, err
		}
		preset = p
	}

	logger, closeLog, err := logging.New(logging.Options{
		File:   flagLogFile,
		Output: out,
		Level:  flagLogLevel,
		Prefix: "downpour",
	})
	if err != nil {
		return nil, nil, err
	}

	downpour.SetOptions(downpour.Options{
		ConfigPath: flagConfig,
		Difficulty: preset,
		LevelID:    levelID,
		LevelsDir:  flagLevelsDir,
		Logger:     logger,
	})
	return logger, closeLog, nil
}

// Tick rate bounds. Below minFPS a drop travels further in one step than the
// player and a drop are tall together, so it can pass through the player.
const (
	minFPS = 20
	maxFPS = 240
)

func validateFPS(fps int) error {
	if fps < minFPS || fps > maxFPS {
		return fmt.Errorf("--fps must be between %d and %d, got %d", minFPS, maxFPS, fps)
	}
	return nil
}
