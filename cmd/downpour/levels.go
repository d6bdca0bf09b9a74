package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/downpour/internal/games/downpour/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List built-in and custom levels",
	Long: `Lists the built-in levels and the levels found under --levels-dir.
A custom level replaces a built-in level with the same ID.

Level files are YAML (.yaml, .yml) or TOML (.toml).

Examples:
  downpour levels
  downpour levels --levels-dir ./levels
  downpour levels check ./levels/alley.toml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var levelsCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate level files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLevelsCheck,
}

func init() {
	levelsCmd.AddCommand(levelsCheckCmd)
}

func runLevels(_ *cobra.Command, _ []string) error {
	all, err := levels.Catalog(flagLevelsDir)
	if err != nil {
		return err
	}

	maxIDLen, maxNameLen := 2, 4
	for _, lvl := range all {
		maxIDLen = max(maxIDLen, len(lvl.ID))
		maxNameLen = max(maxNameLen, len(lvl.Name))
	}

	fmt.Printf("  %-*s  %-*s  %6s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Blocks", "Source")
	fmt.Printf("  %-*s  %-*s  %6s  %s\n", maxIDLen, "--", maxNameLen, "----", "------", "------")
	for _, lvl := range all {
		source := "built-in"
		if !lvl.Builtin() {
			source = lvl.FilePath
		}
		fmt.Printf("  %-*s  %-*s  %6d  %s\n", maxIDLen, lvl.ID, maxNameLen, lvl.Name, len(lvl.Blocks), source)
	}

	fmt.Println()
	fmt.Println("Run 'downpour play --level <id>' to play a level.")
	return nil
}

func runLevelsCheck(_ *cobra.Command, args []string) error {
	loader := levels.NewLoader(".")
	failed := 0
	for _, path := range args {
		lvl, err := loader.LoadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL  %s: %v\n", filepath.Clean(path), err)
			continue
		}
		fmt.Printf("ok    %s (%s, %d blocks)\n", filepath.Clean(path), lvl.ID, len(lvl.Blocks))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d level files invalid", failed, len(args))
	}
	return nil
}
