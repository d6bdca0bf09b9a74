package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/downpour/internal/games/downpour/levels"
	"github.com/vovakirdan/downpour/internal/storage"
)

const scoresGameID = "downpour"

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresRun   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Without a level, shows a summary per level. With a level, shows its
top scores; --limit 0 lists every run. --clear deletes the scores of the
given level, or of every level when none is given. --run looks up a single
run by its ID.

Examples:
  downpour scores
  downpour scores level1
  downpour scores meadow --limit 25
  downpour scores --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  downpour scores meadow --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show (0 for all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete recorded scores")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show the score and rank of one run")
	scoresCmd.MarkFlagsMutuallyExclusive("clear", "run")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	levelID := ""
	if len(args) > 0 {
		levelID = args[0]
	}

	switch {
	case flagScoresRun != "":
		return printRun(store, flagScoresRun)
	case flagScoresClear:
		return clearScores(store, levelID)
	case levelID == "":
		return printLevelSummary(store)
	}
	return printLevelScores(store, levelID)
}

func printRun(store *storage.Store, runID string) error {
	rank, entry, err := store.RunRank(runID)
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("no run recorded with ID %q", runID)
	}
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}

	fmt.Printf("Run %s\n", entry.RunID)
	fmt.Printf("  Level:  %s\n", entry.LevelID)
	fmt.Printf("  Player: %s\n", playerLabel(entry.Player))
	fmt.Printf("  Score:  %d\n", entry.Score)
	fmt.Printf("  Rank:   #%d\n", rank)
	fmt.Printf("  Date:   %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func clearScores(store *storage.Store, levelID string) error {
	n, err := store.ClearScores(scoresGameID, levelID)
	if err != nil {
		return err
	}
	if levelID == "" {
		fmt.Printf("Cleared %d runs across all levels.\n", n)
		return nil
	}
	fmt.Printf("Cleared %d runs for %s.\n", n, levelID)
	return nil
}

func playerLabel(player string) string {
	if player == "" {
		return "local"
	}
	return player
}

func printLevelSummary(store *storage.Store) error {
	stats, err := store.GetLevelStats(scoresGameID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Println("High Scores - Downpour")
	fmt.Println()

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'downpour play' to set the first high score!")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %5s  %8s  %8s  %s\n", "Level", "Runs", "Best", "Average", "Last played")
	fmt.Printf("  %-12s  %5s  %8s  %8s  %s\n", "-----", "----", "----", "-------", "-----------")
	for _, id := range ids {
		st := stats[id]
		fmt.Printf("  %-12s  %5d  %8d  %8.1f  %s\n",
			id, st.RunsCount, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printLevelScores(store *storage.Store, levelID string) error {
	title := levelID
	if lvl, err := levels.Find(flagLevelsDir, levelID); err == nil {
		title = lvl.Name
	}

	var (
		scores []storage.ScoreEntry
		err    error
	)
	if flagScoresLimit <= 0 {
		scores, err = store.AllScores(scoresGameID, levelID)
	} else {
		scores, err = store.TopScores(scoresGameID, levelID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'downpour play --level %s' to set the first high score!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %-16s  %s\n", "Rank", "Score", "Player", "Date", "Run")
	fmt.Printf("  %-4s  %-10s  %-12s  %-16s  %s\n", "----", "-----", "------", "----", "---")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-12s  %-16s  %s\n",
			i+1, entry.Score, playerLabel(entry.Player), entry.CreatedAt.Format("2006-01-02 15:04"), entry.RunID)
	}

	fmt.Println()
	if best, err := store.HighScore(scoresGameID, levelID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
