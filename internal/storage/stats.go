package storage

import (
	"fmt"
	"time"
)

// LevelStats contains aggregated statistics for one level of a game.
type LevelStats struct {
	GameID     string
	LevelID    string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetLevelStats retrieves statistics for every level of a game that has
// been played, keyed by level ID.
func (s *Store) GetLevelStats(gameID string) (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, level_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 WHERE game_id = ?
		 GROUP BY game_id, level_id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.LevelID, &st.RunsCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
