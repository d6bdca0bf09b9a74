// Package storage provides SQLite-based persistence for run scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when no score has the requested run ID.
var ErrRunNotFound = errors.New("storage: run not found")

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Run is a finished run to be recorded.
type Run struct {
	RunID   string // generated when empty
	GameID  string
	LevelID string
	Player  string // SSH user, empty for local play
	Score   int
}

// ScoreEntry represents a single recorded run.
type ScoreEntry struct {
	ID        int64
	RunID     string
	GameID    string
	LevelID   string
	Player    string
	Score     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			level_id TEXT NOT NULL DEFAULT '',
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_level ON scores(game_id, level_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, level_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run and returns it with its run ID filled in.
func (s *Store) SaveScore(run Run) (Run, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	_, err := s.db.Exec(
		"INSERT INTO scores (run_id, game_id, level_id, player, score) VALUES (?, ?, ?, ?, ?)",
		run.RunID, run.GameID, run.LevelID, run.Player, run.Score,
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return run, nil
}

// levelFilter matches every level when levelID is empty.
const levelFilter = `game_id = ? AND (? = '' OR level_id = ?)`

const selectEntry = `SELECT id, run_id, game_id, level_id, player, score, created_at FROM scores`

// TopScores retrieves the top N scores for a game, optionally restricted
// to one level. Results are ordered by score descending.
func (s *Store) TopScores(gameID, levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		selectEntry+` WHERE `+levelFilter+` ORDER BY score DESC, id ASC LIMIT ?`,
		gameID, levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// AllScores retrieves every score for a game, optionally restricted to one
// level, in TopScores order.
func (s *Store) AllScores(gameID, levelID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		selectEntry+` WHERE `+levelFilter+` ORDER BY score DESC, id ASC`,
		gameID, levelID, levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// ScoreByRunID retrieves the score recorded for a run.
func (s *Store) ScoreByRunID(runID string) (*ScoreEntry, error) {
	rows, err := s.db.Query(selectEntry+` WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrRunNotFound
	}
	return &entries[0], nil
}

// RunRank returns the 1-based position of a run on its level's leaderboard,
// using the TopScores ordering.
func (s *Store) RunRank(runID string) (int, *ScoreEntry, error) {
	entry, err := s.ScoreByRunID(runID)
	if err != nil {
		return 0, nil, err
	}

	var ahead int
	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM scores
		 WHERE game_id = ? AND level_id = ? AND (score > ? OR (score = ? AND id < ?))`,
		entry.GameID, entry.LevelID, entry.Score, entry.Score, entry.ID,
	).Scan(&ahead)
	if err != nil {
		return 0, nil, fmt.Errorf("storage: cannot rank run: %w", err)
	}
	return ahead + 1, entry, nil
}

// HighScore returns the highest score for a game and level.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID, levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(score) FROM scores WHERE `+levelFilter,
		gameID, levelID, levelID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes the scores of a game, or of one of its levels, and
// reports how many runs were removed.
func (s *Store) ClearScores(gameID, levelID string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM scores WHERE `+levelFilter, gameID, levelID, levelID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared scores: %w", err)
	}
	return n, nil
}

// scanEntries reads and closes rows produced by selectEntry.
func scanEntries(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.GameID, &e.LevelID, &e.Player, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
