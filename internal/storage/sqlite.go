// Package storage provides SQLite-based persistence for players and scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Player is a registered runner, identified by email.
type Player struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

// ScoreEntry represents a single score record joined with its player.
type ScoreEntry struct {
	ID         int64
	PlayerID   int64
	PlayerName string
	Score      int
	CreatedAt  time.Time
}

// PlayerStats contains aggregated statistics for one player.
type PlayerStats struct {
	Email      string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
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

	// Async submissions and the scoreboard query share the file
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL REFERENCES players(id),
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player_id);
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

// EnsurePlayer returns the player registered under email, creating it with
// name if none exists. An existing player keeps its original name.
func (s *Store) EnsurePlayer(ctx context.Context, name, email string) (Player, error) {
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO players (name, email) VALUES (?, ?)",
		name, email,
	); err != nil {
		return Player{}, fmt.Errorf("storage: cannot create player: %w", err)
	}

	var p Player
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM players WHERE email = ?",
		email,
	).Scan(&p.ID, &p.Name, &p.Email, &createdAt)
	if err != nil {
		return Player{}, fmt.Errorf("storage: cannot load player: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

// SaveScore records a new score for the given player.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(ctx context.Context, playerID int64, score int) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (player_id, score) VALUES (?, ?)",
		playerID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores across all players.
// Results are ordered by score descending, earlier entries first on ties.
func (s *Store) TopScores(ctx context.Context, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.player_id, p.name, s.score, s.created_at
		 FROM scores s
		 JOIN players p ON p.id = s.player_id
		 ORDER BY s.score DESC, s.id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.PlayerName, &e.Score, &createdAt); err != nil {
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

// HighScore returns the highest score overall.
// Returns 0 if no scores exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics for the player with the given email.
// A player with no games yields zero stats.
func (s *Store) Stats(ctx context.Context, email string) (*PlayerStats, error) {
	stats := &PlayerStats{Email: email}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(s.id), COALESCE(MAX(s.score), 0), COALESCE(AVG(s.score), 0), MAX(s.created_at)
		 FROM scores s
		 JOIN players p ON p.id = s.player_id
		 WHERE p.email = ?`,
		email,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearScores deletes every score, keeping registered players.
func (s *Store) ClearScores(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
