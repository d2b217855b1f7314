// Package leaderboard persists finished games so wins survive restarts.
package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// won_at is unix seconds so aggregates scan back without driver-specific
// time parsing
const schema = `
CREATE TABLE IF NOT EXISTS wins (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	player_name TEXT NOT NULL,
	avatar TEXT NOT NULL DEFAULT '',
	room_code TEXT NOT NULL,
	won_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_wins_player_name ON wins(player_name);
`

// Entry is one row of the public leaderboard
type Entry struct {
	Name    string    `json:"name"`
	Avatar  string    `json:"avatar"`
	Wins    int       `json:"wins"`
	LastWin time.Time `json:"lastWin"`
}

// Store records wins in a SQLite database
type Store struct {
	db *sql.DB
}

// Open opens the database and ensures the schema exists
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("leaderboard db path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordWin inserts one finished game
func (s *Store) RecordWin(ctx context.Context, name, avatar, roomCode string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wins (player_name, avatar, room_code, won_at) VALUES (?, ?, ?, ?)`,
		name, avatar, roomCode, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("insert win: %w", err)
	}
	return nil
}

// TopN returns the best players by win count, most recent win breaking ties
func (s *Store) TopN(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_name, MAX(avatar), COUNT(*) AS wins, MAX(won_at)
		FROM wins
		GROUP BY player_name
		ORDER BY wins DESC, MAX(won_at) DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var lastWin int64
		if err := rows.Scan(&e.Name, &e.Avatar, &e.Wins, &lastWin); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		e.LastWin = time.Unix(lastWin, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read leaderboard rows: %w", err)
	}
	return entries, nil
}
