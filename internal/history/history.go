// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists one record per conversion cycle in a local
// SQLite database. Recording is optional; the build loop runs unchanged
// when no store is configured. See docs/ARCHITECTURE § Build History.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath is the history database location when none is configured.
const DefaultPath = ".mdwatch/history.db"

// Cycle is one recorded conversion cycle.
type Cycle struct {
	ID         int64
	StartedAt  time.Time
	Duration   time.Duration
	Source     string
	Artifact   string
	Mode       string
	Succeeded  bool
	Diagnostic string
}

// Store manages the build-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating the schema
// and parent directory as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cycles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			source TEXT NOT NULL,
			artifact TEXT,
			mode TEXT NOT NULL,
			succeeded INTEGER NOT NULL,
			diagnostic TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_started_at ON cycles(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one cycle to the history.
func (s *Store) Record(ctx context.Context, c Cycle) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cycles (started_at, duration_ms, source, artifact, mode, succeeded, diagnostic)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.StartedAt.UTC().Format(time.RFC3339Nano),
		c.Duration.Milliseconds(),
		c.Source, c.Artifact, c.Mode,
		boolToInt(c.Succeeded), c.Diagnostic,
	)
	if err != nil {
		return fmt.Errorf("recording cycle: %w", err)
	}
	return nil
}

// List returns the most recent cycles, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Cycle, error) {
	query := `SELECT id, started_at, duration_ms, source, artifact, mode, succeeded, diagnostic
		FROM cycles ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cycles: %w", err)
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		var (
			c          Cycle
			startedAt  string
			durationMS int64
			succeeded  int
		)
		if err := rows.Scan(&c.ID, &startedAt, &durationMS, &c.Source,
			&c.Artifact, &c.Mode, &succeeded, &c.Diagnostic); err != nil {
			return nil, fmt.Errorf("scanning cycle: %w", err)
		}
		c.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing cycle timestamp %q: %w", startedAt, err)
		}
		c.Duration = time.Duration(durationMS) * time.Millisecond
		c.Succeeded = succeeded != 0
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
