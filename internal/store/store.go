// Package store persists rendered-note cache entries and build records
// in a local SQLite database so repeat builds only convert notes that
// actually changed.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store wraps a sql.DB with daily-specific helpers.
type Store struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging cache database: %w", err)
	}

	s := &Store{DB: sqlDB, path: path}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	s := &Store{DB: sqlDB, path: ":memory:"}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate runs all schema migrations.
func (s *Store) migrate() error {
	_, err := s.Exec(schema)
	return err
}

// schema contains the full database schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS render_cache (
    path TEXT PRIMARY KEY,
    hash TEXT NOT NULL,
    day TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL DEFAULT '',
    html TEXT NOT NULL DEFAULT '',
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_render_cache_day ON render_cache(day);

CREATE TABLE IF NOT EXISTS builds (
    id TEXT PRIMARY KEY,
    started_at DATETIME NOT NULL,
    finished_at DATETIME NOT NULL,
    notes INTEGER NOT NULL DEFAULT 0,
    days INTEGER NOT NULL DEFAULT 0,
    output_dir TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started_at DESC);
`
