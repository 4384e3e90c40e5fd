package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// CachedNote is one rendered note keyed by its source path. Hash is the
// content hash of the source file at render time; a lookup with a
// different hash misses so edited notes get re-rendered.
type CachedNote struct {
	Path    string
	Hash    string
	Day     string
	Title   string
	Summary string
	HTML    string
}

// GetNote returns the cached render for path if the stored hash still
// matches, or nil on a miss.
func (s *Store) GetNote(ctx context.Context, path, hash string) (*CachedNote, error) {
	var n CachedNote
	err := s.QueryRowContext(ctx,
		`SELECT path, hash, day, title, summary, html FROM render_cache WHERE path = ?`, path,
	).Scan(&n.Path, &n.Hash, &n.Day, &n.Title, &n.Summary, &n.HTML)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading render cache: %w", err)
	}
	if n.Hash != hash {
		return nil, nil
	}
	return &n, nil
}

// PutNote inserts or replaces the cached render for a note.
func (s *Store) PutNote(ctx context.Context, n CachedNote) error {
	_, err := s.ExecContext(ctx,
		`INSERT INTO render_cache (path, hash, day, title, summary, html, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		     hash = excluded.hash,
		     day = excluded.day,
		     title = excluded.title,
		     summary = excluded.summary,
		     html = excluded.html,
		     updated_at = excluded.updated_at`,
		n.Path, n.Hash, n.Day, n.Title, n.Summary, n.HTML, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing render cache: %w", err)
	}
	return nil
}

// PruneNotes deletes cache rows whose paths are no longer present in
// the content directory. It returns the number of rows removed.
func (s *Store) PruneNotes(ctx context.Context, keep []string) (int64, error) {
	if len(keep) == 0 {
		res, err := s.ExecContext(ctx, `DELETE FROM render_cache`)
		if err != nil {
			return 0, fmt.Errorf("pruning render cache: %w", err)
		}
		return res.RowsAffected()
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keep)), ",")
	args := make([]interface{}, len(keep))
	for i, path := range keep {
		args[i] = path
	}

	res, err := s.ExecContext(ctx,
		`DELETE FROM render_cache WHERE path NOT IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("pruning render cache: %w", err)
	}
	return res.RowsAffected()
}
