package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BuildRecord captures one completed site build.
type BuildRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Notes      int
	Days       int
	OutputDir  string
}

// RecordBuild stores a build record, assigning an ID when empty.
func (s *Store) RecordBuild(ctx context.Context, rec BuildRecord) (*BuildRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err := s.ExecContext(ctx,
		`INSERT INTO builds (id, started_at, finished_at, notes, days, output_dir)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt.UTC(), rec.FinishedAt.UTC(), rec.Notes, rec.Days, rec.OutputDir,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting build record: %w", err)
	}
	return &rec, nil
}

// RecentBuilds returns the most recent builds, newest first.
func (s *Store) RecentBuilds(ctx context.Context, limit int) ([]BuildRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.QueryContext(ctx,
		`SELECT id, started_at, finished_at, notes, days, output_dir
		 FROM builds ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}
	defer rows.Close()

	var records []BuildRecord
	for rows.Next() {
		var rec BuildRecord
		if err := rows.Scan(&rec.ID, &rec.StartedAt, &rec.FinishedAt, &rec.Notes, &rec.Days, &rec.OutputDir); err != nil {
			return nil, fmt.Errorf("scanning build record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
