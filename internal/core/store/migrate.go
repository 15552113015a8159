package store

import (
	"context"
	"errors"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS investigations (
		id TEXT PRIMARY KEY,
		subject TEXT NOT NULL,
		categories TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		error_count INTEGER NOT NULL DEFAULT 0,
		records_json TEXT NOT NULL,
		completed_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_investigations_completed ON investigations(completed_at);`,
	`CREATE INDEX IF NOT EXISTS idx_investigations_subject ON investigations(subject);`,
}

// Migrate ensures the required database tables exist.
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store migration failed: %w", err)
		}
	}
	return nil
}
