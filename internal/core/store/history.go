package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/searchlens/searchlens/internal/core"
)

// HistoryEntry is a stored investigation summary. Records are kept as the
// JSON payload produced at generation time.
type HistoryEntry struct {
	ID          string
	Subject     string
	Categories  []string
	RecordCount int
	ErrorCount  int
	CompletedAt time.Time
}

// SaveInvestigation persists an investigation's records for later listing.
func (s *Store) SaveInvestigation(ctx context.Context, inv *core.Investigation) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}
	if inv == nil || strings.TrimSpace(inv.ID) == "" {
		return errors.New("investigation id is required")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	recordsJSON, err := json.Marshal(inv.Records)
	if err != nil {
		return fmt.Errorf("encode investigation records: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO investigations (id, subject, categories, record_count, error_count, records_json, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			categories = excluded.categories,
			record_count = excluded.record_count,
			error_count = excluded.error_count,
			records_json = excluded.records_json,
			completed_at = excluded.completed_at
	`, inv.ID, inv.Subject, strings.Join(inv.Categories, ","), len(inv.Records), inv.Errors,
		string(recordsJSON), inv.CompletedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("save investigation: %w", err)
	}
	return nil
}

// ListRecent returns the most recent investigations, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if limit < 1 {
		limit = 20
	}

	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, subject, categories, record_count, error_count, completed_at
		FROM investigations
		ORDER BY completed_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list investigations: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	entries := make([]HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			entry       HistoryEntry
			categories  string
			completedAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.Subject, &categories, &entry.RecordCount, &entry.ErrorCount, &completedAt); err != nil {
			return nil, fmt.Errorf("scan investigation: %w", err)
		}
		if categories != "" {
			entry.Categories = strings.Split(categories, ",")
		}
		entry.CompletedAt = time.Unix(completedAt, 0).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list investigations: %w", err)
	}
	return entries, nil
}

// GetInvestigation loads a stored investigation with its full record list.
func (s *Store) GetInvestigation(ctx context.Context, id string) (*core.Investigation, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("investigation id is required")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var (
		inv         core.Investigation
		categories  string
		errorCount  int
		recordsJSON string
		completedAt int64
	)
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, subject, categories, error_count, records_json, completed_at
		FROM investigations
		WHERE id = ?
	`, strings.TrimSpace(id))
	if err := row.Scan(&inv.ID, &inv.Subject, &categories, &errorCount, &recordsJSON, &completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch investigation: %w", err)
	}

	if categories != "" {
		inv.Categories = strings.Split(categories, ",")
	}
	if err := json.Unmarshal([]byte(recordsJSON), &inv.Records); err != nil {
		return nil, fmt.Errorf("decode investigation records: %w", err)
	}
	inv.Errors = errorCount
	inv.CompletedAt = time.Unix(completedAt, 0).UTC()
	return &inv, nil
}
