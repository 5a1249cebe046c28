// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/xdplay/internal/ports/secondary"
)

// HistoryRepository implements secondary.HistoryRepository with SQLite.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite completion history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record persists a completion. A puzzle already on record keeps its first row.
func (r *HistoryRepository) Record(ctx context.Context, rec *secondary.CompletionRecord) error {
	var title, journalPath sql.NullString
	if rec.Title != "" {
		title = sql.NullString{String: rec.Title, Valid: true}
	}
	if rec.JournalPath != "" {
		journalPath = sql.NullString{String: rec.JournalPath, Valid: true}
	}

	completedAt := time.Now().UTC()
	if rec.CompletedAt != "" {
		t, err := time.Parse(time.RFC3339, rec.CompletedAt)
		if err != nil {
			return fmt.Errorf("invalid completion time %q: %w", rec.CompletedAt, err)
		}
		completedAt = t.UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO completions
			(xdid, title, user, cells, solvers, elapsed_seconds, journal_path, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.XDID, title, rec.User, rec.Cells, rec.Solvers, rec.ElapsedSeconds, journalPath, completedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}

	return nil
}

// List retrieves completions newest first, optionally for one user.
func (r *HistoryRepository) List(ctx context.Context, filters secondary.HistoryFilters) ([]*secondary.CompletionRecord, error) {
	query := `SELECT xdid, title, user, cells, solvers, elapsed_seconds, journal_path, completed_at
		FROM completions`
	var (
		where []string
		args  []any
	)
	if filters.User != "" {
		where = append(where, "user = ?")
		args = append(args, filters.User)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY completed_at DESC, xdid ASC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer rows.Close()

	var records []*secondary.CompletionRecord
	for rows.Next() {
		record, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	return records, nil
}

// GetByXDID retrieves the completion of one puzzle.
func (r *HistoryRepository) GetByXDID(ctx context.Context, xdid string) (*secondary.CompletionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT xdid, title, user, cells, solvers, elapsed_seconds, journal_path, completed_at
		 FROM completions WHERE xdid = ?`,
		xdid,
	)
	record, err := scanCompletion(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("completion for %s not found", xdid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get completion: %w", err)
	}
	return record, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompletion(s scanner) (*secondary.CompletionRecord, error) {
	var (
		title       sql.NullString
		journalPath sql.NullString
		completedAt time.Time
	)
	record := &secondary.CompletionRecord{}
	err := s.Scan(&record.XDID, &title, &record.User, &record.Cells, &record.Solvers,
		&record.ElapsedSeconds, &journalPath, &completedAt)
	if err != nil {
		return nil, err
	}
	record.Title = title.String
	record.JournalPath = journalPath.String
	record.CompletedAt = completedAt.Format(time.RFC3339)
	return record, nil
}

// Ensure HistoryRepository implements the interface.
var _ secondary.HistoryRepository = (*HistoryRepository)(nil)
