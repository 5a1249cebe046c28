// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/xdplay/internal/core/journal"
)

// Journal defines the secondary port for one puzzle's append-only guess log.
type Journal interface {
	// Append writes one record as a single line and flushes it to storage
	// before returning. Returns journal.ErrCompleted once the journal has
	// been marked done.
	Append(ctx context.Context, r journal.Record) error

	// ReplayFrom reads every complete record at or after offset, in file
	// order. A missing journal replays as empty.
	ReplayFrom(ctx context.Context, offset int64) (journal.ReplayBatch, error)

	// MarkDone makes the journal read-only.
	MarkDone(ctx context.Context) error

	// Path returns the journal's location, for logs and watchers.
	Path() string
}

// JournalOpener opens the journal of a puzzle id.
type JournalOpener interface {
	Open(xdid string) Journal
}

// HistoryRepository defines the secondary port for the local completion history.
type HistoryRepository interface {
	// Record stores a completion. Recording the same puzzle twice keeps the
	// first completion.
	Record(ctx context.Context, rec *CompletionRecord) error

	// List retrieves completions, newest first.
	List(ctx context.Context, filters HistoryFilters) ([]*CompletionRecord, error)

	// GetByXDID retrieves the completion of one puzzle.
	GetByXDID(ctx context.Context, xdid string) (*CompletionRecord, error)
}

// CompletionRecord represents a completed puzzle as stored in persistence.
type CompletionRecord struct {
	XDID           string
	Title          string
	User           string // the local player who observed completion
	Cells          int
	Solvers        int
	ElapsedSeconds int
	JournalPath    string
	CompletedAt    string
}

// HistoryFilters contains filter options for querying completions.
type HistoryFilters struct {
	User  string
	Limit int
}
