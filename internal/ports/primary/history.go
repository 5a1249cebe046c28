package primary

import (
	"context"
	"time"
)

// HistoryService defines the primary port for the local completion history.
type HistoryService interface {
	// ListCompletions retrieves completed puzzles, newest first.
	ListCompletions(ctx context.Context, req ListCompletionsRequest) ([]*CompletedPuzzle, error)

	// GetCompletion retrieves the completion of one puzzle.
	GetCompletion(ctx context.Context, xdid string) (*CompletedPuzzle, error)
}

// ListCompletionsRequest contains filter options for listing completions.
type ListCompletionsRequest struct {
	User  string
	Limit int
}

// CompletedPuzzle represents a completion at the port boundary.
type CompletedPuzzle struct {
	XDID        string
	Title       string
	User        string
	Cells       int
	Solvers     int
	Elapsed     time.Duration
	JournalPath string
	CompletedAt string
}
