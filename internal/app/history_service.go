package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/xdplay/internal/ports/primary"
	"github.com/example/xdplay/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	historyRepo secondary.HistoryRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(historyRepo secondary.HistoryRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{historyRepo: historyRepo}
}

// ListCompletions retrieves completed puzzles, newest first.
func (s *HistoryServiceImpl) ListCompletions(ctx context.Context, req primary.ListCompletionsRequest) ([]*primary.CompletedPuzzle, error) {
	records, err := s.historyRepo.List(ctx, secondary.HistoryFilters{User: req.User, Limit: req.Limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	completions := make([]*primary.CompletedPuzzle, len(records))
	for i, r := range records {
		completions[i] = s.recordToCompletion(r)
	}
	return completions, nil
}

// GetCompletion retrieves the completion of one puzzle.
func (s *HistoryServiceImpl) GetCompletion(ctx context.Context, xdid string) (*primary.CompletedPuzzle, error) {
	record, err := s.historyRepo.GetByXDID(ctx, xdid)
	if err != nil {
		return nil, err
	}
	return s.recordToCompletion(record), nil
}

func (s *HistoryServiceImpl) recordToCompletion(r *secondary.CompletionRecord) *primary.CompletedPuzzle {
	return &primary.CompletedPuzzle{
		XDID:        r.XDID,
		Title:       r.Title,
		User:        r.User,
		Cells:       r.Cells,
		Solvers:     r.Solvers,
		Elapsed:     time.Duration(r.ElapsedSeconds) * time.Second,
		JournalPath: r.JournalPath,
		CompletedAt: r.CompletedAt,
	}
}

// Ensure HistoryServiceImpl implements the interface.
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
