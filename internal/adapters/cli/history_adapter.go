// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/xdplay/internal/ports/primary"
)

// HistoryAdapter is a thin adapter that translates CLI operations to HistoryService calls.
// It depends only on the HistoryService interface, enabling easy testing with mocks.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List lists completed puzzles, newest first.
func (a *HistoryAdapter) List(ctx context.Context, user string, limit int) error {
	completions, err := a.service.ListCompletions(ctx, primary.ListCompletionsRequest{
		User:  user,
		Limit: limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list completions: %w", err)
	}

	if len(completions) == 0 {
		fmt.Fprintln(a.out, "No completed puzzles")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-12s %-10s %6s %s\n", "COMPLETED", "USER", "TIME", "CELLS", "PUZZLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, c := range completions {
		fmt.Fprintf(a.out, "%-20s %-12s %-10s %6d %s\n", c.CompletedAt, c.User, formatDuration(c.Elapsed), c.Cells, label(c))
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single completion.
func (a *HistoryAdapter) Show(ctx context.Context, xdid string) (*primary.CompletedPuzzle, error) {
	c, err := a.service.GetCompletion(ctx, xdid)
	if err != nil {
		return nil, fmt.Errorf("failed to get completion: %w", err)
	}

	fmt.Fprintf(a.out, "\nPuzzle:    %s\n", c.XDID)
	if c.Title != "" {
		fmt.Fprintf(a.out, "Title:     %s\n", c.Title)
	}
	fmt.Fprintf(a.out, "Completed: %s by %s\n", c.CompletedAt, c.User)
	fmt.Fprintf(a.out, "Cells:     %d\n", c.Cells)
	fmt.Fprintf(a.out, "Solvers:   %d\n", c.Solvers)
	fmt.Fprintf(a.out, "Time:      %s\n", formatDuration(c.Elapsed))
	if c.JournalPath != "" {
		fmt.Fprintf(a.out, "Journal:   %s\n", c.JournalPath)
	}
	fmt.Fprintln(a.out)

	return c, nil
}

func label(c *primary.CompletedPuzzle) string {
	if c.Title == "" {
		return c.XDID
	}
	return fmt.Sprintf("%s (%s)", c.XDID, c.Title)
}

// formatDuration renders h:mm:ss, or m:ss under an hour.
func formatDuration(d time.Duration) string {
	s := int(d.Round(time.Second) / time.Second)
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, s%3600/60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
