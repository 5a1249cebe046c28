// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the terminal UI and CLI drive play.
package primary

import (
	"context"
	"time"
)

// PlayerService defines the primary port for a rotation of puzzles played in
// one terminal.
type PlayerService interface {
	// Current returns the session of the puzzle on screen.
	Current() Session

	// Next rotates to the next puzzle, clearing it and replaying its journal
	// from the start.
	Next(ctx context.Context) error

	// Tick polls the current journal and runs the completion check. Errors
	// are reported through Status rather than returned.
	Tick(ctx context.Context)

	// Undo reverts the current run of local typing on screen, reporting
	// "nothing to undo" when there is none.
	Undo(ctx context.Context)

	// SaveCurrent writes the puzzle on screen, with its fill, to path.
	SaveCurrent(ctx context.Context, path string) error

	// Report converts an operation error into status text. nil is ignored.
	Report(err error)

	// Status returns the latest status message.
	Status() string

	// SetStatus replaces the status message.
	SetStatus(s string)

	// ClearStatus drops all status messages.
	ClearStatus()

	// Elapsed returns time since the player started.
	Elapsed() time.Duration

	// JournalPaths returns the journal of every puzzle in the rotation.
	JournalPaths() []string
}
