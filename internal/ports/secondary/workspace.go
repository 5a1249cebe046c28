package secondary

import (
	"context"

	"github.com/example/xdplay/internal/core/puzzle"
)

// PuzzleStore defines the secondary port for reading and writing puzzle documents.
type PuzzleStore interface {
	// Load reads and parses the puzzle at path. The puzzle id is the file
	// name without its extension.
	Load(ctx context.Context, path string) (*puzzle.Puzzle, error)

	// Save writes the puzzle's current fill to path, replacing the file
	// atomically.
	Save(ctx context.Context, path string, p *puzzle.Puzzle, opts puzzle.FormatOptions) error
}
