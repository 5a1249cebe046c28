package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/xdplay/internal/core/puzzle"
)

// PuzzleStore implements secondary.PuzzleStore for .xd files on disk.
type PuzzleStore struct{}

// NewPuzzleStore creates a new filesystem puzzle store.
func NewPuzzleStore() *PuzzleStore {
	return &PuzzleStore{}
}

// PuzzleID returns the journal id of a puzzle file: its base name without
// extension.
func PuzzleID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads and parses the puzzle at path.
func (s *PuzzleStore) Load(ctx context.Context, path string) (*puzzle.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle: %w", err)
	}
	p, err := puzzle.Parse(PuzzleID(path), string(data))
	if err != nil {
		var pe *puzzle.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return p, nil
}

// Save writes the puzzle document through a temporary file renamed over path.
func (s *PuzzleStore) Save(ctx context.Context, path string, p *puzzle.Puzzle, opts puzzle.FormatOptions) error {
	var buf bytes.Buffer
	if err := puzzle.Write(&buf, p, opts); err != nil {
		return fmt.Errorf("failed to format puzzle: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write puzzle: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set puzzle permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write puzzle: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save puzzle to %s: %w", path, err)
	}
	return nil
}
