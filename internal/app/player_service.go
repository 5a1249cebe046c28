package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/xdplay/internal/core/cursor"
	"github.com/example/xdplay/internal/core/journal"
	"github.com/example/xdplay/internal/core/rebus"
	"github.com/example/xdplay/internal/ports/primary"
	"github.com/example/xdplay/internal/ports/secondary"
)

// Status messages shown by the player.
const (
	StatusComplete      = "puzzle complete! nicely done"
	StatusNothingToUndo = "nothing to undo"
	StatusPoolExhausted = "no free rebus symbols! clear a rebus cell first"
	StatusInvalidEntry  = "that can't go in a cell"
)

// PlayerServiceImpl implements the PlayerService interface: a rotation of
// puzzle sessions sharing one status line and clock.
type PlayerServiceImpl struct {
	sessions []*SessionServiceImpl
	store    secondary.PuzzleStore
	idx      int
	statuses []string
	started  time.Time
	now      func() time.Time
	log      *slog.Logger
}

// NewPlayerService loads every puzzle in paths. Puzzles that fail to load are
// reported in the status line and left out of the rotation; it is an error
// only when none load. The first puzzle is replayed before returning.
func NewPlayerService(ctx context.Context, paths []string, store secondary.PuzzleStore, opener secondary.JournalOpener, history secondary.HistoryRepository, cfg SessionConfig) (*PlayerServiceImpl, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	ps := &PlayerServiceImpl{
		store:   store,
		started: cfg.Now(),
		now:     cfg.Now,
		log:     cfg.Logger,
	}

	var errs []error
	for _, path := range paths {
		p, err := store.Load(ctx, path)
		if err != nil {
			ps.log.Error("failed to load puzzle", "path", path, "error", err)
			ps.SetStatus(err.Error())
			errs = append(errs, err)
			continue
		}
		ps.sessions = append(ps.sessions, NewSessionService(p, opener.Open(p.ID), history, cfg))
	}
	if len(ps.sessions) == 0 {
		if len(errs) == 0 {
			return nil, fmt.Errorf("no puzzles given")
		}
		return nil, fmt.Errorf("no puzzles could be loaded: %w", errors.Join(errs...))
	}

	ps.Report(ps.sessions[0].Reload(ctx))
	return ps, nil
}

// Sessions returns every session in rotation order.
func (ps *PlayerServiceImpl) Sessions() []*SessionServiceImpl {
	return ps.sessions
}

// Current returns the session of the puzzle on screen.
func (ps *PlayerServiceImpl) Current() primary.Session {
	return ps.sessions[ps.idx]
}

// Next rotates to the next puzzle and replays it from the start.
func (ps *PlayerServiceImpl) Next(ctx context.Context) error {
	ps.idx = (ps.idx + 1) % len(ps.sessions)
	ps.ClearStatus()
	s := ps.sessions[ps.idx]
	ps.log.Info("switching puzzle", "xdid", s.Puzzle().ID)
	return s.Reload(ctx)
}

// Tick polls the current journal and runs the completion check.
func (ps *PlayerServiceImpl) Tick(ctx context.Context) {
	s := ps.sessions[ps.idx]
	if _, err := s.Sync(ctx); err != nil {
		ps.Report(err)
		return
	}
	res, err := s.Check(ctx)
	if err != nil {
		ps.Report(err)
	}
	switch {
	case res == nil:
	case res.Marked:
		ps.SetStatus(StatusComplete)
	case res.Filled && !res.Correct:
		ps.SetStatus(fmt.Sprintf("no cigar! %d are wrong", res.Wrong))
	}
}

// Undo reverts the current run of local typing.
func (ps *PlayerServiceImpl) Undo(ctx context.Context) {
	n, err := ps.sessions[ps.idx].UndoRun(ctx)
	if err != nil {
		ps.Report(err)
		return
	}
	if n == 0 {
		ps.SetStatus(StatusNothingToUndo)
	}
}

// SaveCurrent writes the puzzle on screen, with its fill, to path.
func (ps *PlayerServiceImpl) SaveCurrent(ctx context.Context, path string) error {
	s := ps.sessions[ps.idx]
	if err := ps.store.Save(ctx, path, s.Puzzle(), s.FormatOptions()); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Report converts an operation error into status text.
func (ps *PlayerServiceImpl) Report(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, journal.ErrCompleted):
		ps.SetStatus(journal.ErrCompleted.Error())
	case errors.Is(err, rebus.ErrPoolExhausted):
		ps.SetStatus(StatusPoolExhausted)
	case errors.Is(err, cursor.ErrNoClue):
		ps.SetStatus(cursor.ErrNoClue.Error())
	case errors.Is(err, ErrInvalidEntry):
		ps.SetStatus(StatusInvalidEntry)
	default:
		ps.log.Warn("operation failed", "error", err)
		ps.SetStatus(err.Error())
	}
}

// Status returns the latest status message.
func (ps *PlayerServiceImpl) Status() string {
	if len(ps.statuses) == 0 {
		return ""
	}
	return ps.statuses[len(ps.statuses)-1]
}

// SetStatus records a status message. Repeats of the latest are dropped.
func (ps *PlayerServiceImpl) SetStatus(s string) {
	if ps.Status() == s {
		return
	}
	ps.statuses = append(ps.statuses, s)
}

// ClearStatus drops all status messages.
func (ps *PlayerServiceImpl) ClearStatus() {
	ps.statuses = nil
}

// Elapsed returns time since the player started.
func (ps *PlayerServiceImpl) Elapsed() time.Duration {
	return ps.now().Sub(ps.started)
}

// JournalPaths returns the journal of every puzzle in the rotation.
func (ps *PlayerServiceImpl) JournalPaths() []string {
	out := make([]string, 0, len(ps.sessions))
	for _, s := range ps.sessions {
		out = append(out, s.JournalPath())
	}
	return out
}
