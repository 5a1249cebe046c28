// Package app holds the application services that sit between the driving
// adapters and the journal, history and tmux ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/example/xdplay/internal/core/cursor"
	"github.com/example/xdplay/internal/core/journal"
	"github.com/example/xdplay/internal/core/puzzle"
	"github.com/example/xdplay/internal/core/rebus"
	"github.com/example/xdplay/internal/core/roster"
	"github.com/example/xdplay/internal/core/undo"
	"github.com/example/xdplay/internal/ports/primary"
	"github.com/example/xdplay/internal/ports/secondary"
)

// SolverUser is the author recorded for cells filled by Solve.
const SolverUser = "solver"

// ErrInvalidEntry is returned when a typed value cannot occupy a cell.
var ErrInvalidEntry = errors.New("invalid entry")

// SessionConfig carries per-session settings.
type SessionConfig struct {
	User         string
	RebusSymbols string
	Now          func() time.Time
	Logger       *slog.Logger
}

// SessionServiceImpl implements the Session interface for one puzzle. It is
// not safe for concurrent use; the play loop owns it.
type SessionServiceImpl struct {
	p       *puzzle.Puzzle
	journal secondary.Journal
	history secondary.HistoryRepository
	user    string
	now     func() time.Time
	log     *slog.Logger

	nav     *cursor.Navigator
	rebus   *rebus.Registry
	roster  *roster.Roster
	undo    undo.Stack
	notes   map[puzzle.ClueID][]journal.Record
	circled map[puzzle.Coord]bool
	offset  int64

	noteFirst int
	checkable bool
	completed bool
	started   time.Time
}

// NewSessionService creates a session over p. history may be nil.
func NewSessionService(p *puzzle.Puzzle, j secondary.Journal, history secondary.HistoryRepository, cfg SessionConfig) *SessionServiceImpl {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	s := &SessionServiceImpl{
		p:       p,
		journal: j,
		history: history,
		user:    cfg.User,
		now:     cfg.Now,
		log:     cfg.Logger.With("xdid", p.ID),
		nav:     cursor.New(p),
		rebus:   rebus.New(cfg.RebusSymbols),
	}
	s.reset()
	return s
}

func (s *SessionServiceImpl) reset() {
	s.p.Clear()
	s.rebus.Reset()
	s.roster = roster.New()
	s.undo.Clear()
	s.notes = make(map[puzzle.ClueID][]journal.Record)
	s.circled = make(map[puzzle.Coord]bool)
	s.offset = 0
	s.noteFirst = 0
	s.checkable = false
	s.completed = false
	s.started = s.now()
}

// Puzzle returns the underlying puzzle.
func (s *SessionServiceImpl) Puzzle() *puzzle.Puzzle {
	return s.p
}

// JournalPath returns where this session's journal lives.
func (s *SessionServiceImpl) JournalPath() string {
	return s.journal.Path()
}

// Sync applies journal records written since the last sync.
func (s *SessionServiceImpl) Sync(ctx context.Context) (int, error) {
	batch, err := s.journal.ReplayFrom(ctx, s.offset)
	if err != nil {
		return 0, fmt.Errorf("failed to replay journal: %w", err)
	}
	for _, sk := range batch.Skipped {
		s.log.Warn("skipping unreadable journal line", "journal", s.journal.Path(), "offset", sk.Offset, "error", sk.Err)
	}
	for _, r := range batch.Records {
		s.apply(r)
	}
	if len(batch.Records) > 0 {
		s.log.Debug("replayed journal", "records", len(batch.Records), "from", s.offset, "to", batch.Offset)
	}
	s.offset = batch.Offset
	return len(batch.Records), nil
}

// Reload clears the fill and replays the whole journal.
func (s *SessionServiceImpl) Reload(ctx context.Context) error {
	s.reset()
	_, err := s.Sync(ctx)
	return err
}

// apply is the single path by which journal records reach the grid, for
// local and remote records alike.
func (s *SessionServiceImpl) apply(r journal.Record) {
	if r.IsNote() {
		s.notes[r.Clue] = append(s.notes[r.Clue], r)
		return
	}
	c := r.Coord
	if s.p.IsBlock(c) {
		s.log.Warn("ignoring guess outside the fillable grid", "coord", c.String(), "user", r.User)
		return
	}
	prev := s.p.Cell(c)
	if !s.p.Set(c, r.Ch) {
		s.log.Warn("ignoring unfillable guess", "coord", c.String(), "value", r.Ch, "user", r.User)
		return
	}
	if err := s.rebus.Assign(c, prev, r.Ch); err != nil {
		// the cell no longer holds prev, so its symbol must not stay pinned
		s.rebus.Clear(c, prev)
		s.log.Warn("rebus not mapped", "coord", c.String(), "value", r.Ch, "error", err)
	}
	s.roster.Observe(c, r.Ch, r.User)
}

// set writes ch at c through the journal. The grid changes only after a
// successful append. Cells that already hold ch are left alone.
func (s *SessionServiceImpl) set(ctx context.Context, c puzzle.Coord, ch, user string, record bool) error {
	if s.p.IsBlock(c) {
		return nil
	}
	prev := s.p.Cell(c)
	if prev == ch {
		return nil
	}
	if !s.rebus.CanAssign(c, prev, ch) {
		return rebus.ErrPoolExhausted
	}
	r := journal.Guess(s.p.ID, c, ch, user, s.now())
	if err := s.journal.Append(ctx, r); err != nil {
		if errors.Is(err, journal.ErrCompleted) {
			return err
		}
		return fmt.Errorf("failed to write guess: %w", err)
	}
	if record {
		credit, _ := s.roster.Guesser(c)
		s.undo.Push(undo.Entry{Coord: c, Prev: prev, User: credit.User})
	}
	s.apply(r)
	return nil
}

func normalizeEntry(v string) (string, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" || v == puzzle.Block || v == puzzle.Unfilled || v == "_" {
		return "", ErrInvalidEntry
	}
	for _, r := range v {
		if !unicode.IsGraphic(r) || unicode.IsSpace(r) {
			return "", ErrInvalidEntry
		}
	}
	return v, nil
}

// Type enters ch at the cursor and advances in the fill direction. A live
// rebus symbol re-enters its string.
func (s *SessionServiceImpl) Type(ctx context.Context, ch string) error {
	if utf8.RuneCountInString(ch) != 1 {
		return ErrInvalidEntry
	}
	value, ok := s.rebus.Value(ch)
	if !ok {
		var err error
		if value, err = normalizeEntry(ch); err != nil {
			return err
		}
	}
	if err := s.set(ctx, s.nav.Pos, value, s.user, true); err != nil {
		return err
	}
	s.advance(1)
	return nil
}

// EnterRebus enters value at the cursor without advancing.
func (s *SessionServiceImpl) EnterRebus(ctx context.Context, value string) error {
	v, err := normalizeEntry(value)
	if err != nil {
		return err
	}
	return s.set(ctx, s.nav.Pos, v, s.user, true)
}

// SetAt enters ch at c as the session user.
func (s *SessionServiceImpl) SetAt(ctx context.Context, c puzzle.Coord, ch string) error {
	if !s.p.InBounds(c) || s.p.IsBlock(c) {
		return fmt.Errorf("%s is not a fillable cell", c)
	}
	v := puzzle.Unfilled
	if ch != puzzle.Unfilled {
		var err error
		if v, err = normalizeEntry(ch); err != nil {
			return err
		}
	}
	return s.set(ctx, c, v, s.user, true)
}

// Erase clears a cell according to mode.
func (s *SessionServiceImpl) Erase(ctx context.Context, mode primary.EraseMode) error {
	switch mode {
	case primary.EraseBack:
		s.advance(-1)
		return s.set(ctx, s.nav.Pos, puzzle.Unfilled, s.user, true)
	case primary.EraseAdvance:
		if err := s.set(ctx, s.nav.Pos, puzzle.Unfilled, s.user, true); err != nil {
			return err
		}
		s.advance(1)
		return nil
	default:
		return s.set(ctx, s.nav.Pos, puzzle.Unfilled, s.user, true)
	}
}

func (s *SessionServiceImpl) advance(k int) {
	if s.nav.Advance(k) {
		s.noteFirst = 0
	}
}

// Undo reverts the most recent local edit by appending a compensating guess.
// The cursor lands on the reverted cell.
func (s *SessionServiceImpl) Undo(ctx context.Context) (int, error) {
	e, ok := s.undo.Pop()
	if !ok {
		return 0, nil
	}
	user := e.User
	if user == "" {
		user = s.user
	}
	if err := s.set(ctx, e.Coord, e.Prev, user, false); err != nil {
		s.undo.Push(e)
		return 0, err
	}
	if s.nav.JumpTo(e.Coord) {
		s.noteFirst = 0
	}
	return 1, nil
}

// UndoRun reverts every local edit since the cursor last moved. The cursor
// ends on the earliest edited cell of the run.
func (s *SessionServiceImpl) UndoRun(ctx context.Context) (int, error) {
	n := 0
	for s.undo.Len() > 0 {
		k, err := s.Undo(ctx)
		n += k
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (s *SessionServiceImpl) navigated() {
	s.undo.Clear()
	s.noteFirst = 0
}

// Move steps the cursor, skipping blocks.
func (s *SessionServiceImpl) Move(dx, dy int) bool {
	if !s.nav.MoveBy(dx, dy) {
		return false
	}
	s.navigated()
	return true
}

// Seek jumps to the start of the clue k places away in the fill direction.
func (s *SessionServiceImpl) Seek(k int) error {
	moved, err := s.nav.Seek(s.nav.Dir, k)
	if err != nil {
		return err
	}
	if moved {
		s.navigated()
	}
	return nil
}

// JumpTo moves the cursor to c.
func (s *SessionServiceImpl) JumpTo(c puzzle.Coord) bool {
	if !s.nav.JumpTo(c) {
		return false
	}
	s.navigated()
	return true
}

// JumpToClue moves to the first cell of id and adopts its direction.
func (s *SessionServiceImpl) JumpToClue(id puzzle.ClueID) bool {
	clue, ok := s.p.Clue(id)
	if !ok {
		return false
	}
	s.nav.Dir = id.Dir
	s.nav.JumpTo(clue.Coords[0])
	s.navigated()
	return true
}

// ToggleDirection swaps the fill direction.
func (s *SessionServiceImpl) ToggleDirection() {
	s.nav.Toggle()
	s.noteFirst = 0
}

// AddNote appends a note to the clue under the cursor. The note shows up
// through the next sync like any other session's note.
func (s *SessionServiceImpl) AddNote(ctx context.Context, text string) error {
	clue := s.nav.Clue()
	if clue == nil {
		return cursor.ErrNoClue
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if err := s.journal.Append(ctx, journal.NewNote(clue.ID, text, s.user, s.now())); err != nil {
		if errors.Is(err, journal.ErrCompleted) {
			return err
		}
		return fmt.Errorf("failed to write note: %w", err)
	}
	_, err := s.Sync(ctx)
	return err
}

// Notes returns the notes of a clue in journal order.
func (s *SessionServiceImpl) Notes(id puzzle.ClueID) []journal.Record {
	return append([]journal.Record(nil), s.notes[id]...)
}

func (s *SessionServiceImpl) currentNotes() []journal.Record {
	clue := s.nav.Clue()
	if clue == nil {
		return nil
	}
	return s.notes[clue.ID]
}

func (s *SessionServiceImpl) clampNotes() {
	last := len(s.currentNotes()) - 2
	if s.noteFirst > last {
		s.noteFirst = last
	}
	if s.noteFirst < 0 {
		s.noteFirst = 0
	}
}

// ScrollNotes pages the note list of the current clue.
func (s *SessionServiceImpl) ScrollNotes(delta int) {
	s.noteFirst += delta
	s.clampNotes()
}

// ScrollNotesHome shows the oldest notes.
func (s *SessionServiceImpl) ScrollNotesHome() {
	s.noteFirst = 0
}

// ScrollNotesEnd shows the newest notes.
func (s *SessionServiceImpl) ScrollNotesEnd() {
	s.noteFirst = len(s.currentNotes())
	s.clampNotes()
}

// Solve fills every unfilled cell from the solution as SolverUser.
func (s *SessionServiceImpl) Solve(ctx context.Context) error {
	for y := 0; y < s.p.Rows(); y++ {
		for x := 0; x < s.p.Cols(); x++ {
			c := puzzle.Coord{X: x, Y: y}
			if s.p.Cell(c) != puzzle.Unfilled {
				continue
			}
			if err := s.set(ctx, c, s.p.SolutionAt(c), SolverUser, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// ToggleCircle marks or unmarks the cursor cell.
func (s *SessionServiceImpl) ToggleCircle() {
	c := s.nav.Pos
	if s.circled[c] {
		delete(s.circled, c)
	} else {
		s.circled[c] = true
	}
}

// Check evaluates completion. The first time the puzzle is seen complete the
// journal is marked done and the completion is recorded in history.
func (s *SessionServiceImpl) Check(ctx context.Context) (*primary.Completion, error) {
	res := &primary.Completion{}
	n := s.p.NCells()
	if s.p.NSolved() != n {
		s.checkable = false
		return res, nil
	}
	res.Filled = true
	correct := s.p.Grade()
	res.Wrong = n - correct
	if correct != n {
		s.checkable = true
		return res, nil
	}
	s.checkable = false
	res.Correct = true
	if s.completed {
		return res, nil
	}
	if err := s.journal.MarkDone(ctx); err != nil {
		return res, fmt.Errorf("failed to mark puzzle done: %w", err)
	}
	s.completed = true
	res.Marked = true
	s.log.Info("puzzle complete", "cells", n, "solvers", len(s.roster.Users()))
	s.recordCompletion(ctx)
	return res, nil
}

func (s *SessionServiceImpl) recordCompletion(ctx context.Context) {
	if s.history == nil {
		return
	}
	title, _ := s.p.Meta.Get("Title")
	rec := &secondary.CompletionRecord{
		XDID:           s.p.ID,
		Title:          title,
		User:           s.user,
		Cells:          s.p.NCells(),
		Solvers:        len(s.roster.Users()),
		ElapsedSeconds: int(s.now().Sub(s.started).Seconds()),
		JournalPath:    s.journal.Path(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		s.log.Warn("failed to record completion", "error", err)
	}
}

// Save writes the document form with the current fill.
func (s *SessionServiceImpl) Save(w io.Writer) error {
	return puzzle.Write(w, s.p, s.FormatOptions())
}

// FormatOptions returns the options that render live rebuses as their symbols.
func (s *SessionServiceImpl) FormatOptions() puzzle.FormatOptions {
	return puzzle.FormatOptions{
		Symbol:    s.rebus.Symbol,
		RebusMeta: s.rebus.MetaValue(),
	}
}

// Standings returns each solver's share of the filled cells.
func (s *SessionServiceImpl) Standings() []roster.Standing {
	return s.roster.Standings(s.p)
}

// Snapshot returns a read-only view for rendering.
func (s *SessionServiceImpl) Snapshot() *primary.Snapshot {
	title, _ := s.p.Meta.Get("Title")
	snap := &primary.Snapshot{
		ID:        s.p.ID,
		Title:     title,
		Rows:      s.p.Rows(),
		Cols:      s.p.Cols(),
		Cursor:    s.nav.Pos,
		Dir:       s.nav.Dir,
		NoteFirst: s.noteFirst,
		NSolved:   s.p.NSolved(),
		NCells:    s.p.NCells(),
		Checkable: s.checkable,
		Completed: s.completed,
	}

	current := s.nav.Clue()
	cross := s.p.CrossAt(s.nav.Pos)
	numbers := make(map[puzzle.Coord]int)
	clueViews := func(dir puzzle.Direction) []primary.ClueView {
		clues := s.p.Clues(dir)
		out := make([]primary.ClueView, 0, len(clues))
		for _, c := range clues {
			numbers[c.Coords[0]] = c.ID.Num
			cv := primary.ClueView{
				ID:       c.ID,
				Text:     c.Text,
				Guess:    s.p.Guess(c),
				Start:    c.Coords[0],
				Current:  c == current,
				Crossing: c == cross.Get(dir),
				Notes:    len(s.notes[c.ID]),
				NoteSlot: -1,
			}
			if notes := s.notes[c.ID]; len(notes) > 0 {
				if slot, ok := s.roster.Slot(notes[len(notes)-1].User); ok {
					cv.NoteSlot = slot
				}
			}
			out = append(out, cv)
		}
		return out
	}
	snap.Across = clueViews(puzzle.Across)
	snap.Down = clueViews(puzzle.Down)
	for _, list := range [][]primary.ClueView{snap.Across, snap.Down} {
		for i := range list {
			if list[i].Current {
				cv := list[i]
				snap.Current = &cv
			}
		}
	}

	snap.Cells = make([][]primary.CellView, s.p.Rows())
	for y := range snap.Cells {
		row := make([]primary.CellView, s.p.Cols())
		for x := range row {
			c := puzzle.Coord{X: x, Y: y}
			v := s.p.Cell(c)
			cell := primary.CellView{
				Value:   v,
				Glyph:   v,
				Block:   v == puzzle.Block,
				Filled:  v != puzzle.Block && v != puzzle.Unfilled,
				Circled: s.circled[c],
				Slot:    -1,
				Number:  numbers[c],
				InClue:  current != nil && s.p.SameClue(c, current.Coords[0], current.ID.Dir),
			}
			if rebus.IsRebus(v) {
				if sym, ok := s.rebus.Symbol(v); ok {
					cell.Glyph = sym
				} else {
					r, _ := utf8.DecodeRuneInString(v)
					cell.Glyph = string(r)
				}
			}
			if cell.Filled {
				cell.Wrong = s.checkable && s.p.Wrong(c)
				if g, ok := s.roster.Guesser(c); ok {
					if slot, ok := s.roster.Slot(g.User); ok {
						cell.Slot = slot
					}
				}
			}
			row[x] = cell
		}
		snap.Cells[y] = row
	}

	for _, n := range s.currentNotes() {
		slot := -1
		if v, ok := s.roster.Slot(n.User); ok {
			slot = v
		}
		snap.Notes = append(snap.Notes, primary.NoteView{User: n.User, Slot: slot, Text: n.Note, Time: n.Time})
	}
	for _, st := range s.roster.Standings(s.p) {
		snap.Solvers = append(snap.Solvers, primary.SolverView{User: st.User, Slot: st.Slot, Percent: st.Percent})
	}
	for _, e := range s.rebus.Entries() {
		snap.Rebus = append(snap.Rebus, primary.RebusView{Symbol: e.Symbol, Value: e.Value})
	}
	return snap
}
