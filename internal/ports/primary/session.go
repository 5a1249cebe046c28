package primary

import (
	"context"
	"io"
	"time"

	"github.com/example/xdplay/internal/core/puzzle"
)

// EraseMode selects which erase key was pressed.
type EraseMode int

const (
	// EraseBack moves back one cell, then erases it.
	EraseBack EraseMode = iota
	// EraseAdvance erases the cursor cell, then moves forward.
	EraseAdvance
	// EraseInPlace erases the cursor cell.
	EraseInPlace
)

// Session defines the primary port for playing one puzzle against its journal.
// Edit operations return recoverable errors (rebus pool exhausted, journal
// unwritable, puzzle already completed); on error the grid is unchanged.
type Session interface {
	// Sync applies journal records written since the last sync.
	Sync(ctx context.Context) (int, error)

	// Reload clears the fill and replays the whole journal.
	Reload(ctx context.Context) error

	// Type enters ch at the cursor and advances in the fill direction. A live
	// rebus symbol re-enters its string.
	Type(ctx context.Context, ch string) error

	// EnterRebus enters a multi-character value at the cursor without advancing.
	EnterRebus(ctx context.Context, value string) error

	// Erase clears a cell according to mode.
	Erase(ctx context.Context, mode EraseMode) error

	// SetAt enters ch at c as the session user.
	SetAt(ctx context.Context, c puzzle.Coord, ch string) error

	// Undo reverts the most recent local edit. Returns the number of edits
	// reverted, 0 when there was nothing to undo.
	Undo(ctx context.Context) (int, error)

	// UndoRun reverts every local edit since the cursor last moved.
	UndoRun(ctx context.Context) (int, error)

	// Move steps the cursor, skipping blocks.
	Move(dx, dy int) bool

	// Seek jumps to the start of the clue k places from the current one in the
	// fill direction.
	Seek(k int) error

	// JumpTo moves the cursor to c.
	JumpTo(c puzzle.Coord) bool

	// JumpToClue moves the cursor to the first cell of a clue and adopts its direction.
	JumpToClue(id puzzle.ClueID) bool

	// ToggleDirection swaps the fill direction.
	ToggleDirection()

	// AddNote appends a note to the clue under the cursor.
	AddNote(ctx context.Context, text string) error

	// ScrollNotes pages the note list of the current clue.
	ScrollNotes(delta int)
	ScrollNotesHome()
	ScrollNotesEnd()

	// Solve fills every unfilled cell from the solution.
	Solve(ctx context.Context) error

	// ToggleCircle marks or unmarks the cursor cell. Circles are local.
	ToggleCircle()

	// Check evaluates completion and marks the journal done the first time the
	// puzzle is observed complete.
	Check(ctx context.Context) (*Completion, error)

	// Save writes the document form with the current fill.
	Save(w io.Writer) error

	// Snapshot returns a read-only view for rendering.
	Snapshot() *Snapshot
}

// Completion is the result of a completion check.
type Completion struct {
	Filled  bool // every cell holds something
	Correct bool // every cell matches the solution
	Wrong   int
	Marked  bool // this check marked the journal done
}

// Snapshot is a read-only copy of session state.
type Snapshot struct {
	ID        string
	Title     string
	Rows      int
	Cols      int
	Cells     [][]CellView
	Cursor    puzzle.Coord
	Dir       puzzle.Direction
	Across    []ClueView
	Down      []ClueView
	Current   *ClueView
	Notes     []NoteView // notes of the current clue
	NoteFirst int        // first visible note
	Solvers   []SolverView
	Rebus     []RebusView
	NSolved   int
	NCells    int
	Checkable bool // filled but not correct
	Completed bool
}

// CellView is one rendered cell.
type CellView struct {
	Value   string // fill value; puzzle.Unfilled or puzzle.Block
	Glyph   string // single printed character
	Block   bool
	Filled  bool
	Wrong   bool // only set while Checkable
	Circled bool
	Slot    int // palette slot of the last guesser, -1 when unknown
	Number  int // clue number starting here, 0 when none
	InClue  bool
}

// ClueView is one clue with its current guess.
type ClueView struct {
	ID       puzzle.ClueID
	Text     string
	Guess    string
	Start    puzzle.Coord
	Current  bool // the clue being filled
	Crossing bool // passes through the cursor in either direction
	Notes    int
	NoteSlot int // palette slot of the latest note author, -1 when none
}

// NoteView is one note.
type NoteView struct {
	User string
	Slot int
	Text string
	Time time.Time
}

// SolverView is one solver's standing.
type SolverView struct {
	User    string
	Slot    int
	Percent int
}

// RebusView is one live rebus.
type RebusView struct {
	Symbol string
	Value  string
}
