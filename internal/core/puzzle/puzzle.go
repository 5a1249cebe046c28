// Package puzzle contains the crossword data model: solution grid, player
// fill, clues and the cell-to-clue cross index.
// This is part of the Functional Core - no I/O, only pure functions.
package puzzle

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell markers used in the solution and fill grids.
const (
	Block    = "#"
	Unfilled = "."
)

// Direction is the fill direction of a clue or of the cursor.
type Direction byte

const (
	Across Direction = 'A'
	Down   Direction = 'D'
)

// String returns "A" or "D".
func (d Direction) String() string {
	return string(d)
}

// Toggle returns the other direction.
func (d Direction) Toggle() Direction {
	if d == Across {
		return Down
	}
	return Across
}

// Coord is a grid position. X is the column, Y is the row.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ClueID identifies a clue, e.g. A1 or D14.
type ClueID struct {
	Dir Direction
	Num int
}

// String returns the journal/document form of the id ("A1").
func (id ClueID) String() string {
	if id.Num == 0 {
		return ""
	}
	return id.Dir.String() + strconv.Itoa(id.Num)
}

// IsZero reports whether id names no clue.
func (id ClueID) IsZero() bool {
	return id.Num == 0
}

// ParseClueID parses "A1"/"D14".
func ParseClueID(s string) (ClueID, error) {
	if len(s) < 2 {
		return ClueID{}, fmt.Errorf("invalid clue id %q", s)
	}
	dir := Direction(s[0])
	if dir != Across && dir != Down {
		return ClueID{}, fmt.Errorf("invalid clue direction in %q", s)
	}
	num, err := strconv.Atoi(s[1:])
	if err != nil || num <= 0 {
		return ClueID{}, fmt.Errorf("invalid clue number in %q", s)
	}
	return ClueID{Dir: dir, Num: num}, nil
}

// Clue is a numbered entry together with the cells it spans.
type Clue struct {
	ID     ClueID
	Text   string
	Answer string  // reference answer from the document, may be empty
	Coords []Coord // always at least two cells
}

// Cross holds the clues covering a single cell. Either may be nil.
type Cross struct {
	Across *Clue
	Down   *Clue
}

// Get returns the clue for the given direction.
func (c Cross) Get(dir Direction) *Clue {
	if dir == Across {
		return c.Across
	}
	return c.Down
}

// MetaEntry is one "Key: value" line of the metadata section.
type MetaEntry struct {
	Key   string
	Value string
}

// Meta is the ordered metadata of a puzzle.
type Meta []MetaEntry

// Get returns the value for key.
func (m Meta) Get(key string) (string, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// With returns a copy of m with key set to value, keeping its position if it
// already exists and appending otherwise.
func (m Meta) With(key, value string) Meta {
	out := make(Meta, 0, len(m)+1)
	found := false
	for _, e := range m {
		if e.Key == key {
			e.Value = value
			found = true
		}
		out = append(out, e)
	}
	if !found {
		out = append(out, MetaEntry{Key: key, Value: value})
	}
	return out
}

// Without returns a copy of m without key.
func (m Meta) Without(key string) Meta {
	out := make(Meta, 0, len(m))
	for _, e := range m {
		if e.Key != key {
			out = append(out, e)
		}
	}
	return out
}

// Puzzle is a loaded crossword. Its shape (solution, clues, index) is fixed
// after Parse; only the fill grid changes.
type Puzzle struct {
	ID       string // journal id, the base name of the puzzle file
	Meta     Meta
	Solution [][]string

	grid   [][]string
	rows   int
	cols   int
	clues  map[ClueID]*Clue
	across []*Clue
	down   []*Clue
	cross  map[Coord]Cross
}

// Rows returns the grid height.
func (p *Puzzle) Rows() int { return p.rows }

// Cols returns the grid width.
func (p *Puzzle) Cols() int { return p.cols }

// InBounds reports whether c is on the grid.
func (p *Puzzle) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < p.cols && c.Y < p.rows
}

// Cell returns the current fill at c. Off-grid positions read as Block.
func (p *Puzzle) Cell(c Coord) string {
	if !p.InBounds(c) {
		return Block
	}
	return p.grid[c.Y][c.X]
}

// IsBlock reports whether c is a block or off the grid.
func (p *Puzzle) IsBlock(c Coord) bool {
	return isNonAnswer(p.SolutionAt(c))
}

// SolutionAt returns the solution string at c, or Block when off-grid.
func (p *Puzzle) SolutionAt(c Coord) string {
	if !p.InBounds(c) {
		return Block
	}
	return p.Solution[c.Y][c.X]
}

// Set overwrites the fill at c. Blocks, off-grid cells and block values are
// refused and reported as false.
func (p *Puzzle) Set(c Coord, value string) bool {
	if p.IsBlock(c) || isNonAnswer(value) {
		return false
	}
	p.grid[c.Y][c.X] = value
	return true
}

// Clear resets every non-block cell to Unfilled.
func (p *Puzzle) Clear() {
	p.grid = blankGrid(p.Solution)
}

// Grid returns a copy of the fill grid.
func (p *Puzzle) Grid() [][]string {
	out := make([][]string, len(p.grid))
	for y, row := range p.grid {
		out[y] = append([]string(nil), row...)
	}
	return out
}

// NCells counts the non-block cells.
func (p *Puzzle) NCells() int {
	n := 0
	for _, row := range p.grid {
		for _, ch := range row {
			if ch != Block {
				n++
			}
		}
	}
	return n
}

// NSolved counts the filled non-block cells.
func (p *Puzzle) NSolved() int {
	n := 0
	for _, row := range p.grid {
		for _, ch := range row {
			if ch != Block && ch != Unfilled {
				n++
			}
		}
	}
	return n
}

// Grade returns the number of cells whose fill matches the solution,
// ignoring case.
func (p *Puzzle) Grade() int {
	n := 0
	for y, row := range p.grid {
		for x, ch := range row {
			if ch != Block && strings.EqualFold(ch, p.Solution[y][x]) {
				n++
			}
		}
	}
	return n
}

// Wrong reports whether c is filled with something other than its solution.
func (p *Puzzle) Wrong(c Coord) bool {
	ch := p.Cell(c)
	if ch == Block || ch == Unfilled {
		return false
	}
	return !strings.EqualFold(ch, p.SolutionAt(c))
}

// Complete reports whether every cell is filled and correct.
func (p *Puzzle) Complete() bool {
	n := p.NCells()
	return p.NSolved() == n && p.Grade() == n
}

// Guess returns the current fill along a clue's span.
func (p *Puzzle) Guess(clue *Clue) string {
	var b strings.Builder
	for _, c := range clue.Coords {
		b.WriteString(p.Cell(c))
	}
	return b.String()
}

func blankGrid(solution [][]string) [][]string {
	grid := make([][]string, len(solution))
	for y, row := range solution {
		grid[y] = make([]string, len(row))
		for x, ch := range row {
			if isNonAnswer(ch) {
				grid[y][x] = Block
			} else {
				grid[y][x] = Unfilled
			}
		}
	}
	return grid
}
