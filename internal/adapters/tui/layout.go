package tui

import (
	"github.com/example/xdplay/internal/core/puzzle"
	"github.com/example/xdplay/internal/ports/primary"
)

const (
	gridTop   = 2
	gridLeft  = 4
	clueMinW  = 30
	clueGap   = 4
	cellWidth = 2 // glyph plus separator
)

// layout places one snapshot on a w x h screen. Grids larger than the
// screen scroll to keep the cursor visible.
type layout struct {
	w, h           int
	rowOff, colOff int
	visRows        int
	visCols        int
	clueLeft       int
	acrossTop      int
	downTop        int
	clueLines      int
	solverRows     int
	tooSmall       bool

	// screen row -> clue drawn there, rebuilt on every draw
	clueRows map[int]puzzle.ClueID
}

func newLayout(snap *primary.Snapshot, w, h int) *layout {
	l := &layout{w: w, h: h, clueRows: make(map[int]puzzle.ClueID)}

	l.visRows = clamp(h-gridTop-3, 1, snap.Rows)
	l.visCols = clamp((w-gridLeft-clueMinW)/cellWidth, 1, snap.Cols)
	l.rowOff = clamp(snap.Cursor.Y-l.visRows/2, 0, snap.Rows-l.visRows)
	l.colOff = clamp(snap.Cursor.X-l.visCols/2, 0, snap.Cols-l.visCols)
	l.tooSmall = l.visRows < snap.Rows || l.visCols < snap.Cols

	l.clueLeft = gridLeft + cellWidth*l.visCols + clueGap
	l.acrossTop = gridTop
	l.clueLines = max(3, (h-gridTop-3)/2-1)
	l.downTop = l.acrossTop + l.clueLines + 1

	l.solverRows = max(1, len(snap.Solvers)/5+1)
	return l
}

// gridBottom is the screen row of the grid's lower border.
func (l *layout) gridBottom() int {
	return gridTop + l.visRows
}

// notesTop is the first screen row of the note list.
func (l *layout) notesTop() int {
	return l.gridBottom() + l.solverRows + 2
}

// screenPos returns where cell c is drawn, and whether it is visible.
func (l *layout) screenPos(c puzzle.Coord) (int, int, bool) {
	x, y := c.X-l.colOff, c.Y-l.rowOff
	if x < 0 || x >= l.visCols || y < 0 || y >= l.visRows {
		return 0, 0, false
	}
	return gridLeft + cellWidth*x, gridTop + y, true
}

// cellAt maps a screen position inside the grid to a cell.
func (l *layout) cellAt(x, y int) (puzzle.Coord, bool) {
	if y < gridTop || y >= gridTop+l.visRows || x < gridLeft || x >= gridLeft+cellWidth*l.visCols {
		return puzzle.Coord{}, false
	}
	return puzzle.Coord{X: l.colOff + (x-gridLeft)/cellWidth, Y: l.rowOff + y - gridTop}, true
}

// clueAt returns the clue drawn on screen row y.
func (l *layout) clueAt(y int) (puzzle.ClueID, bool) {
	id, ok := l.clueRows[y]
	return id, ok
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
