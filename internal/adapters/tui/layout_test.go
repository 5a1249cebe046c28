package tui

import (
	"testing"

	"github.com/example/xdplay/internal/core/puzzle"
	"github.com/example/xdplay/internal/ports/primary"
)

func bigSnapshot(cursor puzzle.Coord) *primary.Snapshot {
	return &primary.Snapshot{Rows: 21, Cols: 21, Cursor: cursor}
}

func TestLayout_FitsSmallGrid(t *testing.T) {
	l := newLayout(&primary.Snapshot{Rows: 3, Cols: 3}, 80, 24)
	if l.tooSmall || l.visRows != 3 || l.visCols != 3 {
		t.Errorf("layout = %+v, want whole grid visible", l)
	}
	if l.clueLeft != gridLeft+cellWidth*3+clueGap {
		t.Errorf("clueLeft = %d", l.clueLeft)
	}
}

func TestLayout_ScrollsToCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor puzzle.Coord
		rowOff int
		colOff int
	}{
		{"top left", puzzle.Coord{X: 0, Y: 0}, 0, 0},
		{"bottom right", puzzle.Coord{X: 20, Y: 20}, 21 - 13, 21 - 13},
		{"middle", puzzle.Coord{X: 10, Y: 10}, 10 - 13/2, 10 - 13/2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 13 rows and 13 columns of a 21x21 grid fit on 60x18
			l := newLayout(bigSnapshot(tt.cursor), 60, 18)
			if !l.tooSmall {
				t.Fatal("expected a scrolled layout")
			}
			if l.visRows != 13 || l.visCols != 13 {
				t.Fatalf("visible = %dx%d, want 13x13", l.visCols, l.visRows)
			}
			if l.rowOff != tt.rowOff || l.colOff != tt.colOff {
				t.Errorf("offset = (%d,%d), want (%d,%d)", l.colOff, l.rowOff, tt.colOff, tt.rowOff)
			}
			if _, _, ok := l.screenPos(tt.cursor); !ok {
				t.Error("cursor not visible")
			}
		})
	}
}

func TestLayout_CellAtInvertsScreenPos(t *testing.T) {
	l := newLayout(bigSnapshot(puzzle.Coord{X: 15, Y: 15}), 60, 18)
	c := puzzle.Coord{X: 14, Y: 16}
	x, y, ok := l.screenPos(c)
	if !ok {
		t.Fatal("cell not visible")
	}
	for _, dx := range []int{0, 1} {
		if got, ok := l.cellAt(x+dx, y); !ok || got != c {
			t.Errorf("cellAt(%d,%d) = %v %v, want %v", x+dx, y, got, ok, c)
		}
	}
	if _, ok := l.cellAt(0, 0); ok {
		t.Error("cellAt outside the grid reported a cell")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{3, 5, 2, 5},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d,%d,%d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
