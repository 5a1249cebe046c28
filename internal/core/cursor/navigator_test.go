package cursor

import (
	"errors"
	"testing"

	"github.com/example/xdplay/internal/core/puzzle"
)

// Across: A1 AB, A3 CD, A4 EFG, A5 HI, A6 JK. Down: D2 BEI, D3 CGJ.
const gridDoc = "Title: nav\n\n\nAB#CD\n#EFG#\nHI#JK\n\n\n"

func board(t *testing.T, doc string) *puzzle.Puzzle {
	t.Helper()
	p, err := puzzle.Parse("nav", doc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return p
}

func TestNew_FirstOpenCell(t *testing.T) {
	n := New(board(t, gridDoc))
	if n.Pos != (puzzle.Coord{X: 0, Y: 0}) || n.Dir != puzzle.Across {
		t.Errorf("start = %v %v, want (0,0) A", n.Pos, n.Dir)
	}

	n = New(board(t, "T: x\n\n\n##\nAB\n\n\n"))
	if n.Pos != (puzzle.Coord{X: 0, Y: 1}) {
		t.Errorf("start = %v, want (0,1)", n.Pos)
	}
}

func TestMoveBy(t *testing.T) {
	p := board(t, gridDoc)
	tests := []struct {
		name   string
		from   puzzle.Coord
		dx, dy int
		want   puzzle.Coord
		moved  bool
	}{
		{"right into open cell", puzzle.Coord{X: 0, Y: 0}, 1, 0, puzzle.Coord{X: 1, Y: 0}, true},
		{"right skips block", puzzle.Coord{X: 1, Y: 0}, 1, 0, puzzle.Coord{X: 3, Y: 0}, true},
		{"right at edge", puzzle.Coord{X: 4, Y: 0}, 1, 0, puzzle.Coord{X: 4, Y: 0}, false},
		{"left skips block", puzzle.Coord{X: 3, Y: 2}, -1, 0, puzzle.Coord{X: 1, Y: 2}, true},
		{"down skips block", puzzle.Coord{X: 0, Y: 0}, 0, 1, puzzle.Coord{X: 0, Y: 2}, true},
		{"down at edge", puzzle.Coord{X: 0, Y: 2}, 0, 1, puzzle.Coord{X: 0, Y: 2}, false},
		{"up only blocks then edge", puzzle.Coord{X: 1, Y: 1}, 0, -1, puzzle.Coord{X: 1, Y: 0}, true},
		{"left only block then edge", puzzle.Coord{X: 1, Y: 1}, -1, 0, puzzle.Coord{X: 1, Y: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(p)
			n.Pos = tt.from
			moved := n.MoveBy(tt.dx, tt.dy)
			if moved != tt.moved {
				t.Errorf("moved = %v, want %v", moved, tt.moved)
			}
			if n.Pos != tt.want {
				t.Errorf("Pos = %v, want %v", n.Pos, tt.want)
			}
		})
	}
}

func TestMoveBy_NeverLandsOnBlock(t *testing.T) {
	docs := []string{
		gridDoc,
		"T: x\n\n\nA#B#C\n#####\nD#E#F\n\n\n",
		"T: x\n\n\nAB#\n#CD\nE#F\n\n\n",
	}
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, doc := range docs {
		p := board(t, doc)
		for y := 0; y < p.Rows(); y++ {
			for x := 0; x < p.Cols(); x++ {
				start := puzzle.Coord{X: x, Y: y}
				if p.IsBlock(start) {
					continue
				}
				for _, d := range dirs {
					n := New(p)
					n.Pos = start
					for i := 0; i < 2*(p.Rows()+p.Cols()); i++ {
						before := n.Pos
						moved := n.MoveBy(d[0], d[1])
						if p.IsBlock(n.Pos) {
							t.Fatalf("landed on block %v moving %v from %v", n.Pos, d, start)
						}
						if !moved && n.Pos != before {
							t.Fatalf("position changed without a move at %v", before)
						}
					}
				}
			}
		}
	}
}

func TestAdvance_StopsAtWordEnd(t *testing.T) {
	n := New(board(t, gridDoc))

	if !n.Advance(1) || n.Pos != (puzzle.Coord{X: 1, Y: 0}) {
		t.Fatalf("first advance: Pos = %v", n.Pos)
	}
	if n.Advance(1) {
		t.Errorf("advanced over a block to %v", n.Pos)
	}
	if n.Pos != (puzzle.Coord{X: 1, Y: 0}) {
		t.Errorf("Pos = %v, want (1,0)", n.Pos)
	}

	n.Toggle()
	if !n.Advance(1) || n.Pos != (puzzle.Coord{X: 1, Y: 1}) {
		t.Errorf("down advance: Pos = %v, want (1,1)", n.Pos)
	}
	if !n.Advance(-1) || n.Pos != (puzzle.Coord{X: 1, Y: 0}) {
		t.Errorf("back up: Pos = %v, want (1,0)", n.Pos)
	}
	if n.Advance(-1) {
		t.Error("advanced off the top edge")
	}
}

func TestSeek(t *testing.T) {
	p := board(t, gridDoc)

	t.Run("next across", func(t *testing.T) {
		n := New(p)
		moved, err := n.Seek(puzzle.Across, 1)
		if err != nil || !moved {
			t.Fatalf("Seek = %v, %v", moved, err)
		}
		if n.Pos != (puzzle.Coord{X: 3, Y: 0}) {
			t.Errorf("Pos = %v, want start of A3 (3,0)", n.Pos)
		}
	})

	t.Run("previous across wraps", func(t *testing.T) {
		n := New(p)
		if _, err := n.Seek(puzzle.Across, -1); err != nil {
			t.Fatalf("Seek failed: %v", err)
		}
		if n.Pos != (puzzle.Coord{X: 3, Y: 2}) {
			t.Errorf("Pos = %v, want start of A6 (3,2)", n.Pos)
		}
	})

	t.Run("next down wraps", func(t *testing.T) {
		n := New(p)
		n.Pos = puzzle.Coord{X: 3, Y: 1}
		if _, err := n.Seek(puzzle.Down, 1); err != nil {
			t.Fatalf("Seek failed: %v", err)
		}
		if n.Pos != (puzzle.Coord{X: 1, Y: 0}) {
			t.Errorf("Pos = %v, want start of D2 (1,0)", n.Pos)
		}
	})

	t.Run("no clue in direction", func(t *testing.T) {
		n := New(p)
		_, err := n.Seek(puzzle.Down, 1)
		if !errors.Is(err, ErrNoClue) {
			t.Errorf("err = %v, want ErrNoClue", err)
		}
		if n.Pos != (puzzle.Coord{X: 0, Y: 0}) {
			t.Errorf("Pos moved to %v", n.Pos)
		}
	})
}

func TestJumpTo(t *testing.T) {
	n := New(board(t, gridDoc))
	if n.JumpTo(puzzle.Coord{X: 2, Y: 0}) {
		t.Error("jumped onto a block")
	}
	if n.JumpTo(puzzle.Coord{X: 9, Y: 9}) {
		t.Error("jumped off the grid")
	}
	if !n.JumpTo(puzzle.Coord{X: 2, Y: 1}) || n.Pos != (puzzle.Coord{X: 2, Y: 1}) {
		t.Errorf("Pos = %v, want (2,1)", n.Pos)
	}
	if got := n.Clue(); got == nil || got.ID.String() != "A4" {
		t.Errorf("Clue = %v, want A4", got)
	}
}
