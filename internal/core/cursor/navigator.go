// Package cursor implements cursor movement over a puzzle grid.
// This is part of the Functional Core - no I/O, only pure functions.
package cursor

import (
	"errors"

	"github.com/example/xdplay/internal/core/puzzle"
)

// ErrNoClue is returned by Seek when the cursor is not inside any clue for
// the requested direction.
var ErrNoClue = errors.New("couldn't find a clue here! try changing direction")

// Board is the read-only view of the grid the navigator moves over.
type Board interface {
	InBounds(c puzzle.Coord) bool
	IsBlock(c puzzle.Coord) bool
	ClueAt(c puzzle.Coord, dir puzzle.Direction) *puzzle.Clue
	Clues(dir puzzle.Direction) []*puzzle.Clue
	Rows() int
	Cols() int
}

// Navigator is the cursor position and fill direction.
type Navigator struct {
	Pos   puzzle.Coord
	Dir   puzzle.Direction
	board Board
}

// New places a navigator on the first non-block cell, filling across.
func New(b Board) *Navigator {
	n := &Navigator{Pos: puzzle.Coord{X: -1, Y: 0}, Dir: puzzle.Across, board: b}
	if n.MoveBy(1, 0) {
		return n
	}
	for y := 0; y < b.Rows(); y++ {
		for x := 0; x < b.Cols(); x++ {
			c := puzzle.Coord{X: x, Y: y}
			if !b.IsBlock(c) {
				n.Pos = c
				return n
			}
		}
	}
	n.Pos = puzzle.Coord{}
	return n
}

// MoveBy steps by (dx, dy) repeatedly, skipping blocks, until it reaches a
// non-block cell. If the edge of the grid comes first the cursor does not
// move. Reports whether the position changed.
func (n *Navigator) MoveBy(dx, dy int) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	for i := 1; ; i++ {
		next := puzzle.Coord{X: n.Pos.X + dx*i, Y: n.Pos.Y + dy*i}
		if !n.board.InBounds(next) {
			return false
		}
		if !n.board.IsBlock(next) {
			n.Pos = next
			return true
		}
	}
}

// Advance moves k cells along the fill direction, but only when the target
// is an adjacent non-block cell. Typing uses this so it stops at the end of
// a word instead of jumping over a block.
func (n *Navigator) Advance(k int) bool {
	next := n.Pos
	if n.Dir == puzzle.Across {
		next.X += k
	} else {
		next.Y += k
	}
	if !n.board.InBounds(next) || n.board.IsBlock(next) {
		return false
	}
	n.Pos = next
	return true
}

// Seek jumps to the first cell of the clue k positions away from the
// current clue in dir's enumeration, wrapping around.
func (n *Navigator) Seek(dir puzzle.Direction, k int) (bool, error) {
	cur := n.board.ClueAt(n.Pos, dir)
	if cur == nil {
		return false, ErrNoClue
	}
	clues := n.board.Clues(dir)
	i := 0
	for j, c := range clues {
		if c == cur {
			i = j
			break
		}
	}
	target := clues[((i+k)%len(clues)+len(clues))%len(clues)].Coords[0]
	if target == n.Pos {
		return false, nil
	}
	n.Pos = target
	return true, nil
}

// JumpTo moves directly to c if it is a non-block cell on the grid.
func (n *Navigator) JumpTo(c puzzle.Coord) bool {
	if !n.board.InBounds(c) || n.board.IsBlock(c) || c == n.Pos {
		return false
	}
	n.Pos = c
	return true
}

// Toggle swaps the fill direction.
func (n *Navigator) Toggle() {
	n.Dir = n.Dir.Toggle()
}

// Clue returns the clue under the cursor in the fill direction, or nil.
func (n *Navigator) Clue() *puzzle.Clue {
	return n.board.ClueAt(n.Pos, n.Dir)
}
