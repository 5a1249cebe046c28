// Package undo holds the per-session list of cell states overwritten by the
// current run of typing.
// This is part of the Functional Core - no I/O, only pure functions.
package undo

import "github.com/example/xdplay/internal/core/puzzle"

// Entry is the state of a cell immediately before a local edit.
type Entry struct {
	Coord puzzle.Coord
	Prev  string // puzzle.Unfilled when the cell was empty
	User  string // author of Prev, empty when unknown
}

// Stack is a LIFO of entries. The zero value is ready to use.
type Stack struct {
	entries []Entry
}

// Push records an entry.
func (s *Stack) Push(e Entry) {
	s.entries = append(s.entries, e)
}

// Pop removes and returns the most recent entry.
func (s *Stack) Pop() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}

// Peek returns the most recent entry without removing it.
func (s *Stack) Peek() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear drops all entries.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
