// Package roster tracks who filled which cell and assigns each solver a
// display palette slot in first-seen order.
// This is part of the Functional Core - no I/O, only pure functions.
package roster

import "github.com/example/xdplay/internal/core/puzzle"

// PaletteSize is the number of distinct solver slots. Later solvers share
// OverflowSlot.
const PaletteSize = 13

// OverflowSlot is the slot shared by every solver after the first
// PaletteSize.
const OverflowSlot = 0

// Credit is the last guess applied to a cell.
type Credit struct {
	User string
	Ch   string
}

// Standing is one solver's share of the currently filled cells.
type Standing struct {
	User    string
	Slot    int
	Filled  int
	Percent int
}

// Roster is rebuilt from scratch on every full replay.
type Roster struct {
	slots    map[string]int
	order    []string
	guessers map[puzzle.Coord]Credit
}

// New returns an empty roster.
func New() *Roster {
	return &Roster{
		slots:    make(map[string]int),
		guessers: make(map[puzzle.Coord]Credit),
	}
}

// Observe records that user guessed ch at c, assigning user a slot if this
// is the first time they are seen. Anonymous guesses are credited but get no
// slot.
func (r *Roster) Observe(c puzzle.Coord, ch, user string) {
	r.guessers[c] = Credit{User: user, Ch: ch}
	if user == "" {
		return
	}
	r.Join(user)
}

// Join assigns user a slot without crediting a cell.
func (r *Roster) Join(user string) int {
	if slot, ok := r.slots[user]; ok {
		return slot
	}
	slot := OverflowSlot
	if len(r.order) < PaletteSize {
		slot = len(r.order) + 1
	}
	r.slots[user] = slot
	r.order = append(r.order, user)
	return slot
}

// Slot returns user's palette slot and whether user has been seen.
func (r *Roster) Slot(user string) (int, bool) {
	slot, ok := r.slots[user]
	return slot, ok
}

// Guesser returns the credit for the last guess at c.
func (r *Roster) Guesser(c puzzle.Coord) (Credit, bool) {
	g, ok := r.guessers[c]
	return g, ok
}

// Users returns solvers in first-seen order.
func (r *Roster) Users() []string {
	return append([]string(nil), r.order...)
}

// Standings counts, per solver, the cells they hold that are still filled.
// Percent is relative to ncells.
func (r *Roster) Standings(p *puzzle.Puzzle) []Standing {
	filled := make(map[string]int, len(r.order))
	for c, g := range r.guessers {
		ch := p.Cell(c)
		if ch != puzzle.Unfilled && ch != puzzle.Block {
			filled[g.User]++
		}
	}
	ncells := p.NCells()
	out := make([]Standing, 0, len(r.order))
	for _, u := range r.order {
		s := Standing{User: u, Slot: r.slots[u], Filled: filled[u]}
		if ncells > 0 {
			s.Percent = s.Filled * 100 / ncells
		}
		out = append(out, s)
	}
	return out
}
