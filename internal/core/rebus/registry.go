// Package rebus maps multi-character cell answers to single display symbols.
// This is part of the Functional Core - no I/O, only pure functions.
package rebus

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/example/xdplay/internal/core/puzzle"
)

// DefaultSymbols is the symbol pool used when none is configured.
const DefaultSymbols = "123456789"

// ErrPoolExhausted is returned when a new rebus string needs a symbol and
// every symbol in the pool is taken.
var ErrPoolExhausted = errors.New("no free rebus symbols")

type entry struct {
	symbol string
	cells  map[puzzle.Coord]struct{}
}

// Registry tracks which rebus strings are live on the grid and the symbol
// each one is displayed as. No two live strings share a symbol.
type Registry struct {
	pool    []string
	entries map[string]*entry
}

// Entry is a read-only view of one live rebus.
type Entry struct {
	Symbol string
	Value  string
	Cells  int
}

// New creates a registry allocating symbols from pool, one per rune.
func New(pool string) *Registry {
	if pool == "" {
		pool = DefaultSymbols
	}
	seen := make(map[string]bool)
	var symbols []string
	for _, r := range pool {
		s := string(r)
		if !seen[s] {
			seen[s] = true
			symbols = append(symbols, s)
		}
	}
	sort.Strings(symbols)
	return &Registry{
		pool:    symbols,
		entries: make(map[string]*entry),
	}
}

// IsRebus reports whether value occupies a cell as a rebus.
func IsRebus(value string) bool {
	return utf8.RuneCountInString(value) > 1
}

func key(value string) string {
	return strings.ToUpper(value)
}

// Assign records that c now holds value, replacing prev. It either fully
// applies or, on ErrPoolExhausted, changes nothing.
func (r *Registry) Assign(c puzzle.Coord, prev, value string) error {
	if IsRebus(value) && key(prev) == key(value) {
		if e, ok := r.entries[key(value)]; ok {
			if _, here := e.cells[c]; here {
				return nil
			}
		}
	}
	if !r.CanAssign(c, prev, value) {
		return ErrPoolExhausted
	}

	r.Clear(c, prev)

	if !IsRebus(value) {
		return nil
	}
	k := key(value)
	e, ok := r.entries[k]
	if !ok {
		sym, _ := r.freeSymbol()
		e = &entry{symbol: sym, cells: make(map[puzzle.Coord]struct{})}
		r.entries[k] = e
	}
	e.cells[c] = struct{}{}
	return nil
}

// CanAssign reports whether Assign(c, prev, value) would succeed.
func (r *Registry) CanAssign(c puzzle.Coord, prev, value string) bool {
	if !IsRebus(value) {
		return true
	}
	if _, live := r.entries[key(value)]; live {
		return true
	}
	if _, ok := r.freeSymbol(); ok {
		return true
	}
	return r.soleOccupant(c, prev)
}

// Clear removes c from prev's occupancy, releasing prev's symbol when c was
// its last cell. Clearing a value that is not a live rebus is a no-op.
func (r *Registry) Clear(c puzzle.Coord, prev string) {
	if !IsRebus(prev) {
		return
	}
	k := key(prev)
	e, ok := r.entries[k]
	if !ok {
		return
	}
	delete(e.cells, c)
	if len(e.cells) == 0 {
		delete(r.entries, k)
	}
}

// Reset drops every entry.
func (r *Registry) Reset() {
	r.entries = make(map[string]*entry)
}

// Symbol returns the display symbol for a live rebus string.
func (r *Registry) Symbol(value string) (string, bool) {
	e, ok := r.entries[key(value)]
	if !ok {
		return "", false
	}
	return e.symbol, true
}

// Value returns the rebus string currently shown as symbol.
func (r *Registry) Value(symbol string) (string, bool) {
	for k, e := range r.entries {
		if e.symbol == symbol {
			return k, true
		}
	}
	return "", false
}

// Len returns the number of live rebus strings.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns the live rebuses ordered by symbol.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for k, e := range r.entries {
		out = append(out, Entry{Symbol: e.symbol, Value: k, Cells: len(e.cells)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// MetaValue renders the live table as "1=STAR 2=MOON", or "" when empty.
func (r *Registry) MetaValue() string {
	parts := make([]string, 0, len(r.entries))
	for _, e := range r.Entries() {
		parts = append(parts, e.Symbol+"="+e.Value)
	}
	return strings.Join(parts, " ")
}

func (r *Registry) freeSymbol() (string, bool) {
	used := make(map[string]bool, len(r.entries))
	for _, e := range r.entries {
		used[e.symbol] = true
	}
	for _, s := range r.pool {
		if !used[s] {
			return s, true
		}
	}
	return "", false
}

// soleOccupant reports whether clearing prev at c would free its symbol.
func (r *Registry) soleOccupant(c puzzle.Coord, prev string) bool {
	if !IsRebus(prev) {
		return false
	}
	e, ok := r.entries[key(prev)]
	if !ok || len(e.cells) != 1 {
		return false
	}
	_, here := e.cells[c]
	return here
}
