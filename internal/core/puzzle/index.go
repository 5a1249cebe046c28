package puzzle

// Clue returns the clue with the given id.
func (p *Puzzle) Clue(id ClueID) (*Clue, bool) {
	c, ok := p.clues[id]
	return c, ok
}

// Clues returns the clues of one direction in numeric order.
func (p *Puzzle) Clues(dir Direction) []*Clue {
	if dir == Across {
		return p.across
	}
	return p.down
}

// CrossAt returns the across and down clues covering c.
func (p *Puzzle) CrossAt(c Coord) Cross {
	return p.cross[c]
}

// ClueAt returns the clue covering c in the given direction, or nil.
func (p *Puzzle) ClueAt(c Coord, dir Direction) *Clue {
	return p.cross[c].Get(dir)
}

// SameClue reports whether a and b are covered by the same clue in dir.
func (p *Puzzle) SameClue(a, b Coord, dir Direction) bool {
	ca := p.ClueAt(a, dir)
	return ca != nil && ca == p.ClueAt(b, dir)
}

// ClueIndex returns the position of id in its direction's enumeration, or -1.
func (p *Puzzle) ClueIndex(id ClueID) int {
	for i, c := range p.Clues(id.Dir) {
		if c.ID == id {
			return i
		}
	}
	return -1
}
