package puzzle

// Entry is a word span derived from the solution grid.
type Entry struct {
	ID     ClueID
	Answer string
	Start  Coord
	Coords []Coord
}

func isNonAnswer(ch string) bool {
	return ch == Block || ch == "_"
}

// DeriveEntries scans the solution row-major and returns every across and
// down entry of two or more cells. One shared counter numbers the entries: it
// advances once per cell that starts at least one entry, so a cell starting
// both an across and a down word gives both the same number.
func DeriveEntries(solution [][]string) []Entry {
	at := func(x, y int) string {
		if y < 0 || y >= len(solution) || x < 0 || x >= len(solution[y]) {
			return Block
		}
		return solution[y][x]
	}

	var entries []Entry
	num := 1
	for y, row := range solution {
		for x, ch := range row {
			if isNonAnswer(ch) {
				continue
			}
			started := false
			if isNonAnswer(at(x-1, y)) {
				if e, ok := span(at, x, y, 1, 0); ok {
					e.ID = ClueID{Dir: Across, Num: num}
					entries = append(entries, e)
					started = true
				}
			}
			if isNonAnswer(at(x, y-1)) {
				if e, ok := span(at, x, y, 0, 1); ok {
					e.ID = ClueID{Dir: Down, Num: num}
					entries = append(entries, e)
					started = true
				}
			}
			if started {
				num++
			}
		}
	}
	return entries
}

func span(at func(x, y int) string, x, y, dx, dy int) (Entry, bool) {
	e := Entry{Start: Coord{X: x, Y: y}}
	for cx, cy := x, y; !isNonAnswer(at(cx, cy)); cx, cy = cx+dx, cy+dy {
		e.Answer += at(cx, cy)
		e.Coords = append(e.Coords, Coord{X: cx, Y: cy})
	}
	return e, len(e.Coords) > 1
}
