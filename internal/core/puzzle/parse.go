package puzzle

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SectionSeparator splits the metadata, grid and clue sections of a document.
const SectionSeparator = "\n\n\n"

// RebusKey is the metadata key declaring rebus symbols ("1=STAR,2=MOON").
const RebusKey = "Rebus"

// ParseError reports a malformed puzzle document. Nothing of a document that
// fails to parse is usable.
type ParseError struct {
	Path string // set by callers that read from a file
	Line int    // 1-based, 0 when not tied to a line
	Msg  string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(":")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:", e.Line)
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(e.Msg)
	return b.String()
}

func parseErr(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Parse builds a puzzle from an xd-style document: metadata, grid and clues
// separated by blank-line pairs. id names the puzzle's journal.
func Parse(id, doc string) (*Puzzle, error) {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	sections := strings.Split(doc, SectionSeparator)
	if len(sections) < 3 {
		return nil, parseErr(0, "expected metadata, grid and clue sections separated by blank-line pairs, found %d section(s)", len(sections))
	}

	// first line number of each section
	starts := make([]int, 3)
	starts[0] = 1
	for i := 1; i < 3; i++ {
		starts[i] = starts[i-1] + strings.Count(sections[i-1], "\n") + 3
	}

	meta, err := parseMeta(sections[0], starts[0])
	if err != nil {
		return nil, err
	}

	symbols, err := parseRebusTable(meta)
	if err != nil {
		return nil, err
	}

	solution, err := parseGrid(sections[1], starts[1], symbols)
	if err != nil {
		return nil, err
	}

	p := &Puzzle{
		ID:       id,
		Meta:     meta,
		Solution: solution,
		rows:     len(solution),
		cols:     len(solution[0]),
		clues:    make(map[ClueID]*Clue),
		cross:    make(map[Coord]Cross),
	}

	if err := p.parseClues(sections[2], starts[2]); err != nil {
		return nil, err
	}
	if err := p.index(); err != nil {
		return nil, err
	}
	p.Clear()
	return p, nil
}

func parseMeta(section string, start int) (Meta, error) {
	var meta Meta
	for i, line := range strings.Split(section, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			return nil, parseErr(start+i, "metadata line %q has no ':'", line)
		}
		meta = append(meta, MetaEntry{Key: strings.TrimSpace(k), Value: strings.TrimSpace(v)})
	}
	return meta, nil
}

// ParseRebusTable parses a Rebus metadata value into symbol -> answer.
func ParseRebusTable(value string) (map[string]string, error) {
	table := make(map[string]string)
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, f := range fields {
		sym, answer, ok := strings.Cut(f, "=")
		if !ok || utf8.RuneCountInString(sym) != 1 || answer == "" {
			return nil, fmt.Errorf("malformed rebus entry %q", f)
		}
		table[sym] = answer
	}
	return table, nil
}

func parseRebusTable(meta Meta) (map[string]string, error) {
	v, ok := meta.Get(RebusKey)
	if !ok {
		return nil, nil
	}
	table, err := ParseRebusTable(v)
	if err != nil {
		return nil, parseErr(0, "%v", err)
	}
	return table, nil
}

func parseGrid(section string, start int, symbols map[string]string) ([][]string, error) {
	lines := strings.Split(section, "\n")
	first, last := 0, len(lines)
	for first < last && lines[first] == "" {
		first++
	}
	for last > first && lines[last-1] == "" {
		last--
	}
	if first == last {
		return nil, parseErr(start, "grid section is empty")
	}

	var solution [][]string
	width := -1
	for i := first; i < last; i++ {
		line := lines[i]
		var row []string
		for _, r := range line {
			ch := string(r)
			if full, ok := symbols[ch]; ok {
				ch = full
			}
			row = append(row, ch)
		}
		if width == -1 {
			width = len(row)
		}
		if len(row) == 0 || len(row) != width {
			return nil, parseErr(start+i, "grid row has %d cells, want %d", len(row), width)
		}
		solution = append(solution, row)
	}
	return solution, nil
}

func (p *Puzzle) parseClues(section string, start int) error {
	for i, line := range strings.Split(section, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		text, answer := line, ""
		if j := strings.LastIndex(line, " ~ "); j >= 0 {
			text, answer = line[:j], line[j+len(" ~ "):]
		}
		dirnum, text, ok := strings.Cut(text, ". ")
		if !ok {
			return parseErr(start+i, "clue line %q is not of the form 'A1. text'", line)
		}
		id, err := ParseClueID(dirnum)
		if err != nil {
			return parseErr(start+i, "%v", err)
		}
		if _, dup := p.clues[id]; dup {
			return parseErr(start+i, "duplicate clue %s", id)
		}
		p.clues[id] = &Clue{ID: id, Text: text, Answer: strings.TrimSpace(answer)}
	}
	return nil
}

// index attaches derived spans to the parsed clues and builds the cross
// index. Entries without a clue line get an empty clue.
func (p *Puzzle) index() error {
	for _, e := range DeriveEntries(p.Solution) {
		clue, ok := p.clues[e.ID]
		if !ok {
			clue = &Clue{ID: e.ID}
			p.clues[e.ID] = clue
		}
		clue.Coords = e.Coords
		if clue.Answer == "" {
			clue.Answer = e.Answer
		}
		if e.ID.Dir == Across {
			p.across = append(p.across, clue)
		} else {
			p.down = append(p.down, clue)
		}
		for _, c := range e.Coords {
			cr := p.cross[c]
			if e.ID.Dir == Across && cr.Across == nil {
				cr.Across = clue
			} else if e.ID.Dir == Down && cr.Down == nil {
				cr.Down = clue
			}
			p.cross[c] = cr
		}
	}
	for id, clue := range p.clues {
		if len(clue.Coords) == 0 {
			return parseErr(0, "clue %s does not match any entry in the grid", id)
		}
	}
	return nil
}
