package puzzle

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// FormatOptions controls how the fill is written back out.
type FormatOptions struct {
	// Symbol maps a multi-character fill to its display symbol.
	Symbol func(value string) (string, bool)
	// RebusMeta, when non-empty, replaces the Rebus metadata value.
	RebusMeta string
}

// Write serializes p in document form with the current fill in place of the
// solution and each clue followed by "~ GUESS".
func Write(w io.Writer, p *Puzzle, opts FormatOptions) error {
	meta := p.Meta
	if opts.RebusMeta != "" {
		meta = meta.With(RebusKey, opts.RebusMeta)
	}

	var b strings.Builder
	if len(meta) == 0 {
		b.WriteString(SectionSeparator)
	} else {
		for _, e := range meta {
			fmt.Fprintf(&b, "%s: %s\n", e.Key, e.Value)
		}
		b.WriteString("\n\n")
	}

	for _, row := range p.grid {
		for _, ch := range row {
			b.WriteString(displayCell(ch, opts.Symbol))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n\n")

	for _, clue := range p.across {
		fmt.Fprintf(&b, "%s. %s ~ %s\n", clue.ID, clue.Text, p.Guess(clue))
	}
	b.WriteString("\n")
	for _, clue := range p.down {
		fmt.Fprintf(&b, "%s. %s ~ %s\n", clue.ID, clue.Text, p.Guess(clue))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Format is Write into a string.
func Format(p *Puzzle, opts FormatOptions) string {
	var b strings.Builder
	_ = Write(&b, p, opts)
	return b.String()
}

// displayCell returns the single printed character for a fill value.
func displayCell(ch string, symbol func(string) (string, bool)) string {
	if utf8.RuneCountInString(ch) <= 1 {
		return ch
	}
	if symbol != nil {
		if s, ok := symbol(ch); ok {
			return s
		}
	}
	r, _ := utf8.DecodeRuneInString(ch)
	return string(r)
}
