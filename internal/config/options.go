package config

import "fmt"

var (
	unsolvedGlyphs = []string{"·", " ", ".", "?", "□", "_", "▁", "-", "˙", "∙", "•", "╺", "‧"}
	separators     = []string{" ", "·", "‧", "˙", "|", ".", "□", "-", "∙", "•", "╺"}
	rightArrows    = []string{"⇨", "→", "↪", "⇢"}
	downArrows     = []string{"⇩", "↓", "⇓", "⇣"}
)

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func indexOf(table []string, s string) (int, error) {
	for i, v := range table {
		if v == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown choice %q", s)
}

// UnsolvedGlyph is the character drawn in an unfilled cell.
type UnsolvedGlyph int

func (g UnsolvedGlyph) String() string { return unsolvedGlyphs[wrap(int(g), len(unsolvedGlyphs))] }

// Next returns the following glyph, wrapping around.
func (g UnsolvedGlyph) Next() UnsolvedGlyph {
	return UnsolvedGlyph(wrap(int(g)+1, len(unsolvedGlyphs)))
}

func (g UnsolvedGlyph) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *UnsolvedGlyph) UnmarshalText(b []byte) error {
	i, err := indexOf(unsolvedGlyphs, string(b))
	if err != nil {
		return fmt.Errorf("unsolved_glyph: %w", err)
	}
	*g = UnsolvedGlyph(i)
	return nil
}

// Separator is the character drawn between grid cells.
type Separator int

func (s Separator) String() string { return separators[wrap(int(s), len(separators))] }

// Next returns the following separator, wrapping around.
func (s Separator) Next() Separator {
	return Separator(wrap(int(s)+1, len(separators)))
}

func (s Separator) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Separator) UnmarshalText(b []byte) error {
	i, err := indexOf(separators, string(b))
	if err != nil {
		return fmt.Errorf("separator: %w", err)
	}
	*s = Separator(i)
	return nil
}

// Arrow selects the pair of glyphs marking the fill direction.
type Arrow int

// Right returns the across glyph.
func (a Arrow) Right() string { return rightArrows[wrap(int(a), len(rightArrows))] }

// Down returns the down glyph.
func (a Arrow) Down() string { return downArrows[wrap(int(a), len(downArrows))] }

func (a Arrow) String() string { return a.Right() + a.Down() }

// Next returns the following arrow pair, wrapping around.
func (a Arrow) Next() Arrow {
	return Arrow(wrap(int(a)+1, len(rightArrows)))
}

func (a Arrow) MarshalText() ([]byte, error) { return []byte(a.Right()), nil }

func (a *Arrow) UnmarshalText(b []byte) error {
	i, err := indexOf(rightArrows, string(b))
	if err != nil {
		return fmt.Errorf("arrow: %w", err)
	}
	*a = Arrow(i)
	return nil
}

// Options holds the display choices a player can cycle while playing.
type Options struct {
	Unsolved  UnsolvedGlyph `json:"unsolved_glyph"`
	Separator Separator     `json:"separator"`
	Arrow     Arrow         `json:"arrow"`
	Hotkeys   bool          `json:"hotkeys"`
}

// DefaultOptions returns the first choice of every option, hotkeys hidden.
func DefaultOptions() Options {
	return Options{}
}

// Option describes one cyclable option for the hotkey panel.
type Option struct {
	Key   rune
	Name  string
	Value string
}

// List returns the cyclable options in hotkey order.
func (o Options) List() []Option {
	return []Option{
		{Key: '0', Name: "unsolved_glyph", Value: fmt.Sprintf("%q", o.Unsolved.String())},
		{Key: '1', Name: "separator", Value: fmt.Sprintf("%q", o.Separator.String())},
		{Key: '2', Name: "arrow", Value: o.Arrow.String()},
	}
}

// Cycle advances the option bound to key. It reports whether key is bound.
func (o *Options) Cycle(key rune) bool {
	switch key {
	case '0':
		o.Unsolved = o.Unsolved.Next()
	case '1':
		o.Separator = o.Separator.Next()
	case '2':
		o.Arrow = o.Arrow.Next()
	default:
		return false
	}
	return true
}

// ToggleHotkeys shows or hides the hotkey panel.
func (o *Options) ToggleHotkeys() {
	o.Hotkeys = !o.Hotkeys
}
