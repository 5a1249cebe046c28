package cli

import (
	"github.com/fatih/color"

	"github.com/example/xdplay/internal/adapters/tui"
)

// slotColor returns the 256-colour foreground used for a solver slot in the
// player, so printed grids match what players see on screen.
func slotColor(slot int) *color.Color {
	n := tui.SlotColor(slot)
	if n < 0 {
		return color.New(color.FgWhite)
	}
	return color.New(38, 5, color.Attribute(n))
}
