package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/example/xdplay/internal/core/roster"
)

// xterm-256 foregrounds for solver slots 1..13. Slot 0 is the overflow
// slot and draws white.
var solverColors = [roster.PaletteSize]int{121, 153, 220, 13, 76, 177, 229, 166, 163, 80, 100, 56, 27}

// SlotColor returns the 256-colour palette index of a solver slot, -1 for
// the overflow slot and unknown solvers.
func SlotColor(slot int) int {
	if slot < 1 || slot > len(solverColors) {
		return -1
	}
	return solverColors[slot-1]
}

var (
	styleBase    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleArrow   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleClue    = tcell.StyleDefault.Foreground(tcell.PaletteColor(7)).Background(tcell.ColorBlack)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.PaletteColor(109)).Background(tcell.ColorBlack).Bold(true)
	stylePrompt  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleCircled = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
)

// dirColor returns the highlight colour of a clue direction: the cursor's
// own cell uses the brighter variant.
func dirColor(across, cursor bool) tcell.Color {
	switch {
	case across && cursor:
		return tcell.PaletteColor(175)
	case across:
		return tcell.PaletteColor(210)
	case cursor:
		return tcell.PaletteColor(189)
	default:
		return tcell.PaletteColor(74)
	}
}

// slotStyle is the text style of a solver's cells, notes and standing.
func slotStyle(slot int) tcell.Style {
	c := SlotColor(slot)
	if c < 0 {
		return styleBase
	}
	return tcell.StyleDefault.Foreground(tcell.PaletteColor(c)).Background(tcell.ColorBlack)
}
