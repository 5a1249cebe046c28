package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/example/xdplay/internal/config"
	"github.com/example/xdplay/internal/core/puzzle"
	"github.com/example/xdplay/internal/ports/primary"
)

// HelpText lists the main key bindings on the bottom line.
const HelpText = "Tab direction | ^Q quit | ^N next puzzle | ^Z undo | ^Y note | ^R rebus"

// frame is everything one redraw needs.
type frame struct {
	snap    *primary.Snapshot
	status  string
	elapsed time.Duration
	opts    config.Options
	prompt  *prompt
}

// render draws f and returns the layout used, for mouse hit testing.
func render(scr tcell.Screen, f frame) *layout {
	scr.Clear()
	w, h := scr.Size()
	l := newLayout(f.snap, w, h)

	drawHeader(scr, f.snap)
	drawGrid(scr, l, f.snap, f.opts)
	drawClues(scr, l, f.snap.Across, l.acrossTop, puzzle.Across, f.opts)
	drawClues(scr, l, f.snap.Down, l.downTop, puzzle.Down, f.opts)
	drawSolvers(scr, l, f.snap.Solvers)
	drawNotes(scr, l, f.snap)
	drawBottom(scr, l, f)
	if f.opts.Hotkeys {
		drawHotkeys(scr, l, f.opts)
	}

	if f.prompt != nil {
		x := 1 + drawText(scr, 1, h-2, f.prompt.label, stylePrompt, -1)
		drawText(scr, x, h-2, string(f.prompt.buf), stylePrompt, -1)
		scr.ShowCursor(x+runewidth.StringWidth(string(f.prompt.buf[:f.prompt.pos])), h-2)
	} else {
		scr.HideCursor()
	}

	scr.Show()
	return l
}

func drawHeader(scr tcell.Screen, snap *primary.Snapshot) {
	title := snap.Title
	if title == "" {
		title = snap.ID
	}
	x := 1 + drawText(scr, 1, 0, title, styleBase.Bold(true), -1)
	if len(snap.Rebus) > 0 {
		parts := make([]string, len(snap.Rebus))
		for i, r := range snap.Rebus {
			parts[i] = r.Symbol + "=" + r.Value
		}
		drawText(scr, x+2, 0, "rebus "+strings.Join(parts, " "), styleClue, -1)
	}
}

func drawGrid(scr tcell.Screen, l *layout, snap *primary.Snapshot, opts config.Options) {
	across := snap.Dir == puzzle.Across
	sep := []rune(opts.Separator.String())[0]

	for vy := 0; vy < l.visRows; vy++ {
		for vx := 0; vx < l.visCols; vx++ {
			c := puzzle.Coord{X: l.colOff + vx, Y: l.rowOff + vy}
			cell := snap.Cells[c.Y][c.X]
			x, y := gridLeft+cellWidth*vx, gridTop+vy

			glyph, style := cellGlyph(cell, c == snap.Cursor, across, opts)
			drawText(scr, x, y, glyph, style, 1)

			// the separator joins highlighted neighbours into one bar
			sepStyle := styleBase
			if cell.InClue && c.X+1 < snap.Cols && snap.Cells[c.Y][c.X+1].InClue && across {
				sepStyle = tcell.StyleDefault.Background(dirColor(true, false))
			}
			scr.SetContent(x+1, y, sep, nil, sepStyle)
		}
	}

	width := cellWidth*l.visCols + 1
	drawText(scr, gridLeft-1, gridTop-1, strings.Repeat("▁", width), styleBorder, -1)
	drawText(scr, gridLeft-1, l.gridBottom(), strings.Repeat("▔", width), styleBorder, -1)
}

// cellGlyph returns the printed character and style of one cell.
func cellGlyph(cell primary.CellView, cursor, across bool, opts config.Options) (string, tcell.Style) {
	if cell.Block {
		if across {
			return opts.Arrow.Right(), styleArrow
		}
		return opts.Arrow.Down(), styleArrow
	}

	glyph := cell.Glyph
	if !cell.Filled {
		glyph = opts.Unsolved.String()
	}

	switch {
	case cursor:
		return glyph, tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(dirColor(across, true))
	case cell.InClue:
		return glyph, tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(dirColor(across, false))
	case cell.Circled:
		return glyph, styleCircled.Underline(cell.Wrong)
	default:
		return glyph, slotStyle(cell.Slot).Underline(cell.Wrong)
	}
}

// drawClues lists clues around the one crossing the cursor, starting two
// before it.
func drawClues(scr tcell.Screen, l *layout, clues []primary.ClueView, top int, dir puzzle.Direction, opts config.Options) {
	start := 0
	for i, cv := range clues {
		if cv.Crossing {
			start = max(i-2, 0)
			break
		}
	}

	y := 0
	for _, cv := range clues[start:] {
		if y >= l.clueLines {
			return
		}
		style := styleClue
		if cv.Crossing {
			style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(dirColor(dir == puzzle.Across, false))
		}
		if cv.Current {
			arrow := opts.Arrow.Right()
			if dir == puzzle.Down {
				arrow = opts.Arrow.Down()
			}
			drawText(scr, l.clueLeft-2, top+y, arrow, tcell.StyleDefault.Foreground(dirColor(dir == puzzle.Across, false)), 1)
		}
		if cv.Notes > 0 {
			drawText(scr, l.clueLeft, top+y, "*", slotStyle(cv.NoteSlot), 1)
		}

		label := cv.ID.String() + ". "
		labelW := runewidth.StringWidth(label)
		maxw := clamp(l.w-l.clueLeft-labelW-1, 1, 40)
		for k, line := range wrapText(cv.Text+" ["+cv.Guess+"]", maxw) {
			if y >= l.clueLines {
				return
			}
			prefix := label
			if k > 0 {
				prefix = strings.Repeat(" ", labelW)
			}
			drawText(scr, l.clueLeft+1, top+y, prefix+padRight(line, maxw), style, -1)
			l.clueRows[top+y] = cv.ID
			y++
		}
	}
}

func drawSolvers(scr tcell.Screen, l *layout, solvers []primary.SolverView) {
	x, y, colW := 0, 0, 0
	for _, s := range solvers {
		name := fmt.Sprintf("%s (%d%%)", s.User, s.Percent)
		drawText(scr, gridLeft+x, l.gridBottom()+1+y, name, slotStyle(s.Slot), -1)
		colW = max(colW, runewidth.StringWidth(name))
		y++
		if y >= l.solverRows {
			y = 0
			x += colW + 3
			colW = 0
		}
	}
}

func drawNotes(scr tcell.Screen, l *layout, snap *primary.Snapshot) {
	if len(snap.Notes) == 0 {
		return
	}
	nameW := 0
	for _, n := range snap.Notes {
		nameW = max(nameW, runewidth.StringWidth(n.User))
	}
	header := 17 + nameW
	maxw := max(l.clueLeft+clamp(l.w-l.clueLeft-2, 1, 40)-20-nameW, 10)

	y := l.notesTop()
	first := clamp(snap.NoteFirst, 0, len(snap.Notes)-1)
	for _, n := range snap.Notes[first:] {
		if y >= l.h-2 {
			return
		}
		style := slotStyle(n.Slot)
		when := n.Time.Local().Format("Jan _2  15:04")
		drawText(scr, gridLeft, y, fmt.Sprintf(" %s <%s> ", when, n.User), style, -1)
		for _, line := range wrapText(n.Text, maxw) {
			if y >= l.h-2 {
				return
			}
			drawText(scr, gridLeft+header, y, " "+padRight(line, maxw)+" ", style, -1)
			y++
		}
	}
}

func drawBottom(scr tcell.Screen, l *layout, f frame) {
	if f.status != "" && f.prompt == nil {
		drawText(scr, gridLeft, l.h-2, f.status, styleBase, -1)
	}

	parts := []string{formatElapsed(f.elapsed), fmt.Sprintf("%d/%d", f.snap.NSolved, f.snap.NCells)}
	if l.tooSmall {
		parts = append(parts, fmt.Sprintf("terminal is %dx%d; need %dx%d", l.w, l.h, cellWidth*f.snap.Cols+clueMinW+gridLeft, f.snap.Rows+gridTop+3))
	} else {
		parts = append(parts, strings.Split(HelpText, " | ")...)
	}
	drawText(scr, gridLeft, l.h-1, strings.Join(parts, " | "), styleHelp, -1)
}

func drawHotkeys(scr tcell.Screen, l *layout, opts config.Options) {
	for i, o := range opts.List() {
		y := l.gridBottom() + 1 + i
		if y >= l.h-2 {
			return
		}
		drawText(scr, 1, y, string(o.Key), styleBase.Bold(true), 1)
		drawText(scr, 3, y, o.Name, styleBase, -1)
		drawText(scr, 19, y, o.Value, styleBase, -1)
	}
	drawText(scr, l.w-20, 1, fmt.Sprintf("%dx%d", l.w, l.h), styleBase, -1)
}

// formatElapsed renders the hours and minutes played. The colon blinks off
// every fifth second.
func formatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	out := "  "
	if secs > 3600 {
		out = fmt.Sprintf("%2d", secs/3600)
	}
	if secs%5 == 0 {
		out += " "
	} else {
		out += ":"
	}
	return out + fmt.Sprintf("%02d", (secs%3600)/60)
}
