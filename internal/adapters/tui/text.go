package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes s at (x, y) clipped to maxw display columns and returns
// the number of columns used. maxw < 0 means up to the screen edge.
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style, maxw int) int {
	w, h := s.Size()
	if y < 0 || y >= h {
		return 0
	}
	if maxw < 0 || x+maxw > w {
		maxw = w - x
	}
	used := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if used+rw > maxw {
			break
		}
		if x+used >= 0 {
			s.SetContent(x+used, y, r, nil, style)
		}
		used += rw
	}
	return used
}

// padRight pads s with spaces to width display columns.
func padRight(s string, width int) string {
	if n := width - runewidth.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// wrapText breaks text into lines of at most width display columns,
// splitting at spaces. Words wider than width are cut.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	var line strings.Builder
	lineW := 0
	for _, word := range strings.Fields(text) {
		for runewidth.StringWidth(word) > width {
			if lineW > 0 {
				lines = append(lines, line.String())
				line.Reset()
				lineW = 0
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// a single rune wider than width
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		if word == "" {
			continue
		}
		ww := runewidth.StringWidth(word)
		if lineW > 0 && lineW+1+ww > width {
			lines = append(lines, line.String())
			line.Reset()
			lineW = 0
		}
		if lineW > 0 {
			line.WriteByte(' ')
			lineW++
		}
		line.WriteString(word)
		lineW += ww
	}
	if lineW > 0 || len(lines) == 0 {
		lines = append(lines, line.String())
	}
	return lines
}
