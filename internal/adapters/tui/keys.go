package tui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

type action int

const (
	actNone action = iota
	actQuit
	actRedraw
	actNextPuzzle
	actRebus
	actNote
	actUndo
	actToggleHotkeys
	actToggleDirection
	actUp
	actDown
	actLeft
	actRight
	actSeekNext
	actSeekPrev
	actNotesNext
	actNotesPrev
	actNotesHome
	actNotesEnd
	actEraseBack
	actEraseAdvance
	actEraseInPlace
	actSolve
	actCircle
	actRune
)

// ctrlKey folds Ctrl+letter reported as a modified rune into the matching
// control key.
func ctrlKey(ev *tcell.EventKey) tcell.Key {
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		r := unicode.ToLower(ev.Rune())
		if r >= 'a' && r <= 'z' {
			return tcell.KeyCtrlA + tcell.Key(r-'a')
		}
	}
	return ev.Key()
}

// keyAction maps a key event to a player action. For actRune the rune is
// ev.Rune().
func keyAction(ev *tcell.EventKey) action {
	switch ctrlKey(ev) {
	case tcell.KeyCtrlQ:
		return actQuit
	case tcell.KeyCtrlL:
		return actRedraw
	case tcell.KeyCtrlN:
		return actNextPuzzle
	case tcell.KeyCtrlR:
		return actRebus
	case tcell.KeyCtrlY:
		return actNote
	case tcell.KeyCtrlZ:
		return actUndo
	case tcell.KeyCtrlX:
		return actToggleHotkeys
	case tcell.KeyTab:
		return actToggleDirection
	case tcell.KeyUp:
		return actUp
	case tcell.KeyDown:
		return actDown
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModShift != 0 {
			return actSeekPrev
		}
		return actLeft
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModShift != 0 {
			return actSeekNext
		}
		return actRight
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		return actNotesNext
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		return actNotesPrev
	case tcell.KeyHome:
		return actNotesHome
	case tcell.KeyEnd:
		return actNotesEnd
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return actEraseBack
	case tcell.KeyDelete:
		return actEraseInPlace
	case tcell.KeyF2:
		return actSolve
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return actEraseAdvance
		case '@':
			return actCircle
		}
		return actRune
	}
	return actNone
}
