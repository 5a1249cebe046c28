package tui

import "github.com/gdamore/tcell/v2"

type promptKind int

const (
	promptRebus promptKind = iota
	promptNote
)

// prompt is a one-line editor drawn over the status line.
type prompt struct {
	kind  promptKind
	label string
	buf   []rune
	pos   int
}

func newPrompt(kind promptKind) *prompt {
	label := "rebus: "
	if kind == promptNote {
		label = "note: "
	}
	return &prompt{kind: kind, label: label}
}

type promptResult int

const (
	promptEditing promptResult = iota
	promptAccepted
	promptCancelled
)

// handle applies one key to the editor.
func (p *prompt) handle(ev *tcell.EventKey) promptResult {
	switch ctrlKey(ev) {
	case tcell.KeyEnter:
		return promptAccepted
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return promptCancelled
	case tcell.KeyLeft:
		p.pos = max(p.pos-1, 0)
	case tcell.KeyRight:
		p.pos = min(p.pos+1, len(p.buf))
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.pos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.pos = len(p.buf)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.pos > 0 {
			p.buf = append(p.buf[:p.pos-1], p.buf[p.pos:]...)
			p.pos--
		}
	case tcell.KeyDelete:
		if p.pos < len(p.buf) {
			p.buf = append(p.buf[:p.pos], p.buf[p.pos+1:]...)
		}
	case tcell.KeyCtrlU:
		p.buf = p.buf[p.pos:]
		p.pos = 0
	case tcell.KeyRune:
		p.buf = append(p.buf[:p.pos], append([]rune{ev.Rune()}, p.buf[p.pos:]...)...)
		p.pos++
	}
	return promptEditing
}

func (p *prompt) text() string {
	return string(p.buf)
}
