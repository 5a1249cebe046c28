// Package tui is the terminal front end of the player: it draws session
// snapshots with tcell and turns keys and clicks into session operations.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/example/xdplay/internal/config"
	"github.com/example/xdplay/internal/core/cursor"
	"github.com/example/xdplay/internal/ports/primary"
)

// DefaultPollInterval bounds how long the loop waits for input before it
// polls the journal again.
const DefaultPollInterval = 500 * time.Millisecond

// Config tunes the play loop.
type Config struct {
	// Options are the display options; cycled in place by hotkeys.
	Options *config.Options

	// Wake signals that a journal changed. A closed channel is ignored.
	Wake <-chan struct{}

	PollInterval time.Duration

	// Deadline returns when the next animation frame is due, zero when
	// nothing is scheduled. A deadline already past forces a near-zero wait.
	Deadline func(now time.Time) time.Time

	Now    func() time.Time
	Logger *slog.Logger
}

// App runs the play loop on one screen.
type App struct {
	screen tcell.Screen
	player primary.PlayerService
	cfg    Config
	opts   *config.Options
	prompt *prompt
	layout *layout
}

// New creates an App. The caller owns the screen: it must be initialised
// before Run and finalised after.
func New(screen tcell.Screen, player primary.PlayerService, cfg Config) *App {
	if cfg.Options == nil {
		opts := config.DefaultOptions()
		cfg.Options = &opts
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &App{screen: screen, player: player, cfg: cfg, opts: cfg.Options}
}

// Run draws and handles input until the player quits (nil) or ctx ends
// (ctx.Err()). Every pass polls the journal and checks completion before
// drawing.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	defer a.screen.DisableMouse()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	wake := a.cfg.Wake
	for {
		a.player.Tick(ctx)
		a.draw()

		timer := time.NewTimer(a.timeout(a.cfg.Now()))
		select {
		case ev := <-events:
			timer.Stop()
			if a.handle(ctx, ev) {
				return nil
			}
		case _, ok := <-wake:
			timer.Stop()
			if !ok {
				a.cfg.Logger.Debug("journal watcher closed")
				wake = nil
			}
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// timeout is how long to wait for input: the poll interval, shortened to
// the next animation deadline.
func (a *App) timeout(now time.Time) time.Duration {
	d := a.cfg.PollInterval
	if a.cfg.Deadline != nil {
		if next := a.cfg.Deadline(now); !next.IsZero() {
			d = min(d, next.Sub(now))
		}
	}
	if d <= 0 {
		return time.Millisecond
	}
	return d
}

func (a *App) draw() {
	a.layout = render(a.screen, frame{
		snap:    a.player.Current().Snapshot(),
		status:  a.player.Status(),
		elapsed: a.player.Elapsed(),
		opts:    *a.opts,
		prompt:  a.prompt,
	})
}

// handle applies one event and reports whether the player quit.
func (a *App) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventMouse:
		a.click(ev)
	case *tcell.EventKey:
		if a.prompt != nil {
			a.editPrompt(ctx, ev)
			return false
		}
		return a.key(ctx, ev)
	}
	return false
}

func (a *App) click(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 || a.layout == nil {
		return
	}
	x, y := ev.Position()
	s := a.player.Current()
	if c, ok := a.layout.cellAt(x, y); ok {
		s.JumpTo(c)
		return
	}
	if id, ok := a.layout.clueAt(y); ok && x >= a.layout.clueLeft {
		s.JumpToClue(id)
	}
}

func (a *App) key(ctx context.Context, ev *tcell.EventKey) bool {
	s := a.player.Current()
	switch keyAction(ev) {
	case actQuit:
		return true
	case actRedraw:
		a.screen.Sync()
	case actNextPuzzle:
		err := a.player.Next(ctx)
		a.player.ClearStatus()
		a.player.Report(err)
	case actRebus:
		a.prompt = newPrompt(promptRebus)
	case actNote:
		if s.Snapshot().Current == nil {
			a.player.Report(cursor.ErrNoClue)
			return false
		}
		a.prompt = newPrompt(promptNote)
	case actUndo:
		a.player.Undo(ctx)
	case actToggleHotkeys:
		a.opts.ToggleHotkeys()
	case actToggleDirection:
		s.ToggleDirection()
	case actUp:
		s.Move(0, -1)
	case actDown:
		s.Move(0, 1)
	case actLeft:
		s.Move(-1, 0)
	case actRight:
		s.Move(1, 0)
	case actSeekNext:
		a.player.Report(s.Seek(1))
	case actSeekPrev:
		a.player.Report(s.Seek(-1))
	case actNotesNext:
		s.ScrollNotes(1)
	case actNotesPrev:
		s.ScrollNotes(-1)
	case actNotesHome:
		s.ScrollNotesHome()
	case actNotesEnd:
		s.ScrollNotesEnd()
	case actEraseBack:
		a.player.Report(s.Erase(ctx, primary.EraseBack))
	case actEraseAdvance:
		a.player.Report(s.Erase(ctx, primary.EraseAdvance))
	case actEraseInPlace:
		a.player.Report(s.Erase(ctx, primary.EraseInPlace))
	case actSolve:
		a.player.Report(s.Solve(ctx))
	case actCircle:
		s.ToggleCircle()
	case actRune:
		a.typeRune(ctx, s, ev.Rune())
	}
	return false
}

// typeRune enters r. A live rebus symbol wins over a hotkey, and a hotkey
// wins over plain entry while the hotkey panel is shown.
func (a *App) typeRune(ctx context.Context, s primary.Session, r rune) {
	ch := string(r)
	for _, rv := range s.Snapshot().Rebus {
		if rv.Symbol == ch {
			a.player.Report(s.Type(ctx, ch))
			return
		}
	}
	if a.opts.Hotkeys && a.opts.Cycle(r) {
		return
	}
	if unicode.IsLetter(r) {
		a.player.Report(s.Type(ctx, ch))
	}
}

func (a *App) editPrompt(ctx context.Context, ev *tcell.EventKey) {
	p := a.prompt
	switch p.handle(ev) {
	case promptEditing:
		return
	case promptCancelled:
		a.prompt = nil
		return
	}
	a.prompt = nil

	text := strings.TrimSpace(p.text())
	if text == "" {
		return
	}
	s := a.player.Current()
	switch p.kind {
	case promptRebus:
		a.player.Report(s.EnterRebus(ctx, strings.ToUpper(text)))
	case promptNote:
		a.player.Report(s.AddNote(ctx, text))
	}
}
