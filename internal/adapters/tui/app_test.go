package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/example/xdplay/internal/adapters/filesystem"
	"github.com/example/xdplay/internal/app"
	"github.com/example/xdplay/internal/config"
	"github.com/example/xdplay/internal/core/cursor"
	"github.com/example/xdplay/internal/core/puzzle"
)

const miniDoc = "Title: Mini\nAuthor: Test\n\n\nCAT\nA#O\nBOG\n\n\nA1. Feline ~ CAT\nA3. Swamp ~ BOG\n\nD1. Taxi ~ CAB\nD2. Party garment ~ TOG\n"

type testApp struct {
	*App
	scr    tcell.SimulationScreen
	player *app.PlayerServiceImpl
	dir    string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "mini.xd")
	if err := os.WriteFile(path, []byte(miniDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	player, err := app.NewPlayerService(ctx, []string{path}, filesystem.NewPuzzleStore(), filesystem.NewJournalDir(dir), nil, app.SessionConfig{
		User:         "ann",
		RebusSymbols: "123",
	})
	if err != nil {
		t.Fatalf("NewPlayerService failed: %v", err)
	}

	scr := tcell.NewSimulationScreen("UTF-8")
	if err := scr.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	scr.SetSize(80, 24)
	t.Cleanup(scr.Fini)

	opts := config.DefaultOptions()
	a := New(scr, player, Config{Options: &opts})
	a.draw()
	return &testApp{App: a, scr: scr, player: player, dir: dir}
}

func keyEv(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeEv(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func (ta *testApp) send(t *testing.T, evs ...tcell.Event) {
	t.Helper()
	for _, ev := range evs {
		if ta.handle(context.Background(), ev) {
			t.Fatalf("unexpected quit on %v", ev)
		}
		ta.draw()
	}
}

func (ta *testApp) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		ta.send(t, runeEv(r))
	}
}

func (ta *testApp) row(y int) string {
	cells, w, _ := ta.scr.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return b.String()
}

func (ta *testApp) cellValue(c puzzle.Coord) string {
	return ta.player.Current().Snapshot().Cells[c.Y][c.X].Value
}

func TestApp_TypingFillsAndAdvances(t *testing.T) {
	ta := newTestApp(t)
	ta.typeText(t, "ca")

	snap := ta.player.Current().Snapshot()
	if got := snap.Cells[0][0].Value + snap.Cells[0][1].Value; got != "CA" {
		t.Errorf("row = %q, want CA", got)
	}
	if snap.Cursor != (puzzle.Coord{X: 2, Y: 0}) {
		t.Errorf("cursor = %v, want (2,0)", snap.Cursor)
	}

	data, err := os.ReadFile(filepath.Join(ta.dir, "mini.xd-guesses.jsonl"))
	if err != nil {
		t.Fatalf("journal not written: %v", err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("journal has %d lines, want 2", n)
	}
}

func TestApp_IgnoresNonLetters(t *testing.T) {
	ta := newTestApp(t)
	ta.typeText(t, "7!")
	if v := ta.cellValue(puzzle.Coord{}); v != puzzle.Unfilled {
		t.Errorf("cell = %q, want unfilled", v)
	}
}

func TestApp_EraseKeys(t *testing.T) {
	ta := newTestApp(t)
	ta.typeText(t, "cat")

	// typing stops on the last cell, so backspace clears the one before it
	ta.send(t, keyEv(tcell.KeyBackspace2))
	if v := ta.cellValue(puzzle.Coord{X: 1, Y: 0}); v != puzzle.Unfilled {
		t.Errorf("after backspace (1,0) = %q, want unfilled", v)
	}
	if v := ta.cellValue(puzzle.Coord{X: 2, Y: 0}); v != "T" {
		t.Errorf("after backspace (2,0) = %q, want T", v)
	}

	ta.player.Current().JumpTo(puzzle.Coord{X: 0, Y: 0})
	ta.send(t, keyEv(tcell.KeyDelete))
	if v := ta.cellValue(puzzle.Coord{}); v != puzzle.Unfilled {
		t.Errorf("after delete (0,0) = %q, want unfilled", v)
	}
	if c := ta.player.Current().Snapshot().Cursor; c != (puzzle.Coord{}) {
		t.Errorf("delete moved cursor to %v", c)
	}

	ta.send(t, runeEv(' '))
	if c := ta.player.Current().Snapshot().Cursor; c != (puzzle.Coord{X: 1, Y: 0}) {
		t.Errorf("space left cursor at %v, want (1,0)", c)
	}
}

func TestApp_TabAndArrows(t *testing.T) {
	ta := newTestApp(t)

	ta.send(t, keyEv(tcell.KeyTab))
	if d := ta.player.Current().Snapshot().Dir; d != puzzle.Down {
		t.Errorf("dir = %v, want D", d)
	}

	ta.send(t, keyEv(tcell.KeyDown), keyEv(tcell.KeyRight))
	if c := ta.player.Current().Snapshot().Cursor; c != (puzzle.Coord{X: 2, Y: 1}) {
		t.Errorf("cursor = %v, want (2,1) after skipping the block", c)
	}
}

func TestApp_UndoRevertsTyping(t *testing.T) {
	ta := newTestApp(t)
	ta.typeText(t, "ca")
	ta.send(t, keyEv(tcell.KeyCtrlZ))

	if v := ta.cellValue(puzzle.Coord{}); v != puzzle.Unfilled {
		t.Errorf("(0,0) = %q after undo", v)
	}
	ta.send(t, keyEv(tcell.KeyCtrlZ))
	if got := ta.player.Status(); got != app.StatusNothingToUndo {
		t.Errorf("status = %q, want %q", got, app.StatusNothingToUndo)
	}
}

func TestApp_RebusPrompt(t *testing.T) {
	ta := newTestApp(t)
	ta.send(t, keyEv(tcell.KeyCtrlR))
	if ta.prompt == nil {
		t.Fatal("rebus prompt not open")
	}
	if row := ta.row(22); !strings.Contains(row, "rebus:") {
		t.Errorf("prompt row = %q", row)
	}

	ta.typeText(t, "star")
	ta.send(t, keyEv(tcell.KeyEnter))
	if ta.prompt != nil {
		t.Fatal("prompt still open after Enter")
	}

	snap := ta.player.Current().Snapshot()
	if snap.Cells[0][0].Value != "STAR" {
		t.Errorf("(0,0) = %q, want STAR", snap.Cells[0][0].Value)
	}
	if len(snap.Rebus) != 1 || snap.Rebus[0].Symbol != "1" {
		t.Fatalf("rebus = %+v, want symbol 1", snap.Rebus)
	}

	// typing the live symbol re-enters the rebus
	ta.player.Current().JumpTo(puzzle.Coord{X: 2, Y: 0})
	ta.send(t, runeEv('1'))
	if v := ta.cellValue(puzzle.Coord{X: 2, Y: 0}); v != "STAR" {
		t.Errorf("(2,0) = %q, want STAR", v)
	}
}

func TestApp_PromptCancel(t *testing.T) {
	ta := newTestApp(t)
	ta.send(t, keyEv(tcell.KeyCtrlR))
	ta.typeText(t, "xyz")
	ta.send(t, keyEv(tcell.KeyEscape))
	if ta.prompt != nil {
		t.Fatal("prompt still open after Escape")
	}
	if v := ta.cellValue(puzzle.Coord{}); v != puzzle.Unfilled {
		t.Errorf("(0,0) = %q, want unfilled", v)
	}
}

func TestApp_NotePrompt(t *testing.T) {
	ta := newTestApp(t)
	ta.send(t, keyEv(tcell.KeyCtrlY))
	ta.typeText(t, "try cat")
	ta.send(t, keyEv(tcell.KeyEnter))

	snap := ta.player.Current().Snapshot()
	if len(snap.Notes) != 1 || snap.Notes[0].Text != "try cat" || snap.Notes[0].User != "ann" {
		t.Fatalf("notes = %+v", snap.Notes)
	}
	if snap.Current == nil || snap.Current.Notes != 1 {
		t.Errorf("current clue = %+v, want one note", snap.Current)
	}
}

func TestApp_NoteWithoutClue(t *testing.T) {
	ta := newTestApp(t)
	// (0,1) has no across clue
	ta.player.Current().JumpTo(puzzle.Coord{X: 0, Y: 1})
	ta.send(t, keyEv(tcell.KeyCtrlY))

	if ta.prompt != nil {
		t.Error("note prompt opened without a clue")
	}
	if got := ta.player.Status(); got != cursor.ErrNoClue.Error() {
		t.Errorf("status = %q, want %q", got, cursor.ErrNoClue.Error())
	}
}

func TestApp_Hotkeys(t *testing.T) {
	ta := newTestApp(t)

	ta.send(t, runeEv('0'))
	if ta.opts.Unsolved != 0 {
		t.Fatal("hotkey cycled while the panel is hidden")
	}

	ta.send(t, keyEv(tcell.KeyCtrlX), runeEv('0'), runeEv('2'))
	if !ta.opts.Hotkeys {
		t.Fatal("Ctrl-X did not show hotkeys")
	}
	if ta.opts.Unsolved != 1 || ta.opts.Arrow != 1 {
		t.Errorf("options = %+v, want unsolved and arrow cycled", *ta.opts)
	}
}

func TestApp_CircleAndSolve(t *testing.T) {
	ta := newTestApp(t)
	ta.send(t, runeEv('@'))
	if !ta.player.Current().Snapshot().Cells[0][0].Circled {
		t.Error("cell not circled")
	}

	ta.send(t, keyEv(tcell.KeyF2))
	snap := ta.player.Current().Snapshot()
	if snap.NSolved != snap.NCells {
		t.Errorf("solved %d/%d after F2", snap.NSolved, snap.NCells)
	}
}

func TestApp_MouseClicks(t *testing.T) {
	ta := newTestApp(t)

	x, y, ok := ta.layout.screenPos(puzzle.Coord{X: 2, Y: 2})
	if !ok {
		t.Fatal("cell (2,2) not visible")
	}
	ta.send(t, tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if c := ta.player.Current().Snapshot().Cursor; c != (puzzle.Coord{X: 2, Y: 2}) {
		t.Errorf("cursor = %v after grid click, want (2,2)", c)
	}

	var downRow = -1
	for row, id := range ta.layout.clueRows {
		if id == (puzzle.ClueID{Dir: puzzle.Down, Num: 2}) {
			downRow = row
		}
	}
	if downRow < 0 {
		t.Fatal("D2 not drawn")
	}
	ta.send(t, tcell.NewEventMouse(ta.layout.clueLeft+2, downRow, tcell.Button1, tcell.ModNone))
	snap := ta.player.Current().Snapshot()
	if snap.Cursor != (puzzle.Coord{X: 2, Y: 0}) || snap.Dir != puzzle.Down {
		t.Errorf("cursor = %v %v after clue click, want (2,0) D", snap.Cursor, snap.Dir)
	}
}

func TestApp_RunQuits(t *testing.T) {
	ta := newTestApp(t)
	errc := make(chan error, 1)
	go func() { errc <- ta.Run(context.Background()) }()

	ta.scr.InjectKey(tcell.KeyRune, 'c', tcell.ModNone)
	ta.scr.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Ctrl-Q")
	}
	if v := ta.cellValue(puzzle.Coord{}); v != "C" {
		t.Errorf("(0,0) = %q, want C", v)
	}
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	ta := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	wake := make(chan struct{})
	ta.cfg.Wake = wake

	errc := make(chan error, 1)
	go func() { errc <- ta.Run(ctx) }()
	close(wake)
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApp_Timeout(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tests := []struct {
		name     string
		deadline func(time.Time) time.Time
		want     time.Duration
	}{
		{"no hook", nil, time.Second},
		{"nothing scheduled", func(time.Time) time.Time { return time.Time{} }, time.Second},
		{"frame due sooner", func(n time.Time) time.Time { return n.Add(40 * time.Millisecond) }, 40 * time.Millisecond},
		{"frame due later", func(n time.Time) time.Time { return n.Add(time.Minute) }, time.Second},
		{"frame overdue", func(n time.Time) time.Time { return n.Add(-time.Second) }, time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &App{cfg: Config{PollInterval: time.Second, Deadline: tt.deadline}}
			if got := a.timeout(now); got != tt.want {
				t.Errorf("timeout = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRender_Screen(t *testing.T) {
	ta := newTestApp(t)

	if row := ta.row(0); !strings.Contains(row, "Mini") {
		t.Errorf("title row = %q", row)
	}
	if row := ta.row(23); !strings.Contains(row, "^Q quit") || !strings.Contains(row, "0/8") {
		t.Errorf("help row = %q", row)
	}

	// the block at (1,1) shows the across arrow
	x, y, _ := ta.layout.screenPos(puzzle.Coord{X: 1, Y: 1})
	if got := []rune(ta.row(y))[x]; got != '⇨' {
		t.Errorf("block glyph = %q, want ⇨", got)
	}

	if !strings.Contains(strings.Join([]string{ta.row(2), ta.row(3)}, "\n"), "A1. Feline") {
		t.Error("across clues not drawn")
	}
}
