package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/example/xdplay/internal/core/journal"
	"github.com/example/xdplay/internal/core/puzzle"
	"github.com/example/xdplay/internal/ports/secondary"
)

// Across: A1 CAT, A2 DOG. No down entries.
const catDogDoc = "Title: Pets\n\n\nCAT#DOG\n\n\nA1. Feline ~ CAT\nA2. Canine ~ DOG\n"

// Across: A1 CAT, A3 BOG. Down: D1 CAB, D2 TOG.
const miniDoc = "Title: Mini\nAuthor: Test\n\n\nCAT\nA#O\nBOG\n\n\nA1. Feline ~ CAT\nA3. Swamp ~ BOG\n\nD1. Taxi ~ CAB\nD2. Party garment ~ TOG\n"

// Ensure mocks implement the interfaces
var (
	_ secondary.Journal           = (*mockJournal)(nil)
	_ secondary.JournalOpener     = (*mockJournalOpener)(nil)
	_ secondary.HistoryRepository = (*mockHistoryRepository)(nil)
	_ secondary.PuzzleStore       = (*mockPuzzleStore)(nil)
	_ secondary.TeamLauncher      = (*mockTeamLauncher)(nil)
)

// mockJournal implements secondary.Journal over an in-memory byte log shared
// by every session that holds it, like a file on a shared filesystem.
type mockJournal struct {
	path      string
	data      []byte
	limit     int // bytes visible to readers, -1 for all
	done      bool
	appends   int
	appendErr error
	replayErr error
	markErr   error
}

func newMockJournal(xdid string) *mockJournal {
	return &mockJournal{path: "/team/" + xdid + journal.FileSuffix, limit: -1}
}

func (m *mockJournal) Append(ctx context.Context, r journal.Record) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	if m.done {
		return journal.ErrCompleted
	}
	b, err := journal.Encode(r)
	if err != nil {
		return err
	}
	m.data = append(m.data, b...)
	m.appends++
	return nil
}

func (m *mockJournal) ReplayFrom(ctx context.Context, offset int64) (journal.ReplayBatch, error) {
	if m.replayErr != nil {
		return journal.ReplayBatch{}, m.replayErr
	}
	visible := m.data
	if m.limit >= 0 && m.limit < len(visible) {
		visible = visible[:m.limit]
	}
	if offset > int64(len(visible)) {
		offset = int64(len(visible))
	}
	return journal.Scan(visible[offset:], offset), nil
}

func (m *mockJournal) MarkDone(ctx context.Context) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.done = true
	return nil
}

func (m *mockJournal) Path() string {
	return m.path
}

// writeRaw appends bytes as another process would.
func (m *mockJournal) writeRaw(s string) {
	m.data = append(m.data, s...)
}

// lineEnds returns the offset after every complete line.
func (m *mockJournal) lineEnds() []int {
	var ends []int
	for i, b := range m.data {
		if b == '\n' {
			ends = append(ends, i+1)
		}
	}
	return ends
}

// mockJournalOpener hands out one shared journal per puzzle id.
type mockJournalOpener struct {
	journals map[string]*mockJournal
}

func newMockJournalOpener() *mockJournalOpener {
	return &mockJournalOpener{journals: make(map[string]*mockJournal)}
}

func (m *mockJournalOpener) Open(xdid string) secondary.Journal {
	return m.get(xdid)
}

func (m *mockJournalOpener) get(xdid string) *mockJournal {
	j, ok := m.journals[xdid]
	if !ok {
		j = newMockJournal(xdid)
		m.journals[xdid] = j
	}
	return j
}

// mockHistoryRepository implements secondary.HistoryRepository for testing.
type mockHistoryRepository struct {
	records   []*secondary.CompletionRecord
	recordErr error
	listErr   error
	filters   secondary.HistoryFilters
}

func (m *mockHistoryRepository) Record(ctx context.Context, rec *secondary.CompletionRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	for _, r := range m.records {
		if r.XDID == rec.XDID {
			return nil
		}
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockHistoryRepository) List(ctx context.Context, filters secondary.HistoryFilters) ([]*secondary.CompletionRecord, error) {
	m.filters = filters
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

func (m *mockHistoryRepository) GetByXDID(ctx context.Context, xdid string) (*secondary.CompletionRecord, error) {
	for _, r := range m.records {
		if r.XDID == xdid {
			return r, nil
		}
	}
	return nil, fmt.Errorf("completion for %s not found", xdid)
}

// mockPuzzleStore implements secondary.PuzzleStore from in-memory documents
// keyed by path. The puzzle id is the path itself.
type mockPuzzleStore struct {
	docs  map[string]string
	saved map[string]string
}

func (m *mockPuzzleStore) Load(ctx context.Context, path string) (*puzzle.Puzzle, error) {
	doc, ok := m.docs[path]
	if !ok {
		return nil, fmt.Errorf("failed to read puzzle %s: file does not exist", path)
	}
	p, err := puzzle.Parse(path, doc)
	if err != nil {
		if pe, ok := err.(*puzzle.ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return p, nil
}

func (m *mockPuzzleStore) Save(ctx context.Context, path string, p *puzzle.Puzzle, opts puzzle.FormatOptions) error {
	if m.saved == nil {
		m.saved = make(map[string]string)
	}
	m.saved[path] = puzzle.Format(p, opts)
	return nil
}

// fakeClock advances one second per call.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T, doc string, j *mockJournal, user string) *SessionServiceImpl {
	t.Helper()
	return newTestSessionWith(t, doc, j, nil, SessionConfig{User: user})
}

func newTestSessionWith(t *testing.T, doc string, j *mockJournal, history secondary.HistoryRepository, cfg SessionConfig) *SessionServiceImpl {
	t.Helper()
	p, err := puzzle.Parse("test", doc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Now == nil {
		cfg.Now = (&fakeClock{t: time.Unix(1700000000, 0)}).Now
	}
	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	s := NewSessionService(p, j, history, cfg)
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	return s
}

func typeAll(t *testing.T, s *SessionServiceImpl, chars string) {
	t.Helper()
	for _, r := range chars {
		if err := s.Type(context.Background(), string(r)); err != nil {
			t.Fatalf("Type(%q) failed: %v", r, err)
		}
	}
}

func rowString(s *SessionServiceImpl, y int) string {
	out := ""
	for _, v := range s.Puzzle().Grid()[y] {
		out += v
	}
	return out
}

// mockTeamLauncher implements secondary.TeamLauncher for testing.
type mockTeamLauncher struct {
	existing  map[string]bool
	launched  []secondary.TeamSession
	launchErr error
}

func (m *mockTeamLauncher) SessionExists(ctx context.Context, name string) bool {
	return m.existing[name]
}

func (m *mockTeamLauncher) Launch(ctx context.Context, team secondary.TeamSession) error {
	if m.launchErr != nil {
		return m.launchErr
	}
	m.launched = append(m.launched, team)
	return nil
}

func (m *mockTeamLauncher) AttachInstructions(sessionName string) string {
	return "tmux attach -t " + sessionName
}
