package filesystem_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/xdplay/internal/adapters/filesystem"
	"github.com/example/xdplay/internal/core/journal"
	"github.com/example/xdplay/internal/core/puzzle"
)

func TestJournalFile_AppendAndReplay(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	j := filesystem.NewJournalDir(dir).Open("nyt-2024-01-01")

	if want := filepath.Join(dir, "nyt-2024-01-01.xd-guesses.jsonl"); j.Path() != want {
		t.Errorf("Path = %q, want %q", j.Path(), want)
	}

	// missing journal replays as empty
	batch, err := j.ReplayFrom(ctx, 0)
	if err != nil {
		t.Fatalf("ReplayFrom failed: %v", err)
	}
	if len(batch.Records) != 0 || batch.Offset != 0 {
		t.Errorf("batch = %+v, want empty", batch)
	}

	at := time.Unix(1700000000, 0)
	records := []journal.Record{
		journal.Guess("nyt-2024-01-01", puzzle.Coord{X: 0, Y: 0}, "C", "ann", at),
		journal.Guess("nyt-2024-01-01", puzzle.Coord{X: 1, Y: 0}, "STAR", "bob", at),
		journal.NewNote(puzzle.ClueID{Dir: puzzle.Across, Num: 1}, "feline", "ann", at),
	}
	for _, r := range records[:2] {
		if err := j.Append(ctx, r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	first, err := j.ReplayFrom(ctx, 0)
	if err != nil {
		t.Fatalf("ReplayFrom failed: %v", err)
	}
	if len(first.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(first.Records))
	}

	if err := j.Append(ctx, records[2]); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	second, err := j.ReplayFrom(ctx, first.Offset)
	if err != nil {
		t.Fatalf("ReplayFrom failed: %v", err)
	}
	if len(second.Records) != 1 || !second.Records[0].IsNote() {
		t.Errorf("incremental replay = %+v, want the note only", second.Records)
	}

	info, err := os.Stat(j.Path())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if second.Offset != info.Size() {
		t.Errorf("Offset = %d, want file size %d", second.Offset, info.Size())
	}

	empty, err := j.ReplayFrom(ctx, second.Offset)
	if err != nil || len(empty.Records) != 0 || empty.Offset != second.Offset {
		t.Errorf("replay at end = %+v, %v", empty, err)
	}
}

func TestJournalFile_PartialTrailingLine(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "p.xd-guesses.jsonl")
	complete := `{"x": 0, "y": 0, "ch": "A", "user": "ann", "xdid": "p"}` + "\n"
	if err := os.WriteFile(path, []byte(complete+`{"x": 1, "y"`), 0o644); err != nil {
		t.Fatal(err)
	}
	j := filesystem.NewJournalFile(path)

	batch, err := j.ReplayFrom(ctx, 0)
	if err != nil {
		t.Fatalf("ReplayFrom failed: %v", err)
	}
	if len(batch.Records) != 1 || batch.Offset != int64(len(complete)) {
		t.Fatalf("batch = %+v, want one record ending at %d", batch, len(complete))
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString(`: 0, "ch": "B", "user": "bob"}` + "\n")
	f.Close()

	batch, err = j.ReplayFrom(ctx, batch.Offset)
	if err != nil {
		t.Fatalf("ReplayFrom failed: %v", err)
	}
	if len(batch.Records) != 1 || batch.Records[0].Ch != "B" {
		t.Errorf("batch = %+v, want the finished line", batch)
	}
}

func TestJournalFile_SkipsUndecodableLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.xd-guesses.jsonl")
	data := "{\"x\":0,\"y\":0,\"ch\":\"A\"}\n{broken\n{\"x\":1,\"y\":0,\"ch\":\"B\"}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	batch, err := filesystem.NewJournalFile(path).ReplayFrom(context.Background(), 0)
	if err != nil {
		t.Fatalf("ReplayFrom failed: %v", err)
	}
	if len(batch.Records) != 2 || len(batch.Skipped) != 1 || batch.Offset != int64(len(data)) {
		t.Errorf("batch = %+v", batch)
	}
}

func TestJournalFile_MarkDoneRejectsAppends(t *testing.T) {
	ctx := context.Background()
	j := filesystem.NewJournalFile(filepath.Join(t.TempDir(), "p.xd-guesses.jsonl"))
	rec := journal.Guess("p", puzzle.Coord{}, "A", "ann", time.Time{})

	if err := j.Append(ctx, rec); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := j.MarkDone(ctx); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	info, err := os.Stat(j.Path())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o222 != 0 {
		t.Errorf("mode = %v, want no write bits", info.Mode())
	}

	err = j.Append(ctx, rec)
	if !errors.Is(err, journal.ErrCompleted) {
		t.Fatalf("Append after MarkDone err = %v, want ErrCompleted", err)
	}

	batch, err := j.ReplayFrom(ctx, 0)
	if err != nil || len(batch.Records) != 1 {
		t.Errorf("read-only journal replay = %+v, %v", batch, err)
	}

	if err := j.MarkDone(ctx); err != nil {
		t.Errorf("second MarkDone failed: %v", err)
	}
}

func TestJournalFile_MarkDoneCreatesMissingJournal(t *testing.T) {
	ctx := context.Background()
	j := filesystem.NewJournalFile(filepath.Join(t.TempDir(), "p.xd-guesses.jsonl"))
	if err := j.MarkDone(ctx); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if err := j.Append(ctx, journal.Guess("p", puzzle.Coord{}, "A", "", time.Time{})); !errors.Is(err, journal.ErrCompleted) {
		t.Errorf("err = %v, want ErrCompleted", err)
	}
}

func TestJournalFile_ConcurrentAppendsStayLineAtomic(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "p.xd-guesses.jsonl")
	const writers, each = 8, 25

	var wg sync.WaitGroup
	errs := make(chan error, writers*each)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			j := filesystem.NewJournalFile(path)
			user := fmt.Sprintf("player%d", w)
			for i := 0; i < each; i++ {
				r := journal.Guess("p", puzzle.Coord{X: i, Y: w}, strings.Repeat("X", 1+i%3), user, time.Now())
				if err := j.Append(ctx, r); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Append failed: %v", err)
	}

	batch, err := filesystem.NewJournalFile(path).ReplayFrom(ctx, 0)
	if err != nil {
		t.Fatalf("ReplayFrom failed: %v", err)
	}
	if len(batch.Records) != writers*each || len(batch.Skipped) != 0 {
		t.Errorf("records = %d skipped = %d, want %d and 0", len(batch.Records), len(batch.Skipped), writers*each)
	}
}

func TestJournalFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	j := filesystem.NewJournalFile(filepath.Join(t.TempDir(), "p.xd-guesses.jsonl"))
	if err := j.Append(ctx, journal.Guess("p", puzzle.Coord{}, "A", "", time.Time{})); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
