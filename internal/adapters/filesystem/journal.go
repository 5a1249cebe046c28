// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/xdplay/internal/core/journal"
	"github.com/example/xdplay/internal/ports/secondary"
)

// JournalFile implements secondary.Journal over an append-only JSON-lines file.
type JournalFile struct {
	path string
}

// NewJournalFile creates a journal adapter for path. The file is created on
// first append.
func NewJournalFile(path string) *JournalFile {
	return &JournalFile{path: path}
}

// Path returns the journal file path.
func (j *JournalFile) Path() string {
	return j.path
}

// readOnly reports whether the journal exists with every write bit cleared.
func (j *JournalFile) readOnly() bool {
	info, err := os.Stat(j.path)
	return err == nil && info.Mode().Perm()&0o222 == 0
}

// Append writes one record with a single write on an O_APPEND descriptor and
// syncs before returning.
func (j *JournalFile) Append(ctx context.Context, r journal.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := journal.Encode(r)
	if err != nil {
		return err
	}
	if j.readOnly() {
		return journal.ErrCompleted
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	f, err := os.OpenFile(j.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o666)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) && j.readOnly() {
			return journal.ErrCompleted
		}
		return fmt.Errorf("failed to open journal %s: %w", j.path, err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("failed to append to journal %s: %w", j.path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync journal %s: %w", j.path, err)
	}
	return f.Close()
}

// ReplayFrom reads every complete line at or after offset. A journal that does
// not exist yet replays as empty.
func (j *JournalFile) ReplayFrom(ctx context.Context, offset int64) (journal.ReplayBatch, error) {
	if err := ctx.Err(); err != nil {
		return journal.ReplayBatch{Offset: offset}, err
	}
	f, err := os.Open(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return journal.ReplayBatch{Offset: offset}, nil
		}
		return journal.ReplayBatch{Offset: offset}, fmt.Errorf("failed to open journal %s: %w", j.path, err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return journal.ReplayBatch{Offset: offset}, fmt.Errorf("failed to seek journal %s: %w", j.path, err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return journal.ReplayBatch{Offset: offset}, fmt.Errorf("failed to read journal %s: %w", j.path, err)
	}
	return journal.Scan(data, offset), nil
}

// MarkDone clears the journal's write bits so every player's next append is
// rejected. A journal that was never written is created first.
func (j *JournalFile) MarkDone(ctx context.Context) error {
	info, err := os.Stat(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		f, cerr := os.OpenFile(j.path, os.O_WRONLY|os.O_CREATE, 0o666)
		if cerr != nil {
			return fmt.Errorf("failed to create journal %s: %w", j.path, cerr)
		}
		f.Close()
		info, err = os.Stat(j.path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat journal %s: %w", j.path, err)
	}
	if err := os.Chmod(j.path, info.Mode().Perm()&^0o222); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			// another player owns the file; their session marks it
			return nil
		}
		return fmt.Errorf("failed to mark journal %s done: %w", j.path, err)
	}
	return nil
}

// JournalDir implements secondary.JournalOpener for a team directory.
type JournalDir struct {
	dir string
}

// NewJournalDir creates an opener for journals stored under dir.
func NewJournalDir(dir string) *JournalDir {
	if dir == "" {
		dir = "."
	}
	return &JournalDir{dir: dir}
}

// Open returns the journal of puzzle xdid.
func (d *JournalDir) Open(xdid string) secondary.Journal {
	return NewJournalFile(d.JournalPath(xdid))
}

// JournalPath returns where the journal of xdid lives.
func (d *JournalDir) JournalPath(xdid string) string {
	return filepath.Join(d.dir, xdid+journal.FileSuffix)
}
