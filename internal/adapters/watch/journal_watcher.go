// Package watch wakes the play loop when a teammate writes a journal.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/example/xdplay/internal/ports/secondary"
)

// JournalWatcher implements secondary.JournalWatcher with fsnotify.
//
// Journals are watched through their directories: a journal that does not
// exist yet is still reported once a teammate creates it.
type JournalWatcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// NewJournalWatcher creates a watcher. Watch may be called once per watcher.
func NewJournalWatcher(logger *slog.Logger) (*JournalWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JournalWatcher{watcher: watcher, logger: logger}, nil
}

// Watch signals on the returned channel when any of paths is created or
// written. Signals coalesce: a reader that falls behind sees one pending
// signal, not one per write.
func (w *JournalWatcher) Watch(ctx context.Context, paths []string) (<-chan struct{}, error) {
	names := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		names[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.logger.Debug("watching journal directory", "dir", dir)
	}

	out := make(chan struct{}, 1)
	go w.run(ctx, names, out)
	return out, nil
}

func (w *JournalWatcher) run(ctx context.Context, names map[string]bool, out chan<- struct{}) {
	defer close(out)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !names[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			select {
			case out <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("journal watcher error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

// Close releases the underlying watcher.
func (w *JournalWatcher) Close() error {
	return w.watcher.Close()
}

var _ secondary.JournalWatcher = (*JournalWatcher)(nil)
