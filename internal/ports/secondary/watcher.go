package secondary

import "context"

// JournalWatcher defines the secondary port for change notifications on journal files.
// It never reads journals itself; it only wakes the play loop early.
type JournalWatcher interface {
	// Watch starts delivering a signal on the returned channel whenever one
	// of paths is written. The channel is closed when ctx is done.
	Watch(ctx context.Context, paths []string) (<-chan struct{}, error)

	// Close releases the underlying watcher.
	Close() error
}
