// Package watch detects out-of-band modifications to the primary file and
// triggers a remote sync for them.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Defaults for the polling loop.
const (
	defaultInterval = 2 * time.Second
	defaultDebounce = 500 * time.Millisecond
	defaultBackoff  = 5 * time.Second
)

// Syncer mirrors a local file to the remote repository.
type Syncer interface {
	Sync(ctx context.Context, localPath string) bool
}

// Watcher polls one file's modification time. A change that was not already
// synced is debounced and then handed to the Syncer. All state is explicit
// fields so multiple isolated watchers can coexist in tests.
type Watcher struct {
	path     string
	syncer   Syncer
	interval time.Duration
	debounce time.Duration
	backoff  time.Duration
	log      logger.Logger

	lastSeen   time.Time
	lastSynced time.Time
}

// New creates a watcher over path.
func New(path string, syncer Syncer, opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		syncer:   syncer,
		interval: defaultInterval,
		debounce: defaultDebounce,
		backoff:  defaultBackoff,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logger.Get().Named("watch")
	}
	return w
}

// Run polls until ctx is canceled. Loop body errors are logged and followed
// by a backoff sleep; the loop itself never exits on error.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info(ctx, "watching primary file",
		logger.String("path", w.path),
		logger.Duration("interval", w.interval),
	)
	for {
		select {
		case <-ctx.Done():
			w.log.Info(ctx, "watcher stopped")
			return
		case <-ticker.C:
			if err := w.tick(ctx); err != nil {
				w.log.Warn(ctx, "watcher tick failed", logger.Error(err))
				metrics.RecordWatcherError()
				sleep(ctx, w.backoff)
			}
		}
	}
}

// tick checks the file's mtime and syncs a change that was not synced yet.
func (w *Watcher) tick(ctx context.Context) error {
	info, err := os.Stat(w.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", w.path, err)
	}

	mod := info.ModTime()
	if mod.Equal(w.lastSeen) || mod.Equal(w.lastSynced) {
		w.lastSeen = mod
		return nil
	}

	// Debounce so a burst of writes collapses into one sync.
	if !sleep(ctx, w.debounce) {
		return nil
	}
	w.syncer.Sync(ctx, w.path)
	w.lastSeen = mod
	w.lastSynced = mod
	return nil
}

// sleep waits d or until ctx is done; returns false on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
