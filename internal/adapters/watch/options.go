package watch

import (
	"time"

	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the Watcher.
type Option func(*Watcher)

// WithInterval sets the polling interval.
func WithInterval(interval time.Duration) Option {
	return func(w *Watcher) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// WithDebounce sets the pause between detecting a change and syncing it.
func WithDebounce(debounce time.Duration) Option {
	return func(w *Watcher) {
		if debounce >= 0 {
			w.debounce = debounce
		}
	}
}

// WithBackoff sets the sleep after a failed loop iteration.
func WithBackoff(backoff time.Duration) Option {
	return func(w *Watcher) {
		if backoff > 0 {
			w.backoff = backoff
		}
	}
}

// WithLogger sets a custom logger for the watcher.
func WithLogger(log logger.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}
