package repository

import (
	"time"

	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithClock overrides the time source used for update stamps and snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(s *FileStore) {
		if log != nil {
			s.log = log
		}
	}
}

// WithPersistHook registers a callback invoked with the primary path after
// every successful primary write.
func WithPersistHook(hook func(path string)) Option {
	return func(s *FileStore) {
		s.onPersist = hook
	}
}
