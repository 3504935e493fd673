package app

import (
	"time"

	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataDir sets the storage directory.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithSyncEnabled toggles remote mirroring.
func WithSyncEnabled(enabled bool) Option {
	return func(s *Service) {
		s.syncEnabled = enabled
	}
}

// WithSyncRepo sets the "owner/repo" sync target.
func WithSyncRepo(repo string) Option {
	return func(s *Service) {
		s.syncRepo = repo
	}
}

// WithSyncBranch sets the remote branch.
func WithSyncBranch(branch string) Option {
	return func(s *Service) {
		if branch != "" {
			s.syncBranch = branch
		}
	}
}

// WithSyncRemotePath sets the file path inside the remote repository.
func WithSyncRemotePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.syncRemotePath = path
		}
	}
}

// WithSyncToken sets the content API token.
func WithSyncToken(token string) Option {
	return func(s *Service) {
		s.syncToken = token
	}
}

// WithSyncTimeout bounds one sync attempt.
func WithSyncTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.syncTimeout = timeout
		}
	}
}

// WithWatchInterval sets the change watcher polling interval.
func WithWatchInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.watchInterval = interval
		}
	}
}

// WithWatchDebounce sets the change watcher debounce pause.
func WithWatchDebounce(debounce time.Duration) Option {
	return func(s *Service) {
		if debounce >= 0 {
			s.watchDebounce = debounce
		}
	}
}

// WithClock overrides the service time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
