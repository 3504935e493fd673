// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and environment on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8001".
	Addr string `koanf:"addr"`

	// DataDir is the storage directory holding the primary file and the
	// backups/ subdirectory.
	DataDir string `koanf:"data_dir"`

	// SyncEnabled toggles remote mirroring of the primary file.
	SyncEnabled bool `koanf:"sync_enabled"`

	// SyncRepo is the "owner/repo" target of the content API.
	SyncRepo string `koanf:"sync_repo"`

	// SyncBranch is the remote branch to commit to.
	SyncBranch string `koanf:"sync_branch"`

	// SyncRemotePath is the file path inside the remote repository.
	SyncRemotePath string `koanf:"sync_remote_path"`

	// SyncToken authenticates content API calls.
	SyncToken string `koanf:"sync_token"`

	// SyncTimeoutSeconds bounds one sync attempt.
	SyncTimeoutSeconds int `koanf:"sync_timeout_seconds"`

	// WatchIntervalMS is the change watcher polling interval.
	WatchIntervalMS int `koanf:"watch_interval_ms"`

	// WatchDebounceMS is the pause between change detection and sync.
	WatchDebounceMS int `koanf:"watch_debounce_ms"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8001",
		DataDir:            "data",
		SyncEnabled:        true,
		SyncBranch:         "main",
		SyncRemotePath:     "leaderboard.json",
		SyncTimeoutSeconds: 30,
		WatchIntervalMS:    2000,
		WatchDebounceMS:    500,
	}
}
