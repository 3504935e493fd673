package gitsync

import (
	"net/http"
	"time"

	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the Agent.
type Option func(*Agent)

// WithEnabled toggles the agent. A disabled agent short-circuits Sync to a
// no-op returning false.
func WithEnabled(enabled bool) Option {
	return func(a *Agent) {
		a.enabled = enabled
	}
}

// WithRepo sets the "owner/repo" identifier for the content API.
func WithRepo(repo string) Option {
	return func(a *Agent) {
		a.repo = repo
	}
}

// WithBranch overrides the target branch.
func WithBranch(branch string) Option {
	return func(a *Agent) {
		if branch != "" {
			a.branch = branch
		}
	}
}

// WithRemotePath overrides the file path inside the remote repository.
func WithRemotePath(path string) Option {
	return func(a *Agent) {
		if path != "" {
			a.remotePath = path
		}
	}
}

// WithToken sets the API authentication token.
func WithToken(token string) Option {
	return func(a *Agent) {
		a.token = token
	}
}

// WithLocalDir sets the git worktree used by the CLI fallback.
func WithLocalDir(dir string) Option {
	return func(a *Agent) {
		a.localDir = dir
	}
}

// WithAPIBase overrides the content API base URL.
func WithAPIBase(base string) Option {
	return func(a *Agent) {
		if base != "" {
			a.apiBase = base
		}
	}
}

// WithTimeout bounds the blocking time of one sync attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Agent) {
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Agent) {
		if client != nil {
			a.client = client
		}
	}
}

// WithClock overrides the time source used in commit messages.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets a custom logger for the agent.
func WithLogger(log logger.Logger) Option {
	return func(a *Agent) {
		if log != nil {
			a.log = log
		}
	}
}
