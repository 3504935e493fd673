// Package gitsync mirrors the primary data file to a remote git repository,
// best-effort. The hosted-repository content API is tried first; a local git
// CLI sequence is the fallback. Sync never fails the write that triggered it.
package gitsync

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Defaults for agent construction.
const (
	DefaultBranch     = "main"
	DefaultRemotePath = "leaderboard.json"
	defaultAPIBase    = "https://api.github.com"
	defaultTimeout    = 30 * time.Second
)

// Agent pushes the primary file to a remote repository.
type Agent struct {
	enabled    bool
	repo       string // "owner/repo"
	branch     string
	remotePath string
	token      string
	localDir   string // git worktree for the CLI fallback; primary dir if empty
	apiBase    string
	timeout    time.Duration
	client     *http.Client
	now        func() time.Time
	log        logger.Logger
}

// New constructs an Agent with defaults applied before options.
func New(opts ...Option) *Agent {
	a := &Agent{
		enabled:    true,
		branch:     DefaultBranch,
		remotePath: DefaultRemotePath,
		apiBase:    defaultAPIBase,
		timeout:    defaultTimeout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.client == nil {
		a.client = &http.Client{Timeout: a.timeout}
	}
	if a.log == nil {
		a.log = logger.Get().Named("gitsync")
	}
	return a
}

// Sync mirrors localPath to the remote repository. Returns true only when one
// of the two paths completed. Every failure is swallowed into logs and
// metrics; sync is advisory by contract.
func (a *Agent) Sync(ctx context.Context, localPath string) bool {
	if !a.enabled {
		return false
	}
	metrics.RecordSyncAttempt()

	data, err := os.ReadFile(localPath)
	if err != nil {
		a.log.Warn(ctx, "sync skipped, local file unreadable", logger.Error(err))
		metrics.RecordSyncFailure()
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	apiErr := a.syncAPI(ctx, data)
	if apiErr == nil {
		a.log.Info(ctx, "synced via content API",
			logger.String("repo", a.repo),
			logger.String("path", a.remotePath),
		)
		metrics.RecordSyncSuccess()
		return true
	}
	a.log.Warn(ctx, "content API sync failed, trying git CLI", logger.Error(apiErr))

	if err := a.syncCLI(ctx, localPath); err != nil {
		a.log.Warn(ctx, "git CLI sync unavailable", logger.Error(err))
		metrics.RecordSyncFailure()
		return false
	}
	a.log.Info(ctx, "synced via git CLI", logger.String("branch", a.branch))
	metrics.RecordSyncSuccess()
	metrics.RecordSyncFallback()
	return true
}

// contentResponse is the slice of the content API response we care about.
type contentResponse struct {
	SHA string `json:"sha"`
}

// putRequest is the commit payload for the content API.
type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// syncAPI commits data through the hosted content API. An absent remote file
// is not an error; its SHA is simply omitted so the call creates it.
func (a *Agent) syncAPI(ctx context.Context, data []byte) error {
	if a.repo == "" {
		return ErrNoRemoteRepo
	}
	url := fmt.Sprintf("%s/repos/%s/contents/%s", a.apiBase, a.repo, a.remotePath)

	sha, err := a.remoteSHA(ctx, url)
	if err != nil {
		return err
	}

	body, err := json.Marshal(putRequest{
		Message: a.commitMessage(),
		Content: base64.StdEncoding.EncodeToString(data),
		Branch:  a.branch,
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("encode commit payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build commit request: %w", err)
	}
	a.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("commit request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: commit returned %s", ErrRemoteStatus, resp.Status)
	}
	return nil
}

// remoteSHA fetches the current remote file identifier, or "" when the file
// does not exist yet.
func (a *Agent) remoteSHA(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"?ref="+a.branch, nil)
	if err != nil {
		return "", fmt.Errorf("build lookup request: %w", err)
	}
	a.setHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", nil
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return "", fmt.Errorf("%w: lookup returned %s", ErrRemoteStatus, resp.Status)
	}

	var content contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return "", fmt.Errorf("decode lookup response: %w", err)
	}
	return content.SHA, nil
}

func (a *Agent) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
}

// syncCLI stages, commits and pushes localPath inside the local worktree.
// A directory that is not a git repository means "sync unavailable".
func (a *Agent) syncCLI(ctx context.Context, localPath string) error {
	dir := a.localDir
	if dir == "" {
		dir = filepath.Dir(localPath)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return ErrNoLocalRepo
	}

	rel, err := filepath.Rel(dir, localPath)
	if err != nil {
		rel = localPath
	}

	steps := [][]string{
		{"git", "-C", dir, "add", rel},
		{"git", "-C", dir, "commit", "-m", a.commitMessage()},
		{"git", "-C", dir, "push", "origin", a.branch},
	}
	for _, step := range steps {
		cmd := exec.CommandContext(ctx, step[0], step[1:]...)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("%s: %w: %s", strings.Join(step, " "), err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}

// commitMessage stamps the sync time and a short unique suffix so repeated
// syncs within one second still produce distinct messages.
func (a *Agent) commitMessage() string {
	return fmt.Sprintf("leaderboard sync %s (%s)",
		a.now().UTC().Format("2006-01-02 15:04:05"),
		uuid.NewString()[:8],
	)
}
