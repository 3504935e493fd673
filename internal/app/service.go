// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/okian/podium/internal/adapters/gitsync"
	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/adapters/watch"
	"github.com/okian/podium/internal/domain/ranking"
	"github.com/okian/podium/pkg/logger"
)

// Service owns the durable store, the remote sync agent and the change
// watcher, and exposes the boundary operations the HTTP shell consumes.
type Service struct {
	mu sync.Mutex

	// Core components
	store   *repository.FileStore
	agent   *gitsync.Agent
	watcher *watch.Watcher

	// Configuration
	dataDir        string
	syncEnabled    bool
	syncRepo       string
	syncBranch     string
	syncRemotePath string
	syncToken      string
	syncTimeout    time.Duration
	watchInterval  time.Duration
	watchDebounce  time.Duration
	now            func() time.Time

	// State
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// Logging
	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:        "data",
		syncEnabled:    true,
		syncBranch:     gitsync.DefaultBranch,
		syncRemotePath: gitsync.DefaultRemotePath,
		syncTimeout:    30 * time.Second,
		watchInterval:  2 * time.Second,
		watchDebounce:  500 * time.Millisecond,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the store, sync agent and watcher. The watcher runs until
// ctx is canceled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting leaderboard service",
		logger.String("dataDir", s.dataDir),
		logger.Any("syncEnabled", s.syncEnabled),
	)

	s.agent = gitsync.New(
		gitsync.WithEnabled(s.syncEnabled),
		gitsync.WithRepo(s.syncRepo),
		gitsync.WithBranch(s.syncBranch),
		gitsync.WithRemotePath(s.syncRemotePath),
		gitsync.WithToken(s.syncToken),
		gitsync.WithLocalDir(s.dataDir),
		gitsync.WithTimeout(s.syncTimeout),
		gitsync.WithClock(s.now),
		gitsync.WithLogger(s.logger.Named("gitsync")),
	)

	store, err := repository.NewFileStore(s.dataDir,
		repository.WithClock(s.now),
		repository.WithLogger(s.logger.Named("store")),
		repository.WithPersistHook(s.syncAfterPersist),
	)
	if err != nil {
		return err
	}
	s.store = store

	s.watcher = watch.New(store.Path(), s.agent,
		watch.WithInterval(s.watchInterval),
		watch.WithDebounce(s.watchDebounce),
		watch.WithLogger(s.logger.Named("watch")),
	)

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.watcher.Run(watchCtx)
	}()

	s.started = true
	s.logger.Info(ctx, "leaderboard service started")
	return nil
}

// Stop shuts the background work down and waits for in-flight syncs.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping leaderboard service")
	s.cancel()
	s.wg.Wait()
	s.started = false
	s.logger.Info(context.Background(), "leaderboard service stopped")
}

// syncAfterPersist mirrors the primary file without blocking the write path
// that triggered it.
func (s *Service) syncAfterPersist(path string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
		defer cancel()
		s.agent.Sync(ctx, path)
	}()
}

// Submit applies one score submission and returns the resulting rank.
func (s *Service) Submit(ctx context.Context, userID, name string, score float64, avatar string) (int, error) {
	return s.store.Submit(ctx, userID, name, score, avatar)
}

// RankedView returns all visible records ordered by rank.
func (s *Service) RankedView(ctx context.Context) ([]ranking.Entry, error) {
	return s.store.RankedView(ctx)
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) int {
	return s.store.Count(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]any{
		"started":     s.started,
		"dataDir":     s.dataDir,
		"syncEnabled": s.syncEnabled,
	}
	if s.started {
		stats["records"] = s.store.Count(context.Background())
	}
	return stats
}
