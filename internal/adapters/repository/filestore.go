package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/okian/podium/internal/adapters/storage/atomicfile"
	"github.com/okian/podium/internal/adapters/storage/backup"
	"github.com/okian/podium/internal/adapters/storage/codec"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/ranking"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Primary file and directory layout under the data directory.
const (
	PrimaryName = "leaderboard.json"
	backupsDir  = "backups"
	dirMode     = 0o755
)

// FileStore is the durable leaderboard store. It keeps the canonical state in
// the primary file and rereads it on every operation, holding a lock around
// load->mutate->persist so concurrent submissions cannot lose updates.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	chain *backup.Chain
	now   func() time.Time
	log   logger.Logger

	// onPersist runs after a successful primary write, outside request error
	// handling. The app layer uses it to trigger remote sync.
	onPersist func(path string)
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the data directory and backup chain and returns a
// store over dataDir/leaderboard.json.
func NewFileStore(dataDir string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path: filepath.Join(dataDir, PrimaryName),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("store")
	}
	if err := os.MkdirAll(dataDir, dirMode); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dataDir, err)
	}
	chain, err := backup.New(filepath.Join(dataDir, backupsDir),
		backup.WithClock(s.now),
		backup.WithLogger(s.log.Named("backup")),
	)
	if err != nil {
		return nil, err
	}
	s.chain = chain
	return s, nil
}

// Path returns the primary file path.
func (s *FileStore) Path() string {
	return s.path
}

// Submit validates and applies one submission, persists the collection, and
// returns the submitter's rank. Persistence failures are logged and counted
// but do not fail the submission; durability is best-effort by design.
func (s *FileStore) Submit(ctx context.Context, userID, name string, score float64, avatar string) (int, error) {
	userID = strings.TrimSpace(userID)
	name = strings.TrimSpace(name)
	avatar = strings.TrimSpace(avatar)
	if userID == "" {
		metrics.RecordSubmitRejected()
		return 0, ErrEmptyUserID
	}
	if score <= 0 {
		metrics.RecordSubmitRejected()
		return 0, ErrNonPositiveScore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(ctx)
	now := model.Timestamp(s.now())

	found := false
	for i := range records {
		if records[i].UserID == userID {
			records[i].Absorb(name, score, avatar, now)
			found = true
			break
		}
	}
	if !found {
		records = append(records, model.Record{
			UserID:    userID,
			Name:      name,
			Score:     score,
			Avatar:    avatar,
			UpdatedAt: now,
		})
	}

	s.persist(ctx, records)
	metrics.RecordSubmitAccepted()

	rank, _ := ranking.RankOf(records, userID)
	return rank, nil
}

// RankedView returns the filtered, sorted, ranked view of the collection.
func (s *FileStore) RankedView(ctx context.Context) ([]ranking.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ranking.View(s.load(ctx)), nil
}

// Count returns the number of stored records.
func (s *FileStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.load(ctx))
}

// load reads the primary file, falling back to backup recovery when the file
// is absent, unreadable, or not a record sequence. A corrupt primary must
// never surface as an empty leaderboard while a usable backup exists.
func (s *FileStore) load(ctx context.Context) []model.Record {
	b, err := atomicfile.Read(s.path)
	if err != nil {
		if !errors.Is(err, atomicfile.ErrNotFound) {
			s.log.Warn(ctx, "primary file unreadable", logger.Error(err))
		}
		return s.recover(ctx)
	}
	records, stats, err := codec.Decode(b)
	if err != nil || stats.Unrecognized {
		s.log.Warn(ctx, "primary file not a snapshot document",
			logger.String("path", s.path),
			logger.Error(err),
		)
		return s.recover(ctx)
	}
	if stats.Dropped > 0 {
		s.log.Warn(ctx, "dropped malformed entries from primary file",
			logger.Int("dropped", stats.Dropped),
		)
	}
	return records
}

func (s *FileStore) recover(ctx context.Context) []model.Record {
	records, err := s.chain.Recover(ctx)
	if err != nil {
		s.log.Error(ctx, "backup recovery failed", logger.Error(err))
		return nil
	}
	if len(records) > 0 {
		metrics.RecordRecovery()
	}
	return records
}

// persist writes the primary file and the backup chain. Failures stop at this
// layer: they are observable through logs and metrics, not through the
// caller's result.
func (s *FileStore) persist(ctx context.Context, records []model.Record) {
	b, err := codec.Encode(records)
	if err != nil {
		s.log.Error(ctx, "encode collection failed", logger.Error(err))
		metrics.RecordPersistFailure()
		return
	}
	if err := atomicfile.Write(s.path, b); err != nil {
		s.log.Error(ctx, "primary write failed", logger.Error(err))
		metrics.RecordPersistFailure()
		return
	}
	if err := s.chain.Snapshot(ctx, records); err != nil {
		s.log.Warn(ctx, "backup snapshot incomplete", logger.Error(err))
		metrics.RecordSnapshotFailure()
	} else {
		metrics.RecordSnapshot(s.now().Unix())
	}
	metrics.UpdateRecordCount(len(records))
	if s.onPersist != nil {
		s.onPersist(s.path)
	}
}
