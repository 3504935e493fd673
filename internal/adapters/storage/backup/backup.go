// Package backup maintains the redundant snapshot chain behind the primary
// file: a rolling "latest" copy, immutable timestamped snapshots, and an
// append-only manifest enumerating them.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fishy/errbatch"

	"github.com/okian/podium/internal/adapters/storage/atomicfile"
	"github.com/okian/podium/internal/adapters/storage/codec"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// Filenames and formats of the backup directory layout.
const (
	LatestName     = "latest.json"
	ManifestName   = "manifest.json"
	snapshotPrefix = "leaderboard-"
	stampLayout    = "20060102-150405"
	dirMode        = 0o755
)

// recognizedPrefixes are the filename patterns the recovery scan accepts.
// Snapshots within the same second share a name and overwrite each other;
// the manifest still records one row per write.
var recognizedPrefixes = []string{snapshotPrefix, "backup-", "latest"}

// ManifestEntry correlates a timestamped snapshot with its record count.
type ManifestEntry struct {
	Timestamp string `json:"timestamp"`
	File      string `json:"file"`
	Count     int    `json:"count"`
}

// Chain owns one backup directory.
type Chain struct {
	dir string
	now func() time.Time
	log logger.Logger
}

// New creates the backup directory if needed and returns a chain over it.
func New(dir string, opts ...Option) (*Chain, error) {
	c := &Chain{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get().Named("backup")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("create backup dir %s: %w", dir, err)
	}
	return c, nil
}

// Dir returns the backup directory path.
func (c *Chain) Dir() string {
	return c.dir
}

// Snapshot writes the three backup artifacts for the given collection. Each
// write is independent and best-effort; the returned error batches whatever
// failed so the caller can log it without aborting the others.
func (c *Chain) Snapshot(ctx context.Context, records []model.Record) error {
	b, err := codec.Encode(records)
	if err != nil {
		return err
	}

	stamp := c.now().UTC().Format(stampLayout)
	name := snapshotPrefix + stamp + ".json"

	batch := new(errbatch.ErrBatch)
	batch.Add(atomicfile.Write(filepath.Join(c.dir, LatestName), b))
	batch.Add(atomicfile.Write(filepath.Join(c.dir, name), b))
	batch.Add(c.appendManifest(ManifestEntry{
		Timestamp: stamp,
		File:      name,
		Count:     len(records),
	}))
	if err := batch.Compile(); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	c.log.Debug(ctx, "snapshot written",
		logger.String("file", name),
		logger.Int("count", len(records)),
	)
	return nil
}

// appendManifest rewrites the manifest with one more row. A manifest that no
// longer parses is restarted rather than propagated, so one corrupt metadata
// file cannot stall future snapshots.
func (c *Chain) appendManifest(entry ManifestEntry) error {
	entries, err := c.Manifest()
	if err != nil && !errors.Is(err, atomicfile.ErrNotFound) {
		entries = nil
	}
	entries = append(entries, entry)
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return atomicfile.Write(filepath.Join(c.dir, ManifestName), append(b, '\n'))
}

// Manifest returns the recorded snapshot history in write order.
func (c *Chain) Manifest() ([]ManifestEntry, error) {
	b, err := atomicfile.Read(filepath.Join(c.dir, ManifestName))
	if err != nil {
		return nil, err
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("%w: manifest: %v", ErrRecover, err)
	}
	return entries, nil
}

// Recover selects the best available snapshot. The "latest" file wins when it
// decodes to a non-empty collection; otherwise every recognized snapshot file
// is scanned and the one with the most records is returned, equal counts going
// to the later filename. An empty collection and nil error mean nothing was
// recoverable.
func (c *Chain) Recover(ctx context.Context) ([]model.Record, error) {
	if records := c.decodeFile(LatestName); len(records) > 0 {
		c.log.Info(ctx, "recovered from latest backup", logger.Int("count", len(records)))
		return records, nil
	}

	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: scan %s: %v", ErrRecover, c.dir, err)
	}

	var best []model.Record
	var bestName string
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || name == ManifestName || !strings.HasSuffix(name, ".json") {
			continue
		}
		if !recognized(name) {
			continue
		}
		records := c.decodeFile(name)
		if len(records) > 0 && len(records) >= len(best) {
			best = records
			bestName = name
		}
	}
	if len(best) > 0 {
		c.log.Info(ctx, "recovered from snapshot scan",
			logger.String("file", bestName),
			logger.Int("count", len(best)),
		)
	}
	return best, nil
}

// decodeFile reads and decodes one backup file, treating every failure as
// "nothing usable here".
func (c *Chain) decodeFile(name string) []model.Record {
	b, err := atomicfile.Read(filepath.Join(c.dir, name))
	if err != nil {
		return nil
	}
	records, _, err := codec.Decode(b)
	if err != nil {
		return nil
	}
	return records
}

func recognized(name string) bool {
	for _, prefix := range recognizedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
