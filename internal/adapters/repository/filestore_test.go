package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// tickingClock returns a clock advancing one second per call, so update
// stamps are distinct and deterministic.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newStore(t *testing.T) (*repository.FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := repository.NewFileStore(dir,
		repository.WithClock(tickingClock(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC))),
	)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	return store, dir
}

func TestSubmit(t *testing.T) {
	Convey("Given a fresh store", t, func() {
		ctx := context.Background()
		store, dir := newStore(t)

		Convey("When two users submit scores 50 and 80", func() {
			_, err := store.Submit(ctx, "u1", "Alice", 50, "")
			So(err, ShouldBeNil)
			rank2, err := store.Submit(ctx, "u2", "Bob", 80, "")
			So(err, ShouldBeNil)

			Convey("Then the higher score takes rank 1", func() {
				So(rank2, ShouldEqual, 1)
				entries, err := store.RankedView(ctx)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].UserID, ShouldEqual, "u2")
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].UserID, ShouldEqual, "u1")
				So(entries[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When the same user resubmits a lower score with no name", func() {
			_, err := store.Submit(ctx, "u1", "Alice", 10, "")
			So(err, ShouldBeNil)
			_, err = store.Submit(ctx, "u1", "", 5, "")
			So(err, ShouldBeNil)

			Convey("Then the stored best and the display name survive", func() {
				entries, err := store.RankedView(ctx)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].Name, ShouldEqual, "Alice")
				So(entries[0].Score, ShouldEqual, 10)
			})
		})

		Convey("When the stored score only ever grows across submissions", func() {
			for _, score := range []float64{10, 40, 25, 40, 12} {
				_, err := store.Submit(ctx, "u1", "Alice", score, "")
				So(err, ShouldBeNil)
			}

			Convey("Then the record holds the maximum submitted score", func() {
				entries, err := store.RankedView(ctx)
				So(err, ShouldBeNil)
				So(entries[0].Score, ShouldEqual, 40)
			})
		})

		Convey("When avatar updates follow the same keep-if-empty rule", func() {
			_, err := store.Submit(ctx, "u1", "Alice", 10, "http://img/a.png")
			So(err, ShouldBeNil)
			_, err = store.Submit(ctx, "u1", "Alice", 20, "")
			So(err, ShouldBeNil)

			entries, err := store.RankedView(ctx)
			So(err, ShouldBeNil)
			So(entries[0].Avatar, ShouldEqual, "http://img/a.png")
		})

		Convey("When the submission is invalid", func() {
			Convey("Then a zero score is rejected without any write", func() {
				_, err := store.Submit(ctx, "u1", "Alice", 0, "")
				So(errors.Is(err, repository.ErrInvalidSubmission), ShouldBeTrue)
				So(errors.Is(err, repository.ErrNonPositiveScore), ShouldBeTrue)

				_, statErr := os.Stat(store.Path())
				So(os.IsNotExist(statErr), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 0)
			})

			Convey("And an empty user id is rejected the same way", func() {
				_, err := store.Submit(ctx, "   ", "Alice", 10, "")
				So(errors.Is(err, repository.ErrEmptyUserID), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("When a submission succeeds", func() {
			_, err := store.Submit(ctx, "u1", "Alice", 10, "")
			So(err, ShouldBeNil)

			Convey("Then primary file and backup chain are written", func() {
				_, err := os.Stat(store.Path())
				So(err, ShouldBeNil)
				_, err = os.Stat(filepath.Join(dir, "backups", "latest.json"))
				So(err, ShouldBeNil)
				_, err = os.Stat(filepath.Join(dir, "backups", "manifest.json"))
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestLoadRecovery(t *testing.T) {
	Convey("Given a store with one persisted submission", t, func() {
		ctx := context.Background()
		store, _ := newStore(t)
		_, err := store.Submit(ctx, "u1", "Alice", 10, "")
		So(err, ShouldBeNil)

		Convey("When the primary file is deleted out of band", func() {
			So(os.Remove(store.Path()), ShouldBeNil)

			Convey("Then the next read restores the record from latest.json", func() {
				entries, err := store.RankedView(ctx)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].UserID, ShouldEqual, "u1")
				So(entries[0].Score, ShouldEqual, 10)
			})
		})

		Convey("When the primary file is corrupted", func() {
			So(os.WriteFile(store.Path(), []byte("{{{ not json"), 0o644), ShouldBeNil)

			Convey("Then reads degrade to the backup, not to an empty board", func() {
				entries, err := store.RankedView(ctx)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].UserID, ShouldEqual, "u1")
			})
		})

		Convey("When the primary file holds a foreign JSON value", func() {
			So(os.WriteFile(store.Path(), []byte(`"not a collection"`), 0o644), ShouldBeNil)

			entries, err := store.RankedView(ctx)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 1)
		})

		Convey("When a later submission follows a corrupted primary", func() {
			So(os.WriteFile(store.Path(), []byte("junk"), 0o644), ShouldBeNil)
			_, err := store.Submit(ctx, "u2", "Bob", 20, "")
			So(err, ShouldBeNil)

			Convey("Then the recovered record and the new one are both kept", func() {
				So(store.Count(ctx), ShouldEqual, 2)
			})
		})
	})
}

func TestPersistHook(t *testing.T) {
	Convey("Given a store with a persist hook", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		var paths []string
		store, err := repository.NewFileStore(dir,
			repository.WithPersistHook(func(path string) { paths = append(paths, path) }),
		)
		So(err, ShouldBeNil)

		Convey("When submissions succeed and fail", func() {
			_, err := store.Submit(ctx, "u1", "Alice", 10, "")
			So(err, ShouldBeNil)
			_, err = store.Submit(ctx, "", "Alice", 10, "")
			So(err, ShouldNotBeNil)

			Convey("Then the hook fires once per successful persist", func() {
				So(paths, ShouldHaveLength, 1)
				So(paths[0], ShouldEqual, store.Path())
			})
		})
	})
}
