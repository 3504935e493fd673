package ranking_test

import (
	"testing"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestView(t *testing.T) {
	Convey("Given a collection of valid records", t, func() {
		records := []model.Record{
			{UserID: "u1", Name: "Alice", Score: 50, UpdatedAt: "2026-01-01T00:00:00Z"},
			{UserID: "u2", Name: "Bob", Score: 80, UpdatedAt: "2026-01-02T00:00:00Z"},
			{UserID: "u3", Name: "Cara", Score: 65, UpdatedAt: "2026-01-03T00:00:00Z"},
		}

		Convey("When building the view", func() {
			entries := ranking.View(records)

			Convey("Then ranks are 1..N in descending score order", func() {
				So(entries, ShouldHaveLength, 3)
				So(entries[0].UserID, ShouldEqual, "u2")
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].UserID, ShouldEqual, "u3")
				So(entries[1].Rank, ShouldEqual, 2)
				So(entries[2].UserID, ShouldEqual, "u1")
				So(entries[2].Rank, ShouldEqual, 3)
			})
		})
	})

	Convey("Given records with equal scores", t, func() {
		records := []model.Record{
			{UserID: "late", Name: "L", Score: 70, UpdatedAt: "2026-01-05T00:00:00Z"},
			{UserID: "early", Name: "E", Score: 70, UpdatedAt: "2026-01-01T00:00:00Z"},
		}

		Convey("Then the earlier update wins the tie", func() {
			entries := ranking.View(records)
			So(entries[0].UserID, ShouldEqual, "early")
			So(entries[1].UserID, ShouldEqual, "late")
		})
	})

	Convey("Given noise entries mixed into the collection", t, func() {
		records := []model.Record{
			{UserID: "", Name: "ghost", Score: 99},
			{UserID: "u1", Name: "", Score: 0},
			{UserID: "u2", Name: model.UnknownName, Score: 0},
			{UserID: "u3", Name: "Real", Score: 10, UpdatedAt: "2026-01-01T00:00:00Z"},
			{UserID: "u4", Name: "Named", Score: 0, UpdatedAt: "2026-01-01T00:00:00Z"},
		}

		Convey("Then only usable records are ranked", func() {
			entries := ranking.View(records)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].UserID, ShouldEqual, "u3")
			// Named zero-score records are participants, not placeholders.
			So(entries[1].UserID, ShouldEqual, "u4")
		})
	})
}

func TestRankOf(t *testing.T) {
	Convey("Given a ranked collection", t, func() {
		records := []model.Record{
			{UserID: "u1", Name: "Alice", Score: 50, UpdatedAt: "2026-01-01T00:00:00Z"},
			{UserID: "u2", Name: "Bob", Score: 80, UpdatedAt: "2026-01-02T00:00:00Z"},
		}

		Convey("Then RankOf finds present users", func() {
			rank, ok := ranking.RankOf(records, "u1")
			So(ok, ShouldBeTrue)
			So(rank, ShouldEqual, 2)
		})

		Convey("And misses absent users", func() {
			_, ok := ranking.RankOf(records, "nobody")
			So(ok, ShouldBeFalse)
		})
	})
}
