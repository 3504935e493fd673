// Package ranking computes the read-time ranked view of the collection.
package ranking

import (
	"sort"

	"github.com/okian/podium/internal/domain/model"
)

// Entry is a record paired with its 1-based rank.
type Entry struct {
	Rank int `json:"rank"`
	model.Record
}

// View filters, sorts and ranks the collection. Records without a user id are
// dropped, as are placeholder records (non-positive score and no usable name).
// Order is score descending; ties go to the earlier UpdatedAt, so the first
// user to reach a score keeps the better rank. Filtering never mutates the
// stored collection.
func View(records []model.Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		if r.UserID == "" || r.Placeholder() {
			continue
		}
		entries = append(entries, Entry{Record: r})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UpdatedAt < entries[j].UpdatedAt
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// RankOf returns the rank userID holds in the view of records. The second
// return is false when the user is absent or filtered out.
func RankOf(records []model.Record, userID string) (int, bool) {
	for _, e := range View(records) {
		if e.UserID == userID {
			return e.Rank, true
		}
	}
	return 0, false
}
