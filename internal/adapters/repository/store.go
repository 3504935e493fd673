// Package repository defines the leaderboard store interface and errors.
package repository

import (
	"context"

	"github.com/okian/podium/internal/domain/ranking"
)

// Store provides read/write access to the leaderboard state.
type Store interface {
	// Submit applies a score submission and returns the submitter's 1-based
	// rank in the fresh ranked view. Validation failures return an error
	// wrapping ErrInvalidSubmission and leave the collection untouched.
	Submit(ctx context.Context, userID, name string, score float64, avatar string) (int, error)

	// RankedView returns all visible records ordered by rank.
	RankedView(ctx context.Context) ([]ranking.Entry, error)

	// Count returns the number of records held on disk, including records the
	// ranked view filters out.
	Count(ctx context.Context) int
}
