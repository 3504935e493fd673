// Package model contains domain types shared between layers.
package model

import "time"

// UnknownName is the placeholder display name emitted by clients that never
// collected a real one. Records carrying it with a non-positive score are
// treated as noise by the ranked view.
const UnknownName = "unknown"

// Record is one user's leaderboard entry. The collection holds at most one
// Record per UserID; Score is the best score ever submitted for that user.
type Record struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Avatar    string  `json:"avatar"`
	UpdatedAt string  `json:"updated_at"`
}

// Absorb merges a new submission into the record. The stored score never
// regresses; empty name/avatar values preserve what is already there. The
// update stamp is always refreshed.
func (r *Record) Absorb(name string, score float64, avatar string, now string) {
	if score > r.Score {
		r.Score = score
	}
	if name != "" {
		r.Name = name
	}
	if avatar != "" {
		r.Avatar = avatar
	}
	r.UpdatedAt = now
}

// Placeholder reports whether the record is a noise entry: no positive score
// and no usable display name. Such records are hidden from the ranked view but
// kept on disk so a later submission can revive them.
func (r Record) Placeholder() bool {
	return r.Score <= 0 && (r.Name == "" || r.Name == UnknownName)
}

// Timestamp renders t as the canonical update stamp. RFC3339 in UTC keeps
// lexicographic order equal to chronological order, which the ranking
// tie-break relies on.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
