// Package api declares HTTP contracts and route registration helpers. It is a
// thin dispatch layer; all leaderboard semantics live behind Dependencies.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/podium/internal/domain/ranking"
)

// Dependencies required by HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the app service.
type Dependencies interface {
	// Submit applies one score submission and returns the resulting rank.
	Submit(ctx context.Context, userID, name string, score float64, avatar string) (int, error)

	// RankedView returns all visible records ordered by rank.
	RankedView(ctx context.Context) ([]Entry, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = ranking.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	leaderboardHandler *LeaderboardHandler
	submitHandler      *SubmitHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		leaderboardHandler: NewLeaderboardHandler(deps),
		submitHandler:      NewSubmitHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/api/leaderboard/submit", MetricsMiddleware(s.submitHandler.HandlePostSubmit, "submit"))
}

// submitRequest mirrors the submission payload.
type submitRequest struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Avatar string  `json:"avatar"`
}

// submitResponse is the submit acknowledgement. Rank is present only on
// acceptance, Error only on rejection.
type submitResponse struct {
	OK    bool   `json:"ok"`
	Rank  *int   `json:"rank,omitempty"`
	Error string `json:"error,omitempty"`
}

// leaderboardResponse wraps the ranked view.
type leaderboardResponse struct {
	Items []Entry `json:"items"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
