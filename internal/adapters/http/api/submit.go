// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/podium/internal/adapters/repository"
)

// SubmitHandler handles score submissions.
type SubmitHandler struct {
	deps Dependencies
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(deps Dependencies) *SubmitHandler {
	return &SubmitHandler{deps: deps}
}

// HandlePostSubmit handles POST /api/leaderboard/submit requests.
func (h *SubmitHandler) HandlePostSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, submitResponse{OK: false, Error: "invalid payload"})
		return
	}

	rank, err := h.deps.Submit(r.Context(), req.UserID, req.Name, req.Score, req.Avatar)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSubmission) {
			writeJSON(w, http.StatusBadRequest, submitResponse{OK: false, Error: "invalid payload"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, submitResponse{OK: false, Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{OK: true, Rank: &rank})
}
