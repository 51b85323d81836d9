// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/internal/domain/types"
)

// matchRequest mirrors the OpenAPI schema for POST /api/matching/find-matches.
type matchRequest struct {
	RequestID   string `json:"request_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	RequesterID string `json:"requester_id"`
}

// MatchHandler handles matching requests.
type MatchHandler struct {
	deps Dependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps Dependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

// HandleFindMatches handles POST /api/matching/find-matches requests.
// Validation failures keep the match-response shape so clients can
// treat every body uniformly.
func (h *MatchHandler) HandleFindMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, types.MatchResponse{
			Success: false,
			Message: "Invalid request body",
			Matches: []types.Match{},
		})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeJSON(w, http.StatusBadRequest, types.MatchResponse{
			Success: false,
			Message: "Request description is required",
			Matches: []types.Match{},
		})
		return
	}

	resp := h.deps.Match(r.Context(), model.Request{
		ID:          req.RequestID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		RequesterID: req.RequesterID,
	})

	status := http.StatusOK
	if !resp.Success && strings.HasPrefix(resp.Message, "Processing error") {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}
