// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// ReliabilityHandler handles reliability lookups.
type ReliabilityHandler struct {
	deps Dependencies
}

// NewReliabilityHandler creates a new reliability handler.
func NewReliabilityHandler(deps Dependencies) *ReliabilityHandler {
	return &ReliabilityHandler{deps: deps}
}

// HandleGetReliability handles GET /api/matching/reliability/{helper_id}.
// Unseen helpers report the default score rather than 404: the tracker
// has an answer for everyone.
func (h *ReliabilityHandler) HandleGetReliability(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_reliability"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	helperID := strings.TrimPrefix(r.URL.Path, "/api/matching/reliability/")
	if helperID == "" || strings.Contains(helperID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	writeJSON(w, http.StatusOK, h.deps.Reliability(r.Context(), helperID))
}
