// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Ayoubslh/Sanned/internal/adapters/directory"
)

// helperRequest mirrors the OpenAPI schema for PUT /api/matching/helpers.
type helperRequest struct {
	ID                   string  `json:"id" validate:"required"`
	Name                 string  `json:"name" validate:"required"`
	Location             string  `json:"location"`
	Skills               string  `json:"skills"`
	Role                 string  `json:"role" validate:"required,oneof=sponsor seeker seeker_doer both"`
	InServiceArea        bool    `json:"in_service_area"`
	AvgResponseTimeHours float64 `json:"avg_response_time_hours" validate:"gte=0"`
}

// HelpersHandler handles helper upserts and per-helper stats.
type HelpersHandler struct {
	deps Dependencies
}

// NewHelpersHandler creates a new helpers handler.
func NewHelpersHandler(deps Dependencies) *HelpersHandler {
	return &HelpersHandler{deps: deps}
}

// HandleUpsertHelper handles PUT /api/matching/helpers requests. The
// validated body is handed to the directory adapter, which normalizes
// skills and fills omitted fields before the record reaches the store.
func (h *HelpersHandler) HandleUpsertHelper(w http.ResponseWriter, r *http.Request) {
	const op = "api.upsert_helper"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var req helperRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	candidate := directory.MapSource{Record: record}.Adapt(r.Context())

	if err := h.deps.UpsertHelper(r.Context(), candidate); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "stored"})
}

// HandleHelperStats handles GET /api/matching/helpers/{helper_id}/stats.
func (h *HelpersHandler) HandleHelperStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.helper_stats"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/matching/helpers/")
	helperID, ok := strings.CutSuffix(rest, "/stats")
	if !ok || helperID == "" || strings.Contains(helperID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	stats, err := h.deps.HelperStats(r.Context(), helperID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
