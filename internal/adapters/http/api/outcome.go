// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/Ayoubslh/Sanned/internal/app"
	"github.com/Ayoubslh/Sanned/internal/domain/model"
)

// outcomeRequest mirrors the OpenAPI schema for POST /api/matching/record-outcome.
type outcomeRequest struct {
	OutcomeID         string   `json:"outcome_id"`
	HelperID          string   `json:"helper_id" validate:"required"`
	Successful        bool     `json:"successful"`
	ResponseTimeHours *float64 `json:"response_time_hours" validate:"omitempty,gte=0"`
}

// OutcomeHandler handles outcome reports.
type OutcomeHandler struct {
	deps Dependencies
}

// NewOutcomeHandler creates a new outcome handler.
func NewOutcomeHandler(deps Dependencies) *OutcomeHandler {
	return &OutcomeHandler{deps: deps}
}

// HandleRecordOutcome handles POST /api/matching/record-outcome requests.
func (h *OutcomeHandler) HandleRecordOutcome(w http.ResponseWriter, r *http.Request) {
	const op = "api.record_outcome"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req outcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	status, err := h.deps.RecordOutcome(r.Context(), model.Outcome{
		OutcomeID:         req.OutcomeID,
		HelperID:          req.HelperID,
		Successful:        req.Successful,
		ResponseTimeHours: req.ResponseTimeHours,
	})

	switch {
	case errors.Is(err, service.ErrMissingHelperID):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case err != nil && status == service.OutcomeRejected:
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
	case status == service.OutcomeDuplicate:
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
	default:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
	}
}
