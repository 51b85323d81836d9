// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	service "github.com/Ayoubslh/Sanned/internal/app"
	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the service package.
type Dependencies interface {
	Match(ctx context.Context, req model.Request) types.MatchResponse
	RecordOutcome(ctx context.Context, outcome model.Outcome) (service.OutcomeStatus, error)
	Reliability(ctx context.Context, helperID string) types.ReliabilityReport
	UpsertHelper(ctx context.Context, c model.Candidate) error
	SearchHelpers(ctx context.Context, skill, location string) ([]model.Candidate, error)
	HelperStats(ctx context.Context, helperID string) (types.HelperStatsReport, error)
}

// validate checks request payload constraints declared via struct tags.
var validate = validator.New()

// Server wires HTTP routes for the matching API.
type Server struct {
	matchHandler       *MatchHandler
	outcomeHandler     *OutcomeHandler
	reliabilityHandler *ReliabilityHandler
	helpersHandler     *HelpersHandler
	searchHandler      *SearchHandler
	statsHandler       *StatsHandler
	healthHandler      *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		matchHandler:       NewMatchHandler(deps),
		outcomeHandler:     NewOutcomeHandler(deps),
		reliabilityHandler: NewReliabilityHandler(deps),
		helpersHandler:     NewHelpersHandler(deps),
		searchHandler:      NewSearchHandler(deps),
		statsHandler:       NewStatsHandler(statsProvider),
		healthHandler:      NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/matching/find-matches", MetricsMiddleware(s.matchHandler.HandleFindMatches, "find_matches"))
	mux.HandleFunc("/api/matching/record-outcome", MetricsMiddleware(s.outcomeHandler.HandleRecordOutcome, "record_outcome"))
	mux.HandleFunc("/api/matching/reliability/", MetricsMiddleware(s.reliabilityHandler.HandleGetReliability, "reliability"))
	mux.HandleFunc("/api/matching/helpers", MetricsMiddleware(s.helpersHandler.HandleUpsertHelper, "upsert_helper"))
	mux.HandleFunc("/api/matching/helpers/", MetricsMiddleware(s.helpersHandler.HandleHelperStats, "helper_stats"))
	mux.HandleFunc("/api/matching/search-helpers", MetricsMiddleware(s.searchHandler.HandleSearchHelpers, "search_helpers"))
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
