// Package simulate seeds a running matching service with a realistic
// helper roster, fires help requests at it, and reports outcomes, so
// the whole loop can be exercised end to end.
package simulate

import "time"

// Config holds simulation parameters.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumHelpers  int           // Helpers to seed into the directory
	NumRequests int           // Help requests to fire
	NumOutcomes int           // Outcome reports to send afterwards
	Workers     int           // Concurrent HTTP workers
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for simulation output
	Verbose     bool          // Enable verbose logging
}

// Helper is the wire shape for PUT /api/matching/helpers.
type Helper struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Location             string  `json:"location"`
	Skills               string  `json:"skills"`
	Role                 string  `json:"role"`
	InServiceArea        bool    `json:"in_service_area"`
	AvgResponseTimeHours float64 `json:"avg_response_time_hours"`
}

// MatchRequest is the wire shape for POST /api/matching/find-matches.
type MatchRequest struct {
	RequestID   string `json:"request_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	RequesterID string `json:"requester_id"`
}

// Outcome is the wire shape for POST /api/matching/record-outcome.
type Outcome struct {
	OutcomeID         string   `json:"outcome_id"`
	HelperID          string   `json:"helper_id"`
	Successful        bool     `json:"successful"`
	ResponseTimeHours *float64 `json:"response_time_hours,omitempty"`
}

// matchResult is the subset of the match response the runner inspects.
type matchResult struct {
	Success         bool   `json:"success"`
	UrgencyDetected string `json:"urgency_detected"`
	Matches         []struct {
		UserID string `json:"user_id"`
	} `json:"matches"`
}

// Stats holds simulation statistics.
type Stats struct {
	HelpersSeeded     int
	RequestsSent      int
	RequestsMatched   int
	RequestsUnmatched int
	RequestsFailed    int
	OutcomesSent      int
	OutcomesAccepted  int
	OutcomesDuplicate int
	OutcomesFailed    int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
