// Package model contains domain models passed between layers.
package model

import "time"

// Request represents a single help request submitted for matching.
// It is an immutable input to one matching call; the core never persists it.
type Request struct {
	ID          string // caller-supplied or generated identifier
	Title       string
	Description string
	Location    string // named location, e.g. "gaza_city"
	RequesterID string // excluded from the candidate set
}

// Candidate is the canonical helper shape the engine scores.
// Produced by the directory adapter from heterogeneous sources and
// treated as read-only by the core.
type Candidate struct {
	ID                   string
	Name                 string
	Location             string
	Skills               string // space-joined skill tags, e.g. "medical doctor"
	Role                 string
	InServiceArea        bool
	AvgResponseTimeHours float64
	Reliability          float64 // derived from the tracker, not stored on the helper
}

// Outcome reports how a completed engagement went. It feeds the
// reliability learning loop.
type Outcome struct {
	OutcomeID         string   // idempotency key; derived when absent
	HelperID          string   // subject of the reliability update
	Successful        bool
	ResponseTimeHours *float64 // nil when not reported
	ReportedAt        time.Time
}

// HistoryEntry is one append-only diagnostic record of a matching call.
type HistoryEntry struct {
	Timestamp    time.Time
	RequestID    string
	MatchesFound int
	TopScore     float64
	Urgency      string
}

// LearningRecord is the diagnostic trace emitted when an outcome is
// absorbed by the reliability tracker.
type LearningRecord struct {
	Timestamp      time.Time
	HelperID       string
	Successful     bool
	ResponseTime   *float64
	OldReliability float64
}
