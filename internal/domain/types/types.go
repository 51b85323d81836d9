// Package types contains common types used across the application
package types

// Match represents one ranked helper in a match response.
type Match struct {
	UserID      string      `json:"user_id"`
	UserName    string      `json:"user_name"`
	MatchScore  float64     `json:"match_score"`
	Location    string      `json:"location"`
	Skills      string      `json:"skills"`
	Reliability string      `json:"reliability"` // percentage string, e.g. "70%"
	Explanation Explanation `json:"explanation"`
}

// Explanation carries the machine-readable scoring breakdown for one match.
// Mode is "primary" or "degraded"; degraded results omit the skill factor.
type Explanation struct {
	Mode            string  `json:"mode"`
	UrgencyDetected string  `json:"urgency_detected"`
	SkillsNeeded    string  `json:"skills_needed,omitempty"`
	SkillMatch      float64 `json:"skill_match,omitempty"`
	LocationMatch   float64 `json:"location_match"`
	UserReliability float64 `json:"user_reliability"`
	TotalScore      float64 `json:"total_score"`
}

// ReliabilityReport presents one helper's learned reliability.
type ReliabilityReport struct {
	HelperID   string  `json:"helper_id"`
	Score      float64 `json:"reliability_score"`
	Percentage string  `json:"reliability_percentage"`
	Level      string  `json:"level"`
}

// HelperStatsReport presents one helper's profile plus learned stats.
type HelperStatsReport struct {
	HelperID             string            `json:"helper_id"`
	Name                 string            `json:"name"`
	Location             string            `json:"location"`
	Skills               string            `json:"skills"`
	Role                 string            `json:"role"`
	InServiceArea        bool              `json:"in_service_area"`
	AvgResponseTimeHours float64           `json:"avg_response_time_hours"`
	Reliability          ReliabilityReport `json:"reliability"`
}

// MatchResponse is the final result object of one matching call.
type MatchResponse struct {
	Success         bool    `json:"success"`
	Message         string  `json:"message,omitempty"`
	RequestID       string  `json:"request_id,omitempty"`
	UrgencyDetected string  `json:"urgency_detected,omitempty"`
	Matches         []Match `json:"matches"`
	ProcessedAt     string  `json:"processed_at,omitempty"`
}
