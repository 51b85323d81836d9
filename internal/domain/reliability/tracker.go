// Package reliability maintains per-helper reliability scores, updated
// online from reported outcomes.
package reliability

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/pkg/metrics"
)

// Score bounds and update deltas.
const (
	minScore     = 0.1
	maxScore     = 1.0
	defaultScore = 0.7

	successDelta = 0.05
	failureDelta = 0.10

	// Response-time adjustments. Applied after the outcome delta,
	// re-clamped at each step; a failure with a fast response still
	// nets the fast bonus.
	fastResponseHours = 2.0
	slowResponseHours = 24.0
	responseTimeDelta = 0.02
	unscoredDefault   = 0.5 // assigned to helpers that fail adapter conversion
)

// Tracker owns the reliability map. All access goes through its mutex so
// concurrent outcome updates never lose a read-modify-write.
type Tracker struct {
	mu     sync.Mutex
	scores map[string]float64

	defaultScore float64
}

// New creates an empty tracker.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		scores:       make(map[string]float64),
		defaultScore: defaultScore,
	}

	// Apply all options
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Get returns the helper's score, lazily initializing unseen helpers to
// the default. The default is stored, so repeated reads are stable.
func (t *Tracker) Get(helperID string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.getLocked(helperID)
}

func (t *Tracker) getLocked(helperID string) float64 {
	if s, ok := t.scores[helperID]; ok {
		return s
	}
	t.scores[helperID] = t.defaultScore
	return t.defaultScore
}

// Update applies an outcome to the helper's current score and returns a
// learning record describing the transition. Success adds +0.05, failure
// subtracts 0.10; a reported response time under 2h adds +0.02 and over
// 24h subtracts 0.02. The score is clamped to [0.1, 1.0] after each step.
func (t *Tracker) Update(ctx context.Context, helperID string, successful bool, responseTimeHours *float64) model.LearningRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	old := t.getLocked(helperID)

	score := old
	if successful {
		score = clamp(score + successDelta)
	} else {
		score = clamp(score - failureDelta)
	}

	if responseTimeHours != nil {
		switch {
		case *responseTimeHours < fastResponseHours:
			score = clamp(score + responseTimeDelta)
		case *responseTimeHours > slowResponseHours:
			score = clamp(score - responseTimeDelta)
		}
	}

	t.scores[helperID] = score
	metrics.RecordReliabilityUpdate()

	return model.LearningRecord{
		Timestamp:      time.Now(),
		HelperID:       helperID,
		Successful:     successful,
		ResponseTime:   responseTimeHours,
		OldReliability: old,
	}
}

// Count returns the number of helpers with a tracked score.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.scores)
}

// Snapshot returns a copy of the score map for diagnostics.
func (t *Tracker) Snapshot() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]float64, len(t.scores))
	for id, s := range t.scores {
		out[id] = s
	}
	return out
}

// UnscoredDefault is the reliability assigned to helpers whose source
// record could not be converted.
func UnscoredDefault() float64 { return unscoredDefault }

// Level maps a score to a human-readable reliability band.
func Level(score float64) string {
	switch {
	case score >= 0.9:
		return "Excellent"
	case score >= 0.8:
		return "Very Good"
	case score >= 0.7:
		return "Good"
	case score >= 0.6:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func clamp(s float64) float64 {
	return math.Max(minScore, math.Min(maxScore, s))
}
