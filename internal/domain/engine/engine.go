// Package engine combines skill, location, reliability and response-time
// signals into a weighted, urgency-scaled ranking of helper candidates.
package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/Ayoubslh/Sanned/internal/domain/geo"
	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/internal/domain/relevance"
	"github.com/Ayoubslh/Sanned/internal/domain/reliability"
	"github.com/Ayoubslh/Sanned/internal/domain/signal"
	"github.com/Ayoubslh/Sanned/internal/domain/types"
	"github.com/Ayoubslh/Sanned/pkg/logger"
	"github.com/Ayoubslh/Sanned/pkg/metrics"
)

// Scoring modes reported in explanations.
const (
	ModePrimary  = "primary"
	ModeDegraded = "degraded"
)

// Default ranking configuration.
const (
	defaultTopK = 5

	// maxResponseHours bounds the response-time factor; anything slower
	// scores zero.
	maxResponseHours = 24.0

	// Degraded-path weights, used when skill vectorization fails.
	degradedLocationWeight    = 0.7
	degradedReliabilityWeight = 0.3
)

// Weights distributes the composite score across the four factors.
type Weights struct {
	Skill       float64
	Location    float64
	Reliability float64
	Response    float64
}

// DefaultWeights returns the calibrated factor distribution.
func DefaultWeights() Weights {
	return Weights{Skill: 0.4, Location: 0.3, Reliability: 0.2, Response: 0.1}
}

// RankedMatch is one scored candidate, ordered best-first.
type RankedMatch struct {
	CandidateID string
	Score       float64
	Explanation types.Explanation
}

// Engine scores and ranks candidates for a request. It is stateless per
// call except for reliability lookups and the append-only match history,
// both mutex-guarded for concurrent callers.
type Engine struct {
	locations  *geo.Model
	tracker    *reliability.Tracker
	vectorizer *relevance.Vectorizer
	weights    Weights
	topK       int
	log        logger.Logger

	mu      sync.Mutex
	history []model.HistoryEntry
}

// New constructs an Engine with default collaborators; options override.
func New(opts ...Option) *Engine {
	e := &Engine{
		locations:  geo.New(),
		tracker:    reliability.New(),
		vectorizer: relevance.NewVectorizer(),
		weights:    DefaultWeights(),
		topK:       defaultTopK,
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	if e.log == nil {
		e.log = logger.Get().Named("engine")
	}

	return e
}

// Tracker exposes the reliability tracker shared with collaborators.
func (e *Engine) Tracker() *reliability.Tracker {
	return e.tracker
}

// Rank scores every candidate and returns at most topK matches, sorted
// by composite score descending. Equal scores keep their input order
// (stable sort). An empty candidate list yields no result and no
// history entry.
func (e *Engine) Rank(ctx context.Context, req model.Request, candidates []model.Candidate) []RankedMatch {
	if len(candidates) == 0 {
		return nil
	}

	urgency := signal.DetectUrgency(req.Title, req.Description)
	neededSkills := signal.ExtractSkillTags(req.Title, req.Description)
	metrics.RecordUrgencyDetected(string(urgency))

	seekerLocation := req.Location
	if seekerLocation == "" {
		seekerLocation = geo.DefaultLocation
	}

	skillDocs := make([]string, len(candidates))
	for i, c := range candidates {
		skillDocs[i] = c.Skills
	}

	var matches []RankedMatch
	sims, err := e.vectorizer.Similarities(neededSkills, skillDocs)
	if err != nil {
		// Degenerate vocabulary: score without the skill factor rather
		// than failing the whole match.
		e.log.Warn(ctx, "skill vectorization failed, using degraded scoring",
			logger.String("requestID", req.ID),
			logger.Error(err),
		)
		metrics.RecordDegradedMatch()
		metrics.RecordErrorByComponent("engine", "vectorization_failed")
		matches = e.rankDegraded(urgency, seekerLocation, candidates)
	} else {
		matches = e.rankPrimary(urgency, neededSkills, seekerLocation, candidates, sims)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	e.appendHistory(model.HistoryEntry{
		Timestamp:    time.Now(),
		RequestID:    req.ID,
		MatchesFound: len(matches),
		TopScore:     matches[0].Score,
		Urgency:      string(urgency),
	})

	if len(matches) > e.topK {
		matches = matches[:e.topK]
	}
	return matches
}

// rankPrimary applies the full four-factor formula.
func (e *Engine) rankPrimary(urgency signal.Urgency, neededSkills, seekerLocation string, candidates []model.Candidate, sims []float64) []RankedMatch {
	urgencyWeight := urgency.Weight()
	matches := make([]RankedMatch, 0, len(candidates))

	for i, c := range candidates {
		skillSim := sims[i]
		locationSim := e.locations.Similarity(seekerLocation, c.Location)
		rel := e.tracker.Get(c.ID)
		responseFactor := math.Max(0, (maxResponseHours-c.AvgResponseTimeHours)/maxResponseHours)

		composite := (skillSim*e.weights.Skill +
			locationSim*e.weights.Location +
			rel*e.weights.Reliability +
			responseFactor*e.weights.Response) * urgencyWeight

		matches = append(matches, RankedMatch{
			CandidateID: c.ID,
			Score:       composite,
			Explanation: types.Explanation{
				Mode:            ModePrimary,
				UrgencyDetected: string(urgency),
				SkillsNeeded:    neededSkills,
				SkillMatch:      round2(skillSim),
				LocationMatch:   round2(locationSim),
				UserReliability: round2(rel),
				TotalScore:      round3(composite),
			},
		})
	}
	return matches
}

// rankDegraded ignores skill similarity entirely.
func (e *Engine) rankDegraded(urgency signal.Urgency, seekerLocation string, candidates []model.Candidate) []RankedMatch {
	urgencyWeight := urgency.Weight()
	matches := make([]RankedMatch, 0, len(candidates))

	for _, c := range candidates {
		locationSim := e.locations.Similarity(seekerLocation, c.Location)
		rel := e.tracker.Get(c.ID)

		composite := (locationSim*degradedLocationWeight + rel*degradedReliabilityWeight) * urgencyWeight

		matches = append(matches, RankedMatch{
			CandidateID: c.ID,
			Score:       composite,
			Explanation: types.Explanation{
				Mode:            ModeDegraded,
				UrgencyDetected: string(urgency),
				LocationMatch:   round2(locationSim),
				UserReliability: round2(rel),
				TotalScore:      round3(composite),
			},
		})
	}
	return matches
}

// ProcessRequest runs ranking and assembles the presentation result.
// It never lets a failure escape: an empty ranking becomes a structured
// no-match result and any internal panic becomes a processing-error
// result.
func (e *Engine) ProcessRequest(ctx context.Context, req model.Request, candidates []model.Candidate) (resp types.MatchResponse) {
	start := time.Now()
	metrics.RecordMatchRequest()

	defer func() {
		metrics.RecordMatchLatency(float64(time.Since(start).Milliseconds()))
		if r := recover(); r != nil {
			e.log.Error(ctx, "match processing panicked",
				logger.String("requestID", req.ID),
				logger.Any("panic", r),
			)
			metrics.RecordErrorByComponent("engine", "panic")
			resp = types.MatchResponse{
				Success: false,
				Message: fmt.Sprintf("Processing error: %v", r),
				Matches: []types.Match{},
			}
		}
	}()

	ranked := e.Rank(ctx, req, candidates)
	if len(ranked) == 0 {
		metrics.RecordNoMatch()
		return types.MatchResponse{
			Success: false,
			Message: "No suitable helpers found",
			Matches: []types.Match{},
		}
	}

	byID := make(map[string]model.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	formatted := make([]types.Match, 0, len(ranked))
	for _, rm := range ranked {
		c, ok := byID[rm.CandidateID]
		if !ok {
			continue
		}
		rel := e.tracker.Get(c.ID)
		formatted = append(formatted, types.Match{
			UserID:      c.ID,
			UserName:    c.Name,
			MatchScore:  round3(rm.Score),
			Location:    c.Location,
			Skills:      c.Skills,
			Reliability: fmt.Sprintf("%.0f%%", rel*100),
			Explanation: rm.Explanation,
		})
	}

	metrics.RecordMatchesReturned(len(formatted))

	return types.MatchResponse{
		Success:         true,
		RequestID:       req.ID,
		UrgencyDetected: ranked[0].Explanation.UrgencyDetected,
		Matches:         formatted,
		ProcessedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

// LearnFromOutcome feeds a completed-match outcome into the reliability
// tracker. A missing helper id is a silent no-op.
func (e *Engine) LearnFromOutcome(ctx context.Context, outcome model.Outcome) {
	if outcome.HelperID == "" {
		e.log.Debug(ctx, "outcome without helper id, skipping")
		return
	}

	rec := e.tracker.Update(ctx, outcome.HelperID, outcome.Successful, outcome.ResponseTimeHours)
	metrics.RecordOutcomeLearned()

	fields := []logger.Field{
		logger.String("helperID", rec.HelperID),
		logger.Bool("successful", rec.Successful),
		logger.Float64("oldReliability", rec.OldReliability),
		logger.Float64("newReliability", e.tracker.Get(outcome.HelperID)),
	}
	if rec.ResponseTime != nil {
		fields = append(fields, logger.Float64("responseTimeHours", *rec.ResponseTime))
	}
	e.log.Info(ctx, "learned from outcome", fields...)
}

// History returns a copy of the match-history log.
func (e *Engine) History() []model.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.HistoryEntry, len(e.history))
	copy(out, e.history)
	return out
}

func (e *Engine) appendHistory(entry model.HistoryEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append(e.history, entry)
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
