// Package service provides the core matching service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ayoubslh/Sanned/internal/adapters/directory"
	outcomequeue "github.com/Ayoubslh/Sanned/internal/adapters/mq/queue"
	workerpool "github.com/Ayoubslh/Sanned/internal/adapters/mq/worker"
	"github.com/Ayoubslh/Sanned/internal/domain/dedupe"
	"github.com/Ayoubslh/Sanned/internal/domain/engine"
	"github.com/Ayoubslh/Sanned/internal/domain/geo"
	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/internal/domain/relevance"
	"github.com/Ayoubslh/Sanned/internal/domain/reliability"
	"github.com/Ayoubslh/Sanned/internal/domain/types"
	"github.com/Ayoubslh/Sanned/pkg/logger"
	"github.com/Ayoubslh/Sanned/pkg/metrics"
)

// OutcomeStatus tells the boundary how an outcome report was received.
type OutcomeStatus int

const (
	// OutcomeAccepted means the outcome was queued for learning.
	OutcomeAccepted OutcomeStatus = iota
	// OutcomeDuplicate means the outcome id was already processed.
	OutcomeDuplicate
	// OutcomeRejected means the queue refused it (backpressure).
	OutcomeRejected
)

// Service wires the matching engine, helper directory, reliability
// tracker and the asynchronous outcome learning loop.
type Service struct {
	mu sync.RWMutex

	// Core components
	store        directory.Store
	tracker      *reliability.Tracker
	matcher      *engine.Engine
	deduper      dedupe.Deduper
	outcomeQueue outcomequeue.Queue
	workerPool   *workerpool.Pool

	// Configuration
	topK               int
	maxDistance        float64
	maxFeatures        int
	weights            engine.Weights
	defaultReliability float64
	workerCount        int
	queueSize          int
	dedupeSize         int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		topK:               5,
		maxDistance:        0.5,
		maxFeatures:        100,
		weights:            engine.DefaultWeights(),
		defaultReliability: 0.7,
		workerCount:        4,
		queueSize:          10_000,
		dedupeSize:         50_000,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting matching service...")

	if s.store == nil {
		s.store = directory.NewInMemoryStore()
	}
	s.tracker = reliability.New(
		reliability.WithDefaultScore(s.defaultReliability),
	)
	s.matcher = engine.New(
		engine.WithLocations(geo.New(geo.WithMaxDistance(s.maxDistance))),
		engine.WithTracker(s.tracker),
		engine.WithVectorizer(relevance.NewVectorizer(relevance.WithMaxFeatures(s.maxFeatures))),
		engine.WithWeights(s.weights),
		engine.WithTopK(s.topK),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.outcomeQueue = outcomequeue.NewInMemoryQueue(
		outcomequeue.WithCapacity(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.outcomeQueue, s.matcher)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("topK", s.topK),
	)

	return nil
}

// Stop gracefully shuts down the service. Workers finish the outcome
// they are processing and exit; reports still queued are dropped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping matching service...")

	if q, ok := s.outcomeQueue.(*outcomequeue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "matching service stopped")
}

// Match runs one matching call: eligible helpers are drawn from the
// directory (never including the requester) and ranked by the engine.
func (s *Service) Match(ctx context.Context, req model.Request) types.MatchResponse {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	queryStart := time.Now()
	candidates, err := s.store.ListEligible(ctx, req.RequesterID)
	metrics.RecordDirectoryQueryLatency(float64(time.Since(queryStart).Milliseconds()))
	if err != nil {
		s.logger.Error(ctx, "listing eligible helpers failed",
			logger.String("requestID", req.ID),
			logger.Error(err),
		)
		return types.MatchResponse{
			Success: false,
			Message: fmt.Sprintf("Processing error: %v", err),
			Matches: []types.Match{},
		}
	}

	return s.matcher.ProcessRequest(ctx, req, candidates)
}

// RecordOutcome validates, deduplicates and enqueues one outcome
// report for asynchronous learning.
func (s *Service) RecordOutcome(ctx context.Context, outcome model.Outcome) (OutcomeStatus, error) {
	if outcome.HelperID == "" {
		return OutcomeRejected, ErrMissingHelperID
	}
	if outcome.OutcomeID == "" {
		outcome.OutcomeID = uuid.NewString()
	}
	if outcome.ReportedAt.IsZero() {
		outcome.ReportedAt = time.Now().UTC()
	}

	if s.deduper.SeenAndRecord(ctx, outcome.OutcomeID) {
		metrics.RecordOutcomeDuplicate()
		s.logger.Debug(ctx, "duplicate outcome, skipping",
			logger.String("outcomeID", outcome.OutcomeID),
		)
		return OutcomeDuplicate, nil
	}

	if !s.outcomeQueue.Enqueue(ctx, outcome) {
		// Recorded but never processed; allow the client to retry.
		s.deduper.Unrecord(ctx, outcome.OutcomeID)
		return OutcomeRejected, ErrQueueFull
	}
	return OutcomeAccepted, nil
}

// Reliability reports a helper's learned reliability.
func (s *Service) Reliability(ctx context.Context, helperID string) types.ReliabilityReport {
	score := s.tracker.Get(helperID)
	return types.ReliabilityReport{
		HelperID:   helperID,
		Score:      score,
		Percentage: fmt.Sprintf("%.0f%%", score*100),
		Level:      reliability.Level(score),
	}
}

// UpsertHelper stores a helper record in the directory. Records are
// canonicalized first so omitted fields never reach the scorers as
// zero values.
func (s *Service) UpsertHelper(ctx context.Context, c model.Candidate) error {
	start := time.Now()
	defer func() {
		metrics.RecordDirectoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()
	return s.store.Upsert(ctx, directory.Canonical(c))
}

// SearchHelpers finds eligible helpers by skill, optionally narrowed
// to one location.
func (s *Service) SearchHelpers(ctx context.Context, skill, location string) ([]model.Candidate, error) {
	return s.store.SearchBySkill(ctx, skill, location)
}

// HelperStats combines a helper's directory record with learned stats.
func (s *Service) HelperStats(ctx context.Context, helperID string) (types.HelperStatsReport, error) {
	c, err := s.store.Get(ctx, helperID)
	if err != nil {
		return types.HelperStatsReport{}, err
	}

	return types.HelperStatsReport{
		HelperID:             c.ID,
		Name:                 c.Name,
		Location:             c.Location,
		Skills:               c.Skills,
		Role:                 c.Role,
		InServiceArea:        c.InServiceArea,
		AvgResponseTimeHours: c.AvgResponseTimeHours,
		Reliability:          s.Reliability(ctx, helperID),
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"topK":        s.topK,
	}

	if s.started {
		queueLen := s.outcomeQueue.Len(ctx)
		totalHelpers := s.store.Count(ctx)
		history := s.matcher.History()

		stats["queueLength"] = queueLen
		stats["totalHelpers"] = totalHelpers
		stats["scoredHelpers"] = s.tracker.Count()
		stats["matchesProcessed"] = len(history)
		stats["dedupeEntries"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalHelpers(totalHelpers)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
