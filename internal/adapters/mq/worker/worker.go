// Package worker drains the outcome queue and feeds each report into
// the reliability learning loop.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/pkg/logger"
	"github.com/Ayoubslh/Sanned/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount  = 4
	poolShutdownTimeout = 30 * time.Second
)

// Learner absorbs one outcome into the reliability model.
type Learner interface {
	LearnFromOutcome(ctx context.Context, outcome model.Outcome)
}

// Queue defines how workers receive outcomes.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Outcome
}

// Worker processes outcomes until stopped.
type Worker struct {
	queue   Queue
	learner Learner
	name    string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a single learning worker.
func NewWorker(q Queue, learner Learner, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		learner:  learner,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run drains the queue until the context is cancelled, Shutdown is
// called, or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	outcomes := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case outcome, ok := <-outcomes:
			if !ok {
				return
			}
			w.process(ctx, outcome)
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight outcome.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("worker shutdown: %w", ctx.Err())
	}
}

// process applies one outcome. Learning must never take the worker
// down, so panics are contained per outcome.
func (w *Worker) process(ctx context.Context, outcome model.Outcome) {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
		if r := recover(); r != nil {
			metrics.RecordWorkerError()
			metrics.RecordErrorByComponent("worker", "panic")
			w.logger.Error(ctx, "learning panicked",
				logger.String("outcomeID", outcome.OutcomeID),
				logger.Any("panic", r),
			)
		}
	}()

	w.learner.LearnFromOutcome(ctx, outcome)
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates workerCount workers; non-positive counts fall back
// to the default.
func NewPool(workerCount int, q Queue, learner Learner) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewWorker(q, learner, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(workerCount)

	return p
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown signals every worker to stop and waits for them to finish
// their in-flight outcome, bounded by the context deadline. Outcomes
// still queued are not processed.
func (p *Pool) Shutdown(ctx context.Context) error {
	for _, w := range p.workers {
		close(w.shutdown)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("workerID", i))
		}
	}

	metrics.UpdateWorkerActiveCount(0)
	return nil
}
