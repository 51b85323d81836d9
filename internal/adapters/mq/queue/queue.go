// Package queue buffers outcome reports between the HTTP boundary and
// the learning workers.
package queue

import (
	"context"
	"sync"

	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/pkg/metrics"
)

// defaultCapacity bounds the number of outcomes waiting to be learned.
const defaultCapacity = 10000

// Outcome is the payload flowing through the queue.
type Outcome = model.Outcome

// Queue provides non-blocking enqueue and channel-based dequeue
// semantics for outcome reports.
type Queue interface {
	// Enqueue adds an outcome. Returns false when the queue is full or
	// closed; the caller decides whether to surface backpressure.
	Enqueue(ctx context.Context, o Outcome) bool

	// Dequeue returns a channel receiving outcomes as they arrive. The
	// channel closes when the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Outcome

	// Len returns the number of queued outcomes.
	Len(ctx context.Context) int

	// Close stops accepting new outcomes. Already-queued outcomes are
	// still delivered.
	Close() error

	// IsClosed reports whether Close was called.
	IsClosed() bool
}

// InMemoryQueue implements Queue on a buffered channel.
type InMemoryQueue struct {
	outcomes chan Outcome
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a bounded in-memory outcome queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}

	// Apply all options
	for _, opt := range opts {
		opt(q)
	}

	q.outcomes = make(chan Outcome, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0)

	return q
}

func (q *InMemoryQueue) Enqueue(ctx context.Context, o Outcome) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	select {
	case q.outcomes <- o:
		metrics.RecordQueueEnqueue()
		q.observeSize(len(q.outcomes))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome)
	go func() {
		defer close(out)
		for o := range q.outcomes {
			select {
			case out <- o:
				metrics.RecordQueueDequeue()
				q.observeSize(len(q.outcomes))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.outcomes)
	q.observeSize(size)
	return size
}

func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.outcomes)
	q.closed = true
	return nil
}

func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) observeSize(size int) {
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
