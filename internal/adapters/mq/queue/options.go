package queue

// Option configures the in-memory queue.
type Option func(*InMemoryQueue)

// WithCapacity sets the maximum number of buffered outcomes.
func WithCapacity(n int) Option {
	return func(q *InMemoryQueue) {
		if n > 0 {
			q.capacity = n
		}
	}
}
