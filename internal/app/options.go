package service

import (
	"github.com/Ayoubslh/Sanned/internal/adapters/directory"
	"github.com/Ayoubslh/Sanned/internal/domain/engine"
	"github.com/Ayoubslh/Sanned/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets a pre-populated helper directory.
func WithStore(store directory.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTopK caps the number of matches returned per request.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithMaxDistance sets the zero-similarity distance in degrees.
func WithMaxDistance(d float64) Option {
	return func(s *Service) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithMaxFeatures caps the TF-IDF vocabulary per matching call.
func WithMaxFeatures(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxFeatures = n
		}
	}
}

// WithWeights overrides the composite score factor distribution.
func WithWeights(w engine.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithDefaultReliability seeds helpers the tracker has never scored.
func WithDefaultReliability(score float64) Option {
	return func(s *Service) {
		if score > 0 {
			s.defaultReliability = score
		}
	}
}

// WithWorkerCount sets the number of learning workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the outcome queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the outcome idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}
