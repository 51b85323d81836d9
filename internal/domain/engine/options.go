package engine

import (
	"github.com/Ayoubslh/Sanned/internal/domain/geo"
	"github.com/Ayoubslh/Sanned/internal/domain/relevance"
	"github.com/Ayoubslh/Sanned/internal/domain/reliability"
	"github.com/Ayoubslh/Sanned/pkg/logger"
)

// Option configures the Engine.
type Option func(*Engine)

// WithLocations sets the location model used for proximity scoring.
func WithLocations(m *geo.Model) Option {
	return func(e *Engine) {
		if m != nil {
			e.locations = m
		}
	}
}

// WithTracker sets the reliability tracker. Share one tracker between
// the engine and the outcome pipeline so learning feeds back into
// scoring.
func WithTracker(t *reliability.Tracker) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracker = t
		}
	}
}

// WithVectorizer sets the skill-relevance vectorizer.
func WithVectorizer(v *relevance.Vectorizer) Option {
	return func(e *Engine) {
		if v != nil {
			e.vectorizer = v
		}
	}
}

// WithWeights overrides the factor distribution.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithTopK caps the number of returned matches.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}
