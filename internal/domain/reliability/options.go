// Package reliability maintains per-helper reliability scores.
package reliability

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithDefaultScore sets the score assigned to unseen helpers.
func WithDefaultScore(score float64) Option {
	return func(t *Tracker) {
		if score >= minScore && score <= maxScore {
			t.defaultScore = score
		}
	}
}

// WithSeedScores preloads scores, e.g. from a collaborator snapshot.
func WithSeedScores(scores map[string]float64) Option {
	return func(t *Tracker) {
		for id, s := range scores {
			t.scores[id] = clamp(s)
		}
	}
}
