package directory

import "github.com/Ayoubslh/Sanned/internal/domain/model"

// Option configures the in-memory store.
type Option func(*memStore)

// WithSeedCandidates preloads helper records, e.g. for tests or demos.
func WithSeedCandidates(cs []model.Candidate) Option {
	return func(s *memStore) {
		for _, c := range cs {
			if c.ID == "" {
				continue
			}
			s.helpers[c.ID] = c
		}
	}
}
