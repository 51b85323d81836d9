// Package directory holds the helper directory: the store the matcher
// draws candidates from, plus adapters that normalize heterogeneous
// helper representations into the canonical candidate shape.
package directory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/pkg/metrics"
)

// Roles allowed to be matched as helpers.
var eligibleRoles = map[string]struct{}{
	"sponsor":     {},
	"seeker_doer": {},
	"both":        {},
}

// Store provides read/write access to helper records.
type Store interface {
	// Upsert inserts or replaces a helper record.
	// Returns ErrEmptyID when the candidate has no id.
	Upsert(ctx context.Context, c model.Candidate) error

	// Get returns one helper by id.
	// Returns ErrNotFound for unknown helpers.
	Get(ctx context.Context, id string) (model.Candidate, error)

	// ListEligible returns all matchable helpers: eligible role, inside
	// the service area, and not the excluded requester.
	ListEligible(ctx context.Context, excludeID string) ([]model.Candidate, error)

	// SearchBySkill returns eligible helpers whose skills mention the
	// given term, optionally restricted to one location.
	SearchBySkill(ctx context.Context, skill, location string) ([]model.Candidate, error)

	// Count returns the number of helpers tracked.
	Count(ctx context.Context) int
}

// memStore is the in-process Store used in place of an external
// helper database.
type memStore struct {
	mu      sync.RWMutex
	helpers map[string]model.Candidate
}

// NewInMemoryStore creates an empty in-memory helper store.
func NewInMemoryStore(opts ...Option) Store {
	s := &memStore{
		helpers: make(map[string]model.Candidate),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	metrics.UpdateTotalHelpers(len(s.helpers))
	return s
}

func (s *memStore) Upsert(ctx context.Context, c model.Candidate) error {
	if c.ID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.helpers[c.ID] = c
	metrics.UpdateTotalHelpers(len(s.helpers))
	return nil
}

func (s *memStore) Get(ctx context.Context, id string) (model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.helpers[id]
	if !ok {
		return model.Candidate{}, ErrNotFound
	}
	return c, nil
}

func (s *memStore) ListEligible(ctx context.Context, excludeID string) ([]model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Candidate, 0, len(s.helpers))
	for _, c := range s.helpers {
		if !isEligible(c) || c.ID == excludeID {
			continue
		}
		out = append(out, c)
	}

	// Map iteration order is random; rankings must be reproducible.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) SearchBySkill(ctx context.Context, skill, location string) ([]model.Candidate, error) {
	if skill == "" {
		return nil, ErrEmptySkill
	}
	needle := strings.ToLower(skill)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Candidate, 0)
	for _, c := range s.helpers {
		if !isEligible(c) {
			continue
		}
		if !strings.Contains(strings.ToLower(c.Skills), needle) {
			continue
		}
		if location != "" && !strings.EqualFold(c.Location, location) {
			continue
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.helpers)
}

func isEligible(c model.Candidate) bool {
	_, ok := eligibleRoles[c.Role]
	return ok && c.InServiceArea
}
