// Package memory provides an in-memory implementation of ports.FailureStore.
// It is the default store for one-shot runs and tests; nothing survives the
// process.
package memory

import (
	"context"
	"sort"
	"sync"

	"platcheck/pkg/domain"
	"platcheck/pkg/ports"
)

// FailureStore is a thread-safe, map-backed failure corpus.
type FailureStore struct {
	mu       sync.RWMutex
	failures map[string]*domain.Failure
}

// NewFailureStore creates an empty in-memory store.
func NewFailureStore() *FailureStore {
	return &FailureStore{
		failures: make(map[string]*domain.Failure),
	}
}

var _ ports.FailureStore = (*FailureStore)(nil)

// Save persists a copy of the failure record.
func (s *FailureStore) Save(_ context.Context, failure *domain.Failure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *failure
	s.failures[failure.ID] = &clone
	return nil
}

// Load retrieves a failure record by ID.
func (s *FailureStore) Load(_ context.Context, id string) (*domain.Failure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	failure, ok := s.failures[id]
	if !ok {
		return nil, domain.ErrFailureNotFound
	}
	clone := *failure
	return &clone, nil
}

// List returns all failures, most recent first.
func (s *FailureStore) List(_ context.Context) ([]*domain.Failure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Failure, 0, len(s.failures))
	for _, failure := range s.failures {
		clone := *failure
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FoundAt.Equal(out[j].FoundAt) {
			return out[i].FoundAt.After(out[j].FoundAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes a failure record. Deleting a missing ID is a no-op.
func (s *FailureStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.failures, id)
	return nil
}
