package attempts

import (
	"context"
	"sync"

	"gatekeeper/internal/ratelimit/models"
)

// InMemoryStore holds one AttemptRecord per key. Records are never deleted.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[string]*models.AttemptRecord
}

func New() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]*models.AttemptRecord)}
}

// Update applies fn under the store lock and returns a copy of the stored record.
func (s *InMemoryStore) Update(_ context.Context, key string, fn func(*models.AttemptRecord) *models.AttemptRecord) (*models.AttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current *models.AttemptRecord
	if rec, ok := s.records[key]; ok {
		cp := *rec
		current = &cp
	}
	next := fn(current)
	if next == nil {
		return current, nil
	}
	next.Identity = key
	stored := *next
	s.records[key] = &stored
	out := stored
	return &out, nil
}

// Len is the number of identities with a record; it feeds a size gauge.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
