package store

import (
	"context"
	"sync"
)

// InMemoryStore keeps tokens in a process-local set.
type InMemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{tokens: make(map[string]struct{})}
}

func (s *InMemoryStore) AddMissing(_ context.Context, tokens []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []string
	for _, t := range tokens {
		if _, ok := s.tokens[t]; ok {
			continue
		}
		s.tokens[t] = struct{}{}
		added = append(added, t)
	}
	return added, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.tokens))
	for t := range s.tokens {
		out = append(out, t)
	}
	return out, nil
}

// Remove checks membership and deletes under one lock.
func (s *InMemoryStore) Remove(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[token]; !ok {
		return false, nil
	}
	delete(s.tokens, token)
	return true, nil
}
