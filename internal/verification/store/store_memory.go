// Package store keeps the live verification session per identity.
package store

import (
	"context"
	"sync"

	"gatekeeper/internal/verification/models"
)

// InMemorySessionStore holds only sessions that are waiting for a reply.
// Writes are last-write-wins.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]models.State
}

func New() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[int64]models.State)}
}

// Get returns Idle for identities without a live session.
func (s *InMemorySessionStore) Get(_ context.Context, identity int64) (models.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.sessions[identity]; ok {
		return st, nil
	}
	return models.Idle{}, nil
}

// Put stores an active state; any other state clears the session.
func (s *InMemorySessionStore) Put(_ context.Context, identity int64, st models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !models.Active(st) {
		delete(s.sessions, identity)
		return nil
	}
	s.sessions[identity] = st
	return nil
}

func (s *InMemorySessionStore) Delete(_ context.Context, identity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, identity)
	return nil
}

func (s *InMemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
