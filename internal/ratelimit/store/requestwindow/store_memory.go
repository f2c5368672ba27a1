package requestwindow

import (
	"context"
	"sync"
	"time"

	"gatekeeper/internal/ratelimit/models"
)

// InMemoryStore keeps one fixed-capacity ring of request instants per key.
// Entries are never evicted.
type InMemoryStore struct {
	mu      sync.Mutex
	windows map[string]*ring
}

// ring holds the newest capacity instants; start indexes the oldest.
type ring struct {
	slots []time.Time
	start int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{windows: make(map[string]*ring)}
}

// Append pushes at into the ring for key, overwriting the oldest slot once the
// ring is full. The ttl is ignored; memory windows live for the process.
func (s *InMemoryStore) Append(_ context.Context, key string, at time.Time, capacity int, _ time.Duration) (models.RequestWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.windows[key]
	if r == nil {
		r = &ring{slots: make([]time.Time, 0, capacity)}
		s.windows[key] = r
	}
	r.push(at, capacity)

	return models.RequestWindow{
		Identity:   key,
		Timestamps: r.ordered(),
		Capacity:   capacity,
	}, nil
}

// Len returns the number of identities with a window.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func (r *ring) push(at time.Time, capacity int) {
	if len(r.slots) < capacity {
		r.slots = append(r.slots, at)
		return
	}
	r.slots[r.start] = at
	r.start = (r.start + 1) % len(r.slots)
}

func (r *ring) ordered() []time.Time {
	out := make([]time.Time, 0, len(r.slots))
	out = append(out, r.slots[r.start:]...)
	return append(out, r.slots[:r.start]...)
}
