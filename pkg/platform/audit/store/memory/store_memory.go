package memory

import (
	"context"
	"sync"

	audit "gatekeeper/pkg/platform/audit"
)

// DefaultCapacity is how many events the store keeps before dropping the oldest.
const DefaultCapacity = 10_000

// InMemoryStore keeps the most recent audit events in arrival order. It is the
// default sink and backs the admin API's audit listing; full history belongs
// in the SQL mirror.
type InMemoryStore struct {
	mu       sync.RWMutex
	capacity int
	// events is a ring; next is the slot the following Append writes.
	events []audit.Event
	next   int
	full   bool
}

type Option func(*InMemoryStore)

// WithCapacity bounds the number of retained events.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.full && len(s.events) < s.capacity {
		s.events = append(s.events, event)
		if len(s.events) == s.capacity {
			s.full = true
		}
		return nil
	}
	s.events[s.next] = event
	s.next = (s.next + 1) % s.capacity
	return nil
}

// ListBySubject returns the retained events about one identity, oldest first.
func (s *InMemoryStore) ListBySubject(_ context.Context, subject string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.ordered() {
		if e.Subject == subject {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns the most recent limit events, oldest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.ordered()
	start := max(len(all)-limit, 0)
	return all[start:], nil
}

func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// ordered copies the ring oldest first. Callers hold the lock.
func (s *InMemoryStore) ordered() []audit.Event {
	out := make([]audit.Event, 0, len(s.events))
	if !s.full {
		return append(out, s.events...)
	}
	out = append(out, s.events[s.next:]...)
	return append(out, s.events[:s.next]...)
}
