// Package store keeps the manual-review queue in submission order.
package store

import (
	"context"
	"sync"
	"time"

	"gatekeeper/internal/messaging"
	"gatekeeper/internal/review/models"
	"gatekeeper/pkg/platform/sentinel"
)

// slot wraps an entry with the in-flight resolution flag.
type slot struct {
	entry     models.PendingEntry
	resolving bool
}

// InMemoryQueue holds at most one entry per identity.
type InMemoryQueue struct {
	mu      sync.RWMutex
	entries []*slot
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{}
}

// Enqueue adds entry. An existing entry for the same identity is replaced and
// the new one goes to the back.
func (q *InMemoryQueue) Enqueue(_ context.Context, entry models.PendingEntry) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i := q.indexOf(entry.Identity.ID); i >= 0 {
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
	}
	entry.Status = models.StatusPending
	q.entries = append(q.entries, &slot{entry: entry})
	return nil
}

// List returns pending entries in submission order.
func (q *InMemoryQueue) List(_ context.Context) ([]models.PendingEntry, error) {
	return q.Snapshot(), nil
}

// Snapshot copies the queue as it is now. Later enqueues do not affect it.
func (q *InMemoryQueue) Snapshot() []models.PendingEntry {
	q.mu.RLock()
	defer q.mu.RUnlock()

	out := make([]models.PendingEntry, 0, len(q.entries))
	for _, s := range q.entries {
		out = append(out, s.entry)
	}
	return out
}

func (q *InMemoryQueue) Get(_ context.Context, identity int64) (models.PendingEntry, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if i := q.indexOf(identity); i >= 0 {
		return q.entries[i].entry, nil
	}
	return models.PendingEntry{}, sentinel.ErrNotFound
}

// HasToken reports whether any entry still in the queue was submitted with token.
func (q *InMemoryQueue) HasToken(token string) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	for _, s := range q.entries {
		if s.entry.SubmittedToken == token {
			return true
		}
	}
	return false
}

func (q *InMemoryQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.entries)
}

// SetReviewerMessage records where the administrator was notified about the
// entry submitted at submittedAt.
func (q *InMemoryQueue) SetReviewerMessage(_ context.Context, identity int64, submittedAt time.Time, ref messaging.MessageRef, text string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(identity)
	if i < 0 || !q.entries[i].entry.SubmittedAt.Equal(submittedAt) {
		return sentinel.ErrNotFound
	}
	q.entries[i].entry.ReviewerMessage = ref
	q.entries[i].entry.ReviewerText = text
	return nil
}

// Resolve claims the pending entry for identity and runs fn on it outside the
// lock. If fn succeeds the entry is removed; otherwise it stays pending. A
// zero submittedAt matches whatever entry the identity has; a non-zero one
// must match exactly, so a re-submission is never resolved by a decision made
// on the old entry. Only one resolution per entry can be in flight: a second
// caller sees ErrAlreadyUsed.
//
// It returns the resolved entry with its terminal status, or ErrNotFound.
func (q *InMemoryQueue) Resolve(
	ctx context.Context,
	identity int64,
	submittedAt time.Time,
	outcome models.Outcome,
	fn func(context.Context, models.PendingEntry) error,
) (models.PendingEntry, error) {
	claimed, entry, err := q.claim(identity, submittedAt)
	if err != nil {
		return models.PendingEntry{}, err
	}

	fnErr := fn(ctx, entry)

	q.mu.Lock()
	defer q.mu.Unlock()
	if fnErr != nil {
		claimed.resolving = false
		return entry, fnErr
	}
	for i, s := range q.entries {
		if s == claimed {
			entry = s.entry
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			break
		}
	}
	entry.Status = outcome.Status()
	return entry, nil
}

func (q *InMemoryQueue) claim(identity int64, submittedAt time.Time) (*slot, models.PendingEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(identity)
	if i < 0 {
		return nil, models.PendingEntry{}, sentinel.ErrNotFound
	}
	s := q.entries[i]
	if !submittedAt.IsZero() && !s.entry.SubmittedAt.Equal(submittedAt) {
		return nil, models.PendingEntry{}, sentinel.ErrNotFound
	}
	if s.resolving || !s.entry.IsPending() {
		return nil, models.PendingEntry{}, sentinel.ErrAlreadyUsed
	}
	s.resolving = true
	return s, s.entry, nil
}

// indexOf must be called with q.mu held.
func (q *InMemoryQueue) indexOf(identity int64) int {
	for i, s := range q.entries {
		if s.entry.Identity.ID == identity {
			return i
		}
	}
	return -1
}
