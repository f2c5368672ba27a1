// Package ports defines the storage contracts shared by the throttle services.
package ports

import (
	"context"
	"time"

	"gatekeeper/internal/ratelimit/models"
)

// RequestWindowStore keeps the last capacity request instants per key.
type RequestWindowStore interface {
	// Append records at and returns the retained window, oldest first. The
	// append and the read happen as one step.
	Append(ctx context.Context, key string, at time.Time, capacity int, ttl time.Duration) (models.RequestWindow, error)
}

// AttemptStore keeps failure counters per key.
type AttemptStore interface {
	// Update runs fn against the record for key while holding the key's lock.
	// A missing record is passed as nil. fn returns the record to store, or
	// nil to leave the store untouched.
	Update(ctx context.Context, key string, fn func(*models.AttemptRecord) *models.AttemptRecord) (*models.AttemptRecord, error)
}
