package models

import (
	"time"
)

// RequestWindow is the ring of the most recent begin-verification instants for
// one identity, oldest first. It never holds more than Capacity entries.
type RequestWindow struct {
	Identity   string
	Timestamps []time.Time
	Capacity   int
}

// Full reports whether the ring holds Capacity instants.
func (w RequestWindow) Full() bool {
	return len(w.Timestamps) >= w.Capacity
}

// Oldest returns the first retained instant.
func (w RequestWindow) Oldest() time.Time {
	if len(w.Timestamps) == 0 {
		return time.Time{}
	}
	return w.Timestamps[0]
}

// AttemptRecord counts wrong captcha replies inside the current lockout window.
type AttemptRecord struct {
	Identity     string
	FailureCount int
	WindowStart  time.Time
}

// Expired reports whether the window has run out. The boundary itself is
// still inside the window.
func (r *AttemptRecord) Expired(now time.Time, lockout time.Duration) bool {
	return now.Sub(r.WindowStart) > lockout
}

// Reset zeroes the failure count and starts a new window at now.
func (r *AttemptRecord) Reset(now time.Time) {
	r.FailureCount = 0
	r.WindowStart = now
}

func (r *AttemptRecord) IsLocked(maxFailures int) bool {
	return r.FailureCount >= maxFailures
}

// RetryAfter is the remaining lockout rounded down to whole minutes.
func (r *AttemptRecord) RetryAfter(now time.Time, lockout time.Duration) time.Duration {
	remaining := lockout - now.Sub(r.WindowStart)
	if remaining < 0 {
		return 0
	}
	return remaining.Truncate(time.Minute)
}

// AttemptDecision is the outcome of an attempt check.
type AttemptDecision struct {
	Allowed    bool
	RetryAfter time.Duration
}
