// Package models describes a verification session as a tagged union of states.
package models

import "time"

type Kind string

const (
	KindIdle            Kind = "idle"
	KindAwaitingCaptcha Kind = "awaiting_captcha"
	KindAwaitingToken   Kind = "awaiting_token"
	KindGranted         Kind = "granted"
	KindEscalated       Kind = "escalated"
	KindCancelled       Kind = "cancelled"
	KindLocked          Kind = "locked"
)

// State is one of Idle, AwaitingCaptcha, AwaitingToken, Granted, Escalated,
// Cancelled or Locked.
type State interface {
	Kind() Kind
	// Terminal states end the session; nothing is kept for the identity.
	Terminal() bool
	state()
}

// Challenge is the code the identity must type back.
type Challenge struct {
	Identity int64
	Code     string
	IssuedAt time.Time
}

// Idle means no live session. A failed captcha also lands here so the user
// can start over.
type Idle struct{}

type AwaitingCaptcha struct {
	Challenge Challenge
}

type AwaitingToken struct{}

// Granted means the token was redeemed. LinkDelivered is false when the
// invite link could not be minted; the token stays consumed.
type Granted struct {
	Link          string
	LinkDelivered bool
}

// Escalated means the submitted token went to manual review.
type Escalated struct {
	Token string
}

type Cancelled struct{}

type LockReason string

const (
	LockRateLimited     LockReason = "rate_limited"
	LockTooManyFailures LockReason = "too_many_failures"
)

type Locked struct {
	Reason     LockReason
	RetryAfter time.Duration
}

func (Idle) Kind() Kind            { return KindIdle }
func (AwaitingCaptcha) Kind() Kind { return KindAwaitingCaptcha }
func (AwaitingToken) Kind() Kind   { return KindAwaitingToken }
func (Granted) Kind() Kind         { return KindGranted }
func (Escalated) Kind() Kind       { return KindEscalated }
func (Cancelled) Kind() Kind       { return KindCancelled }
func (Locked) Kind() Kind          { return KindLocked }

func (Idle) Terminal() bool            { return false }
func (AwaitingCaptcha) Terminal() bool { return false }
func (AwaitingToken) Terminal() bool   { return false }
func (Granted) Terminal() bool         { return true }
func (Escalated) Terminal() bool       { return true }
func (Cancelled) Terminal() bool       { return true }
func (Locked) Terminal() bool          { return true }

func (Idle) state()            {}
func (AwaitingCaptcha) state() {}
func (AwaitingToken) state()   {}
func (Granted) state()         {}
func (Escalated) state()       {}
func (Cancelled) state()       {}
func (Locked) state()          {}

// Active reports whether s is waiting for a reply.
func Active(s State) bool {
	switch s.(type) {
	case AwaitingCaptcha, AwaitingToken:
		return true
	}
	return false
}
