package models

import (
	"fmt"
	"time"

	"gatekeeper/internal/messaging"
	dErrors "gatekeeper/pkg/domain-errors"
)

// Status of a pending entry. Resolved entries leave the queue, so Approved
// and Rejected are only seen on the copy returned from a resolution.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Outcome is an administrator's decision on one entry.
type Outcome string

const (
	OutcomeApprove Outcome = "approve"
	OutcomeReject  Outcome = "reject"
)

// ParseOutcome accepts "approve" or "reject".
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeApprove, OutcomeReject:
		return o, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown outcome %q", s))
}

// Status maps the decision onto the entry's terminal status.
func (o Outcome) Status() Status {
	if o == OutcomeApprove {
		return StatusApproved
	}
	return StatusRejected
}

// Decision is a reviewer's button press. SubmittedAt pins it to the entry the
// announcement was made for, so a press on an old announcement never resolves
// a newer submission from the same identity.
type Decision struct {
	Outcome     Outcome
	Identity    int64
	SubmittedAt time.Time
}

// PendingEntry is one applicant waiting for a human decision.
type PendingEntry struct {
	Identity       messaging.Identity
	SubmittedToken string
	SubmittedAt    time.Time
	Status         Status
	// ReviewerMessage is the administrator's notification for this entry, if
	// it was delivered. ReviewerText is the text it was sent with.
	ReviewerMessage messaging.MessageRef
	ReviewerText    string
}

func (e PendingEntry) IsPending() bool {
	return e.Status == StatusPending
}

// BulkResult reports a resolve-by-tokens run.
type BulkResult struct {
	Approved int      `json:"approved"`
	NotFound []string `json:"not_found"`
}
