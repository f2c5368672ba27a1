package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route and retain them differently.
type EventCategory string

const (
	// CategorySecurity covers abuse signals: captcha failures, lockouts, throttling.
	CategorySecurity EventCategory = "security"

	// CategoryAccess covers decisions that grant or deny group access.
	// These are the events an operator reviews after the fact.
	CategoryAccess EventCategory = "access"

	// CategoryOperations covers routine activity and delivery problems.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string
	Category  EventCategory
	Timestamp time.Time
	// Subject is the chat identity the event is about.
	Subject string
	// ActorID is set when someone other than the subject acted (an administrator).
	ActorID   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
}

// Store persists audit events. Implementations must be safe for concurrent use.
type Store interface {
	Append(ctx context.Context, event Event) error
}

type AuditEvent string

const (
	// Verification events
	EventChallengeIssued   AuditEvent = "challenge_issued"
	EventCaptchaFailed     AuditEvent = "captcha_failed"
	EventVerificationLock  AuditEvent = "verification_locked"
	EventRateLimitExceeded AuditEvent = "rate_limit_exceeded"
	EventVerificationAbort AuditEvent = "verification_cancelled"

	// Token events
	EventTokensAdded   AuditEvent = "tokens_added"
	EventTokenRedeemed AuditEvent = "token_redeemed"

	// Review events
	EventEscalated      AuditEvent = "verification_escalated"
	EventReviewApproved AuditEvent = "review_approved"
	EventReviewRejected AuditEvent = "review_rejected"

	// Delivery events
	EventIssuanceFailed AuditEvent = "invite_issuance_failed"
	EventDeliveryFailed AuditEvent = "notification_delivery_failed"
	EventPermissionDeny AuditEvent = "admin_permission_denied"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventCaptchaFailed:     CategorySecurity,
	EventVerificationLock:  CategorySecurity,
	EventRateLimitExceeded: CategorySecurity,
	EventPermissionDeny:    CategorySecurity,

	EventTokenRedeemed:  CategoryAccess,
	EventEscalated:      CategoryAccess,
	EventReviewApproved: CategoryAccess,
	EventReviewRejected: CategoryAccess,
	EventTokensAdded:    CategoryAccess,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
