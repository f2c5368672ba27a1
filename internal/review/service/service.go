// Package service implements manual review: escalated applicants wait in a
// queue until the administrator approves or rejects them, one at a time or
// in bulk by submitted token.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"gatekeeper/internal/messaging"
	"gatekeeper/internal/platform/metrics"
	"gatekeeper/internal/review/models"
	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/platform/audit"
	"gatekeeper/pkg/platform/sentinel"
	pstrings "gatekeeper/pkg/platform/strings"
	"gatekeeper/pkg/requestcontext"
)

// Queue is the pending-entry store. Resolve must claim, run and remove as one
// logical step so an entry is never resolved twice.
type Queue interface {
	Enqueue(ctx context.Context, entry models.PendingEntry) error
	Get(ctx context.Context, identity int64) (models.PendingEntry, error)
	List(ctx context.Context) ([]models.PendingEntry, error)
	Snapshot() []models.PendingEntry
	HasToken(token string) bool
	Len() int
	SetReviewerMessage(ctx context.Context, identity int64, submittedAt time.Time, ref messaging.MessageRef, text string) error
	Resolve(ctx context.Context, identity int64, submittedAt time.Time, outcome models.Outcome,
		fn func(context.Context, models.PendingEntry) error) (models.PendingEntry, error)
}

var tracer = otel.Tracer("gatekeeper/review")

type Service struct {
	queue     Queue
	messenger messaging.Messenger
	issuer    messaging.InviteIssuer
	admins    messaging.AdminChecker

	groupID        int64
	reviewerChatID int64

	auditPublisher audit.Emitter
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher audit.Emitter) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithGroupID sets the group that approved applicants are invited to.
func WithGroupID(id int64) Option {
	return func(s *Service) {
		s.groupID = id
	}
}

// WithReviewerChatID sets where new requests are announced. Zero disables
// the announcement.
func WithReviewerChatID(id int64) Option {
	return func(s *Service) {
		s.reviewerChatID = id
	}
}

func New(queue Queue, messenger messaging.Messenger, issuer messaging.InviteIssuer, admins messaging.AdminChecker, opts ...Option) (*Service, error) {
	if queue == nil {
		return nil, errors.New("review queue is required")
	}
	if messenger == nil {
		return nil, errors.New("messenger is required")
	}
	if issuer == nil {
		return nil, errors.New("invite issuer is required")
	}
	if admins == nil {
		return nil, errors.New("admin checker is required")
	}
	svc := &Service{
		queue:     queue,
		messenger: messenger,
		issuer:    issuer,
		admins:    admins,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Escalate queues identity for manual review with the token it submitted and
// announces the request to the reviewer. A previous announcement for the same
// identity loses its buttons. Announcements are best-effort.
func (s *Service) Escalate(ctx context.Context, identity messaging.Identity, token string) (models.PendingEntry, error) {
	entry := models.PendingEntry{
		Identity:       identity,
		SubmittedToken: token,
		SubmittedAt:    requestcontext.Now(ctx),
		Status:         models.StatusPending,
	}
	previous, prevErr := s.queue.Get(ctx, identity.ID)
	if err := s.queue.Enqueue(ctx, entry); err != nil {
		return models.PendingEntry{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to queue review")
	}
	if prevErr == nil && !previous.ReviewerMessage.IsZero() {
		if err := s.messenger.EditMessage(ctx, previous.ReviewerMessage, previous.ReviewerText+suffixSuperseded, nil); err != nil {
			s.deliveryFailed(ctx, previous.ReviewerMessage.ChatID, err)
		}
	}
	s.metrics.IncEscalations()
	s.metrics.SetPendingQueueLength(s.queue.Len())
	audit.Log(ctx, s.logger, s.auditPublisher, audit.EventEscalated,
		"identity", identity.ID,
		"reason", "token_not_found",
	)

	if s.reviewerChatID == 0 {
		return entry, nil
	}
	text := reviewerText(entry)
	ref, err := s.messenger.SendText(ctx, s.reviewerChatID, text, reviewerKeyboard(entry))
	if err != nil {
		s.deliveryFailed(ctx, s.reviewerChatID, err)
		return entry, nil
	}
	if err := s.queue.SetReviewerMessage(ctx, identity.ID, entry.SubmittedAt, ref, text); err != nil {
		// Resolved or replaced before the announcement landed.
		s.logger.DebugContext(ctx, "reviewer message not recorded", "identity", identity.ID, "error", err)
	}
	entry.ReviewerMessage = ref
	entry.ReviewerText = text
	return entry, nil
}

// ListPending returns pending entries in submission order.
func (s *Service) ListPending(ctx context.Context, actor int64) ([]models.PendingEntry, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	entries, err := s.queue.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending entries")
	}
	return entries, nil
}

// ExportTokens returns just the submitted tokens of pending entries, in
// submission order, for pasting back into a bulk approval.
func (s *Service) ExportTokens(ctx context.Context, actor int64) ([]string, error) {
	entries, err := s.ListPending(ctx, actor)
	if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, len(entries))
	for _, e := range entries {
		tokens = append(tokens, e.SubmittedToken)
	}
	return tokens, nil
}

// ResolveOne applies outcome to identity's pending entry. It returns false if
// there is no such entry or another resolution already claimed it. When an
// approval cannot mint a link the entry stays pending and the error carries
// CodeUnavailable so the administrator can retry.
func (s *Service) ResolveOne(ctx context.Context, actor, identity int64, outcome models.Outcome) (ok bool, err error) {
	ctx, span := tracer.Start(ctx, "review.ResolveOne")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("identity", identity),
		attribute.String("outcome", string(outcome)),
	)
	defer func() {
		span.SetAttributes(attribute.Bool("resolved", ok))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if err := s.requireAdmin(ctx, actor); err != nil {
		return false, err
	}
	return s.resolve(ctx, actor, identity, time.Time{}, outcome)
}

// Decide applies a reviewer's button press. It resolves only the entry the
// pressed announcement was made for: if the identity has re-submitted since,
// the press reports false and the newer entry stays pending.
func (s *Service) Decide(ctx context.Context, actor int64, d models.Decision) (ok bool, err error) {
	ctx, span := tracer.Start(ctx, "review.Decide")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("identity", d.Identity),
		attribute.String("outcome", string(d.Outcome)),
	)
	defer func() {
		span.SetAttributes(attribute.Bool("resolved", ok))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if err := s.requireAdmin(ctx, actor); err != nil {
		return false, err
	}
	if d.SubmittedAt.IsZero() {
		return false, dErrors.New(dErrors.CodeValidation, "decision does not name a submission")
	}
	return s.resolve(ctx, actor, d.Identity, d.SubmittedAt, d.Outcome)
}

// ResolveByTokens approves every entry, in a snapshot taken now, whose
// submitted token is in tokens. Each entry is resolved on its own, so one
// token can approve several applicants. A requested token is reported as not
// found when it matched no entry in the snapshot and no entry still in the
// queue after the run carries it.
func (s *Service) ResolveByTokens(ctx context.Context, actor int64, tokens []string) (models.BulkResult, error) {
	ctx, span := tracer.Start(ctx, "review.ResolveByTokens")
	defer span.End()

	if err := s.requireAdmin(ctx, actor); err != nil {
		return models.BulkResult{}, err
	}
	requested := pstrings.DedupeAndTrim(tokens)
	if len(requested) == 0 {
		return models.BulkResult{}, dErrors.New(dErrors.CodeValidation, "at least one token is required")
	}

	wanted := make(map[string]bool, len(requested))
	for _, t := range requested {
		wanted[t] = true
	}

	result := models.BulkResult{NotFound: []string{}}
	matched := make(map[string]bool)
	for _, entry := range s.queue.Snapshot() {
		if !wanted[entry.SubmittedToken] {
			continue
		}
		matched[entry.SubmittedToken] = true
		ok, err := s.resolve(ctx, actor, entry.Identity.ID, entry.SubmittedAt, models.OutcomeApprove)
		if err != nil {
			s.logger.ErrorContext(ctx, "bulk approval failed", "identity", entry.Identity.ID, "error", err)
			continue
		}
		if ok {
			result.Approved++
		}
	}

	for _, t := range requested {
		if !matched[t] && !s.queue.HasToken(t) {
			result.NotFound = append(result.NotFound, t)
		}
	}
	span.SetAttributes(
		attribute.Int("approved", result.Approved),
		attribute.Int("not_found", len(result.NotFound)),
	)
	return result, nil
}

func (s *Service) resolve(ctx context.Context, actor, identity int64, submittedAt time.Time, outcome models.Outcome) (bool, error) {
	action := s.reject
	if outcome == models.OutcomeApprove {
		action = s.approve
	}

	resolved, err := s.queue.Resolve(ctx, identity, submittedAt, outcome, action)
	switch {
	case errors.Is(err, sentinel.ErrNotFound), errors.Is(err, sentinel.ErrAlreadyUsed):
		return false, nil
	case err != nil:
		return false, err
	}

	s.metrics.IncResolutions(string(outcome))
	s.metrics.SetPendingQueueLength(s.queue.Len())
	event := audit.EventReviewRejected
	if outcome == models.OutcomeApprove {
		event = audit.EventReviewApproved
	}
	audit.Log(ctx, s.logger, s.auditPublisher, event,
		"identity", identity,
		"actor_id", actor,
		"decision", string(resolved.Status),
	)
	s.markReviewed(ctx, resolved, outcome)
	return true, nil
}

func (s *Service) approve(ctx context.Context, entry models.PendingEntry) error {
	link, err := s.issuer.CreateSingleUseLink(ctx, s.groupID)
	if err != nil {
		s.metrics.IncIssuanceFailures()
		audit.Log(ctx, s.logger, s.auditPublisher, audit.EventIssuanceFailed,
			"identity", entry.Identity.ID,
			"reason", err.Error(),
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create invite link")
	}
	s.notify(ctx, entry.Identity.ID, approvedText(link))
	return nil
}

func (s *Service) reject(ctx context.Context, entry models.PendingEntry) error {
	s.notify(ctx, entry.Identity.ID, textRejected)
	return nil
}

// markReviewed appends the decision to the reviewer's announcement and drops
// its buttons.
func (s *Service) markReviewed(ctx context.Context, entry models.PendingEntry, outcome models.Outcome) {
	if entry.ReviewerMessage.IsZero() {
		return
	}
	suffix := suffixRejected
	if outcome == models.OutcomeApprove {
		suffix = suffixApproved
	}
	if err := s.messenger.EditMessage(ctx, entry.ReviewerMessage, entry.ReviewerText+suffix, nil); err != nil {
		s.deliveryFailed(ctx, entry.ReviewerMessage.ChatID, err)
	}
}

func (s *Service) notify(ctx context.Context, chatID int64, text string) {
	if _, err := s.messenger.SendText(ctx, chatID, text, nil); err != nil {
		s.deliveryFailed(ctx, chatID, err)
	}
}

func (s *Service) deliveryFailed(ctx context.Context, chatID int64, err error) {
	s.metrics.IncDeliveryFailures()
	s.logger.WarnContext(ctx, "notification delivery failed", "chat_id", chatID, "error", err)
	audit.Log(ctx, nil, s.auditPublisher, audit.EventDeliveryFailed,
		"identity", chatID,
		"reason", err.Error(),
	)
}

func (s *Service) requireAdmin(ctx context.Context, actor int64) error {
	if s.admins.IsAdministrator(actor) {
		return nil
	}
	audit.Log(ctx, s.logger, s.auditPublisher, audit.EventPermissionDeny,
		"actor_id", actor,
		"reason", "review",
	)
	return dErrors.New(dErrors.CodeForbidden, "only administrators can use this command")
}
