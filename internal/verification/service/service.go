// Package service runs the per-identity verification conversation:
// captcha, then invitation token, then either a join link or manual review.
//
// Every entry point returns the state the session ended up in. Only
// AwaitingCaptcha and AwaitingToken are remembered between events.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gatekeeper/internal/captcha"
	"gatekeeper/internal/messaging"
	"gatekeeper/internal/platform/metrics"
	rlmodels "gatekeeper/internal/ratelimit/models"
	reviewmodels "gatekeeper/internal/review/models"
	"gatekeeper/internal/verification/models"
	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/platform/audit"
	"gatekeeper/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks SessionStore,RequestLimiter,AttemptLimiter,TokenRedeemer,ReviewQueue,ChallengeIssuer

var tracer = otel.Tracer("gatekeeper/verification")

// SessionStore keeps live sessions.
type SessionStore interface {
	Get(ctx context.Context, identity int64) (models.State, error)
	Put(ctx context.Context, identity int64, st models.State) error
	Delete(ctx context.Context, identity int64) error
}

type RequestLimiter interface {
	Admit(ctx context.Context, identity int64) (bool, error)
}

type AttemptLimiter interface {
	CanAttempt(ctx context.Context, identity int64) (rlmodels.AttemptDecision, error)
	RecordFailure(ctx context.Context, identity int64) (*rlmodels.AttemptRecord, error)
}

type TokenRedeemer interface {
	Redeem(ctx context.Context, identity int64, token string) (bool, error)
}

type ReviewQueue interface {
	Escalate(ctx context.Context, identity messaging.Identity, token string) (reviewmodels.PendingEntry, error)
}

type ChallengeIssuer interface {
	Issue() captcha.Challenge
}

// Deps groups the collaborators; all are required.
type Deps struct {
	Sessions  SessionStore
	Requests  RequestLimiter
	Attempts  AttemptLimiter
	Tokens    TokenRedeemer
	Review    ReviewQueue
	Captcha   ChallengeIssuer
	Messenger messaging.Messenger
	Issuer    messaging.InviteIssuer
}

type Service struct {
	deps    Deps
	groupID int64

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

// WithGroupID sets the group invite links are minted for.
func WithGroupID(id int64) Option {
	return func(s *Service) {
		s.groupID = id
	}
}

func New(deps Deps, opts ...Option) (*Service, error) {
	switch {
	case deps.Sessions == nil:
		return nil, errors.New("session store is required")
	case deps.Requests == nil:
		return nil, errors.New("request limiter is required")
	case deps.Attempts == nil:
		return nil, errors.New("attempt limiter is required")
	case deps.Tokens == nil:
		return nil, errors.New("token redeemer is required")
	case deps.Review == nil:
		return nil, errors.New("review queue is required")
	case deps.Captcha == nil:
		return nil, errors.New("challenge issuer is required")
	case deps.Messenger == nil:
		return nil, errors.New("messenger is required")
	case deps.Issuer == nil:
		return nil, errors.New("invite issuer is required")
	}
	svc := &Service{deps: deps, logger: slog.Default()}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Begin starts (or restarts) verification for identity. Any live session is
// overwritten. When a throttle denies the request the session ends Locked
// and no challenge is issued.
func (s *Service) Begin(ctx context.Context, identity messaging.Identity) (models.State, error) {
	ctx, span := tracer.Start(ctx, "verification.Begin")
	defer span.End()
	span.SetAttributes(attribute.Int64("identity", identity.ID))

	st, err := s.begin(ctx, identity)
	return s.finish(span, st, err)
}

func (s *Service) begin(ctx context.Context, identity messaging.Identity) (models.State, error) {
	admitted, err := s.deps.Requests.Admit(ctx, identity.ID)
	if err != nil {
		return models.Idle{}, err
	}
	if !admitted {
		if err := s.deps.Sessions.Delete(ctx, identity.ID); err != nil {
			return models.Idle{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear session")
		}
		s.send(ctx, identity.ID, textRateLimited, nil)
		return models.Locked{Reason: models.LockRateLimited}, nil
	}

	decision, err := s.deps.Attempts.CanAttempt(ctx, identity.ID)
	if err != nil {
		return models.Idle{}, err
	}
	if !decision.Allowed {
		if err := s.deps.Sessions.Delete(ctx, identity.ID); err != nil {
			return models.Idle{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear session")
		}
		s.send(ctx, identity.ID, lockedText(decision.RetryAfter), nil)
		return models.Locked{Reason: models.LockTooManyFailures, RetryAfter: decision.RetryAfter}, nil
	}

	issued := s.deps.Captcha.Issue()
	st := models.AwaitingCaptcha{Challenge: models.Challenge{
		Identity: identity.ID,
		Code:     issued.Code,
		IssuedAt: requestcontext.Now(ctx),
	}}
	if err := s.deps.Sessions.Put(ctx, identity.ID, st); err != nil {
		return models.Idle{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session")
	}

	if _, err := s.deps.Messenger.SendImage(ctx, identity.ID, issued.Image, textCaptchaPrompt); err != nil {
		// The user never saw the code; drop the challenge rather than let a
		// blind guess count as a failure.
		_ = s.deps.Sessions.Delete(ctx, identity.ID)
		s.deliveryFailed(ctx, identity.ID, err)
		return models.Idle{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to send challenge")
	}

	s.metrics.IncChallengesIssued()
	audit.Log(ctx, s.logger, s.auditPublisher, audit.EventChallengeIssued, "identity", identity.ID)
	return st, nil
}

// Reply routes free text to the live session. Text from an identity with no
// live session is ignored and reported as Idle.
func (s *Service) Reply(ctx context.Context, identity messaging.Identity, text string) (models.State, error) {
	ctx, span := tracer.Start(ctx, "verification.Reply")
	defer span.End()
	span.SetAttributes(attribute.Int64("identity", identity.ID))

	current, err := s.deps.Sessions.Get(ctx, identity.ID)
	if err != nil {
		return s.finish(span, models.Idle{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session"))
	}

	var st models.State
	switch cur := current.(type) {
	case models.AwaitingCaptcha:
		st, err = s.checkCaptcha(ctx, identity, cur.Challenge, text)
	case models.AwaitingToken:
		st, err = s.checkToken(ctx, identity, text)
	default:
		st = models.Idle{}
	}
	return s.finish(span, st, err)
}

func (s *Service) checkCaptcha(ctx context.Context, identity messaging.Identity, challenge models.Challenge, reply string) (models.State, error) {
	if err := s.deps.Sessions.Delete(ctx, identity.ID); err != nil {
		return models.Idle{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear challenge")
	}

	if reply == challenge.Code {
		next := models.AwaitingToken{}
		if err := s.deps.Sessions.Put(ctx, identity.ID, next); err != nil {
			return models.Idle{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session")
		}
		s.send(ctx, identity.ID, textTokenPrompt, nil)
		return next, nil
	}

	if _, err := s.deps.Attempts.RecordFailure(ctx, identity.ID); err != nil {
		return models.Idle{}, err
	}
	decision, err := s.deps.Attempts.CanAttempt(ctx, identity.ID)
	if err != nil {
		return models.Idle{}, err
	}
	if !decision.Allowed {
		s.send(ctx, identity.ID, lockedText(decision.RetryAfter), nil)
		return models.Locked{Reason: models.LockTooManyFailures, RetryAfter: decision.RetryAfter}, nil
	}
	s.send(ctx, identity.ID, textCaptchaWrong, WelcomeKeyboard())
	return models.Idle{}, nil
}

func (s *Service) checkToken(ctx context.Context, identity messaging.Identity, token string) (models.State, error) {
	if err := s.deps.Sessions.Delete(ctx, identity.ID); err != nil {
		return models.Idle{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear session")
	}

	redeemed, err := s.deps.Tokens.Redeem(ctx, identity.ID, token)
	if err != nil {
		return models.Idle{}, err
	}
	if !redeemed {
		if _, err := s.deps.Review.Escalate(ctx, identity, token); err != nil {
			return models.Idle{}, err
		}
		s.send(ctx, identity.ID, textSubmitted, nil)
		return models.Escalated{Token: token}, nil
	}

	// The token is consumed from here on, whatever happens to the link.
	link, err := s.deps.Issuer.CreateSingleUseLink(ctx, s.groupID)
	if err != nil {
		s.metrics.IncIssuanceFailures()
		audit.Log(ctx, s.logger, s.auditPublisher, audit.EventIssuanceFailed,
			"identity", identity.ID,
			"reason", err.Error(),
		)
		s.send(ctx, identity.ID, textIssuanceFailed, nil)
		return models.Granted{}, nil
	}
	s.send(ctx, identity.ID, grantedText(link), nil)
	return models.Granted{Link: link, LinkDelivered: true}, nil
}

// Cancel discards any live session. It always succeeds.
func (s *Service) Cancel(ctx context.Context, identity messaging.Identity) models.State {
	ctx, span := tracer.Start(ctx, "verification.Cancel")
	defer span.End()

	if err := s.deps.Sessions.Delete(ctx, identity.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear session on cancel", "identity", identity.ID, "error", err)
	}
	s.send(ctx, identity.ID, textCancelled, nil)
	audit.Log(ctx, s.logger, s.auditPublisher, audit.EventVerificationAbort, "identity", identity.ID)
	st, _ := s.finish(span, models.Cancelled{}, nil)
	return st
}

// finish records the outcome on the span.
func (s *Service) finish(span trace.Span, st models.State, err error) (models.State, error) {
	span.SetAttributes(attribute.String("state", string(st.Kind())))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return st, err
}

// send is best-effort: delivery failures are logged and counted but never
// undo a state change that already happened.
func (s *Service) send(ctx context.Context, chatID int64, text string, keyboard messaging.Keyboard) {
	if _, err := s.deps.Messenger.SendText(ctx, chatID, text, keyboard); err != nil {
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
