// Package attemptlimit locks an identity out of verification after too many
// wrong captcha replies inside one lockout window.
package attemptlimit

import (
	"context"
	"errors"
	"log/slog"

	"gatekeeper/internal/platform/config"
	"gatekeeper/internal/platform/metrics"
	"gatekeeper/internal/ratelimit/models"
	"gatekeeper/internal/ratelimit/ports"
	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/platform/audit"
	"gatekeeper/pkg/requestcontext"
)

type Store = ports.AttemptStore

type Service struct {
	store          Store
	auditPublisher audit.Emitter
	logger         *slog.Logger
	metrics        *metrics.Metrics
	config         config.LimitsConfig
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

func WithConfig(cfg config.LimitsConfig) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("attempt store is required")
	}
	svc := &Service{
		store:  store,
		config: config.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CanAttempt reports whether identity may start a challenge. An expired window
// is reset here, lazily, with the new window starting at the event time.
func (s *Service) CanAttempt(ctx context.Context, identity int64) (models.AttemptDecision, error) {
	now := requestcontext.Now(ctx)
	lockout := s.config.LockoutWindow

	rec, err := s.store.Update(ctx, models.IdentityKey(identity), func(rec *models.AttemptRecord) *models.AttemptRecord {
		if rec == nil {
			rec = &models.AttemptRecord{}
		} else if !rec.Expired(now, lockout) {
			return nil
		}
		rec.Reset(now)
		return rec
	})
	if err != nil {
		return models.AttemptDecision{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attempt record")
	}

	if !rec.IsLocked(s.config.MaxAttempts) {
		return models.AttemptDecision{Allowed: true}, nil
	}

	retryAfter := rec.RetryAfter(now, lockout)
	s.metrics.IncLockouts()
	audit.Log(ctx, s.logger, s.auditPublisher, audit.EventVerificationLock,
		"identity", identity,
		"failure_count", rec.FailureCount,
		"retry_after", retryAfter,
		"reason", "too_many_failures",
	)
	return models.AttemptDecision{Allowed: false, RetryAfter: retryAfter}, nil
}

// RecordFailure counts one wrong reply. It does not check the cap; callers
// consult CanAttempt afterwards.
func (s *Service) RecordFailure(ctx context.Context, identity int64) (*models.AttemptRecord, error) {
	now := requestcontext.Now(ctx)
	rec, err := s.store.Update(ctx, models.IdentityKey(identity), func(rec *models.AttemptRecord) *models.AttemptRecord {
		if rec == nil {
			rec = &models.AttemptRecord{WindowStart: now}
		}
		rec.FailureCount++
		return rec
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record captcha failure")
	}

	s.metrics.IncCaptchaFailures()
	audit.Log(ctx, s.logger, s.auditPublisher, audit.EventCaptchaFailed,
		"identity", identity,
		"failure_count", rec.FailureCount,
	)
	return rec, nil
}
