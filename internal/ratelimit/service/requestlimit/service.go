// Package requestlimit admits begin-verification requests using the last N
// request instants per identity.
//
// The rule is "first of the last N is stale": with N instants retained, a new
// request is admitted only if the oldest of them is more than Window before
// now. Denied requests are recorded too, so an identity that keeps retrying
// keeps pushing its own window forward.
package requestlimit

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

type Store = ports.RequestWindowStore

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
		return nil, errors.New("request window store is required")
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

// Admit records a request for identity at the event time and reports whether
// it is within the allowed rate.
func (s *Service) Admit(ctx context.Context, identity int64) (bool, error) {
	now := requestcontext.Now(ctx)
	window, err := s.store.Append(ctx, models.IdentityKey(identity), now,
		s.config.RequestsPerWindow, s.config.RequestWindow)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record request")
	}

	if !window.Full() {
		return true, nil
	}
	if now.Sub(window.Oldest()) > s.config.RequestWindow {
		return true, nil
	}

	s.metrics.IncRateLimitDenials()
	audit.Log(ctx, s.logger, s.auditPublisher, audit.EventRateLimitExceeded,
		"identity", identity,
		"reason", "request_rate",
	)
	return false, nil
}
