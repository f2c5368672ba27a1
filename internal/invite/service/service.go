// Package service is the invitation token registry: administrators add
// tokens, applicants redeem them exactly once.
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"gatekeeper/internal/invite/store"
	"gatekeeper/internal/messaging"
	"gatekeeper/internal/platform/metrics"
	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/platform/audit"
	pstrings "gatekeeper/pkg/platform/strings"
)

type Service struct {
	store          store.Store
	admins         messaging.AdminChecker
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

func New(tokens store.Store, admins messaging.AdminChecker, opts ...Option) (*Service, error) {
	if tokens == nil {
		return nil, errors.New("token store is required")
	}
	if admins == nil {
		return nil, errors.New("admin checker is required")
	}
	svc := &Service{store: tokens, admins: admins}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Add registers tokens on behalf of actor and returns the ones that were new.
// Tokens are trimmed and deduplicated; tokens already present are skipped.
func (s *Service) Add(ctx context.Context, actor int64, tokens []string) ([]string, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	cleaned := pstrings.DedupeAndTrim(tokens)
	if len(cleaned) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one token is required")
	}

	added, err := s.store.AddMissing(ctx, cleaned)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add tokens")
	}

	s.metrics.AddTokens(len(added))
	audit.Log(ctx, s.logger, s.auditPublisher, audit.EventTokensAdded,
		"actor_id", actor,
		"requested", len(cleaned),
		"added", len(added),
	)
	return added, nil
}

// List returns every valid token, sorted.
func (s *Service) List(ctx context.Context, actor int64) ([]string, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	tokens, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tokens")
	}
	slices.Sort(tokens)
	return tokens, nil
}

// Redeem consumes token. It returns true for exactly one caller per token.
func (s *Service) Redeem(ctx context.Context, identity int64, token string) (bool, error) {
	ok, err := s.store.Remove(ctx, token)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to redeem token")
	}
	if ok {
		s.metrics.IncTokensRedeemed()
		audit.Log(ctx, s.logger, s.auditPublisher, audit.EventTokenRedeemed,
			"identity", identity,
		)
	}
	return ok, nil
}

func (s *Service) requireAdmin(ctx context.Context, actor int64) error {
	if s.admins.IsAdministrator(actor) {
		return nil
	}
	audit.Log(ctx, s.logger, s.auditPublisher, audit.EventPermissionDeny,
		"actor_id", actor,
		"reason", "token_registry",
	)
	return dErrors.New(dErrors.CodeForbidden, "only administrators can manage invitation tokens")
}
