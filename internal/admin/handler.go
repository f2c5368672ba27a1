// Package admin serves the HTTP review panel. Every route acts as the
// administrator identity placed in the context by the auth middleware.
package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	reviewmodels "gatekeeper/internal/review/models"
	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/platform/audit"
	"gatekeeper/pkg/platform/httputil"
	"gatekeeper/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks ReviewService,TokenService,AuditTrail

type ReviewService interface {
	ListPending(ctx context.Context, actor int64) ([]reviewmodels.PendingEntry, error)
	ResolveOne(ctx context.Context, actor, identity int64, outcome reviewmodels.Outcome) (bool, error)
	ResolveByTokens(ctx context.Context, actor int64, tokens []string) (reviewmodels.BulkResult, error)
}

type TokenService interface {
	Add(ctx context.Context, actor int64, tokens []string) ([]string, error)
	List(ctx context.Context, actor int64) ([]string, error)
}

// AuditTrail lists recorded events, per identity or most recent first.
type AuditTrail interface {
	List(ctx context.Context, subject string) ([]audit.Event, error)
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// Handler handles the admin panel endpoints.
type Handler struct {
	reviews ReviewService
	tokens  TokenService
	trail   AuditTrail
	logger  *slog.Logger
}

// New builds the handler. trail may be nil, which leaves the audit route off.
func New(reviews ReviewService, tokens TokenService, trail AuditTrail, logger *slog.Logger) *Handler {
	return &Handler{reviews: reviews, tokens: tokens, trail: trail, logger: logger}
}

// Register mounts the routes on r. Authentication is the caller's middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/pending", h.handleListPending)
	r.Post("/admin/pending/{identity}/{outcome}", h.handleResolve)
	r.Get("/admin/tokens", h.handleListTokens)
	r.Post("/admin/tokens", h.handleAddTokens)
	r.Post("/admin/approve-tokens", h.handleApproveTokens)
	if h.trail != nil {
		r.Get("/admin/audit", h.handleRecentAudit)
		r.Get("/admin/audit/{identity}", h.handleAuditTrail)
	}
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries, err := h.reviews.ListPending(ctx, actorOf(ctx))
	if err != nil {
		h.writeError(ctx, w, "failed to list pending entries", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPendingList(entries))
}

// handleResolve serves POST /admin/pending/{identity}/{approve|reject}.
func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := strconv.ParseInt(chi.URLParam(r, "identity"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "identity must be an integer"))
		return
	}
	outcome, err := reviewmodels.ParseOutcome(chi.URLParam(r, "outcome"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resolved, err := h.reviews.ResolveOne(ctx, actorOf(ctx), identity, outcome)
	if err != nil {
		h.writeError(ctx, w, "failed to resolve pending entry", err)
		return
	}
	if !resolved {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no pending entry for identity"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ResolveResponse{
		Identity: identity,
		Status:   string(outcome.Status()),
	})
}

func (h *Handler) handleListTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tokens, err := h.tokens.List(ctx, actorOf(ctx))
	if err != nil {
		h.writeError(ctx, w, "failed to list tokens", err)
		return
	}
	if tokens == nil {
		tokens = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, TokensResponse{Tokens: tokens, Total: len(tokens)})
}

func (h *Handler) handleAddTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := h.decodeTokens(w, r)
	if !ok {
		return
	}
	added, err := h.tokens.Add(ctx, actorOf(ctx), req.Tokens)
	if err != nil {
		h.writeError(ctx, w, "failed to add tokens", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, AddTokensResponse{Added: added})
}

func (h *Handler) handleApproveTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := h.decodeTokens(w, r)
	if !ok {
		return
	}
	result, err := h.reviews.ResolveByTokens(ctx, actorOf(ctx), req.Tokens)
	if err != nil {
		h.writeError(ctx, w, "failed to approve tokens", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := chi.URLParam(r, "identity")
	if _, err := strconv.ParseInt(identity, 10, 64); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "identity must be an integer"))
		return
	}
	events, err := h.trail.List(ctx, identity)
	if err != nil {
		h.writeError(ctx, w, "failed to list audit events", dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAuditList(events))
}

// handleRecentAudit serves GET /admin/audit?limit=N, newest events last.
func (h *Handler) handleRecentAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = min(n, maxAuditLimit)
	}
	events, err := h.trail.Recent(ctx, limit)
	if err != nil {
		h.writeError(ctx, w, "failed to list audit events", dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAuditList(events))
}

func (h *Handler) decodeTokens(w http.ResponseWriter, r *http.Request) (TokensRequest, bool) {
	var req TokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "invalid tokens request",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return TokensRequest{}, false
	}
	return req, true
}

// writeError logs server-side failures and writes the mapped response.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

func actorOf(ctx context.Context) int64 {
	id, _ := requestcontext.ActorID(ctx)
	return id
}
