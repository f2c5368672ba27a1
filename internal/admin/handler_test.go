package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"gatekeeper/internal/admin/mocks"
	"gatekeeper/internal/messaging"
	reviewmodels "gatekeeper/internal/review/models"
	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/platform/audit"
	"gatekeeper/pkg/testutil"
)

const adminID = int64(1)

type HandlerSuite struct {
	suite.Suite
	reviews *mocks.MockReviewService
	tokens  *mocks.MockTokenService
	trail   *mocks.MockAuditTrail
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.reviews = mocks.NewMockReviewService(ctrl)
	s.tokens = mocks.NewMockTokenService(ctrl)
	s.trail = mocks.NewMockAuditTrail(ctrl)

	h := New(s.reviews, s.tokens, s.trail, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.WithActor(testutil.NewJSONRequest(s.T(), method, path, body), adminID)
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (s *HandlerSuite) TestListPending() {
	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	s.reviews.EXPECT().ListPending(gomock.Any(), adminID).Return([]reviewmodels.PendingEntry{{
		Identity:       messaging.Identity{ID: 77, Username: "carol"},
		SubmittedToken: "FRIEND",
		SubmittedAt:    at,
		Status:         reviewmodels.StatusPending,
	}}, nil)

	rec := s.do(http.MethodGet, "/admin/pending", nil)
	s.Equal(http.StatusOK, rec.Code)

	resp := testutil.UnmarshalResponse[PendingListResponse](s.T(), rec)
	s.Equal(1, resp.Total)
	s.Equal(PendingEntryResponse{
		Identity: 77, Username: "carol", Token: "FRIEND", SubmittedAt: at, Status: "pending",
	}, resp.Pending[0])
}

func (s *HandlerSuite) TestResolve() {
	s.Run("approve", func() {
		s.reviews.EXPECT().ResolveOne(gomock.Any(), adminID, int64(77), reviewmodels.OutcomeApprove).Return(true, nil)
		rec := s.do(http.MethodPost, "/admin/pending/77/approve", nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp ResolveResponse
		s.decode(rec, &resp)
		s.Equal(ResolveResponse{Identity: 77, Status: "approved"}, resp)
	})

	s.Run("reject of a missing entry is 404", func() {
		s.reviews.EXPECT().ResolveOne(gomock.Any(), adminID, int64(78), reviewmodels.OutcomeReject).Return(false, nil)
		rec := s.do(http.MethodPost, "/admin/pending/78/reject", nil)
		testutil.AssertStatusAndError(s.T(), rec, http.StatusNotFound, "not_found")
	})

	s.Run("issuance failure is 503", func() {
		s.reviews.EXPECT().ResolveOne(gomock.Any(), adminID, int64(77), reviewmodels.OutcomeApprove).
			Return(false, dErrors.New(dErrors.CodeUnavailable, "failed to create invite link"))
		rec := s.do(http.MethodPost, "/admin/pending/77/approve", nil)
		s.Equal(http.StatusServiceUnavailable, rec.Code)
	})

	s.Run("non numeric identity", func() {
		rec := s.do(http.MethodPost, "/admin/pending/abc/approve", nil)
		testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "bad_request")
	})

	s.Run("unknown outcome never reaches the service", func() {
		rec := s.do(http.MethodPost, "/admin/pending/77/ban", nil)
		testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "validation_error")
	})
}

func (s *HandlerSuite) TestTokens() {
	s.Run("list", func() {
		s.tokens.EXPECT().List(gomock.Any(), adminID).Return(nil, nil)
		rec := s.do(http.MethodGet, "/admin/tokens", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"tokens":[],"total":0}`, rec.Body.String())
	})

	s.Run("add", func() {
		s.tokens.EXPECT().Add(gomock.Any(), adminID, []string{"A1", "B2"}).Return([]string{"A1"}, nil)
		rec := s.do(http.MethodPost, "/admin/tokens", TokensRequest{Tokens: []string{"A1", "B2"}})
		s.Equal(http.StatusCreated, rec.Code)
		s.JSONEq(`{"added":["A1"]}`, rec.Body.String())
	})

	s.Run("add with empty list is rejected by the service", func() {
		s.tokens.EXPECT().Add(gomock.Any(), adminID, []string{}).
			Return(nil, dErrors.New(dErrors.CodeValidation, "at least one token is required"))
		rec := s.do(http.MethodPost, "/admin/tokens", TokensRequest{Tokens: []string{}})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/admin/tokens", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestApproveTokens() {
	s.reviews.EXPECT().ResolveByTokens(gomock.Any(), adminID, []string{"T1", "ZZ"}).
		Return(reviewmodels.BulkResult{Approved: 2, NotFound: []string{"ZZ"}}, nil)

	rec := s.do(http.MethodPost, "/admin/approve-tokens", TokensRequest{Tokens: []string{"T1", "ZZ"}})
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"approved":2,"not_found":["ZZ"]}`, rec.Body.String())
}

func (s *HandlerSuite) TestForbiddenActor() {
	s.reviews.EXPECT().ListPending(gomock.Any(), adminID).
		Return(nil, dErrors.New(dErrors.CodeForbidden, "only administrators can use this command"))
	rec := s.do(http.MethodGet, "/admin/pending", nil)
	testutil.AssertStatusAndError(s.T(), rec, http.StatusForbidden, "forbidden")
}

func (s *HandlerSuite) TestAuditTrail() {
	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	s.trail.EXPECT().List(gomock.Any(), "77").Return([]audit.Event{{
		ID: "e1", Category: audit.CategoryAccess, Action: "review_rejected", ActorID: "1", Timestamp: at,
	}}, nil)

	rec := s.do(http.MethodGet, "/admin/audit/77", nil)
	s.Equal(http.StatusOK, rec.Code)
	var resp AuditListResponse
	s.decode(rec, &resp)
	s.Require().Len(resp.Events, 1)
	s.Equal("review_rejected", resp.Events[0].Action)
	s.Equal("access", resp.Events[0].Category)
}

func (s *HandlerSuite) TestRecentAudit() {
	s.Run("default limit", func() {
		s.trail.EXPECT().Recent(gomock.Any(), 50).Return([]audit.Event{
			{ID: "e1", Action: "captcha_failed"},
			{ID: "e2", Action: "verification_locked"},
		}, nil)

		rec := s.do(http.MethodGet, "/admin/audit", nil)
		s.Equal(http.StatusOK, rec.Code)
		var resp AuditListResponse
		s.decode(rec, &resp)
		s.Equal(2, resp.Total)
		s.Equal("verification_locked", resp.Events[1].Action)
	})

	s.Run("limit is capped", func() {
		s.trail.EXPECT().Recent(gomock.Any(), 500).Return(nil, nil)
		rec := s.do(http.MethodGet, "/admin/audit?limit=100000", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("bad limit", func() {
		rec := s.do(http.MethodGet, "/admin/audit?limit=-3", nil)
		testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "bad_request")
	})
}

func TestAuditRouteOptional(t *testing.T) {
	r := chi.NewRouter()
	New(nil, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/audit/77", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without an audit trail, got %d", rec.Code)
	}
}

func TestActorOf(t *testing.T) {
	if got := actorOf(context.Background()); got != 0 {
		t.Fatalf("expected 0 without an actor, got %d", got)
	}
}
