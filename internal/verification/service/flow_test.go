package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gatekeeper/internal/captcha"
	invitesvc "gatekeeper/internal/invite/service"
	invitestore "gatekeeper/internal/invite/store"
	"gatekeeper/internal/messaging"
	"gatekeeper/internal/ratelimit/service/attemptlimit"
	"gatekeeper/internal/ratelimit/service/requestlimit"
	"gatekeeper/internal/ratelimit/store/attempts"
	"gatekeeper/internal/ratelimit/store/requestwindow"
	reviewmodels "gatekeeper/internal/review/models"
	reviewsvc "gatekeeper/internal/review/service"
	reviewstore "gatekeeper/internal/review/store"
	"gatekeeper/internal/verification/models"
	"gatekeeper/internal/verification/store"
	"gatekeeper/pkg/requestcontext"
)

const adminID = int64(1)

type sentMessage struct {
	ChatID int64
	Text   string
}

// recordingMessenger keeps every outbound text so the flow can be asserted
// end to end without a chat platform.
type recordingMessenger struct {
	mu   sync.Mutex
	sent []sentMessage
	next int
}

func (m *recordingMessenger) SendText(_ context.Context, chatID int64, text string, _ messaging.Keyboard) (messaging.MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.sent = append(m.sent, sentMessage{ChatID: chatID, Text: text})
	return messaging.MessageRef{ChatID: chatID, MessageID: m.next}, nil
}

func (m *recordingMessenger) SendImage(_ context.Context, chatID int64, _ []byte, caption string) (messaging.MessageRef, error) {
	return m.SendText(context.Background(), chatID, caption, nil)
}

func (m *recordingMessenger) EditMessage(context.Context, messaging.MessageRef, string, messaging.Keyboard) error {
	return nil
}

func (m *recordingMessenger) AnswerInteraction(context.Context, string) error {
	return nil
}

func (m *recordingMessenger) last(chatID int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].ChatID == chatID {
			return m.sent[i].Text
		}
	}
	return ""
}

type countingIssuer struct {
	n int
}

func (i *countingIssuer) CreateSingleUseLink(context.Context, int64) (string, error) {
	i.n++
	return fmt.Sprintf("https://t.me/+link%d", i.n), nil
}

type fixedChallenge string

func (c fixedChallenge) Issue() captcha.Challenge {
	return captcha.Challenge{Code: string(c), Image: []byte("png")}
}

type FlowSuite struct {
	suite.Suite
	messenger *recordingMessenger
	invites   *invitesvc.Service
	review    *reviewsvc.Service
	queue     *reviewstore.InMemoryQueue
	service   *Service
	now       time.Time
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowSuite))
}

func (s *FlowSuite) SetupTest() {
	s.now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	s.messenger = &recordingMessenger{}
	issuer := &countingIssuer{}
	admins := messaging.AdminCheck{AdminID: adminID}

	requests, err := requestlimit.New(requestwindow.NewInMemoryStore())
	s.Require().NoError(err)
	attemptSvc, err := attemptlimit.New(attempts.New())
	s.Require().NoError(err)
	s.invites, err = invitesvc.New(invitestore.NewInMemory(), admins)
	s.Require().NoError(err)
	s.queue = reviewstore.NewInMemoryQueue()
	s.review, err = reviewsvc.New(s.queue, s.messenger, issuer, admins,
		reviewsvc.WithGroupID(groupID),
		reviewsvc.WithReviewerChatID(adminID),
	)
	s.Require().NoError(err)

	s.service, err = New(Deps{
		Sessions:  store.New(),
		Requests:  requests,
		Attempts:  attemptSvc,
		Tokens:    s.invites,
		Review:    s.review,
		Captcha:   fixedChallenge("7391"),
		Messenger: s.messenger,
		Issuer:    issuer,
	}, WithGroupID(groupID))
	s.Require().NoError(err)
}

func (s *FlowSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *FlowSuite) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

func (s *FlowSuite) TestTokenGrantsLink() {
	ctx := s.ctx()
	_, err := s.invites.Add(ctx, adminID, []string{"WELCOME2024"})
	s.Require().NoError(err)
	alice := messaging.Identity{ID: 42, Username: "alice"}

	st, err := s.service.Begin(ctx, alice)
	s.Require().NoError(err)
	s.Equal(models.KindAwaitingCaptcha, st.Kind())

	st, err = s.service.Reply(ctx, alice, "7391")
	s.Require().NoError(err)
	s.Equal(models.KindAwaitingToken, st.Kind())

	st, err = s.service.Reply(ctx, alice, "WELCOME2024")
	s.Require().NoError(err)
	s.Equal(models.Granted{Link: "https://t.me/+link1", LinkDelivered: true}, st)
	s.Contains(s.messenger.last(42), "https://t.me/+link1")

	remaining, err := s.invites.List(ctx, adminID)
	s.Require().NoError(err)
	s.Empty(remaining)

	s.Run("the token cannot be reused", func() {
		bob := messaging.Identity{ID: 43}
		_, err := s.service.Begin(ctx, bob)
		s.Require().NoError(err)
		_, err = s.service.Reply(ctx, bob, "7391")
		s.Require().NoError(err)

		st, err := s.service.Reply(ctx, bob, "WELCOME2024")
		s.Require().NoError(err)
		s.Equal(models.Escalated{Token: "WELCOME2024"}, st)
	})
}

func (s *FlowSuite) TestEscalationThenRejection() {
	ctx := s.ctx()
	carol := messaging.Identity{ID: 77, FirstName: "Carol"}

	_, err := s.service.Begin(ctx, carol)
	s.Require().NoError(err)
	_, err = s.service.Reply(ctx, carol, "7391")
	s.Require().NoError(err)
	st, err := s.service.Reply(ctx, carol, "FRIEND-OF-BOB")
	s.Require().NoError(err)
	s.Equal(models.Escalated{Token: "FRIEND-OF-BOB"}, st)

	pending, err := s.review.ListPending(ctx, adminID)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal("FRIEND-OF-BOB", pending[0].SubmittedToken)
	s.Equal(reviewmodels.StatusPending, pending[0].Status)

	ok, err := s.review.ResolveOne(ctx, adminID, 77, reviewmodels.OutcomeReject)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(0, s.queue.Len())
	s.Contains(s.messenger.last(77), "not approved")

	ok, err = s.review.ResolveOne(ctx, adminID, 77, reviewmodels.OutcomeReject)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *FlowSuite) TestWrongCodesLockTheIdentity() {
	dave := messaging.Identity{ID: 55}
	for i := range 3 {
		_, err := s.service.Begin(s.ctx(), dave)
		s.Require().NoError(err)
		st, err := s.service.Reply(s.ctx(), dave, "0000")
		s.Require().NoError(err)
		if i < 2 {
			s.Equal(models.Idle{}, st)
		} else {
			s.Equal(models.Locked{Reason: models.LockTooManyFailures, RetryAfter: 59 * time.Minute}, st)
		}
		s.advance(time.Second)
	}

	s.advance(10 * time.Minute)
	st, err := s.service.Begin(s.ctx(), dave)
	s.Require().NoError(err)
	locked, ok := st.(models.Locked)
	s.Require().True(ok)
	s.Equal(models.LockTooManyFailures, locked.Reason)
	s.Equal(49*time.Minute, locked.RetryAfter)

	s.advance(time.Hour)
	st, err = s.service.Begin(s.ctx(), dave)
	s.Require().NoError(err)
	s.Equal(models.KindAwaitingCaptcha, st.Kind())
}

func (s *FlowSuite) TestRequestRateLimit() {
	erin := messaging.Identity{ID: 66}
	for range 4 {
		st, err := s.service.Begin(s.ctx(), erin)
		s.Require().NoError(err)
		s.Equal(models.KindAwaitingCaptcha, st.Kind())
		s.advance(2 * time.Second)
	}

	st, err := s.service.Begin(s.ctx(), erin)
	s.Require().NoError(err)
	s.Equal(models.Locked{Reason: models.LockRateLimited}, st)

	s.Run("the pending challenge is gone", func() {
		st, err := s.service.Reply(s.ctx(), erin, "7391")
		s.Require().NoError(err)
		s.Equal(models.Idle{}, st)
	})
}
