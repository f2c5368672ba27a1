package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper/pkg/requestcontext"
)

type recordingEmitter struct {
	events []Event
	err    error
}

func (r *recordingEmitter) Emit(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	em := &recordingEmitter{}
	ctx := requestcontext.WithRequestID(context.Background(), "req-9")

	Log(ctx, logger, em, EventReviewRejected, "identity", int64(42), "actor_id", int64(1), "reason", "manual")

	require.Len(t, em.events, 1)
	assert.Equal(t, "review_rejected", em.events[0].Action)
	assert.Equal(t, "42", em.events[0].Subject)
	assert.Equal(t, "1", em.events[0].ActorID)
	assert.Equal(t, "manual", em.events[0].Reason)
	assert.Contains(t, buf.String(), `"log_type":"audit"`)
	assert.Contains(t, buf.String(), `"request_id":"req-9"`)
}

func TestLog_EmitFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	Log(context.Background(), logger, &recordingEmitter{err: errors.New("full")}, EventCaptchaFailed)

	assert.Contains(t, buf.String(), "failed to emit audit event")
}

func TestLog_NilCollaborators(t *testing.T) {
	assert.NotPanics(t, func() {
		Log(context.Background(), nil, nil, EventChallengeIssued, "identity", int64(1))
	})
}

func TestCategory(t *testing.T) {
	assert.Equal(t, CategorySecurity, EventVerificationLock.Category())
	assert.Equal(t, CategoryAccess, EventTokenRedeemed.Category())
	assert.Equal(t, CategoryOperations, EventDeliveryFailed.Category())
	assert.Equal(t, CategoryOperations, AuditEvent("unknown").Category())
}
