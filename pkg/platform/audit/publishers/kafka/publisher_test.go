package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "gatekeeper/pkg/platform/audit"
	"gatekeeper/pkg/platform/audit/publisher"
	"gatekeeper/pkg/platform/audit/store/memory"
)

// Nothing listens on port 1, so the client never reaches a broker.
var unreachable = []string{"127.0.0.1:1"}

type fakeProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	var out kgo.ProduceResults
	for _, r := range rs {
		f.records = append(f.records, r)
		out = append(out, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return out
}

func (f *fakeProducer) Close() { f.closed = true }

func TestAppend_WritesKeyedJSONRecord(t *testing.T) {
	fake := &fakeProducer{}
	pub := newWithProducer(fake, "gatekeeper.audit")

	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	err := pub.Append(context.Background(), audit.Event{
		ID:        "evt-1",
		Category:  audit.CategoryAccess,
		Timestamp: ts,
		Subject:   "42",
		Action:    string(audit.EventTokenRedeemed),
	})
	require.NoError(t, err)
	require.Len(t, fake.records, 1)

	rec := fake.records[0]
	assert.Equal(t, "gatekeeper.audit", rec.Topic)
	assert.Equal(t, []byte("42"), rec.Key)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Value, &got))
	assert.Equal(t, "evt-1", got["id"])
	assert.Equal(t, "token_redeemed", got["action"])
	assert.Equal(t, ts.Format(time.RFC3339Nano), got["timestamp"])
}

func TestAppend_PropagatesProduceError(t *testing.T) {
	boom := errors.New("no brokers")
	pub := newWithProducer(&fakeProducer{err: boom}, "t")

	err := pub.Append(context.Background(), audit.Event{Subject: "1"})
	assert.ErrorIs(t, err, boom)
}

func TestClose(t *testing.T) {
	fake := &fakeProducer{}
	newWithProducer(fake, "t").Close()
	assert.True(t, fake.closed)
}

func TestAppend_UnreachableBrokerHonoursContext(t *testing.T) {
	pub, err := New(unreachable, "gatekeeper.audit")
	require.NoError(t, err)
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = pub.Append(ctx, audit.Event{ID: "evt-1", Subject: "42"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestUnreachableMirrorDoesNotBlockShutdown(t *testing.T) {
	kp, err := New(unreachable, "gatekeeper.audit")
	require.NoError(t, err)
	defer kp.Close()

	primary := memory.NewInMemoryStore()
	pub := publisher.NewPublisher(primary,
		publisher.WithAsyncBuffer(4),
		publisher.WithMirror(kp),
		publisher.WithMirrorTimeout(time.Minute),
		publisher.WithDrainTimeout(200*time.Millisecond),
	)
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		Subject: "42",
		Action:  string(audit.EventEscalated),
	}))

	events, err := primary.ListBySubject(context.Background(), "42")
	require.NoError(t, err)
	assert.Len(t, events, 1, "primary is written without waiting on kafka")

	closed := make(chan struct{})
	go func() {
		pub.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(10 * time.Second):
		t.Fatal("Close blocked on an unreachable kafka mirror")
	}
}
