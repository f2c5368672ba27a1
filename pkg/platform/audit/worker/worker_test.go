package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "gatekeeper/pkg/platform/audit"
)

type flakyStore struct {
	appended []audit.Event
}

func (f *flakyStore) Append(_ context.Context, e audit.Event) error {
	if e.Subject == "bad" {
		return errors.New("rejected")
	}
	f.appended = append(f.appended, e)
	return nil
}

// hangingStore blocks until the append context ends, like a producer whose
// brokers are unreachable.
type hangingStore struct{}

func (hangingStore) Append(ctx context.Context, _ audit.Event) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestWorker_ContinuesAfterErrors(t *testing.T) {
	store := &flakyStore{}
	inbox := make(chan audit.Event, 3)
	var failed []string
	w := NewWorker(store, inbox, func(e audit.Event, _ error) { failed = append(failed, e.Subject) })

	inbox <- audit.Event{Subject: "1"}
	inbox <- audit.Event{Subject: "bad"}
	inbox <- audit.Event{Subject: "2"}
	close(inbox)

	w.Run(context.Background())

	assert.Len(t, store.appended, 2)
	assert.Equal(t, []string{"bad"}, failed)
}

func TestWorker_BoundsEachAppend(t *testing.T) {
	inbox := make(chan audit.Event, 2)
	var errs []error
	w := NewWorker(hangingStore{}, inbox,
		func(_ audit.Event, err error) { errs = append(errs, err) },
		WithAppendTimeout(20*time.Millisecond),
	)

	inbox <- audit.Event{Subject: "1"}
	inbox <- audit.Event{Subject: "2"}
	close(inbox)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not finish with a hanging store")
	}
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], context.DeadlineExceeded)
}

func TestWorker_CancelledContextFailsFast(t *testing.T) {
	inbox := make(chan audit.Event, 1)
	inbox <- audit.Event{Subject: "1"}
	close(inbox)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var errs []error
	w := NewWorker(hangingStore{}, inbox,
		func(_ audit.Event, err error) { errs = append(errs, err) },
		WithAppendTimeout(0),
	)
	w.Run(ctx)

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
}
