package worker

import (
	"context"
	"time"

	audit "gatekeeper/pkg/platform/audit"
)

// DefaultAppendTimeout bounds one Append so an unreachable sink cannot stall
// the queue behind it.
const DefaultAppendTimeout = 5 * time.Second

// Worker consumes audit events from a channel and persists them, so emitting
// from the chat dispatcher never waits on a slow sink.
type Worker struct {
	store         audit.Store
	inbox         <-chan audit.Event
	onError       func(audit.Event, error)
	appendTimeout time.Duration
}

type Option func(*Worker)

// WithAppendTimeout overrides DefaultAppendTimeout. Zero or less disables the bound.
func WithAppendTimeout(d time.Duration) Option {
	return func(w *Worker) {
		w.appendTimeout = d
	}
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, onError func(audit.Event, error), opts ...Option) *Worker {
	if onError == nil {
		onError = func(audit.Event, error) {}
	}
	w := &Worker{store: store, inbox: inbox, onError: onError, appendTimeout: DefaultAppendTimeout}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run persists events until the inbox is closed. A failed or timed out append
// is reported and skipped; it does not stop the worker. Once ctx is cancelled
// the remaining events are still taken off the inbox but their appends fail fast.
func (w *Worker) Run(ctx context.Context) {
	for event := range w.inbox {
		if err := w.append(ctx, event); err != nil {
			w.onError(event, err)
		}
	}
}

func (w *Worker) append(ctx context.Context, event audit.Event) error {
	if w.appendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.appendTimeout)
		defer cancel()
	}
	return w.store.Append(ctx, event)
}
