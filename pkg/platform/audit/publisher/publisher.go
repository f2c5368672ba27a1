// Package publisher enriches audit events and hands them to a primary store
// and, optionally, to mirrors written inline or through a buffered background
// worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "gatekeeper/pkg/platform/audit"
	"gatekeeper/pkg/platform/audit/worker"
	"gatekeeper/pkg/requestcontext"
)

const defaultDrainTimeout = 5 * time.Second

var (
	// ErrClosed is returned by Emit after Close.
	ErrClosed = errors.New("audit publisher closed")
	// ErrBufferFull is returned in async mode when the mirror worker cannot keep up.
	ErrBufferFull = errors.New("audit buffer full")
)

// Publisher captures structured audit events. It is append-only.
//
// The primary store is written on the caller's goroutine and must be fast
// (the in-memory store). Mirrors (SQL, Kafka) may be slow or down; every
// mirror append is bounded by the mirror timeout.
type Publisher struct {
	primary audit.Store
	mirrors []audit.Store
	logger  *slog.Logger

	bufferSize    int
	mirrorTimeout time.Duration
	drainTimeout  time.Duration

	inbox      chan audit.Event
	stopMirror context.CancelFunc
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

type Option func(*Publisher)

// WithAsyncBuffer makes mirror writes go through a buffered worker instead of
// happening inline in Emit.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.bufferSize = size
	}
}

// WithMirror adds secondary stores (SQL, Kafka) written after the primary.
func WithMirror(stores ...audit.Store) Option {
	return func(p *Publisher) {
		for _, s := range stores {
			if s != nil {
				p.mirrors = append(p.mirrors, s)
			}
		}
	}
}

// WithMirrorTimeout bounds a single mirror append.
func WithMirrorTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.mirrorTimeout = d
	}
}

// WithDrainTimeout bounds how long Close waits for queued mirror writes
// before abandoning them.
func WithDrainTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.drainTimeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		primary:       store,
		mirrorTimeout: worker.DefaultAppendTimeout,
		drainTimeout:  defaultDrainTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 && len(p.mirrors) > 0 {
		var ctx context.Context
		ctx, p.stopMirror = context.WithCancel(context.Background())
		p.inbox = make(chan audit.Event, p.bufferSize)
		w := worker.NewWorker(p.mirrorSet(), p.inbox, p.reportFailure,
			worker.WithAppendTimeout(p.mirrorTimeout))
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w.Run(ctx)
		}()
	}
	return p
}

// Emit stamps the event with an ID, category, time and request ID, stores it
// in the primary store and forwards it to the mirrors.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	if err := p.primary.Append(ctx, event); err != nil {
		return err
	}
	if len(p.mirrors) == 0 {
		return nil
	}
	if p.inbox != nil {
		select {
		case p.inbox <- event:
			return nil
		default:
			return ErrBufferFull
		}
	}

	mctx := ctx
	if p.mirrorTimeout > 0 {
		var cancel context.CancelFunc
		mctx, cancel = context.WithTimeout(ctx, p.mirrorTimeout)
		defer cancel()
	}
	return p.mirrorSet().Append(mctx, event)
}

// Lister is implemented by stores that can answer per-identity queries.
type Lister interface {
	ListBySubject(ctx context.Context, subject string) ([]audit.Event, error)
}

// List returns the events for subject. A mirror that supports queries (the
// SQL store) is preferred because it keeps the full history; otherwise the
// primary store answers.
func (p *Publisher) List(ctx context.Context, subject string) ([]audit.Event, error) {
	for _, s := range p.mirrors {
		if lister, ok := s.(Lister); ok {
			return lister.ListBySubject(ctx, subject)
		}
	}
	if lister, ok := p.primary.(Lister); ok {
		return lister.ListBySubject(ctx, subject)
	}
	return nil, errors.New("audit store does not support listing")
}

type recentLister interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Recent returns the latest limit events held by the primary store.
func (p *Publisher) Recent(ctx context.Context, limit int) ([]audit.Event, error) {
	lister, ok := p.primary.(recentLister)
	if !ok {
		return nil, errors.New("audit store does not support recent listing")
	}
	return lister.ListRecent(ctx, limit)
}

// Close stops accepting events and drains the mirror buffer. Mirror writes
// still queued after the drain timeout are cancelled and reported.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.inbox != nil {
		close(p.inbox)
	}
	p.mu.Unlock()

	if p.inbox == nil {
		return
	}
	drained := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(p.drainTimeout):
		if p.logger != nil {
			p.logger.Warn("audit mirror drain timed out, cancelling pending writes")
		}
		p.stopMirror()
		<-drained
	}
	p.stopMirror()
}

func (p *Publisher) reportFailure(event audit.Event, err error) {
	if p.logger != nil {
		p.logger.Warn("failed to mirror audit event", "event", event.Action, "error", err)
	}
}

func (p *Publisher) mirrorSet() fanout {
	return fanout(p.mirrors)
}

// fanout writes to every store and joins the failures.
type fanout []audit.Store

func (f fanout) Append(ctx context.Context, event audit.Event) error {
	var errs []error
	for _, s := range f {
		if err := s.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
