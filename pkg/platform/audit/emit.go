package audit

import (
	"context"
	"log/slog"

	"gatekeeper/pkg/attrs"
	"gatekeeper/pkg/requestcontext"
)

// Emitter is what domain services depend on; *publisher.Publisher satisfies it.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Log records an audit event on the structured logger and, when configured,
// on the emitter. Subject, actor and reason are lifted from attrList using the
// "identity", "actor_id" and "reason" keys.
func Log(ctx context.Context, logger *slog.Logger, emitter Emitter, event AuditEvent, attrList ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrList = append(attrList, "request_id", requestID)
	}
	args := append(attrList, "event", string(event), "log_type", "audit")

	if logger != nil {
		logger.InfoContext(ctx, string(event), args...)
	}
	if emitter == nil {
		return
	}
	err := emitter.Emit(ctx, Event{
		Action:   string(event),
		Subject:  attrs.ExtractString(attrList, "identity"),
		ActorID:  attrs.ExtractString(attrList, "actor_id"),
		Decision: attrs.ExtractString(attrList, "decision"),
		Reason:   attrs.ExtractString(attrList, "reason"),
	})
	if err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}
