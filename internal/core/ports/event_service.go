package ports

import (
	"context"

	"github.com/freelancehub/session-gateway/internal/core/domain"
)

// AuditService records session lifecycle events.
type AuditService interface {
	Process(ctx context.Context, event domain.SessionEvent) error
}

// AuditSink accepts session events for asynchronous recording.
// Publish must not block the caller.
type AuditSink interface {
	Publish(event domain.SessionEvent)
}
