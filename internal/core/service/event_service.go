package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/ports"
	"github.com/freelancehub/session-gateway/internal/pkg/metrics"
)

type auditService struct {
	repo ports.SessionEventRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists every event.
func NewAuditService(repo ports.SessionEventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single session lifecycle event.
func (s *auditService) Process(ctx context.Context, ev domain.SessionEvent) error {
	if ev.SessionID == "" || ev.Kind == "" {
		return fmt.Errorf("process session event: missing session id or kind")
	}

	if err := s.repo.InsertEvent(ctx, &ev); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues(string(ev.Kind)).Inc()
		return fmt.Errorf("process session event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(string(ev.Kind)).Inc()
	s.log.Debug().
		Str("session_id", ev.SessionID).
		Str("kind", string(ev.Kind)).
		Str("role", string(ev.Role)).
		Str("reason", string(ev.Reason)).
		Msg("session event recorded")
	return nil
}
