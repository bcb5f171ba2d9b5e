package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/domain"
)

type stubEventRepo struct {
	insertErr error
	inserted  []*domain.SessionEvent
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.SessionEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

func TestAuditService_Process_Persists(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	ev := domain.SessionEvent{
		SessionID: "sid-1",
		Kind:      domain.SessionInvalidated,
		Role:      domain.RoleClient,
		Reason:    domain.ReasonInactive,
		At:        time.Now().UTC(),
	}
	if err := svc.Process(context.Background(), ev); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(repo.inserted) != 1 || *repo.inserted[0] != ev {
		t.Fatalf("expected event persisted as-is, got %+v", repo.inserted)
	}
}

func TestAuditService_Process_RejectsIncomplete(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.SessionEvent{Kind: domain.SessionLogin}); err == nil {
		t.Fatalf("expected error for missing session id")
	}
	if err := svc.Process(context.Background(), domain.SessionEvent{SessionID: "sid"}); err == nil {
		t.Fatalf("expected error for missing kind")
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("incomplete events must not be persisted")
	}
}

func TestAuditService_Process_WrapsRepoError(t *testing.T) {
	boom := errors.New("write failed")
	svc := NewAuditService(&stubEventRepo{insertErr: boom}, zerolog.Nop())

	err := svc.Process(context.Background(), domain.SessionEvent{SessionID: "sid", Kind: domain.SessionLogout})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
