package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/ports"
)

// Session groups the views one browser's storage scope is read through.
type Session struct {
	ID          string
	Credentials *CredentialStore
	Activity    *ActivityLog
}

// OpenSession builds the credential and activity views over storage.
// now may be nil.
func OpenSession(id string, storage ports.Storage, now func() time.Time, log zerolog.Logger) *Session {
	log = log.With().Str("session_id", id).Logger()
	return &Session{
		ID:          id,
		Credentials: NewCredentialStore(storage, log),
		Activity:    NewActivityLog(storage, now, log),
	}
}
