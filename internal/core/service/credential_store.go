package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/ports"
)

// CredentialStore keeps one bearer token per role plus the current-role
// marker in a browser's storage scope.
//
// Reads are total: a missing key, an unknown role or a storage failure all
// read as "absent". Storage failures are logged, never returned.
type CredentialStore struct {
	storage ports.Storage
	log     zerolog.Logger
}

func NewCredentialStore(storage ports.Storage, log zerolog.Logger) *CredentialStore {
	return &CredentialStore{storage: storage, log: log}
}

// SetTokenForRole stores token under role's key. Other roles' tokens are kept.
func (s *CredentialStore) SetTokenForRole(ctx context.Context, role domain.Role, token string) error {
	key := role.TokenKey()
	if key == "" {
		return domain.ErrUnknownRole
	}
	if err := s.storage.Set(ctx, key, token); err != nil {
		return fmt.Errorf("set token for %s: %w", role, err)
	}
	return nil
}

// TokenForRole returns role's stored token.
func (s *CredentialStore) TokenForRole(ctx context.Context, role domain.Role) (string, bool) {
	key := role.TokenKey()
	if key == "" {
		return "", false
	}
	return s.read(ctx, key)
}

// SetCurrentRole overwrites the current-role marker.
func (s *CredentialStore) SetCurrentRole(ctx context.Context, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrUnknownRole
	}
	if err := s.storage.Set(ctx, domain.RoleKey, string(role)); err != nil {
		return fmt.Errorf("set current role: %w", err)
	}
	return nil
}

// CurrentRole returns the stored role marker as-is, recognised or not.
func (s *CredentialStore) CurrentRole(ctx context.Context) (domain.Role, bool) {
	v, ok := s.read(ctx, domain.RoleKey)
	if !ok || v == "" {
		return "", false
	}
	return domain.Role(v), true
}

// CurrentToken returns the token of the current role.
func (s *CredentialStore) CurrentToken(ctx context.Context) (string, bool) {
	role, ok := s.CurrentRole(ctx)
	if !ok {
		return "", false
	}
	return s.TokenForRole(ctx, role)
}

// IsLoggedIn reports whether a non-empty current token exists.
func (s *CredentialStore) IsLoggedIn(ctx context.Context) bool {
	token, ok := s.CurrentToken(ctx)
	return ok && token != ""
}

// ClearAll removes both role tokens and the role marker. Safe to call repeatedly.
func (s *CredentialStore) ClearAll(ctx context.Context) error {
	err := s.storage.Delete(ctx,
		domain.RoleClient.TokenKey(),
		domain.RoleFreelancer.TokenKey(),
		domain.RoleKey,
	)
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) read(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("storage read failed, treating as absent")
		return "", false
	}
	return v, ok
}
