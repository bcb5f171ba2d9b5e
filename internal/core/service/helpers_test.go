package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/infrastructure/db/memory"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// failingStorage errors on every call.
type failingStorage struct{}

var errStorageDown = errors.New("storage down")

func (failingStorage) Get(context.Context, string) (string, bool, error) { return "", false, errStorageDown }
func (failingStorage) Set(context.Context, string, string) error        { return errStorageDown }
func (failingStorage) Delete(context.Context, ...string) error          { return errStorageDown }

type sessionFixture struct {
	factory *memory.StorageFactory
	clock   *fakeClock
	session *Session
}

func newSessionFixture() *sessionFixture {
	factory := memory.NewStorageFactory()
	clock := &fakeClock{now: t0}
	return &sessionFixture{
		factory: factory,
		clock:   clock,
		session: OpenSession("sid", factory.For("sid"), clock.Now, zerolog.Nop()),
	}
}

func (f *sessionFixture) storage() map[string]string {
	return f.factory.Snapshot("sid")
}

func (f *sessionFixture) set(t *testing.T, key, value string) {
	t.Helper()
	if err := f.factory.For("sid").Set(context.Background(), key, value); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func (f *sessionFixture) login(t *testing.T, role domain.Role, token string) {
	t.Helper()
	ctx := context.Background()
	if err := f.session.Credentials.SetTokenForRole(ctx, role, token); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := f.session.Credentials.SetCurrentRole(ctx, role); err != nil {
		t.Fatalf("set role: %v", err)
	}
}

func jwtWithClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func jwtExpiring(t *testing.T, exp time.Time) string {
	t.Helper()
	return jwtWithClaims(t, jwt.MapClaims{"sub": "u", "exp": exp.Unix()})
}
