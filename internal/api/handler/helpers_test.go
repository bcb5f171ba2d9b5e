package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/api/middleware"
	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/service"
	"github.com/freelancehub/session-gateway/internal/infrastructure/db/memory"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.SessionEvent
}

func (s *recordingSink) Publish(ev domain.SessionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) kinds() []domain.SessionEventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SessionEventKind, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Kind)
	}
	return out
}

func jwtExpiring(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-1", "exp": exp.Unix()}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func seedLogin(t *testing.T, s *service.Session, role domain.Role, token string) {
	t.Helper()
	ctx := context.Background()
	if err := s.Credentials.SetTokenForRole(ctx, role, token); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := s.Credentials.SetCurrentRole(ctx, role); err != nil {
		t.Fatalf("set role: %v", err)
	}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// withSession attaches a fresh browser session to a request context.
func withSession(e *echo.Echo, req *http.Request, clock *testClock) (echo.Context, *httptest.ResponseRecorder, *service.Session, *memory.StorageFactory) {
	factory := memory.NewStorageFactory()
	s := service.OpenSession("sid-1", factory.For("sid-1"), clock.Now, zerolog.Nop())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionKey, s)
	return c, rec, s, factory
}

func guardFor(clock *testClock) *middleware.Guard {
	return middleware.NewGuard(service.ValidatorOptions{
		CheckTokenValidity: true,
		MaxInactivity:      service.DefaultMaxInactivity,
		Now:                clock.Now,
	}, nil, zerolog.Nop())
}
