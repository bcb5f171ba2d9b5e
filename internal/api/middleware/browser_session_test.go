package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/infrastructure/db/memory"
)

func TestBrowserSession_IssuesCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BrowserSession(memory.NewStorageFactory(), CookieOptions{Name: "sid", MaxAge: time.Hour}, nil, zerolog.Nop())
	var id string
	err := mw(func(c echo.Context) error {
		s := SessionFrom(c)
		if s == nil {
			t.Fatalf("session not set")
		}
		id = s.ID
		return nil
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("session id is not a uuid: %q", id)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || cookies[0].Value != id || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
}

func TestBrowserSession_ReusesCookieScope(t *testing.T) {
	factory := memory.NewStorageFactory()
	id := uuid.NewString()
	if err := factory.For(id).Set(context.Background(), "role", "CLIENT"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: id})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BrowserSession(factory, CookieOptions{Name: "sid", MaxAge: 2 * time.Hour}, nil, zerolog.Nop())
	err := mw(func(c echo.Context) error {
		s := SessionFrom(c)
		if s.ID != id {
			t.Fatalf("expected session %s, got %s", id, s.ID)
		}
		if role, ok := s.Credentials.CurrentRole(c.Request().Context()); !ok || role != "CLIENT" {
			t.Fatalf("expected stored role, got %q %v", role, ok)
		}
		return nil
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != id {
		t.Fatalf("expected the same session cookie re-issued, got %+v", cookies)
	}
	if cookies[0].MaxAge != int((2 * time.Hour).Seconds()) {
		t.Fatalf("expected refreshed max-age, got %d", cookies[0].MaxAge)
	}
}

func TestBrowserSession_ReplacesForgedCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "../../etc"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BrowserSession(memory.NewStorageFactory(), CookieOptions{Name: "sid"}, nil, zerolog.Nop())
	_ = mw(func(c echo.Context) error {
		if SessionFrom(c).ID == "../../etc" {
			t.Fatalf("forged id accepted")
		}
		return nil
	})(c)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value == "../../etc" {
		t.Fatalf("expected a fresh cookie, got %+v", cookies)
	}
}
