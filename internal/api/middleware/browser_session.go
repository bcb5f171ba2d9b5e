package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/ports"
	"github.com/freelancehub/session-gateway/internal/core/service"
)

// SessionKey is the echo context key holding the request's *service.Session.
const SessionKey = "session"

// CookieOptions controls the browser session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// BrowserSession identifies the browser by a UUID cookie, issuing one when
// absent or unparseable and refreshing its MaxAge otherwise, and opens its
// storage scope for the request.
func BrowserSession(factory ports.StorageFactory, opts CookieOptions, now func() time.Time, log zerolog.Logger) echo.MiddlewareFunc {
	if opts.Name == "" {
		opts.Name = "fh_sid"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(opts.Name); err == nil {
				if parsed, err := uuid.Parse(ck.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
			}
			// Re-issued on every request so the cookie slides with the storage TTL.
			c.SetCookie(&http.Cookie{
				Name:     opts.Name,
				Value:    id,
				Path:     "/",
				MaxAge:   int(opts.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			c.Set(SessionKey, service.OpenSession(id, factory.For(id), now, log))
			return next(c)
		}
	}
}

// SessionFrom returns the session opened by BrowserSession, or nil.
func SessionFrom(c echo.Context) *service.Session {
	s, _ := c.Get(SessionKey).(*service.Session)
	return s
}
