package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/ports"
	"github.com/freelancehub/session-gateway/internal/core/service"
	"github.com/freelancehub/session-gateway/internal/pkg/metrics"
)

// StateKey is the echo context key holding the domain.SessionState a
// secured page validated to.
const StateKey = "session_state"

// Guard applies route policies and session validation to page routes.
type Guard struct {
	opts  service.ValidatorOptions
	audit ports.AuditSink
	log   zerolog.Logger
}

// NewGuard builds a Guard. audit may be nil.
func NewGuard(opts service.ValidatorOptions, audit ports.AuditSink, log zerolog.Logger) *Guard {
	return &Guard{opts: opts, audit: audit, log: log}
}

// Validator returns a session validator configured like the guard's.
func (g *Guard) Validator(s *service.Session) *service.SessionValidator {
	return service.NewSessionValidator(s, g.opts, g.audit, g.log.With().Str("session_id", s.ID).Logger())
}

// Protect decides whether the request may render under policy. Redirects
// use 302; login redirects carry the attempted location as ?from=.
func (g *Guard) Protect(policy domain.RoutePolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		secured := g.Secure()(next)

		return func(c echo.Context) error {
			s := SessionFrom(c)
			if s == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "browser session not initialised")
			}

			ctx := c.Request().Context()
			snap := service.AccessSnapshot{LoggedIn: s.Credentials.IsLoggedIn(ctx)}
			snap.Role, _ = s.Credentials.CurrentRole(ctx)

			d := service.Decide(policy, snap, c.Request().URL.RequestURI())
			metrics.AccessDecisionsTotal.WithLabelValues(d.Outcome.String()).Inc()

			switch d.Outcome {
			case domain.OutcomeRedirectLogin:
				target := d.Location
				if d.From != "" {
					target += "?from=" + url.QueryEscape(d.From)
				}
				return c.Redirect(http.StatusFound, target)
			case domain.OutcomeRedirectDashboard:
				return c.Redirect(http.StatusFound, d.Location)
			}

			if d.Validate {
				return secured(c)
			}
			return next(c)
		}
	}
}

// Secure validates the session before next renders. An invalid session
// renders the session-invalid view with 401 instead.
func (g *Guard) Secure() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := SessionFrom(c)
			if s == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "browser session not initialised")
			}

			state := g.Validator(s).Validate(c.Request().Context())
			c.Set(StateKey, state)
			if state.Status != domain.StatusValid {
				return c.JSON(http.StatusUnauthorized, service.ViewFor(state))
			}
			return next(c)
		}
	}
}
