package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/session-gateway/internal/api/middleware"
	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/service"
)

// ctxSession returns the browser session opened by the BrowserSession
// middleware. Its absence is a wiring bug, not a client error.
func ctxSession(c echo.Context) (*service.Session, error) {
	s := middleware.SessionFrom(c)
	if s == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "browser session not initialised")
	}
	return s, nil
}

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be a known role (presence proves the middleware ran).
//   - the subject must be non-empty.
func ctxClaims(c echo.Context) (userID, email string, role domain.Role, err error) {
	r, _ := c.Get("role").(string)
	role, err = domain.ParseRole(r)
	if err != nil {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	email, _ = c.Get("email").(string)
	return userID, email, role, nil
}

// localRedirect returns from when it is a same-origin path, else fallback.
func localRedirect(from, fallback string) string {
	if len(from) < 1 || from[0] != '/' {
		return fallback
	}
	if len(from) > 1 && (from[1] == '/' || from[1] == '\\') {
		return fallback
	}
	return from
}
