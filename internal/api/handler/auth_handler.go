package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/ports"
	"github.com/freelancehub/session-gateway/internal/pkg/metrics"
)

type AuthHandler struct {
	authService ports.AuthService
	audit       ports.AuditSink
	log         zerolog.Logger
}

// NewAuthHandler builds an AuthHandler. audit may be nil.
func NewAuthHandler(authService ports.AuthService, audit ports.AuditSink, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, audit: audit, log: log}
}

// Signup creates an account and logs the browser in as its role.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return h.establish(c, domain.SessionSignup, http.StatusCreated, res, req.From)
}

// Login authenticates a user and stores the token for the account's role.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return err
	}

	return h.establish(c, domain.SessionLogin, http.StatusOK, res, req.From)
}

// Logout clears the browser's credentials and sends it to the login page.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	role, _ := s.Credentials.CurrentRole(ctx)
	if err := s.Credentials.ClearAll(ctx); err != nil {
		return err
	}
	if err := s.Activity.Forget(ctx); err != nil {
		return err
	}

	h.publish(s.ID, domain.SessionLogout, role)
	metrics.AuthAttemptsTotal.WithLabelValues("logout", "success").Inc()
	return c.Redirect(http.StatusSeeOther, domain.LoginPath)
}

// establish stores a fresh login in the browser session. Activity is
// refreshed so a stale timestamp from an earlier login cannot invalidate it.
func (h *AuthHandler) establish(c echo.Context, kind domain.SessionEventKind, status int, res *ports.AuthResult, from string) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	role := res.User.Role

	if err := s.Credentials.SetTokenForRole(ctx, role, res.Token); err != nil {
		return err
	}
	if err := s.Credentials.SetCurrentRole(ctx, role); err != nil {
		return err
	}
	if err := s.Activity.Touch(ctx); err != nil {
		return err
	}

	h.publish(s.ID, kind, role)
	metrics.AuthAttemptsTotal.WithLabelValues(string(kind), "success").Inc()
	h.log.Info().Str("session_id", s.ID).Str("role", string(role)).Str("kind", string(kind)).Msg("session established")

	dash, _ := role.DashboardPath()
	return c.JSON(status, authResponse{
		Token:    res.Token,
		User:     res.User,
		Redirect: localRedirect(from, dash),
	})
}

func (h *AuthHandler) publish(sessionID string, kind domain.SessionEventKind, role domain.Role) {
	if h.audit == nil {
		return
	}
	h.audit.Publish(domain.SessionEvent{
		SessionID: sessionID,
		Kind:      kind,
		Role:      role,
		At:        time.Now().UTC(),
	})
}
