package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/service"
)

// ValidatorSource builds session validators with the gateway's options.
type ValidatorSource interface {
	Validator(s *service.Session) *service.SessionValidator
}

// SessionHandler exposes the session state and the live mount socket.
type SessionHandler struct {
	validators ValidatorSource
	tracker    *service.ActivityTracker
	sweep      time.Duration
	upgrader   websocket.Upgrader
	log        zerolog.Logger
}

// NewSessionHandler builds a SessionHandler. checkOrigin may be nil to
// accept same-origin upgrades only.
func NewSessionHandler(validators ValidatorSource, tracker *service.ActivityTracker, sweep time.Duration, checkOrigin func(*http.Request) bool, log zerolog.Logger) *SessionHandler {
	if sweep <= 0 {
		sweep = time.Minute
	}
	return &SessionHandler{
		validators: validators,
		tracker:    tracker,
		sweep:      sweep,
		upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log,
	}
}

// State reports the browser's credentials and what validation would
// decide, without clearing or refreshing anything.
//
// @Summary      Session state
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) State(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	state := h.validators.Validator(s).Peek(ctx)
	resp := sessionResponse{
		LoggedIn: s.Credentials.IsLoggedIn(ctx),
		State:    state.Status.String(),
		Reason:   state.Reason,
	}
	resp.Role, _ = s.Credentials.CurrentRole(ctx)
	if last, ok := s.Activity.Last(ctx); ok {
		last = last.UTC()
		resp.LastActivity = &last
	}
	return c.JSON(http.StatusOK, resp)
}

// Activity records one user interaction for a mounted session.
//
// @Summary      Record activity
// @Tags         session
// @Accept       json
// @Param        body  body  activityRequest  true  "Interaction event"
// @Success      204
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /session/activity [post]
func (h *SessionHandler) Activity(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.tracker.Record(c.Request().Context(), s, domain.ActivityEvent(req.Event)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Live mounts a page over a websocket. It sends the loading view, the
// validation outcome, and while valid listens for interaction events and
// re-checks the session every sweep interval. Anonymous visitors are
// redirected to login before the upgrade.
//
// @Summary      Live session
// @Tags         session
// @Success      101
// @Failure      302
// @Router       /session/live [get]
func (h *SessionHandler) Live(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	log := h.log.With().Str("session_id", s.ID).Logger()
	ctx := c.Request().Context()

	if err := conn.WriteJSON(service.ViewFor(domain.Validating)); err != nil {
		return nil
	}

	validator := h.validators.Validator(s)
	state := validator.Validate(ctx)
	if err := conn.WriteJSON(service.ViewFor(state)); err != nil {
		return nil
	}
	if state.Status != domain.StatusValid {
		closeConn(conn, "session invalid")
		return nil
	}

	release := h.tracker.Attach(s.ID)
	defer release()

	quit := make(chan struct{})
	defer close(quit)
	events, done := readEvents(conn, quit)

	ticker := time.NewTicker(h.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := h.tracker.Record(ctx, s, ev); err != nil {
				log.Debug().Err(err).Str("event", string(ev)).Msg("activity ignored")
			}
		case <-ticker.C:
			state := validator.Check(ctx)
			if state.Status == domain.StatusValid {
				continue
			}
			_ = conn.WriteJSON(service.ViewFor(state))
			closeConn(conn, "session invalid")
			return nil
		}
	}
}

// readEvents pumps activity messages off conn until it fails or quit closes.
// done closes when the reader stops.
func readEvents(conn *websocket.Conn, quit <-chan struct{}) (<-chan domain.ActivityEvent, <-chan struct{}) {
	events := make(chan domain.ActivityEvent)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg activityRequest
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			select {
			case events <- domain.ActivityEvent(msg.Event):
			case <-quit:
				return
			}
		}
	}()

	return events, done
}

func closeConn(conn *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

