package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/service"
	"github.com/freelancehub/session-gateway/internal/infrastructure/db/memory"
)

func TestBearer(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, s *service.Session)
		want  string
	}{
		{"anonymous", func(*testing.T, *service.Session) {}, ""},
		{"current role token", func(t *testing.T, s *service.Session) {
			f := &guardFixture{session: s}
			f.login(t, domain.RoleFreelancer, "free-tok")
		}, "Bearer free-tok"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := service.OpenSession("sid", memory.NewStorage(), nil, zerolog.Nop())
			tc.setup(t, s)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer forged")
			req.Header.Set(echo.HeaderCookie, "fh_sid=abc")
			c := e.NewContext(req, httptest.NewRecorder())
			c.Set(SessionKey, s)

			err := Bearer()(func(c echo.Context) error {
				if got := c.Request().Header.Get(echo.HeaderAuthorization); got != tc.want {
					t.Fatalf("expected Authorization %q, got %q", tc.want, got)
				}
				if c.Request().Header.Get(echo.HeaderCookie) != "" {
					t.Fatalf("session cookie must not reach upstream")
				}
				return nil
			})(c)
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
		})
	}
}
