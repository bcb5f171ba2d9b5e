package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/freelancehub/session-gateway/docs"
	"github.com/freelancehub/session-gateway/internal/api/handler"
	"github.com/freelancehub/session-gateway/internal/api/middleware"
	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/ports"
	"github.com/freelancehub/session-gateway/internal/core/service"
	"github.com/freelancehub/session-gateway/internal/infrastructure/config"
	"github.com/freelancehub/session-gateway/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Log      zerolog.Logger
	Storage  ports.StorageFactory
	Auth     ports.AuthService
	Audit    ports.AuditSink // may be nil
	Tracker  *service.ActivityTracker
	Checks   map[string]handlers.Check
	Now      func() time.Time // nil means time.Now
	Upstream *url.URL         // nil disables the /api proxy
	// Metrics receives the HTTP metrics and backs /metrics. Nil uses the
	// default Prometheus registry.
	Metrics  *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	cfg := d.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))
	promMW := echoprometheus.MiddlewareConfig{Subsystem: "gateway"}
	promHandler := echoprometheus.HandlerConfig{}
	if d.Metrics != nil {
		promMW.Registerer = d.Metrics
		promHandler.Gatherer = d.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promMW))

	// --- Probes, metrics, docs (no session) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(d.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(promHandler))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Bearer API for non-browser clients ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))
	v1.GET("/me", handler.NewUserHandler().Me, middleware.RBAC(domain.RoleClient, domain.RoleFreelancer))

	// --- Browser routes ---
	opts := service.ValidatorOptions{
		CheckTokenValidity: cfg.Session.CheckTokenValidity,
		MaxInactivity:      cfg.Session.MaxInactivity,
		Now:                d.Now,
	}
	guard := middleware.NewGuard(opts, d.Audit, d.Log)

	browser := e.Group("", middleware.BrowserSession(d.Storage, middleware.CookieOptions{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
		MaxAge: cfg.Session.StorageTTL,
	}, d.Now, d.Log))

	limit := echo.WrapMiddleware(httprate.LimitByIP(cfg.AuthRateLimit, time.Minute))
	authHandler := handler.NewAuthHandler(d.Auth, d.Audit, d.Log)
	browser.POST("/auth/signup", authHandler.Signup, limit)
	browser.POST("/auth/login", authHandler.Login, limit)
	browser.POST("/auth/logout", authHandler.Logout)

	sessionHandler := handler.NewSessionHandler(guard, d.Tracker, cfg.Session.SweepInterval, allowOrigin(cfg.AllowedOrigins), d.Log)
	browser.GET("/session", sessionHandler.State)
	browser.POST("/session/activity", sessionHandler.Activity)
	browser.GET("/session/live", sessionHandler.Live, guard.Protect(domain.LiveSessionPolicy()))

	pages := handler.NewPageHandler()
	for _, p := range handler.Pages() {
		browser.GET(p.Path, pages.Render(p), guard.Protect(p.Policy))
	}

	if d.Upstream != nil {
		browser.Any("/api/*", echo.NotFoundHandler, middleware.Bearer(), echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
			Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{{URL: d.Upstream}}),
			Rewrite:  map[string]string{"/api/*": "/$1"},
		}))
	}

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// allowOrigin accepts websocket upgrades from the gateway's own origin, the
// configured front-end origins, and clients that send no Origin at all.
func allowOrigin(origins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
			return true
		}
		if _, ok := allowed["*"]; ok {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
