// @title           Freelance Session Gateway API
// @version         1.0
// @description     Session and access guard in front of the freelance marketplace API.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/freelancehub/session-gateway/internal/api"
	"github.com/freelancehub/session-gateway/internal/core/ports"
	"github.com/freelancehub/session-gateway/internal/core/service"
	"github.com/freelancehub/session-gateway/internal/infrastructure/config"
	"github.com/freelancehub/session-gateway/internal/infrastructure/db/memory"
	mongodb "github.com/freelancehub/session-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/freelancehub/session-gateway/internal/infrastructure/db/redis"
	"github.com/freelancehub/session-gateway/internal/infrastructure/http/handlers"
	"github.com/freelancehub/session-gateway/internal/infrastructure/queue"
	"github.com/freelancehub/session-gateway/internal/infrastructure/telemetry"
	"github.com/freelancehub/session-gateway/pkg/logger"
)

const serviceName = "session-gateway"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Development(), Output: os.Stderr, Service: serviceName})

	shutdownTracing, err := telemetry.Init(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("init telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: serviceName})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongo")
		}
	}()

	users := mongodb.NewAuthRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes")
	}

	checks := map[string]handlers.Check{"mongodb": handlers.MongoCheck(db)}

	var storage ports.StorageFactory
	switch cfg.Session.Storage {
	case "memory":
		log.Warn().Msg("browser sessions kept in process memory")
		storage = memory.NewStorageFactory()
	default:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer rdb.Close()
		storage = redisdb.NewStorageFactory(rdb, cfg.Session.StorageTTL)
		checks["redis"] = handlers.RedisCheck(rdb)
	}

	var upstream *url.URL
	if cfg.UpstreamAPIURL != "" {
		upstream, err = url.Parse(cfg.UpstreamAPIURL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse UPSTREAM_API_URL")
		}
	}

	auditCtx, stopAudit := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Session.AuditWorkers, service.NewAuditService(mongodb.NewEventRepository(db), log), log)
	dispatcher.Start(auditCtx)

	e := api.NewRouter(api.Deps{
		Config:   cfg,
		Log:      log,
		Storage:  storage,
		Auth:     service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL),
		Audit:    dispatcher,
		Tracker:  service.NewActivityTracker(log),
		Checks:   checks,
		Upstream: upstream,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Session.Storage).Msg("starting session gateway")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown server")
	}

	stopAudit()
	dispatcher.Wait()
	log.Info().Msg("session gateway stopped")
}
