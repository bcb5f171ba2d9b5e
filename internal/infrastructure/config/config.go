package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	UpstreamAPIURL string   `env:"UPSTREAM_API_URL"`
	OTLPEndpoint   string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5173"`
	AuthRateLimit  int      `env:"AUTH_RATE_LIMIT, default=20"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	// Storage selects the browser storage backend: "redis" or "memory".
	Storage            string        `env:"SESSION_STORAGE,              default=redis"`
	StorageTTL         time.Duration `env:"SESSION_STORAGE_TTL,          default=720h"`
	CookieName         string        `env:"SESSION_COOKIE_NAME,          default=fh_sid"`
	CookieSecure       bool          `env:"SESSION_COOKIE_SECURE,        default=false"`
	CheckTokenValidity bool          `env:"SESSION_CHECK_TOKEN_VALIDITY, default=true"`
	MaxInactivity      time.Duration `env:"SESSION_MAX_INACTIVITY,       default=120m"`
	SweepInterval      time.Duration `env:"SESSION_SWEEP_INTERVAL,       default=1m"`
	AuditWorkers       int           `env:"SESSION_AUDIT_WORKERS,        default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=freelance_gateway"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Session.Storage != "redis" && cfg.Session.Storage != "memory" {
		return nil, fmt.Errorf("config: SESSION_STORAGE must be redis or memory, got %q", cfg.Session.Storage)
	}
	return &cfg, nil
}

// Development reports whether the service runs in a local environment.
func (c *Config) Development() bool {
	return c.Env == "development"
}
