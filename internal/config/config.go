// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	// DevJWTSecret is used when JWT_SECRET is unset. Never deploy with it.
	DevJWTSecret = "digimarket-dev-secret-change-me"
)

type Config struct {
	Addr    string `env:"ADDR,default=:8080"`
	Storage string `env:"STORAGE,default=postgres"`

	DatabaseURL string `env:"DATABASE_URL"`
	Postgres    PostgresConfig

	JWTSecret          string        `env:"JWT_SECRET"`
	JWTExpiresIn       time.Duration `env:"JWT_EXPIRES_IN,default=24h"`
	TokenSweepInterval time.Duration `env:"TOKEN_SWEEP_INTERVAL,default=1h"`
	BcryptCost         int           `env:"BCRYPT_COST,default=10"`

	AllowedOrigins     []string `env:"CORS_ALLOWED_ORIGINS"`
	RateLimitPerMinute int      `env:"RATE_LIMIT_PER_MINUTE,default=100"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=console"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST,default=localhost"`
	Port     string `env:"POSTGRES_PORT,default=5432"`
	User     string `env:"POSTGRES_USER,default=postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DB       string `env:"POSTGRES_DB,default=digimarket"`
}

// Load reads .env when present and then the process environment.
func Load(ctx context.Context) (Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return Config{}, fmt.Errorf("failed to process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE %q: want %s or %s", c.Storage, StoragePostgres, StorageMemory)
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.TokenSweepInterval <= 0 {
		return errors.New("TOKEN_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// UsesDevSecret reports whether tokens would be signed with DevJWTSecret.
func (c Config) UsesDevSecret() bool {
	return c.JWTSecret == "" || c.JWTSecret == DevJWTSecret
}

func (c Config) Secret() string {
	if c.JWTSecret == "" {
		return DevJWTSecret
	}
	return c.JWTSecret
}

// DSN prefers DATABASE_URL and otherwise assembles one from POSTGRES_*.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Postgres.User, c.Postgres.Password),
		Host:     net.JoinHostPort(c.Postgres.Host, c.Postgres.Port),
		Path:     "/" + strings.TrimPrefix(c.Postgres.DB, "/"),
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
