// Package app assembles storage, services and the HTTP handler from config.
// Both the server and marketctl build on it.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	handler "github.com/vncsmyrnk/digimarket/internal/adapters/handler/http"
	"github.com/vncsmyrnk/digimarket/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/digimarket/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/digimarket/internal/adapters/security/password"
	"github.com/vncsmyrnk/digimarket/internal/adapters/security/token"
	"github.com/vncsmyrnk/digimarket/internal/config"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
	"github.com/vncsmyrnk/digimarket/internal/core/services"
)

const ServiceName = "digimarket"

type App struct {
	cfg config.Config
	db  *sql.DB

	Users    ports.UserRepository
	Products ports.ProductRepository
	Orders   ports.OrderRepository
	Ledger   ports.RevocationLedger

	Auth           *services.AuthService
	UserService    *services.UserService
	ProductService ports.ProductService
	OrderService   ports.OrderService
}

// New opens the configured storage and builds the services on top of it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		a.Users, a.Products, a.Orders, a.Ledger = store.Users, store.Products, store.Orders, store.Revocations
		log.Warn().Msg("using in-memory storage; data is lost on restart")
	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		a.Users = postgres.NewUserRepository(db)
		a.Products = postgres.NewProductRepository(db)
		a.Orders = postgres.NewOrderRepository(db)
		a.Ledger = postgres.NewRevocationRepository(db)
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	if cfg.UsesDevSecret() {
		log.Warn().Msg("JWT_SECRET is not set; signing tokens with the development secret")
	}
	issuer, err := token.NewJWTIssuer(cfg.Secret())
	if err != nil {
		a.Close()
		return nil, err
	}

	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	a.Auth = services.NewAuthService(a.Users, hasher, issuer, a.Ledger, cfg.JWTExpiresIn)
	a.UserService = services.NewUserService(a.Users, hasher)
	a.ProductService = services.NewProductService(a.Products, a.Users)
	a.OrderService = services.NewOrderService(a.Products, a.Orders, a.Users)
	return a, nil
}

// Migrate applies schema migrations; it is a no-op for memory storage.
func (a *App) Migrate(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return postgres.Migrate(ctx, a.db)
}

func (a *App) Ready(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.PingContext(ctx)
}

func (a *App) Handler() http.Handler {
	return handler.NewHandler(handler.RouterOptions{
		Auth:               a.Auth,
		Sessions:           handler.NewSessionHandler(a.Auth),
		Users:              handler.NewUserHandler(a.UserService),
		Products:           handler.NewProductHandler(a.ProductService),
		Orders:             handler.NewOrderHandler(a.OrderService),
		AllowedOrigins:     a.cfg.AllowedOrigins,
		RateLimitPerMinute: a.cfg.RateLimitPerMinute,
		Ready:              a.Ready,
		ServiceName:        ServiceName,
	})
}

func (a *App) Sweeper(logger zerolog.Logger) *services.Sweeper {
	return services.NewSweeper(a.Ledger, a.cfg.TokenSweepInterval, logger)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
