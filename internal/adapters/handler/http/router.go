package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultRateLimit = 100
	requestTimeout   = 30 * time.Second
)

type RouterOptions struct {
	Auth     ports.AuthService
	Sessions *SessionHandler
	Users    *UserHandler
	Products *ProductHandler
	Orders   *OrderHandler

	AllowedOrigins     []string
	RateLimitPerMinute int
	// Ready reports whether backing storage is reachable; nil means always ready.
	Ready       func(ctx context.Context) error
	ServiceName string
}

func NewHandler(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	allowed := opts.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         int((10 * time.Minute).Seconds()),
	}))

	limit := opts.RateLimitPerMinute
	if limit <= 0 {
		limit = defaultRateLimit
	}
	r.Use(httprate.LimitByIP(limit, time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ready != nil {
			if err := opts.Ready(r.Context()); err != nil {
				log.Warn().Err(err).Msg("readiness check failed")
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	requireAuth := RequireAuth(opts.Auth)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", opts.Sessions.Login)
		r.With(requireAuth).Delete("/", opts.Sessions.Logout)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", opts.Users.Register)
		r.Get("/", opts.Users.List)
		r.With(requireAuth).Get("/me", opts.Users.GetMe)
		r.Get("/{id}", opts.Users.Get)
		r.With(requireAuth).Patch("/{id}", opts.Users.Update)
		r.With(requireAuth).Delete("/{id}", opts.Users.Delete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", opts.Products.List)
		r.Get("/{id}", opts.Products.Get)
		r.With(requireAuth).Post("/", opts.Products.Create)
		r.With(requireAuth).Patch("/{id}", opts.Products.Update)
		r.With(requireAuth).Delete("/{id}", opts.Products.Delete)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", opts.Orders.List)
		r.Post("/", opts.Orders.Create)
		r.Get("/{id}", opts.Orders.Get)
		r.Patch("/{id}", opts.Orders.Update)
		r.Delete("/{id}", opts.Orders.Delete)
	})

	name := opts.ServiceName
	if name == "" {
		name = "digimarket"
	}
	return otelhttp.NewHandler(r, name)
}
