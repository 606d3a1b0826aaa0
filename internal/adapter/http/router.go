package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/escrowledger/internal/adapter/http/handler"
	"github.com/iho/escrowledger/internal/adapter/http/middleware"
	"github.com/iho/escrowledger/internal/infrastructure/auth"
	"github.com/iho/escrowledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler      *handler.WalletHandler
	EscrowHandler      *handler.EscrowHandler
	PaymentHandler     *handler.PaymentHandler
	TransactionHandler *handler.TransactionHandler
	ReserveHandler     *handler.ReserveHandler
	HealthHandler      *handler.HealthHandler

	// Optional. Nil disables the Idempotency-Key middleware.
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	// Optional. Nil disables bearer-token auth on /api/v1.
	JWTManager *auth.JWTManager

	RateLimiter    *middleware.RateLimiter
	Logger         zerolog.Logger
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			r.Use(middleware.RequireIssuer)
		}

		// Idempotency middleware for envelope-building requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		if cfg.JWTManager != nil {
			r.Get("/auth/me", handler.NewAuthHandler(middleware.GetOperatorFromContext).Me)
		}

		r.Get("/reserve", cfg.ReserveHandler.Calculate)

		// Wallets (Flow A)
		r.Route("/wallets", func(r chi.Router) {
			r.Post("/", cfg.WalletHandler.Create)
			r.Post("/trust", cfg.WalletHandler.CreateTrust)
			r.Get("/{address}", cfg.WalletHandler.Get)
		})

		// Escrows (Flows B and D)
		r.Route("/escrows", func(r chi.Router) {
			r.Post("/", cfg.EscrowHandler.Generate)
			r.Post("/legacy", cfg.EscrowHandler.GenerateLegacy)
			r.Get("/{address}", cfg.EscrowHandler.Get)
			r.Post("/{address}/close", cfg.EscrowHandler.Close)
		})

		r.Post("/joint-wallets", cfg.EscrowHandler.GenerateJoint)

		// Payments (Flow C)
		r.Post("/payments", cfg.PaymentHandler.Generate)

		// Signed envelopes
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Submit)
			r.Get("/{hash}", cfg.TransactionHandler.Get)
		})
	})

	return r
}
