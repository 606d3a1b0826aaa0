package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/escrowledger/internal/adapter/http"
	"github.com/iho/escrowledger/internal/adapter/http/handler"
	"github.com/iho/escrowledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/escrowledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/escrowledger/internal/adapter/repository/redis"
	"github.com/iho/escrowledger/internal/adapter/stellar"
	"github.com/iho/escrowledger/internal/infrastructure/auth"
	"github.com/iho/escrowledger/internal/infrastructure/config"
	"github.com/iho/escrowledger/internal/infrastructure/logger"
	"github.com/iho/escrowledger/internal/infrastructure/metrics"
	"github.com/iho/escrowledger/internal/infrastructure/postgres"
	"github.com/iho/escrowledger/internal/infrastructure/redis"
	"github.com/iho/escrowledger/internal/usecase"
)

const limiterIdleTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "escrowledger"})
	log.Logger = appLog

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLog); err != nil {
		appLog.Fatal().Err(err).Msg("server failed")
	}
}

// app is the wired HTTP service plus whatever must be closed on shutdown.
type app struct {
	handler     http.Handler
	rateLimiter *middleware.RateLimiter
	closers     []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	a, err := newApp(ctx, cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer a.Close()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	if a.rateLimiter != nil {
		go sweepLimiters(ctx, a.rateLimiter, logger)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Str("horizon", cfg.HorizonURL).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer) (*app, error) {
	a := &app{}

	platform, err := cfg.Platform()
	if err != nil {
		return nil, err
	}

	m := metrics.New(reg)
	gateway := stellar.NewHorizonClient(stellar.HorizonConfig{
		URL:        cfg.HorizonURL,
		Timeout:    cfg.HorizonTimeout,
		MaxRetries: cfg.HorizonMaxRetries,
	}, logger, m)
	encoder := stellar.NewEncoder(platform.NetworkPassphrase, cfg.PerTxFee)

	health := handler.NewHealthHandler().WithCheck("horizon", gateway)

	var auditor usecase.EnvelopeAuditor = postgresRepo.NewNullEnvelopeAuditor()
	if cfg.DatabaseURL != "" {
		pool, err := openAuditStore(ctx, cfg, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		auditor = postgresRepo.NewEnvelopeAuditRepository(pool, postgresRepo.NewULIDGenerator(), postgresRepo.NewRetrier().WithLogger(logger))
		health.WithCheck("postgres", pool)
	}

	var idempotencyStore usecase.IdempotencyStore
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { closeRedis(client, logger) })
		store := redisRepo.NewIdempotencyStore(client, redisRepo.DefaultIdempotencyPrefix)
		idempotencyStore = store
		health.WithCheck("redis", store)
		logger.Info().Msg("connected to redis")
	}

	issuer := usecase.NewEnvelopeIssuer(encoder, auditor, m, logger)
	walletUC := usecase.NewWalletUseCase(gateway, issuer, platform)
	escrowUC := usecase.NewEscrowUseCase(gateway, issuer, platform)
	paymentUC := usecase.NewPaymentUseCase(gateway, issuer, m, platform, usecase.MemoSearchConfig{
		MaxPages: cfg.MemoSearchMaxPages,
		PageSize: cfg.MemoSearchPageSize,
	})
	transactionUC := usecase.NewTransactionUseCase(gateway, issuer)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	metricsHandler := promhttp.Handler()
	if gatherer, ok := reg.(prometheus.Gatherer); ok {
		metricsHandler = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:      handler.NewWalletHandler(walletUC),
		EscrowHandler:      handler.NewEscrowHandler(escrowUC, platform),
		PaymentHandler:     handler.NewPaymentHandler(paymentUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		ReserveHandler:     handler.NewReserveHandler(platform.Reserve),
		HealthHandler:      health,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		JWTManager:         jwtManager,
		RateLimiter:        a.rateLimiter,
		Logger:             logger,
		MetricsHandler:     metricsHandler,
	})

	return a, nil
}

func openAuditStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, error) {
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return nil, err
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("connected to postgres, envelope audit enabled")
	return pool, nil
}

func closeRedis(client *goredis.Client, logger zerolog.Logger) {
	if err := client.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close redis client")
	}
}

func sweepLimiters(ctx context.Context, rl *middleware.RateLimiter, logger zerolog.Logger) {
	ticker := time.NewTicker(limiterIdleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := rl.Cleanup(limiterIdleTimeout); removed > 0 {
				logger.Debug().Int("removed", removed).Msg("rate limiters swept")
			}
		}
	}
}
