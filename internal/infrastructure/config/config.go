package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/network"

	"github.com/iho/escrowledger/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Platform
	AssetCode         string          `env:"ASSET_CODE"            envDefault:"HTKN"`
	Issuer            string          `env:"ISSUER"`
	StellarNetwork    string          `env:"STELLAR_NETWORK"       envDefault:"TESTNET"`
	NetworkPassphrase string          `env:"NETWORK_PASSPHRASE"`
	Host              string          `env:"HOST"                  envDefault:"http://localhost:8080"`
	TaxCollector      string          `env:"TAX_COLLECTOR_ADDRESS"`
	LimitAsset        string          `env:"LIMIT_ASSET"`
	BaseReserve       decimal.Decimal `env:"BASE_RESERVE"          envDefault:"0.5"`
	PerTxFee          decimal.Decimal `env:"PER_TX_FEE"            envDefault:"0.00001"`

	// Ledger gateway
	HorizonURL        string        `env:"HORIZON_URL"         envDefault:"https://horizon-testnet.stellar.org"`
	HorizonTimeout    time.Duration `env:"HORIZON_TIMEOUT"     envDefault:"15s"`
	HorizonMaxRetries int           `env:"HORIZON_MAX_RETRIES" envDefault:"3"`

	// Memo search
	MemoSearchMaxPages int `env:"MEMO_SEARCH_MAX_PAGES" envDefault:"10"`
	MemoSearchPageSize int `env:"MEMO_SEARCH_PAGE_SIZE" envDefault:"200"`

	// Database (optional - enables the envelope audit trail)
	DatabaseURL      string        `env:"DATABASE_URL"`
	DatabaseMaxConns int           `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	DatabaseMinConns int           `env:"DATABASE_MIN_CONNS" envDefault:"1"`
	DatabaseTimeout  time.Duration `env:"DATABASE_TIMEOUT"   envDefault:"30s"`
	MigrationsPath   string        `env:"MIGRATIONS_PATH"    envDefault:"migrations"`

	// Redis (optional - enables Idempotency-Key handling)
	RedisURL string `env:"REDIS_URL"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Rate limiting (0 disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Authentication (optional - leave empty to disable)
	JWTSecret     string        `env:"JWT_SECRET"       envDefault:""`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION"   envDefault:"24h"`
	AuthEnabled   bool          `env:"AUTH_ENABLED"     envDefault:"false"`
}

// Load reads the optional .env file named by ENV_FILE (default ".env") and
// then parses the environment.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Issuer == "" {
		return errors.New("ISSUER is required")
	}
	if c.NetworkPassphrase == "" {
		passphrase, err := passphraseFor(c.StellarNetwork)
		if err != nil {
			return err
		}
		c.NetworkPassphrase = passphrase
	}
	if c.BaseReserve.IsNegative() || c.PerTxFee.IsNegative() {
		return errors.New("BASE_RESERVE and PER_TX_FEE must not be negative")
	}
	if c.AuthEnabled && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when AUTH_ENABLED is set")
	}
	return nil
}

func passphraseFor(name string) (string, error) {
	switch strings.ToUpper(name) {
	case "TESTNET":
		return network.TestNetworkPassphrase, nil
	case "PUBLIC":
		return network.PublicNetworkPassphrase, nil
	default:
		return "", fmt.Errorf("unknown STELLAR_NETWORK %q", name)
	}
}

// Platform converts the platform settings into the value passed to every use case.
func (c *Config) Platform() (domain.Platform, error) {
	platform := domain.Platform{
		Asset:             domain.Asset{Code: c.AssetCode, Issuer: c.Issuer},
		TaxCollector:      c.TaxCollector,
		Host:              c.Host,
		NetworkPassphrase: c.NetworkPassphrase,
		Reserve:           domain.NewReserveCalculator(c.BaseReserve, c.PerTxFee),
	}

	if c.LimitAsset != "" {
		limit, err := decimal.NewFromString(c.LimitAsset)
		if err != nil {
			return domain.Platform{}, fmt.Errorf("invalid LIMIT_ASSET %q: %w", c.LimitAsset, err)
		}
		platform.TrustLimit = &limit
	}

	return platform, nil
}
