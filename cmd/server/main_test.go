package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/network"

	"github.com/iho/escrowledger/internal/infrastructure/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AssetCode:          "HTKN",
		Issuer:             "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX2H",
		NetworkPassphrase:  network.TestNetworkPassphrase,
		Host:               "http://api.test",
		BaseReserve:        decimal.RequireFromString("0.5"),
		PerTxFee:           decimal.RequireFromString("0.00001"),
		HorizonURL:         "http://127.0.0.1:1",
		HorizonTimeout:     time.Second,
		MemoSearchMaxPages: 10,
		MemoSearchPageSize: 200,
		IdempotencyTTL:     time.Hour,
	}
}

func TestNewApp_ServesReserveWithoutOptionalStores(t *testing.T) {
	a, err := newApp(context.Background(), testConfig(), zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reserve?entries=8&transactions=5&policy=ceiling", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"minimum_native_balance":"5.1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if a.rateLimiter != nil {
		t.Fatalf("expected rate limiting to be off by default")
	}
}

func TestNewApp_ReadinessFailsWhenHorizonIsDown(t *testing.T) {
	a, err := newApp(context.Background(), testConfig(), zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestNewApp_WiresRedisAndRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.RedisURL = fmt.Sprintf("redis://%s", mr.Addr())
	cfg.RateLimitRPS = 5
	cfg.RateLimitBurst = 5

	a, err := newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	if a.rateLimiter == nil {
		t.Fatalf("expected rate limiter to be configured")
	}
	if len(a.closers) != 1 {
		t.Fatalf("expected redis client to be registered for shutdown, got %d closers", len(a.closers))
	}
}

func TestNewApp_InvalidTrustLimit(t *testing.T) {
	cfg := testConfig()
	cfg.LimitAsset = "not-a-number"

	if _, err := newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Fatalf("expected error for invalid trust limit")
	}
}

func TestNewApp_MetricsEndpointUsesRegistry(t *testing.T) {
	a, err := newApp(context.Background(), testConfig(), zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	// a failed readiness probe records a ledger request
	a.handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ready", nil))

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "escrowledger_ledger_requests_total") {
		t.Fatalf("expected ledger metrics to be exported, got %s", rec.Body.String())
	}
}
