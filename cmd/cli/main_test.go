package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/infrastructure/auth"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestReserveCmd(t *testing.T) {
	out, err := execute(t, "reserve", "--entries", "3", "--transactions", "11", "--base-reserve", "0.5", "--per-tx-fee", "0.00001")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if !strings.Contains(out, "ceiling") || !strings.Contains(out, "2.6") {
		t.Fatalf("expected ceiling result 2.6, got:\n%s", out)
	}
	if !strings.Contains(out, "half_up") || !strings.Contains(out, "2.5001") {
		t.Fatalf("expected half-up result 2.5001, got:\n%s", out)
	}
}

func TestReserveCmd_Negative(t *testing.T) {
	if _, err := execute(t, "reserve", "--entries=-1"); err == nil {
		t.Fatalf("expected negative entry count to fail")
	}
}

func TestWalletShowCmd(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/wallets/GWALLET" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"address":"GWALLET","balances":{"XLM":{"balance":"2.5"}}}`))
	}))
	defer server.Close()

	out, err := execute(t, "--url", server.URL, "--token", "tkn", "wallet", "show", "GWALLET")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if gotAuth != "Bearer tkn" {
		t.Fatalf("expected bearer token to be forwarded, got %q", gotAuth)
	}
	if !strings.Contains(out, "\n  \"address\": \"GWALLET\"") {
		t.Fatalf("expected indented json, got:\n%s", out)
	}
}

func TestEscrowShowCmd_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"NotFound","message":"account GMISSING not found"}`))
	}))
	defer server.Close()

	_, err := execute(t, "--url", server.URL, "escrow", "show", "GMISSING")
	if err == nil || !strings.Contains(err.Error(), "account GMISSING not found") {
		t.Fatalf("expected server message in error, got %v", err)
	}
}

func TestEscrowCloseCmd(t *testing.T) {
	var payload closePayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/escrows/GESCROW/close" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"escrow_address":"GESCROW","xdr":"AAAA"}`))
	}))
	defer server.Close()

	out, err := execute(t, "--url", server.URL, "escrow", "close", "GESCROW", "--party", "GA=3", "--party", "GB=2.5")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if len(payload.Parties) != 2 || payload.Parties[1].Address != "GB" || payload.Parties[1].Amount != "2.5" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if !strings.Contains(out, "\"xdr\": \"AAAA\"") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestParsePartyFlags(t *testing.T) {
	if payload, err := parsePartyFlags(nil); err != nil || payload.Parties != nil {
		t.Fatalf("expected empty payload, got %+v err=%v", payload, err)
	}
	if _, err := parsePartyFlags([]string{"GA"}); err == nil {
		t.Fatalf("expected missing amount to fail")
	}
	if _, err := parsePartyFlags([]string{"GA=lots"}); err == nil {
		t.Fatalf("expected invalid amount to fail")
	}
}

func TestTokenIssueCmd(t *testing.T) {
	out, err := execute(t, "token", "issue", "--subject", "alice", "--role", "viewer", "--secret", "s3cret", "--ttl", "1h")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	claims, err := auth.NewJWTManager("s3cret", time.Hour).Verify(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("minted token does not verify: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != domain.RoleViewer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenIssueCmd_Validation(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := execute(t, "token", "issue", "--subject", "alice"); err == nil {
		t.Fatalf("expected missing secret to fail")
	}
	if _, err := execute(t, "token", "issue", "--subject", "alice", "--secret", "x", "--role", "root"); err == nil {
		t.Fatalf("expected unknown role to fail")
	}
}
