package domain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewEscrowWalletDetail(t *testing.T) {
	t.Parallel()

	acc := &Account{
		Address:  "GESCROW",
		Sequence: 42,
		Balances: sampleBalances(),
		Signers: []Signer{
			{Key: "GESCROW", Weight: 0},
			{Key: "GCREATOR", Weight: 1},
			{Key: "GPROVIDER", Weight: 1},
		},
		Thresholds: Thresholds{Low: 2, Medium: 2, High: 2},
		Data: map[string][]byte{
			DataKeyCreator:            []byte("GCREATOR"),
			DataKeyProvider:           []byte("GPROVIDER"),
			DataKeyCostPerTransaction: []byte("50"),
		},
	}

	detail, err := NewEscrowWalletDetail(acc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.CreatorAddress != "GCREATOR" || detail.ProviderAddress != "GPROVIDER" || detail.DestinationAddress != "" {
		t.Fatalf("unexpected metadata: %+v", detail)
	}
	if !reflect.DeepEqual(SignerKeys(detail.Signers), []string{"GCREATOR", "GPROVIDER"}) {
		t.Fatalf("unexpected signers: %v", detail.Signers)
	}
	if !reflect.DeepEqual(detail.DataKeys(), []string{DataKeyCostPerTransaction, DataKeyCreator, DataKeyProvider}) {
		t.Fatalf("unexpected data keys: %v", detail.DataKeys())
	}

	bal, ok := detail.AssetBalance(Asset{Code: "HTKN", Issuer: "GISSUER"})
	if !ok || !bal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected 500 HTKN, got %s ok=%v", bal, ok)
	}
	if _, ok := detail.AssetBalance(Asset{Code: "HTKN", Issuer: "GFAKE"}); ok {
		t.Fatal("expected asset from another issuer to be untrusted")
	}
}

func TestNewEscrowWalletDetail_NoBalances(t *testing.T) {
	t.Parallel()

	if _, err := NewEscrowWalletDetail(&Account{Address: "GESCROW"}); !errors.Is(err, ErrEmptyBalances) {
		t.Fatalf("expected ErrEmptyBalances, got %v", err)
	}
}

func TestIsMatchBalance(t *testing.T) {
	t.Parallel()

	parties := []Party{
		{Address: "GA", Amount: decimal.RequireFromString("100.25")},
		{Address: "GB", Amount: decimal.RequireFromString("199.75")},
	}

	if !IsMatchBalance(parties, decimal.NewFromInt(300)) {
		t.Fatal("expected parties to match 300")
	}
	if IsMatchBalance(parties, decimal.RequireFromString("300.0000001")) {
		t.Fatal("expected mismatch")
	}
	if !IsMatchBalance(nil, decimal.Zero) {
		t.Fatal("expected empty parties to match a zero balance")
	}
}
