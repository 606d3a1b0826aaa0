package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Platform is the immutable configuration every use case is built with.
type Platform struct {
	TrustLimit        *decimal.Decimal
	Asset             Asset
	TaxCollector      string
	Host              string
	NetworkPassphrase string
	Reserve           ReserveCalculator
}

// WalletURL is the absolute URL of a wallet resource.
func (p Platform) WalletURL(address string) string {
	return p.url("/api/v1/wallets/" + address)
}

// EscrowURL is the absolute URL of an escrow resource.
func (p Platform) EscrowURL(address string) string {
	return p.url("/api/v1/escrows/" + address)
}

// TransactionURL is where signed envelopes are submitted.
func (p Platform) TransactionURL() string {
	return p.url("/api/v1/transactions")
}

func (p Platform) url(path string) string {
	return strings.TrimRight(p.Host, "/") + path
}
