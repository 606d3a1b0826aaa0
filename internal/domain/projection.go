package domain

import (
	"github.com/shopspring/decimal"
)

// AssetBalance is the simplified balance of one asset.
type AssetBalance struct {
	Balance decimal.Decimal `json:"balance"`
	Issuer  string          `json:"issuer"`
}

// ActiveSigner is a signer that still carries signing weight.
type ActiveSigner struct {
	PublicKey string `json:"public_key"`
	Weight    int32  `json:"weight"`
}

// OperationCategory groups ledger operations by the threshold level they require.
type OperationCategory string

const (
	CategoryAllowTrust    OperationCategory = "allow_trust"
	CategorySetSigner     OperationCategory = "set_signer"
	CategorySetThreshold  OperationCategory = "set_threshold"
	CategoryPayment       OperationCategory = "payment"
	CategoryChangeTrust   OperationCategory = "change_trust"
	CategoryManageData    OperationCategory = "manage_data"
	CategoryAccountMerge  OperationCategory = "account_merge"
	CategoryCreateAccount OperationCategory = "create_account"
)

// ProjectBalances reduces raw balance lines to a map keyed by asset code.
// An empty input is an error, never an empty map.
func ProjectBalances(balances []Balance) (map[string]AssetBalance, error) {
	if len(balances) == 0 {
		return nil, ErrEmptyBalances
	}

	out := make(map[string]AssetBalance, len(balances))
	for _, b := range balances {
		asset := b.Asset()
		out[asset.Code] = AssetBalance{Balance: b.Balance, Issuer: asset.Issuer}
	}

	return out, nil
}

// ActiveSigners drops revoked signers (weight 0).
func ActiveSigners(signers []Signer) []ActiveSigner {
	out := make([]ActiveSigner, 0, len(signers))
	for _, s := range signers {
		if s.Weight == 0 {
			continue
		}
		out = append(out, ActiveSigner{PublicKey: s.Key, Weight: s.Weight})
	}
	return out
}

// SignerKeys returns the public keys of the given signers in order.
func SignerKeys(signers []ActiveSigner) []string {
	keys := make([]string, 0, len(signers))
	for _, s := range signers {
		keys = append(keys, s.PublicKey)
	}
	return keys
}

// ThresholdWeight returns the threshold an operation category must meet.
func ThresholdWeight(t Thresholds, category OperationCategory) int32 {
	switch category {
	case CategoryAllowTrust:
		return t.Low
	case CategorySetSigner, CategorySetThreshold:
		return t.High
	default:
		return t.Medium
	}
}
