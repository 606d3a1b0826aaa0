package domain

import (
	"github.com/shopspring/decimal"
)

const (
	// NativeAssetCode is the code the native asset is reported under.
	NativeAssetCode = "XLM"
	// NativeIssuer is reported as the issuer of the native asset.
	NativeIssuer = "native"

	AssetTypeNative = "native"
)

// Asset identifies a ledger asset by code and issuer.
type Asset struct {
	Code   string
	Issuer string
}

// NativeAsset returns the ledger's native asset.
func NativeAsset() Asset {
	return Asset{Code: NativeAssetCode, Issuer: NativeIssuer}
}

// IsNative reports whether a is the native asset.
func (a Asset) IsNative() bool {
	return a.Issuer == NativeIssuer || a.Issuer == ""
}

func (a Asset) String() string {
	if a.IsNative() {
		return NativeAssetCode
	}
	return a.Code + ":" + a.Issuer
}

// Balance is one raw balance line of a ledger account.
type Balance struct {
	AssetType   string
	AssetCode   string
	AssetIssuer string
	Balance     decimal.Decimal
	Limit       decimal.Decimal
}

// Asset returns the asset held by the balance line.
func (b Balance) Asset() Asset {
	if b.AssetType == AssetTypeNative {
		return NativeAsset()
	}
	return Asset{Code: b.AssetCode, Issuer: b.AssetIssuer}
}

// Signer is a raw signer record of a ledger account.
type Signer struct {
	Key    string
	Type   string
	Weight int32
}

// Thresholds are the per-category signature thresholds of an account.
type Thresholds struct {
	Low    int32
	Medium int32
	High   int32
}

// Account is the ledger state of an account as read from the network.
type Account struct {
	Data       map[string][]byte
	Address    string
	Balances   []Balance
	Signers    []Signer
	Sequence   int64
	Thresholds Thresholds
}

// BalanceOf returns the balance held in asset and whether a line exists for it.
func (a *Account) BalanceOf(asset Asset) (decimal.Decimal, bool) {
	for _, b := range a.Balances {
		held := b.Asset()
		if asset.IsNative() && held.IsNative() {
			return b.Balance, true
		}
		if held.Code == asset.Code && held.Issuer == asset.Issuer {
			return b.Balance, true
		}
	}
	return decimal.Zero, false
}

// Trusts reports whether the account holds a trustline for asset.
func (a *Account) Trusts(asset Asset) bool {
	if asset.IsNative() {
		return true
	}
	_, ok := a.BalanceOf(asset)
	return ok
}

// DataString returns the data entry under key as a string.
func (a *Account) DataString(key string) (string, bool) {
	v, ok := a.Data[key]
	if !ok {
		return "", false
	}
	return string(v), true
}
