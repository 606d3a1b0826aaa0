package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Data entry keys written on escrow accounts.
const (
	DataKeyCreator            = "creator_address"
	DataKeyDestination        = "destination_address"
	DataKeyProvider           = "provider_address"
	DataKeyExpiration         = "expiration_date"
	DataKeyCostPerTransaction = "cost_per_transaction"
)

// EscrowWalletDetail is an escrow account with its platform metadata decoded.
type EscrowWalletDetail struct {
	Balances           map[string]AssetBalance
	Data               map[string]string
	Address            string
	CreatorAddress     string
	ProviderAddress    string
	DestinationAddress string
	ExpirationDate     string
	CostPerTransaction string
	Signers            []ActiveSigner
	Thresholds         Thresholds
	Sequence           int64
}

// NewEscrowWalletDetail derives the escrow view of acc.
func NewEscrowWalletDetail(acc *Account) (*EscrowWalletDetail, error) {
	balances, err := ProjectBalances(acc.Balances)
	if err != nil {
		return nil, err
	}

	data := make(map[string]string, len(acc.Data))
	for k, v := range acc.Data {
		data[k] = string(v)
	}

	return &EscrowWalletDetail{
		Address:            acc.Address,
		Sequence:           acc.Sequence,
		Balances:           balances,
		Signers:            ActiveSigners(acc.Signers),
		Thresholds:         acc.Thresholds,
		Data:               data,
		CreatorAddress:     data[DataKeyCreator],
		ProviderAddress:    data[DataKeyProvider],
		DestinationAddress: data[DataKeyDestination],
		ExpirationDate:     data[DataKeyExpiration],
		CostPerTransaction: data[DataKeyCostPerTransaction],
	}, nil
}

// AssetBalance returns the escrow's balance of asset and whether it holds a trustline.
func (e *EscrowWalletDetail) AssetBalance(asset Asset) (decimal.Decimal, bool) {
	b, ok := e.Balances[asset.Code]
	if !ok || (!asset.IsNative() && b.Issuer != asset.Issuer) {
		return decimal.Zero, false
	}
	return b.Balance, true
}

// DataKeys returns the escrow's data entry names in sorted order.
func (e *EscrowWalletDetail) DataKeys() []string {
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Party is a payout or pledge share of an escrow.
type Party struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// SumParties totals the party amounts.
func SumParties(parties []Party) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parties {
		total = total.Add(p.Amount)
	}
	return total
}

// IsMatchBalance reports whether the party amounts add up to balance exactly.
func IsMatchBalance(parties []Party, balance decimal.Decimal) bool {
	return SumParties(parties).Equal(balance)
}
