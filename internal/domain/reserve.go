package domain

import (
	"github.com/shopspring/decimal"
)

// RoundingMode selects how a reserve is quantized.
type RoundingMode int

const (
	// RoundHalfUp rounds to the nearest value, ties away from zero.
	RoundHalfUp RoundingMode = iota
	// RoundCeiling always rounds toward positive infinity.
	RoundCeiling
)

func (m RoundingMode) String() string {
	if m == RoundCeiling {
		return "ceiling"
	}
	return "half_up"
}

// ReservePolicy pairs a rounding mode with the number of decimal places kept.
type ReservePolicy struct {
	Name      string
	Mode      RoundingMode
	Precision int32
}

var (
	// CeilingReserve is used by the current wallet, escrow and joint-wallet flows.
	CeilingReserve = ReservePolicy{Name: "ceiling", Mode: RoundCeiling, Precision: 1}
	// HalfUpReserve is used by the legacy escrow flow.
	HalfUpReserve = ReservePolicy{Name: "half_up", Mode: RoundHalfUp, Precision: 4}
)

const (
	// EscrowEntryCount covers 1 trustline, 2 signers and 5 data entries.
	EscrowEntryCount = 8
	// LegacyEscrowEntryCount is the entry count the legacy escrow flow reserves for.
	LegacyEscrowEntryCount = 3
)

// ReserveCalculator computes minimum native balances from protocol constants.
type ReserveCalculator struct {
	BaseReserve decimal.Decimal
	PerTxFee    decimal.Decimal
}

// NewReserveCalculator creates a ReserveCalculator.
func NewReserveCalculator(baseReserve, perTxFee decimal.Decimal) ReserveCalculator {
	return ReserveCalculator{BaseReserve: baseReserve, PerTxFee: perTxFee}
}

// Calculate returns (2 + entries) * base_reserve + txCount * per_tx_fee quantized by policy.
// Negative inputs are rejected for every policy.
func (c ReserveCalculator) Calculate(entries int, txCount decimal.Decimal, policy ReservePolicy) (decimal.Decimal, error) {
	if entries < 0 {
		return decimal.Zero, NewError(ErrInvalidValue, "entry count must not be negative, got %d", entries)
	}
	if txCount.IsNegative() {
		return decimal.Zero, NewError(ErrInvalidValue, "transaction count must not be negative, got %s", txCount)
	}

	raw := decimal.NewFromInt(int64(2 + entries)).Mul(c.BaseReserve).Add(txCount.Mul(c.PerTxFee))

	switch policy.Mode {
	case RoundCeiling:
		return raw.RoundCeil(policy.Precision), nil
	default:
		return raw.Round(policy.Precision), nil
	}
}
