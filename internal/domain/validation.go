package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/strkey"
)

// Validation constants
const (
	MaxDataNameLength  = 64
	MaxDataValueLength = 64
	MaxMemoTextLength  = 28
	AmountPrecision    = 7
)

// ValidateAddress checks that address is an encoded ed25519 account key.
func ValidateAddress(field, address string) error {
	if address == "" {
		return NewError(ErrMissingParameter, "Parameter '%s' not found", field)
	}
	if !strkey.IsValidEd25519PublicKey(address) {
		return NewError(ErrInvalidValue, "%s is not a valid address", address)
	}
	return nil
}

// ValidateAmount rejects negative amounts and more than 7 decimal places.
func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return NewError(ErrInvalidValue, "%s must not be negative", field)
	}
	if !amount.Equal(amount.Truncate(AmountPrecision)) {
		return NewError(ErrInvalidValue, "%s supports at most %d decimal places", field, AmountPrecision)
	}
	return nil
}

// ValidatePositiveAmount is ValidateAmount that also rejects zero.
func ValidatePositiveAmount(field string, amount decimal.Decimal) error {
	if err := ValidateAmount(field, amount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return NewError(ErrInvalidValue, "%s must be greater than 0", field)
	}
	return nil
}

// expirationLayouts are the ISO-8601 date-time forms that carry an offset, in
// extended and basic notation. Fractional seconds are accepted by time.Parse.
var expirationLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04:05Z0700",
	"20060102T150405Z0700",
	"20060102T1504Z0700",
}

// ParseExpirationDate parses an ISO-8601 date-time that carries an explicit offset.
// Naive date-times are rejected.
func ParseExpirationDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	var lastErr error
	for _, layout := range expirationLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, WrapError(ErrInvalidValue, lastErr,
		"expiration_date %q must be an ISO-8601 date-time with a UTC offset", value)
}

// ValidateDataEntry enforces the ledger's size limits on data entries.
func ValidateDataEntry(name string, value []byte) error {
	if name == "" || len(name) > MaxDataNameLength {
		return NewError(ErrInvalidValue, "data entry name %q must be 1 to %d bytes", name, MaxDataNameLength)
	}
	if len(value) > MaxDataValueLength {
		return NewError(ErrInvalidValue, "data entry %q value exceeds %d bytes", name, MaxDataValueLength)
	}
	return nil
}

// ValidateMemo enforces the text memo length limit.
func ValidateMemo(memo string) error {
	if len(memo) > MaxMemoTextLength {
		return NewError(ErrInvalidValue, "memo must be at most %d bytes", MaxMemoTextLength)
	}
	return nil
}

// FormatAmount renders an amount with the ledger's seven decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountPrecision)
}
