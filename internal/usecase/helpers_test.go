package usecase_test

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"

	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/usecase"
)

func newAddress() string { return keypair.MustRandom().Address() }

func testPlatform() domain.Platform {
	return domain.Platform{
		Asset:             domain.Asset{Code: "HTKN", Issuer: newAddress()},
		TaxCollector:      newAddress(),
		Host:              "http://api.test",
		NetworkPassphrase: "Test SDF Network ; September 2015",
		Reserve:           domain.NewReserveCalculator(decimal.RequireFromString("0.5"), decimal.RequireFromString("0.00001")),
	}
}

func newIssuer(encoder usecase.EnvelopeEncoder) *usecase.EnvelopeIssuer {
	return usecase.NewEnvelopeIssuer(encoder, nil, nil, zerolog.Nop())
}

func nativeOnly(address string, seq int64) *domain.Account {
	return &domain.Account{
		Address:  address,
		Sequence: seq,
		Balances: []domain.Balance{{AssetType: domain.AssetTypeNative, Balance: decimal.NewFromInt(100)}},
		Signers:  []domain.Signer{{Key: address, Weight: 1}},
	}
}

func withAsset(acc *domain.Account, asset domain.Asset, amount decimal.Decimal) *domain.Account {
	acc.Balances = append(acc.Balances, domain.Balance{
		AssetType:   "credit_alphanum4",
		AssetCode:   asset.Code,
		AssetIssuer: asset.Issuer,
		Balance:     amount,
	})
	return acc
}

var testEnvelope = &domain.Envelope{XDR: "AAAA", Hash: "f00d"}
