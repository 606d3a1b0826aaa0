package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/escrowledger/internal/domain"
)

// WalletUseCase handles wallet creation and inspection.
type WalletUseCase struct {
	gateway  LedgerGateway
	issuer   *EnvelopeIssuer
	platform domain.Platform
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(gateway LedgerGateway, issuer *EnvelopeIssuer, platform domain.Platform) *WalletUseCase {
	return &WalletUseCase{
		gateway:  gateway,
		issuer:   issuer,
		platform: platform,
	}
}

// CreateWalletInput represents input for creating a wallet.
// A nil StartingBalance funds the wallet with its minimum reserve.
type CreateWalletInput struct {
	StartingBalance *decimal.Decimal
	FunderAddress   string
	WalletAddress   string
}

// WalletResult is the unsigned wallet creation envelope.
type WalletResult struct {
	Address         string
	URL             string
	TransactionURL  string
	XDR             string
	TransactionHash string
	Signers         []string
	StartingBalance decimal.Decimal
}

// WalletView is the projected state of any account.
type WalletView struct {
	Balances   map[string]domain.AssetBalance
	Data       map[string]string
	Address    string
	Signers    []domain.ActiveSigner
	Thresholds domain.Thresholds
	Sequence   int64
}

// CreateWallet builds the envelope that funds a new wallet.
func (uc *WalletUseCase) CreateWallet(ctx context.Context, input CreateWalletInput) (*WalletResult, error) {
	return uc.create(ctx, input, false)
}

// CreateTrustWallet builds the envelope that funds a new wallet trusting the platform asset.
func (uc *WalletUseCase) CreateTrustWallet(ctx context.Context, input CreateWalletInput) (*WalletResult, error) {
	return uc.create(ctx, input, true)
}

func (uc *WalletUseCase) create(ctx context.Context, input CreateWalletInput, trust bool) (*WalletResult, error) {
	if err := validateAddresses("funder_address", input.FunderAddress, "wallet_address", input.WalletAddress); err != nil {
		return nil, err
	}
	if input.FunderAddress == input.WalletAddress {
		return nil, domain.NewError(domain.ErrInvalidValue, "wallet_address must differ from funder_address")
	}

	var starting decimal.Decimal
	if input.StartingBalance != nil {
		starting = *input.StartingBalance
	} else {
		entries := 0
		if trust {
			entries = 1
		}
		reserve, err := uc.platform.Reserve.Calculate(entries, decimal.NewFromInt(1), domain.CeilingReserve)
		if err != nil {
			return nil, err
		}
		starting = reserve
	}

	ops, err := domain.PlanWallet(domain.WalletIntent{
		Funder:          input.FunderAddress,
		Wallet:          input.WalletAddress,
		StartingBalance: starting,
		Trust:           trust,
		Asset:           uc.platform.Asset,
		TrustLimit:      uc.platform.TrustLimit,
	})
	if err != nil {
		return nil, err
	}

	funder, err := uc.gateway.FetchAccount(ctx, input.FunderAddress)
	if err != nil {
		return nil, err
	}

	flow := FlowWallet
	signers := []string{input.FunderAddress}
	if trust {
		flow = FlowTrustWallet
		signers = append(signers, input.WalletAddress)
	}

	env, err := uc.issuer.Issue(ctx, flow, domain.UnsignedTx{
		Source:     funder.Address,
		Sequence:   funder.Sequence,
		Operations: ops,
	}, AsBadRequest)
	if err != nil {
		return nil, err
	}

	return &WalletResult{
		Address:         input.WalletAddress,
		URL:             uc.platform.WalletURL(input.WalletAddress),
		TransactionURL:  uc.platform.TransactionURL(),
		Signers:         signers,
		XDR:             env.XDR,
		TransactionHash: env.Hash,
		StartingBalance: starting,
	}, nil
}

// GetWallet returns the balance, signer and threshold projection of an account.
func (uc *WalletUseCase) GetWallet(ctx context.Context, address string) (*WalletView, error) {
	if err := domain.ValidateAddress("address", address); err != nil {
		return nil, err
	}

	acc, err := uc.gateway.FetchAccount(ctx, address)
	if err != nil {
		return nil, err
	}

	balances, err := domain.ProjectBalances(acc.Balances)
	if err != nil {
		return nil, err
	}

	data := make(map[string]string, len(acc.Data))
	for k, v := range acc.Data {
		data[k] = string(v)
	}

	return &WalletView{
		Address:    acc.Address,
		Sequence:   acc.Sequence,
		Balances:   balances,
		Signers:    domain.ActiveSigners(acc.Signers),
		Thresholds: acc.Thresholds,
		Data:       data,
	}, nil
}
