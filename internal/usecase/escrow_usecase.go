package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/escrowledger/internal/domain"
)

// escrowVariant pins the reserve policy of one escrow creation flow.
type escrowVariant struct {
	flow    string
	policy  domain.ReservePolicy
	entries int
}

var (
	currentEscrow = escrowVariant{flow: FlowEscrow, entries: domain.EscrowEntryCount, policy: domain.CeilingReserve}
	legacyEscrow  = escrowVariant{flow: FlowLegacyEscrow, entries: domain.LegacyEscrowEntryCount, policy: domain.HalfUpReserve}
)

// EscrowUseCase handles the escrow lifecycle: creation, inspection and close.
type EscrowUseCase struct {
	gateway  LedgerGateway
	issuer   *EnvelopeIssuer
	platform domain.Platform
}

// NewEscrowUseCase creates a new EscrowUseCase.
func NewEscrowUseCase(gateway LedgerGateway, issuer *EnvelopeIssuer, platform domain.Platform) *EscrowUseCase {
	return &EscrowUseCase{
		gateway:  gateway,
		issuer:   issuer,
		platform: platform,
	}
}

// GenerateEscrowWalletInput represents input for creating an escrow wallet.
type GenerateEscrowWalletInput struct {
	EscrowAddress      string
	CreatorAddress     string
	DestinationAddress string
	ProviderAddress    string
	ExpirationDate     string
	StartingBalance    decimal.Decimal
	CostPerTransaction decimal.Decimal
}

// EscrowWalletResult is the unsigned escrow creation envelope.
type EscrowWalletResult struct {
	EscrowAddress        string
	URL                  string
	TransactionURL       string
	XDR                  string
	TransactionHash      string
	Signers              []string
	StartingNative       decimal.Decimal
	NumberOfTransactions decimal.Decimal
}

// GenerateEscrowWallet builds the escrow creation envelope with the current reserve policy.
func (uc *EscrowUseCase) GenerateEscrowWallet(ctx context.Context, input GenerateEscrowWalletInput) (*EscrowWalletResult, error) {
	return uc.generate(ctx, input, currentEscrow)
}

// GenerateLegacyEscrowWallet builds the escrow creation envelope with the legacy reserve policy.
func (uc *EscrowUseCase) GenerateLegacyEscrowWallet(ctx context.Context, input GenerateEscrowWalletInput) (*EscrowWalletResult, error) {
	return uc.generate(ctx, input, legacyEscrow)
}

func (uc *EscrowUseCase) generate(ctx context.Context, input GenerateEscrowWalletInput, variant escrowVariant) (*EscrowWalletResult, error) {
	// the stored data entry must be the exact string that was validated
	input.ExpirationDate = strings.TrimSpace(input.ExpirationDate)

	// 1. Request-level validation, in documented order
	if !input.CostPerTransaction.IsPositive() {
		return nil, domain.NewError(domain.ErrInvalidValue, "cost_per_transaction must be greater than 0")
	}
	if err := domain.ValidateAmount("cost_per_transaction", input.CostPerTransaction); err != nil {
		return nil, err
	}
	if err := domain.ValidatePositiveAmount("starting_balance", input.StartingBalance); err != nil {
		return nil, err
	}
	if !input.StartingBalance.Mod(input.CostPerTransaction).IsZero() {
		return nil, domain.NewError(domain.ErrInvalidValue,
			"starting_balance %s and cost_per_transaction %s does not match",
			input.StartingBalance, input.CostPerTransaction)
	}
	if input.ExpirationDate != "" {
		if _, err := domain.ParseExpirationDate(input.ExpirationDate); err != nil {
			return nil, err
		}
	}
	if err := validateAddresses(
		"escrow_address", input.EscrowAddress,
		"creator_address", input.CreatorAddress,
		"destination_address", input.DestinationAddress,
		"provider_address", input.ProviderAddress,
	); err != nil {
		return nil, err
	}
	if input.EscrowAddress == input.CreatorAddress || input.EscrowAddress == input.ProviderAddress {
		return nil, domain.NewError(domain.ErrInvalidValue, "escrow_address must differ from creator_address and provider_address")
	}
	// a single co-signer cannot reach the 2-of-2 thresholds
	if input.CreatorAddress == input.ProviderAddress {
		return nil, domain.NewError(domain.ErrInvalidValue, "creator_address and provider_address must be different accounts")
	}

	// 2. Reserve for the escrow's entries and its planned transactions
	txCount := input.StartingBalance.Div(input.CostPerTransaction).Add(decimal.NewFromInt(2))
	startingNative, err := uc.platform.Reserve.Calculate(variant.entries, txCount, variant.policy)
	if err != nil {
		return nil, err
	}

	// 3. The creator funds the escrow and is the transaction source
	creator, err := uc.gateway.FetchAccount(ctx, input.CreatorAddress)
	if err != nil {
		return nil, err
	}

	ops, err := domain.PlanEscrow(domain.EscrowIntent{
		Asset:              uc.platform.Asset,
		TrustLimit:         uc.platform.TrustLimit,
		Escrow:             input.EscrowAddress,
		Creator:            input.CreatorAddress,
		Destination:        input.DestinationAddress,
		Provider:           input.ProviderAddress,
		ExpirationDate:     input.ExpirationDate,
		StartingNative:     startingNative,
		StartingAsset:      input.StartingBalance,
		CostPerTransaction: input.CostPerTransaction,
	})
	if err != nil {
		return nil, err
	}

	env, err := uc.issuer.Issue(ctx, variant.flow, domain.UnsignedTx{
		Source:     creator.Address,
		Sequence:   creator.Sequence,
		Operations: ops,
	}, KeepEncoderErrors)
	if err != nil {
		return nil, err
	}

	return &EscrowWalletResult{
		EscrowAddress:        input.EscrowAddress,
		URL:                  uc.platform.EscrowURL(input.EscrowAddress),
		TransactionURL:       uc.platform.TransactionURL(),
		Signers:              []string{input.EscrowAddress, input.CreatorAddress, input.ProviderAddress},
		XDR:                  env.XDR,
		TransactionHash:      env.Hash,
		StartingNative:       startingNative,
		NumberOfTransactions: txCount,
	}, nil
}

// CloseEscrowWalletInput represents input for closing an escrow.
// Parties is optional; by default the provider receives the whole asset balance.
type CloseEscrowWalletInput struct {
	EscrowAddress string
	Parties       []domain.Party
}

// CloseEscrowResult is the unsigned escrow merge envelope.
type CloseEscrowResult struct {
	EscrowAddress   string
	TransactionURL  string
	XDR             string
	TransactionHash string
	Signers         []string
}

// CloseEscrowWallet builds the envelope that pays out and merges an escrow.
func (uc *EscrowUseCase) CloseEscrowWallet(ctx context.Context, input CloseEscrowWalletInput) (*CloseEscrowResult, error) {
	if err := domain.ValidateAddress("escrow_address", input.EscrowAddress); err != nil {
		return nil, err
	}
	for _, p := range input.Parties {
		if err := domain.ValidateAddress("parties.address", p.Address); err != nil {
			return nil, err
		}
		if err := domain.ValidateAmount("parties.amount", p.Amount); err != nil {
			return nil, err
		}
	}

	acc, err := uc.gateway.FetchAccount(ctx, input.EscrowAddress)
	if err != nil {
		return nil, err
	}
	detail, err := domain.NewEscrowWalletDetail(acc)
	if err != nil {
		return nil, err
	}

	balance, ok := detail.AssetBalance(uc.platform.Asset)
	if !ok {
		return nil, domain.NewError(domain.ErrInvalidValue, "%s is not trusted %s", input.EscrowAddress, uc.platform.Asset.Code)
	}

	parties := input.Parties
	if len(parties) == 0 && balance.IsPositive() {
		if detail.ProviderAddress == "" {
			return nil, domain.NewError(domain.ErrInvalidValue, "escrow %s has no %s", input.EscrowAddress, domain.DataKeyProvider)
		}
		parties = []domain.Party{{Address: detail.ProviderAddress, Amount: balance}}
	}

	creator := detail.CreatorAddress
	if creator == "" {
		creator, err = uc.resolveCreator(ctx, input.EscrowAddress)
		if err != nil {
			return nil, err
		}
	}

	ops, err := domain.PlanEscrowMerge(domain.MergeIntent{
		Asset:        uc.platform.Asset,
		Escrow:       input.EscrowAddress,
		Creator:      creator,
		Parties:      parties,
		DataKeys:     detail.DataKeys(),
		AssetBalance: balance,
	})
	if err != nil {
		return nil, err
	}

	env, err := uc.issuer.Issue(ctx, FlowCloseEscrow, domain.UnsignedTx{
		Source:     input.EscrowAddress,
		Sequence:   acc.Sequence,
		Operations: ops,
	}, AsBadRequest)
	if err != nil {
		return nil, err
	}

	return &CloseEscrowResult{
		EscrowAddress:   input.EscrowAddress,
		TransactionURL:  uc.platform.TransactionURL(),
		Signers:         domain.SignerKeys(detail.Signers),
		XDR:             env.XDR,
		TransactionHash: env.Hash,
	}, nil
}

// resolveCreator finds the account that created escrow: the source of its first transaction.
func (uc *EscrowUseCase) resolveCreator(ctx context.Context, escrow string) (string, error) {
	txs, err := uc.gateway.FetchAccountTransactions(ctx, escrow, domain.PageRequest{Order: domain.OrderAsc, Limit: 1})
	if err != nil {
		return "", err
	}
	if len(txs) == 0 || txs[0].SourceAccount == "" {
		return "", domain.NewError(domain.ErrInvalidValue, "creator address of %s could not be resolved", escrow)
	}
	return txs[0].SourceAccount, nil
}

// GenerateJointWalletInput represents input for a jointly owned wallet.
type GenerateJointWalletInput struct {
	StartingXLM    *decimal.Decimal
	Meta           map[string]string
	DealAddress    string
	CreatorAddress string
	Parties        []domain.Party
}

// JointWalletResult is the unsigned joint wallet creation envelope.
type JointWalletResult struct {
	ID              string
	URL             string
	TransactionURL  string
	XDR             string
	TransactionHash string
	Signers         []string
	StartingNative  decimal.Decimal
}

// GenerateJointWallet builds a wallet co-owned by the creator and every party.
func (uc *EscrowUseCase) GenerateJointWallet(ctx context.Context, input GenerateJointWalletInput) (*JointWalletResult, error) {
	if err := validateAddresses("deal_address", input.DealAddress, "creator_address", input.CreatorAddress); err != nil {
		return nil, err
	}
	for _, p := range input.Parties {
		if err := domain.ValidateAddress("parties.address", p.Address); err != nil {
			return nil, err
		}
		if err := domain.ValidateAmount("parties.amount", p.Amount); err != nil {
			return nil, err
		}
	}

	var startingNative decimal.Decimal
	if input.StartingXLM != nil {
		if err := domain.ValidatePositiveAmount("starting_xlm", *input.StartingXLM); err != nil {
			return nil, err
		}
		startingNative = *input.StartingXLM
	} else {
		entries := domain.JointWalletEntryCount(len(input.Parties), len(input.Meta))
		txCount := decimal.NewFromInt(int64(domain.JointWalletThreshold(len(input.Parties))))
		reserve, err := uc.platform.Reserve.Calculate(entries, txCount, domain.CeilingReserve)
		if err != nil {
			return nil, err
		}
		startingNative = reserve
	}

	ops, err := domain.PlanJointWallet(domain.JointWalletIntent{
		Asset:          uc.platform.Asset,
		TrustLimit:     uc.platform.TrustLimit,
		Deal:           input.DealAddress,
		Creator:        input.CreatorAddress,
		Parties:        input.Parties,
		StartingNative: startingNative,
		Meta:           input.Meta,
	})
	if err != nil {
		return nil, err
	}

	creator, err := uc.gateway.FetchAccount(ctx, input.CreatorAddress)
	if err != nil {
		return nil, err
	}

	env, err := uc.issuer.Issue(ctx, FlowJointWallet, domain.UnsignedTx{
		Source:     creator.Address,
		Sequence:   creator.Sequence,
		Operations: ops,
	}, KeepEncoderErrors)
	if err != nil {
		return nil, err
	}

	signers := []string{input.DealAddress, input.CreatorAddress}
	for _, p := range input.Parties {
		signers = append(signers, p.Address)
	}

	return &JointWalletResult{
		ID:              input.DealAddress,
		URL:             uc.platform.WalletURL(input.DealAddress),
		TransactionURL:  uc.platform.TransactionURL(),
		Signers:         signers,
		XDR:             env.XDR,
		TransactionHash: env.Hash,
		StartingNative:  startingNative,
	}, nil
}

// GetEscrowWallet returns the escrow view of an account.
func (uc *EscrowUseCase) GetEscrowWallet(ctx context.Context, address string) (*domain.EscrowWalletDetail, error) {
	if err := domain.ValidateAddress("escrow_address", address); err != nil {
		return nil, err
	}

	acc, err := uc.gateway.FetchAccount(ctx, address)
	if err != nil {
		return nil, err
	}

	return domain.NewEscrowWalletDetail(acc)
}

// validateAddresses checks field/address pairs in order and reports the first failure.
func validateAddresses(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := domain.ValidateAddress(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}
