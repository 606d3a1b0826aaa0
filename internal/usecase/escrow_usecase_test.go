package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/usecase"
	"github.com/iho/escrowledger/internal/usecase/mocks"
)

func escrowInput() usecase.GenerateEscrowWalletInput {
	return usecase.GenerateEscrowWalletInput{
		EscrowAddress:      newAddress(),
		CreatorAddress:     newAddress(),
		DestinationAddress: newAddress(),
		ProviderAddress:    newAddress(),
		StartingBalance:    decimal.NewFromInt(500),
		CostPerTransaction: decimal.NewFromInt(50),
		ExpirationDate:     "2030-01-01T00:00:00+00:00",
	}
}

func TestEscrowUseCase_GenerateEscrowWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := testPlatform()
	input := escrowInput()

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), input.CreatorAddress).Return(nativeOnly(input.CreatorAddress, 77), nil)

	encoder := mocks.NewMockEnvelopeEncoder(ctrl)
	var built domain.UnsignedTx
	encoder.EXPECT().Encode(gomock.Any()).DoAndReturn(func(tx domain.UnsignedTx) (*domain.Envelope, error) {
		built = tx
		return testEnvelope, nil
	})

	uc := usecase.NewEscrowUseCase(gateway, newIssuer(encoder), platform)
	result, err := uc.GenerateEscrowWallet(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.NumberOfTransactions.Equal(decimal.NewFromInt(12)) {
		t.Errorf("expected 12 transactions, got %s", result.NumberOfTransactions)
	}
	if !result.StartingNative.Equal(decimal.RequireFromString("5.1")) {
		t.Errorf("expected starting native 5.1, got %s", result.StartingNative)
	}
	if len(result.Signers) != 3 || result.Signers[0] != input.EscrowAddress || result.Signers[1] != input.CreatorAddress || result.Signers[2] != input.ProviderAddress {
		t.Errorf("unexpected signers: %v", result.Signers)
	}
	if result.URL != "http://api.test/api/v1/escrows/"+input.EscrowAddress {
		t.Errorf("unexpected url: %s", result.URL)
	}
	if result.XDR != testEnvelope.XDR || result.TransactionHash != testEnvelope.Hash {
		t.Errorf("unexpected envelope: %+v", result)
	}

	if built.Source != input.CreatorAddress || built.Sequence != 77 || len(built.Operations) != 11 {
		t.Fatalf("unexpected transaction: source=%s seq=%d ops=%d", built.Source, built.Sequence, len(built.Operations))
	}
	create := built.Operations[0].(domain.CreateAccountOp)
	if !create.StartingBalance.Equal(decimal.RequireFromString("5.1")) {
		t.Errorf("expected create account with 5.1, got %s", create.StartingBalance)
	}
}

func TestEscrowUseCase_GenerateLegacyEscrowWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	input := escrowInput()

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), input.CreatorAddress).Return(nativeOnly(input.CreatorAddress, 1), nil)

	encoder := mocks.NewMockEnvelopeEncoder(ctrl)
	encoder.EXPECT().Encode(gomock.Any()).Return(testEnvelope, nil)

	uc := usecase.NewEscrowUseCase(gateway, newIssuer(encoder), testPlatform())
	result, err := uc.GenerateLegacyEscrowWallet(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (2 + 3) * 0.5 + 12 * 0.00001 = 2.50012, half up at 4 places
	if !result.StartingNative.Equal(decimal.RequireFromString("2.5001")) {
		t.Fatalf("expected 2.5001, got %s", result.StartingNative)
	}
}

func TestEscrowUseCase_GenerateEscrowWalletValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*usecase.GenerateEscrowWalletInput)
		wantErr error
		message string
	}{
		{
			name:    "zero cost per transaction",
			mutate:  func(in *usecase.GenerateEscrowWalletInput) { in.CostPerTransaction = decimal.Zero },
			wantErr: domain.ErrInvalidValue,
			message: "cost_per_transaction must be greater than 0",
		},
		{
			name:    "starting balance not divisible",
			mutate:  func(in *usecase.GenerateEscrowWalletInput) { in.StartingBalance = decimal.NewFromInt(510) },
			wantErr: domain.ErrInvalidValue,
			message: "starting_balance 510 and cost_per_transaction 50 does not match",
		},
		{
			name:    "naive expiration date",
			mutate:  func(in *usecase.GenerateEscrowWalletInput) { in.ExpirationDate = "2030-01-01T00:00:00" },
			wantErr: domain.ErrInvalidValue,
		},
		{
			name:    "missing provider",
			mutate:  func(in *usecase.GenerateEscrowWalletInput) { in.ProviderAddress = "" },
			wantErr: domain.ErrMissingParameter,
			message: "Parameter 'provider_address' not found",
		},
		{
			name: "provider is the creator",
			mutate: func(in *usecase.GenerateEscrowWalletInput) {
				in.ProviderAddress = in.CreatorAddress
			},
			wantErr: domain.ErrInvalidValue,
			message: "creator_address and provider_address must be different accounts",
		},
		{
			name:    "malformed creator",
			mutate:  func(in *usecase.GenerateEscrowWalletInput) { in.CreatorAddress = "GBAD" },
			wantErr: domain.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// no gateway or encoder expectations: validation fails first
			uc := usecase.NewEscrowUseCase(mocks.NewMockLedgerGateway(ctrl), newIssuer(mocks.NewMockEnvelopeEncoder(ctrl)), testPlatform())

			input := escrowInput()
			tt.mutate(&input)

			_, err := uc.GenerateEscrowWallet(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, domain.ErrBadRequest) {
				t.Fatalf("expected a bad request, got %v", err)
			}
			if tt.message != "" && domain.Message(err) != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, domain.Message(err))
			}
		})
	}
}

func TestEscrowUseCase_GenerateEscrowWalletStoresTrimmedExpiration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	input := escrowInput()
	input.ExpirationDate = "  2030-01-01 00:00:00+0000\t"

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), input.CreatorAddress).Return(nativeOnly(input.CreatorAddress, 3), nil)

	encoder := mocks.NewMockEnvelopeEncoder(ctrl)
	var built domain.UnsignedTx
	encoder.EXPECT().Encode(gomock.Any()).DoAndReturn(func(tx domain.UnsignedTx) (*domain.Envelope, error) {
		built = tx
		return testEnvelope, nil
	})

	uc := usecase.NewEscrowUseCase(gateway, newIssuer(encoder), testPlatform())
	if _, err := uc.GenerateEscrowWallet(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stored string
	for _, op := range built.Operations {
		if data, ok := op.(domain.ManageDataOp); ok && data.Name == domain.DataKeyExpiration {
			stored = string(data.Value)
		}
	}
	if stored != "2030-01-01 00:00:00+0000" {
		t.Fatalf("expected trimmed expiration data entry, got %q", stored)
	}
}

func TestEscrowUseCase_GenerateEscrowWalletUnknownCreator(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	input := escrowInput()
	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), input.CreatorAddress).
		Return(nil, domain.NewError(domain.ErrUpstreamNotFound, "account %s not found", input.CreatorAddress))

	uc := usecase.NewEscrowUseCase(gateway, newIssuer(mocks.NewMockEnvelopeEncoder(ctrl)), testPlatform())
	_, err := uc.GenerateEscrowWallet(context.Background(), input)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func escrowAccount(platform domain.Platform, escrow, creator, provider string, balance decimal.Decimal) *domain.Account {
	acc := withAsset(nativeOnly(escrow, 900), platform.Asset, balance)
	acc.Signers = []domain.Signer{
		{Key: escrow, Weight: 0},
		{Key: provider, Weight: 1},
	}
	acc.Data = map[string][]byte{
		domain.DataKeyProvider:           []byte(provider),
		domain.DataKeyCostPerTransaction: []byte("50"),
	}
	if creator != "" {
		acc.Signers = append(acc.Signers, domain.Signer{Key: creator, Weight: 1})
		acc.Data[domain.DataKeyCreator] = []byte(creator)
	}
	return acc
}

func TestEscrowUseCase_CloseEscrowWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := testPlatform()
	escrow, creator, provider := newAddress(), newAddress(), newAddress()

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), escrow).
		Return(escrowAccount(platform, escrow, creator, provider, decimal.NewFromInt(300)), nil)

	encoder := mocks.NewMockEnvelopeEncoder(ctrl)
	var built domain.UnsignedTx
	encoder.EXPECT().Encode(gomock.Any()).DoAndReturn(func(tx domain.UnsignedTx) (*domain.Envelope, error) {
		built = tx
		return testEnvelope, nil
	})

	uc := usecase.NewEscrowUseCase(gateway, newIssuer(encoder), platform)
	result, err := uc.CloseEscrowWallet(context.Background(), usecase.CloseEscrowWalletInput{EscrowAddress: escrow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if built.Source != escrow || built.Sequence != 900 {
		t.Fatalf("unexpected source/sequence: %s/%d", built.Source, built.Sequence)
	}
	payout := built.Operations[0].(domain.PaymentOp)
	if payout.Destination != provider || !payout.Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected full payout to provider, got %+v", payout)
	}
	merge := built.Operations[len(built.Operations)-1].(domain.AccountMergeOp)
	if merge.Destination != creator {
		t.Fatalf("expected merge into creator, got %s", merge.Destination)
	}
	if len(result.Signers) != 2 {
		t.Fatalf("expected provider and creator as signers, got %v", result.Signers)
	}
}

func TestEscrowUseCase_CloseEscrowWalletResolvesCreatorFromHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := testPlatform()
	escrow, creator, provider := newAddress(), newAddress(), newAddress()

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), escrow).
		Return(escrowAccount(platform, escrow, "", provider, decimal.Zero), nil)
	gateway.EXPECT().FetchAccountTransactions(gomock.Any(), escrow, domain.PageRequest{Order: domain.OrderAsc, Limit: 1}).
		Return([]*domain.TxSummary{{Hash: "abc", SourceAccount: creator}}, nil)

	encoder := mocks.NewMockEnvelopeEncoder(ctrl)
	var built domain.UnsignedTx
	encoder.EXPECT().Encode(gomock.Any()).DoAndReturn(func(tx domain.UnsignedTx) (*domain.Envelope, error) {
		built = tx
		return testEnvelope, nil
	})

	uc := usecase.NewEscrowUseCase(gateway, newIssuer(encoder), platform)
	if _, err := uc.CloseEscrowWallet(context.Background(), usecase.CloseEscrowWalletInput{EscrowAddress: escrow}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, op := range built.Operations {
		if op.Type() == domain.OpPayment {
			t.Fatalf("zero balance escrow must not pay out: %v", domain.OperationTypes(built.Operations))
		}
	}
	n := len(built.Operations)
	if built.Operations[n-2].Type() != domain.OpChangeTrust || built.Operations[n-1].(domain.AccountMergeOp).Destination != creator {
		t.Fatalf("unexpected tail: %v", domain.OperationTypes(built.Operations))
	}
}

func TestEscrowUseCase_CloseEscrowWalletBalanceMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := testPlatform()
	escrow, creator, provider := newAddress(), newAddress(), newAddress()

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), escrow).
		Return(escrowAccount(platform, escrow, creator, provider, decimal.NewFromInt(300)), nil)

	// the encoder must never be reached
	uc := usecase.NewEscrowUseCase(gateway, newIssuer(mocks.NewMockEnvelopeEncoder(ctrl)), platform)
	_, err := uc.CloseEscrowWallet(context.Background(), usecase.CloseEscrowWalletInput{
		EscrowAddress: escrow,
		Parties: []domain.Party{
			{Address: provider, Amount: decimal.NewFromInt(200)},
			{Address: creator, Amount: decimal.NewFromInt(50)},
		},
	})
	if !errors.Is(err, domain.ErrBalanceMismatch) {
		t.Fatalf("expected ErrBalanceMismatch, got %v", err)
	}
}

func TestEscrowUseCase_CloseEscrowWalletUntrusted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := testPlatform()
	escrow := newAddress()

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), escrow).Return(nativeOnly(escrow, 3), nil)

	uc := usecase.NewEscrowUseCase(gateway, newIssuer(mocks.NewMockEnvelopeEncoder(ctrl)), platform)
	_, err := uc.CloseEscrowWallet(context.Background(), usecase.CloseEscrowWalletInput{EscrowAddress: escrow})
	if !errors.Is(err, domain.ErrBadRequest) || domain.Message(err) != escrow+" is not trusted HTKN" {
		t.Fatalf("expected untrusted bad request, got %v", err)
	}
}

func TestEscrowUseCase_CloseEscrowWalletEncoderFailureIsBadRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := testPlatform()
	escrow, creator, provider := newAddress(), newAddress(), newAddress()

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), escrow).
		Return(escrowAccount(platform, escrow, creator, provider, decimal.NewFromInt(1)), nil)

	encoder := mocks.NewMockEnvelopeEncoder(ctrl)
	encoder.EXPECT().Encode(gomock.Any()).Return(nil, domain.NewError(domain.ErrEnvelopeEncoding, "boom"))

	uc := usecase.NewEscrowUseCase(gateway, newIssuer(encoder), platform)
	_, err := uc.CloseEscrowWallet(context.Background(), usecase.CloseEscrowWalletInput{EscrowAddress: escrow})
	if domain.Kind(err) != "BadRequest" || domain.Message(err) != domain.MsgBadParameters {
		t.Fatalf("expected bad request, got kind=%s err=%v", domain.Kind(err), err)
	}
}

func TestEscrowUseCase_GenerateJointWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := testPlatform()
	deal, creator, p1, p2 := newAddress(), newAddress(), newAddress(), newAddress()

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), creator).Return(nativeOnly(creator, 5), nil)

	encoder := mocks.NewMockEnvelopeEncoder(ctrl)
	encoder.EXPECT().Encode(gomock.Any()).Return(testEnvelope, nil)

	uc := usecase.NewEscrowUseCase(gateway, newIssuer(encoder), platform)
	result, err := uc.GenerateJointWallet(context.Background(), usecase.GenerateJointWalletInput{
		DealAddress:    deal,
		CreatorAddress: creator,
		Parties: []domain.Party{
			{Address: p1, Amount: decimal.NewFromInt(10)},
			{Address: p2, Amount: decimal.NewFromInt(20)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ID != deal || len(result.Signers) != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}
	// entries: trustline + 3 signers + creator entry = 5; (2 + 5) * 0.5 + 3 * 0.00001 rounded up
	if !result.StartingNative.Equal(decimal.RequireFromString("3.6")) {
		t.Fatalf("expected 3.6 starting native, got %s", result.StartingNative)
	}
}

func TestEscrowUseCase_GetEscrowWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	platform := testPlatform()
	escrow, creator, provider := newAddress(), newAddress(), newAddress()

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchAccount(gomock.Any(), escrow).
		Return(escrowAccount(platform, escrow, creator, provider, decimal.NewFromInt(42)), nil)

	uc := usecase.NewEscrowUseCase(gateway, newIssuer(mocks.NewMockEnvelopeEncoder(ctrl)), platform)
	detail, err := uc.GetEscrowWallet(context.Background(), escrow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.CreatorAddress != creator || detail.ProviderAddress != provider {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}
