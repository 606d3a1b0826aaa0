package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/usecase"
	"github.com/iho/escrowledger/internal/usecase/mocks"
)

var knownHash = strings.Repeat("ab", 32)

func TestTransactionUseCase_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	encoder := mocks.NewMockEnvelopeEncoder(ctrl)
	encoder.EXPECT().Hash("signed-xdr").Return(knownHash, nil)

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchTransaction(gomock.Any(), knownHash).
		Return(nil, domain.NewError(domain.ErrUpstreamNotFound, "transaction not found"))
	gateway.EXPECT().Submit(gomock.Any(), "signed-xdr").
		Return(&domain.SubmitResult{Hash: knownHash, Ledger: 100, Successful: true}, nil)

	uc := usecase.NewTransactionUseCase(gateway, newIssuer(encoder))
	result, err := uc.Submit(context.Background(), "signed-xdr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Hash != knownHash || !result.Successful {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestTransactionUseCase_SubmitDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	encoder := mocks.NewMockEnvelopeEncoder(ctrl)
	encoder.EXPECT().Hash("signed-xdr").Return(knownHash, nil)

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchTransaction(gomock.Any(), knownHash).Return(&domain.TxDetail{}, nil)

	uc := usecase.NewTransactionUseCase(gateway, newIssuer(encoder))
	_, err := uc.Submit(context.Background(), "signed-xdr")
	if !errors.Is(err, domain.ErrDuplicateSubmission) || domain.Message(err) != domain.MsgAlreadySubmitted {
		t.Fatalf("expected duplicate submission, got %v", err)
	}
}

func TestTransactionUseCase_SubmitUpstreamFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	encoder := mocks.NewMockEnvelopeEncoder(ctrl)
	encoder.EXPECT().Hash("signed-xdr").Return(knownHash, nil)

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchTransaction(gomock.Any(), knownHash).
		Return(nil, domain.NewError(domain.ErrUpstreamUnavailable, "horizon unavailable"))

	uc := usecase.NewTransactionUseCase(gateway, newIssuer(encoder))
	if _, err := uc.Submit(context.Background(), "signed-xdr"); !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestTransactionUseCase_SubmitEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := usecase.NewTransactionUseCase(mocks.NewMockLedgerGateway(ctrl), newIssuer(mocks.NewMockEnvelopeEncoder(ctrl)))
	if _, err := uc.Submit(context.Background(), ""); !errors.Is(err, domain.ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}
}

func TestTransactionUseCase_GetTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockLedgerGateway(ctrl)
	gateway.EXPECT().FetchTransaction(gomock.Any(), knownHash).
		Return(&domain.TxDetail{TxSummary: domain.TxSummary{Hash: knownHash}}, nil)
	gateway.EXPECT().FetchOperations(gomock.Any(), knownHash, gomock.Any()).
		Return([]*domain.OperationRecord{{ID: "1", Type: "payment"}}, nil)

	uc := usecase.NewTransactionUseCase(gateway, newIssuer(mocks.NewMockEnvelopeEncoder(ctrl)))
	view, err := uc.GetTransaction(context.Background(), knownHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Transaction.Hash != knownHash || len(view.Operations) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}

	if _, err := uc.GetTransaction(context.Background(), "xyz"); !errors.Is(err, domain.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for malformed hash, got %v", err)
	}
}
