package usecase

import (
	"context"
	"errors"
	"regexp"

	"github.com/iho/escrowledger/internal/domain"
)

var txHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// TransactionUseCase handles signed envelope submission and lookups.
type TransactionUseCase struct {
	gateway LedgerGateway
	issuer  *EnvelopeIssuer
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(gateway LedgerGateway, issuer *EnvelopeIssuer) *TransactionUseCase {
	return &TransactionUseCase{
		gateway: gateway,
		issuer:  issuer,
	}
}

// TransactionView is a ledger transaction with its operations.
type TransactionView struct {
	Transaction *domain.TxDetail
	Operations  []*domain.OperationRecord
}

// Submit posts a signed envelope unless the ledger already knows its hash.
func (uc *TransactionUseCase) Submit(ctx context.Context, envelopeXDR string) (*domain.SubmitResult, error) {
	if envelopeXDR == "" {
		return nil, domain.NewError(domain.ErrMissingParameter, "Parameter 'xdr' not found")
	}

	hash, err := uc.issuer.Hash(envelopeXDR)
	if err != nil {
		return nil, err
	}

	_, err = uc.gateway.FetchTransaction(ctx, hash)
	switch {
	case err == nil:
		return nil, domain.NewError(domain.ErrDuplicateSubmission, domain.MsgAlreadySubmitted)
	case !errors.Is(err, domain.ErrUpstreamNotFound):
		return nil, err
	}

	return uc.gateway.Submit(ctx, envelopeXDR)
}

// GetTransaction returns a transaction and its operations.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, hash string) (*TransactionView, error) {
	if !txHashPattern.MatchString(hash) {
		return nil, domain.NewError(domain.ErrInvalidValue, "%s is not a valid transaction hash", hash)
	}

	tx, err := uc.gateway.FetchTransaction(ctx, hash)
	if err != nil {
		return nil, err
	}

	ops, err := uc.gateway.FetchOperations(ctx, hash, domain.PageRequest{Order: domain.OrderAsc, Limit: 100})
	if err != nil {
		return nil, err
	}

	return &TransactionView{Transaction: tx, Operations: ops}, nil
}
