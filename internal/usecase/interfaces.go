package usecase

import (
	"context"
	"time"

	"github.com/iho/escrowledger/internal/domain"
)

// LedgerGateway reads ledger state and posts signed envelopes.
type LedgerGateway interface {
	FetchAccount(ctx context.Context, address string) (*domain.Account, error)
	FetchTransaction(ctx context.Context, hash string) (*domain.TxDetail, error)
	FetchOperations(ctx context.Context, hash string, page domain.PageRequest) ([]*domain.OperationRecord, error)
	FetchAccountTransactions(ctx context.Context, address string, page domain.PageRequest) ([]*domain.TxSummary, error)
	Submit(ctx context.Context, envelopeXDR string) (*domain.SubmitResult, error)
}

// EnvelopeEncoder serializes unsigned transactions and hashes envelopes.
type EnvelopeEncoder interface {
	Encode(tx domain.UnsignedTx) (*domain.Envelope, error)
	Hash(envelopeXDR string) (string, error)
}

// EnvelopeAuditor records every issued envelope.
type EnvelopeAuditor interface {
	Record(ctx context.Context, record *domain.EnvelopeRecord) error
}

// BuildRecorder observes envelope builds.
type BuildRecorder interface {
	RecordEnvelopeBuilt(flow string, operations int)
	RecordEnvelopeFailed(flow, kind string)
	RecordMemoSearch(pages int, found bool)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request failed so the client can retry it.
	Release(ctx context.Context, key string) error
}
