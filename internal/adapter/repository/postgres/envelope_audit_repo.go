package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/usecase"
)

const insertEnvelopeAudit = `
	INSERT INTO envelope_audit (id, flow, source_account, sequence, tx_hash, xdr, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (tx_hash) DO NOTHING
`

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnvelopeAuditRepository implements usecase.EnvelopeAuditor on PostgreSQL.
type EnvelopeAuditRepository struct {
	db      execer
	ids     usecase.IDGenerator
	retrier *Retrier
}

// NewEnvelopeAuditRepository creates a new EnvelopeAuditRepository.
// Rebuilding an identical envelope is a no-op because tx_hash is unique.
func NewEnvelopeAuditRepository(db execer, ids usecase.IDGenerator, retrier *Retrier) *EnvelopeAuditRepository {
	if ids == nil {
		ids = NewULIDGenerator()
	}
	if retrier == nil {
		retrier = NewRetrier()
	}
	return &EnvelopeAuditRepository{db: db, ids: ids, retrier: retrier}
}

// Record inserts one audit row, retrying serialization failures and deadlocks.
func (r *EnvelopeAuditRepository) Record(ctx context.Context, record *domain.EnvelopeRecord) error {
	if record.ID == "" {
		record.ID = r.ids.Generate()
	}

	err := r.retrier.Retry(ctx, func() error {
		_, err := r.db.Exec(ctx, insertEnvelopeAudit,
			record.ID,
			record.Flow,
			record.SourceAccount,
			record.Sequence,
			record.TxHash,
			record.XDR,
			record.CreatedAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert envelope audit %s: %w", record.TxHash, err)
	}
	return nil
}

// NullEnvelopeAuditor is used when no database is configured.
type NullEnvelopeAuditor struct{}

// NewNullEnvelopeAuditor creates a new NullEnvelopeAuditor.
func NewNullEnvelopeAuditor() *NullEnvelopeAuditor {
	return &NullEnvelopeAuditor{}
}

// Record discards the record.
func (NullEnvelopeAuditor) Record(ctx context.Context, record *domain.EnvelopeRecord) error {
	return nil
}
