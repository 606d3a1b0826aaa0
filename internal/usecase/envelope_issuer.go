package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/escrowledger/internal/domain"
)

// ErrorPolicy translates encoder failures into a flow's error taxonomy.
type ErrorPolicy func(error) error

// KeepEncoderErrors surfaces encoder failures as classified by the encoder.
func KeepEncoderErrors(err error) error { return err }

// AsBadRequest reports every encoder failure as a bad request.
func AsBadRequest(err error) error {
	if domain.Kind(err) == "BadRequest" {
		return err
	}
	return domain.WrapError(domain.ErrInvalidValue, err, domain.MsgBadParameters)
}

// EnvelopeIssuer serializes planned operations and records the result.
type EnvelopeIssuer struct {
	encoder  EnvelopeEncoder
	auditor  EnvelopeAuditor
	recorder BuildRecorder
	logger   zerolog.Logger
}

// NewEnvelopeIssuer creates a new EnvelopeIssuer. auditor and recorder may be nil.
func NewEnvelopeIssuer(encoder EnvelopeEncoder, auditor EnvelopeAuditor, recorder BuildRecorder, logger zerolog.Logger) *EnvelopeIssuer {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &EnvelopeIssuer{
		encoder:  encoder,
		auditor:  auditor,
		recorder: recorder,
		logger:   logger,
	}
}

// Issue encodes tx. Audit failures are logged and never returned.
func (i *EnvelopeIssuer) Issue(ctx context.Context, flow string, tx domain.UnsignedTx, policy ErrorPolicy) (*domain.Envelope, error) {
	env, err := i.encoder.Encode(tx)
	if err != nil {
		err = policy(err)
		i.recorder.RecordEnvelopeFailed(flow, domain.Kind(err))
		i.logger.Debug().Err(err).Str("flow", flow).Str("source", tx.Source).Msg("envelope build failed")
		return nil, err
	}

	i.recorder.RecordEnvelopeBuilt(flow, len(tx.Operations))
	i.logger.Debug().
		Str("flow", flow).
		Str("source", tx.Source).
		Int64("sequence", tx.Sequence).
		Int("operations", len(tx.Operations)).
		Str("hash", env.Hash).
		Msg("envelope built")

	if i.auditor != nil {
		record := &domain.EnvelopeRecord{
			Flow:          flow,
			SourceAccount: tx.Source,
			Sequence:      tx.Sequence,
			TxHash:        env.Hash,
			XDR:           env.XDR,
			CreatedAt:     time.Now().UTC(),
		}
		if err := i.auditor.Record(ctx, record); err != nil {
			i.logger.Warn().Err(err).Str("flow", flow).Str("hash", env.Hash).Msg("failed to record envelope")
		}
	}

	return env, nil
}

// Hash returns the network hash of an envelope.
func (i *EnvelopeIssuer) Hash(envelopeXDR string) (string, error) {
	return i.encoder.Hash(envelopeXDR)
}

type nopRecorder struct{}

func (nopRecorder) RecordEnvelopeBuilt(string, int)    {}
func (nopRecorder) RecordEnvelopeFailed(string, string) {}
func (nopRecorder) RecordMemoSearch(int, bool)          {}
