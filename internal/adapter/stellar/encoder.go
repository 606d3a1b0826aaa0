package stellar

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"

	"github.com/iho/escrowledger/internal/domain"
)

const stroopsPerUnit = 10_000_000

// Encoder implements usecase.EnvelopeEncoder with txnbuild.
type Encoder struct {
	passphrase string
	baseFee    int64
}

// NewEncoder creates an Encoder for the given network. perTxFee is the fee in
// native units charged per operation.
func NewEncoder(passphrase string, perTxFee decimal.Decimal) *Encoder {
	fee := perTxFee.Mul(decimal.NewFromInt(stroopsPerUnit)).IntPart()
	if fee < txnbuild.MinBaseFee {
		fee = txnbuild.MinBaseFee
	}
	return &Encoder{passphrase: passphrase, baseFee: fee}
}

// BaseFee returns the per-operation fee in stroops.
func (e *Encoder) BaseFee() int64 {
	return e.baseFee
}

// Encode serializes tx into an unsigned base64 envelope. The sequence number
// of the envelope is tx.Sequence+1.
func (e *Encoder) Encode(tx domain.UnsignedTx) (*domain.Envelope, error) {
	if !strkey.IsValidEd25519PublicKey(tx.Source) {
		return nil, domain.NewError(domain.ErrInvalidValue, "%s is not a valid address", tx.Source)
	}

	ops := make([]txnbuild.Operation, 0, len(tx.Operations))
	for i, op := range tx.Operations {
		built, err := e.operation(tx.Source, op)
		if err != nil {
			return nil, errors.WithMessagef(err, "operation %d", i)
		}
		ops = append(ops, built)
	}

	var memo txnbuild.Memo
	if tx.Memo != "" {
		memo = txnbuild.MemoText(tx.Memo)
	}

	account := txnbuild.NewSimpleAccount(tx.Source, tx.Sequence)
	built, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &account,
		IncrementSequenceNum: true,
		Operations:           ops,
		BaseFee:              e.baseFee,
		Memo:                 memo,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewInfiniteTimeout(),
		},
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrEnvelopeRejected, errors.Wrap(err, "build transaction"), domain.MsgBadParameters)
	}

	encoded, err := built.Base64()
	if err != nil {
		return nil, domain.WrapError(domain.ErrEnvelopeRejected, errors.Wrap(err, "encode envelope"), domain.MsgBadParameters)
	}
	hash, err := built.HashHex(e.passphrase)
	if err != nil {
		return nil, domain.WrapError(domain.ErrEnvelopeRejected, errors.Wrap(err, "hash envelope"), domain.MsgBadParameters)
	}

	return &domain.Envelope{XDR: encoded, Hash: hash}, nil
}

// Hash decodes a (possibly signed) envelope and returns its network hash.
func (e *Encoder) Hash(envelopeXDR string) (string, error) {
	generic, err := txnbuild.TransactionFromXDR(envelopeXDR)
	if err != nil {
		return "", domain.WrapError(domain.ErrInvalidValue, err, "xdr is not a valid transaction envelope")
	}

	if tx, ok := generic.Transaction(); ok {
		hash, err := tx.HashHex(e.passphrase)
		if err != nil {
			return "", domain.WrapError(domain.ErrInvalidValue, err, "xdr is not a valid transaction envelope")
		}
		return hash, nil
	}
	if fb, ok := generic.FeeBump(); ok {
		hash, err := fb.HashHex(e.passphrase)
		if err != nil {
			return "", domain.WrapError(domain.ErrInvalidValue, err, "xdr is not a valid transaction envelope")
		}
		return hash, nil
	}

	return "", domain.NewError(domain.ErrInvalidValue, "xdr is not a valid transaction envelope")
}

func (e *Encoder) operation(txSource string, op domain.Operation) (txnbuild.Operation, error) {
	source, err := opSource(txSource, op.SourceAccount())
	if err != nil {
		return nil, err
	}

	switch o := op.(type) {
	case domain.CreateAccountOp:
		if err := checkAddress(o.Destination); err != nil {
			return nil, err
		}
		return &txnbuild.CreateAccount{
			Destination:   o.Destination,
			Amount:        domain.FormatAmount(o.StartingBalance),
			SourceAccount: source,
		}, nil

	case domain.PaymentOp:
		if err := checkAddress(o.Destination); err != nil {
			return nil, err
		}
		asset, err := toAsset(o.Asset)
		if err != nil {
			return nil, err
		}
		return &txnbuild.Payment{
			Destination:   o.Destination,
			Amount:        domain.FormatAmount(o.Amount),
			Asset:         asset,
			SourceAccount: source,
		}, nil

	case domain.ChangeTrustOp:
		if o.Asset.IsNative() {
			return nil, domain.NewError(domain.ErrEnvelopeEncoding, "native asset cannot be trusted")
		}
		if err := checkAddress(o.Asset.Issuer); err != nil {
			return nil, err
		}
		line, err := txnbuild.CreditAsset{Code: o.Asset.Code, Issuer: o.Asset.Issuer}.ToChangeTrustAsset()
		if err != nil {
			return nil, domain.WrapError(domain.ErrEnvelopeEncoding, err, "invalid asset %s", o.Asset)
		}
		limit := txnbuild.MaxTrustlineLimit
		if o.Limit != nil {
			limit = domain.FormatAmount(*o.Limit)
			if o.Limit.IsZero() {
				limit = "0"
			}
		}
		return &txnbuild.ChangeTrust{
			Line:          line,
			Limit:         limit,
			SourceAccount: source,
		}, nil

	case domain.ManageDataOp:
		return &txnbuild.ManageData{
			Name:          o.Name,
			Value:         o.Value,
			SourceAccount: source,
		}, nil

	case domain.SetOptionsOp:
		set := &txnbuild.SetOptions{
			MasterWeight:    threshold(o.MasterWeight),
			LowThreshold:    threshold(o.LowThreshold),
			MediumThreshold: threshold(o.MediumThreshold),
			HighThreshold:   threshold(o.HighThreshold),
			SourceAccount:   source,
		}
		if o.Signer != nil {
			if err := checkAddress(o.Signer.Address); err != nil {
				return nil, err
			}
			set.Signer = &txnbuild.Signer{
				Address: o.Signer.Address,
				Weight:  txnbuild.Threshold(o.Signer.Weight),
			}
		}
		return set, nil

	case domain.AccountMergeOp:
		if err := checkAddress(o.Destination); err != nil {
			return nil, err
		}
		return &txnbuild.AccountMerge{
			Destination:   o.Destination,
			SourceAccount: source,
		}, nil
	}

	return nil, domain.NewError(domain.ErrEnvelopeEncoding, "unsupported operation %s", op.Type())
}

// opSource returns the operation source, empty when it equals the transaction source.
func opSource(txSource, source string) (string, error) {
	if source == "" || source == txSource {
		return "", nil
	}
	if err := checkAddress(source); err != nil {
		return "", err
	}
	return source, nil
}

func checkAddress(address string) error {
	if !strkey.IsValidEd25519PublicKey(address) {
		return domain.NewError(domain.ErrInvalidValue, "%s is not a valid address", address)
	}
	return nil
}

func toAsset(a domain.Asset) (txnbuild.Asset, error) {
	if a.IsNative() {
		return txnbuild.NativeAsset{}, nil
	}
	if err := checkAddress(a.Issuer); err != nil {
		return nil, err
	}
	return txnbuild.CreditAsset{Code: a.Code, Issuer: a.Issuer}, nil
}

func threshold(w *uint8) *txnbuild.Threshold {
	if w == nil {
		return nil
	}
	return txnbuild.NewThreshold(txnbuild.Threshold(*w))
}
