package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/escrowledger/internal/domain"
)

// MemoSearchConfig bounds the duplicate memo history scan.
type MemoSearchConfig struct {
	MaxPages int
	PageSize int
}

// PaymentUseCase handles payment envelopes and memo lookups.
type PaymentUseCase struct {
	gateway  LedgerGateway
	issuer   *EnvelopeIssuer
	recorder BuildRecorder
	platform domain.Platform
	search   MemoSearchConfig
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(gateway LedgerGateway, issuer *EnvelopeIssuer, recorder BuildRecorder, platform domain.Platform, search MemoSearchConfig) *PaymentUseCase {
	if search.MaxPages <= 0 {
		search.MaxPages = DefaultMemoSearchPages
	}
	if search.PageSize <= 0 {
		search.PageSize = DefaultMemoSearchPageSize
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &PaymentUseCase{
		gateway:  gateway,
		issuer:   issuer,
		recorder: recorder,
		platform: platform,
		search:   search,
	}
}

// GeneratePaymentInput represents input for a payment envelope.
type GeneratePaymentInput struct {
	SourceAddress      string
	DestinationAddress string
	Memo               string
	MemoOn             domain.MemoSide
	AmountXLM          decimal.Decimal
	AmountAsset        decimal.Decimal
	TaxAmount          decimal.Decimal
}

// PaymentResult is the unsigned payment envelope.
type PaymentResult struct {
	TransactionURL  string
	XDR             string
	TransactionHash string
	Signers         []string
}

// GeneratePayment builds a payment envelope after the duplicate memo check.
func (uc *PaymentUseCase) GeneratePayment(ctx context.Context, input GeneratePaymentInput) (*PaymentResult, error) {
	if err := validateAddresses("source_address", input.SourceAddress, "destination_address", input.DestinationAddress); err != nil {
		return nil, err
	}
	amounts := []struct {
		field  string
		amount decimal.Decimal
	}{
		{"amount_xlm", input.AmountXLM},
		{"amount_htkn", input.AmountAsset},
		{"tax_amount", input.TaxAmount},
	}
	for _, a := range amounts {
		if err := domain.ValidateAmount(a.field, a.amount); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateMemo(input.Memo); err != nil {
		return nil, err
	}

	if input.Memo != "" {
		searched := input.SourceAddress
		switch input.MemoOn {
		case domain.MemoOnDestination:
			searched = input.DestinationAddress
		case domain.MemoOnSource, "":
		default:
			return nil, domain.NewError(domain.ErrInvalidValue, "memo_on must be %q or %q", domain.MemoOnSource, domain.MemoOnDestination)
		}

		found, err := uc.FindTransactionByMemo(ctx, searched, input.Memo)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return nil, domain.NewError(domain.ErrDuplicateSubmission, domain.MsgAlreadySubmitted)
		}
	}

	destination, err := uc.gateway.FetchAccount(ctx, input.DestinationAddress)
	if err != nil {
		return nil, err
	}
	source, err := uc.gateway.FetchAccount(ctx, input.SourceAddress)
	if err != nil {
		return nil, err
	}

	trusted, err := trustsAsset(destination, uc.platform.Asset)
	if err != nil {
		return nil, err
	}

	ops, err := domain.PlanPayment(domain.PaymentIntent{
		Asset:             uc.platform.Asset,
		Source:            input.SourceAddress,
		Destination:       input.DestinationAddress,
		TaxCollector:      uc.platform.TaxCollector,
		NativeAmount:      input.AmountXLM,
		AssetAmount:       input.AmountAsset,
		TaxAmount:         input.TaxAmount,
		DestinationTrusts: trusted,
	})
	if err != nil {
		return nil, err
	}

	env, err := uc.issuer.Issue(ctx, FlowPayment, domain.UnsignedTx{
		Source:     source.Address,
		Sequence:   source.Sequence,
		Operations: ops,
		Memo:       input.Memo,
	}, AsBadRequest)
	if err != nil {
		return nil, err
	}

	signers := domain.SignerKeys(domain.ActiveSigners(source.Signers))
	if len(signers) == 0 {
		signers = []string{source.Address}
	}

	return &PaymentResult{
		TransactionURL:  uc.platform.TransactionURL(),
		Signers:         signers,
		XDR:             env.XDR,
		TransactionHash: env.Hash,
	}, nil
}

// FindTransactionByMemo scans address's history, newest first, for a transaction
// carrying memo. The scan stops after the configured number of pages; nil means
// no match was found within the bound.
func (uc *PaymentUseCase) FindTransactionByMemo(ctx context.Context, address, memo string) (*domain.TxSummary, error) {
	page := domain.PageRequest{Order: domain.OrderDesc, Limit: uc.search.PageSize}

	pages := 0
	for pages < uc.search.MaxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		txs, err := uc.gateway.FetchAccountTransactions(ctx, address, page)
		if err != nil {
			return nil, err
		}
		pages++

		for _, tx := range txs {
			if tx.Memo == memo {
				uc.recorder.RecordMemoSearch(pages, true)
				return tx, nil
			}
		}

		if len(txs) < page.Limit {
			break
		}
		page.Cursor = txs[len(txs)-1].PagingToken
	}

	uc.recorder.RecordMemoSearch(pages, false)
	return nil, nil
}

// trustsAsset checks the destination's projected balances for asset.
func trustsAsset(acc *domain.Account, asset domain.Asset) (bool, error) {
	balances, err := domain.ProjectBalances(acc.Balances)
	if err != nil {
		return false, err
	}
	b, ok := balances[asset.Code]
	return ok && b.Issuer == asset.Issuer, nil
}
