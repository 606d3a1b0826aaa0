package dto

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/usecase"
)

// field is one required request field, checked in declaration order.
type field struct {
	name    string
	present bool
}

func required(fields ...field) error {
	for _, f := range fields {
		if !f.present {
			return domain.NewError(domain.ErrMissingParameter, "Parameter '%s' not found", f.name)
		}
	}
	return nil
}

func parseAmount(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, domain.WrapError(domain.ErrInvalidValue, err, "%s is not a valid amount", name)
	}
	return d, nil
}

func parseOptionalAmount(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return parseAmount(name, value)
}

func parseAmountPtr(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := parseAmount(name, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	FunderAddress   string `json:"funder_address"`
	WalletAddress   string `json:"wallet_address"`
	StartingBalance string `json:"starting_balance,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWalletRequest) ToUseCaseInput() (usecase.CreateWalletInput, error) {
	if err := required(
		field{"funder_address", r.FunderAddress != ""},
		field{"wallet_address", r.WalletAddress != ""},
	); err != nil {
		return usecase.CreateWalletInput{}, err
	}

	starting, err := parseAmountPtr("starting_balance", r.StartingBalance)
	if err != nil {
		return usecase.CreateWalletInput{}, err
	}

	return usecase.CreateWalletInput{
		FunderAddress:   r.FunderAddress,
		WalletAddress:   r.WalletAddress,
		StartingBalance: starting,
	}, nil
}

// GenerateEscrowRequest represents a request to generate an escrow wallet.
type GenerateEscrowRequest struct {
	EscrowAddress      string `json:"escrow_address"`
	CreatorAddress     string `json:"creator_address"`
	DestinationAddress string `json:"destination_address"`
	ProviderAddress    string `json:"provider_address"`
	StartingBalance    string `json:"starting_balance"`
	CostPerTransaction string `json:"cost_per_transaction"`
	ExpirationDate     string `json:"expiration_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *GenerateEscrowRequest) ToUseCaseInput() (usecase.GenerateEscrowWalletInput, error) {
	if err := required(
		field{"escrow_address", r.EscrowAddress != ""},
		field{"creator_address", r.CreatorAddress != ""},
		field{"destination_address", r.DestinationAddress != ""},
		field{"provider_address", r.ProviderAddress != ""},
		field{"starting_balance", r.StartingBalance != ""},
		field{"cost_per_transaction", r.CostPerTransaction != ""},
	); err != nil {
		return usecase.GenerateEscrowWalletInput{}, err
	}

	starting, err := parseAmount("starting_balance", r.StartingBalance)
	if err != nil {
		return usecase.GenerateEscrowWalletInput{}, err
	}
	cost, err := parseAmount("cost_per_transaction", r.CostPerTransaction)
	if err != nil {
		return usecase.GenerateEscrowWalletInput{}, err
	}

	return usecase.GenerateEscrowWalletInput{
		EscrowAddress:      r.EscrowAddress,
		CreatorAddress:     r.CreatorAddress,
		DestinationAddress: r.DestinationAddress,
		ProviderAddress:    r.ProviderAddress,
		StartingBalance:    starting,
		CostPerTransaction: cost,
		ExpirationDate:     r.ExpirationDate,
	}, nil
}

// PartyRequest is one party of a close or joint wallet request.
type PartyRequest struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

func toParties(list string, parties []PartyRequest) ([]domain.Party, error) {
	result := make([]domain.Party, 0, len(parties))
	for _, p := range parties {
		if err := required(
			field{list + ".address", p.Address != ""},
			field{list + ".amount", p.Amount != ""},
		); err != nil {
			return nil, err
		}
		amount, err := parseAmount(list+".amount", p.Amount)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.Party{Address: p.Address, Amount: amount})
	}
	return result, nil
}

// CloseEscrowRequest represents a request to close an escrow wallet.
// An empty parties list pays the whole remaining balance to the provider.
type CloseEscrowRequest struct {
	Parties []PartyRequest `json:"parties_wallet,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CloseEscrowRequest) ToUseCaseInput(escrowAddress string) (usecase.CloseEscrowWalletInput, error) {
	parties, err := toParties("parties_wallet", r.Parties)
	if err != nil {
		return usecase.CloseEscrowWalletInput{}, err
	}
	return usecase.CloseEscrowWalletInput{
		EscrowAddress: escrowAddress,
		Parties:       parties,
	}, nil
}

// GenerateJointWalletRequest represents a request to generate a joint wallet.
type GenerateJointWalletRequest struct {
	DealAddress    string            `json:"deal_address"`
	Parties        []PartyRequest    `json:"parties"`
	CreatorAddress string            `json:"creator_address"`
	StartingXLM    string            `json:"starting_xlm,omitempty"`
	Meta           map[string]string `json:"meta,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *GenerateJointWalletRequest) ToUseCaseInput() (usecase.GenerateJointWalletInput, error) {
	if err := required(
		field{"deal_address", r.DealAddress != ""},
		field{"parties", len(r.Parties) > 0},
		field{"creator_address", r.CreatorAddress != ""},
	); err != nil {
		return usecase.GenerateJointWalletInput{}, err
	}

	parties, err := toParties("parties", r.Parties)
	if err != nil {
		return usecase.GenerateJointWalletInput{}, err
	}
	startingXLM, err := parseAmountPtr("starting_xlm", r.StartingXLM)
	if err != nil {
		return usecase.GenerateJointWalletInput{}, err
	}

	return usecase.GenerateJointWalletInput{
		DealAddress:    r.DealAddress,
		CreatorAddress: r.CreatorAddress,
		Parties:        parties,
		StartingXLM:    startingXLM,
		Meta:           r.Meta,
	}, nil
}

// GeneratePaymentRequest represents a request to build a payment envelope.
type GeneratePaymentRequest struct {
	SourceAddress      string `json:"source_address"`
	DestinationAddress string `json:"destination_address"`
	AmountXLM          string `json:"amount_xlm,omitempty"`
	AmountAsset        string `json:"amount_htkn,omitempty"`
	TaxAmount          string `json:"tax_amount,omitempty"`
	Memo               string `json:"memo,omitempty"`
	MemoOn             string `json:"memo_on,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *GeneratePaymentRequest) ToUseCaseInput() (usecase.GeneratePaymentInput, error) {
	if err := required(
		field{"source_address", r.SourceAddress != ""},
		field{"destination_address", r.DestinationAddress != ""},
	); err != nil {
		return usecase.GeneratePaymentInput{}, err
	}

	amountXLM, err := parseOptionalAmount("amount_xlm", r.AmountXLM)
	if err != nil {
		return usecase.GeneratePaymentInput{}, err
	}
	amountAsset, err := parseOptionalAmount("amount_htkn", r.AmountAsset)
	if err != nil {
		return usecase.GeneratePaymentInput{}, err
	}
	tax, err := parseOptionalAmount("tax_amount", r.TaxAmount)
	if err != nil {
		return usecase.GeneratePaymentInput{}, err
	}

	return usecase.GeneratePaymentInput{
		SourceAddress:      r.SourceAddress,
		DestinationAddress: r.DestinationAddress,
		AmountXLM:          amountXLM,
		AmountAsset:        amountAsset,
		TaxAmount:          tax,
		Memo:               r.Memo,
		MemoOn:             domain.MemoSide(r.MemoOn),
	}, nil
}

// SubmitTransactionRequest carries a signed envelope.
type SubmitTransactionRequest struct {
	XDR string `json:"xdr"`
}

// Validate checks the required fields.
func (r *SubmitTransactionRequest) Validate() error {
	return required(field{"xdr", r.XDR != ""})
}

// ReserveQuery holds the reserve calculator query parameters.
type ReserveQuery struct {
	Transactions decimal.Decimal
	Policy       domain.ReservePolicy
	Entries      int
}

// ParseReserveQuery reads entries, transactions and policy from q.
// transactions defaults to 0 and policy to ceiling.
func ParseReserveQuery(q url.Values) (ReserveQuery, error) {
	if err := required(field{"entries", q.Get("entries") != ""}); err != nil {
		return ReserveQuery{}, err
	}

	entries, err := strconv.Atoi(q.Get("entries"))
	if err != nil {
		return ReserveQuery{}, domain.WrapError(domain.ErrInvalidValue, err, "entries must be an integer")
	}
	txCount, err := parseOptionalAmount("transactions", q.Get("transactions"))
	if err != nil {
		return ReserveQuery{}, err
	}

	var policy domain.ReservePolicy
	switch q.Get("policy") {
	case "", domain.CeilingReserve.Name:
		policy = domain.CeilingReserve
	case domain.HalfUpReserve.Name:
		policy = domain.HalfUpReserve
	default:
		return ReserveQuery{}, domain.NewError(domain.ErrInvalidValue, "policy must be %q or %q", domain.CeilingReserve.Name, domain.HalfUpReserve.Name)
	}

	return ReserveQuery{Entries: entries, Transactions: txCount, Policy: policy}, nil
}
