package dto

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
}

// ReserveResponse is the result of a reserve calculation.
type ReserveResponse struct {
	Entries      int             `json:"entries"`
	Transactions decimal.Decimal `json:"transactions"`
	Policy       string          `json:"policy"`
	Reserve      decimal.Decimal `json:"minimum_native_balance"`
}

// WalletResponse is an unsigned wallet creation envelope.
type WalletResponse struct {
	Address         string          `json:"address"`
	URL             string          `json:"@url"`
	TransactionURL  string          `json:"@transaction_url"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	Signers         []string        `json:"signers"`
	XDR             string          `json:"xdr"`
	TransactionHash string          `json:"transaction_hash"`
}

// WalletFromResult converts a wallet result to response.
func WalletFromResult(r *usecase.WalletResult) *WalletResponse {
	return &WalletResponse{
		Address:         r.Address,
		URL:             r.URL,
		TransactionURL:  r.TransactionURL,
		StartingBalance: r.StartingBalance,
		Signers:         r.Signers,
		XDR:             r.XDR,
		TransactionHash: r.TransactionHash,
	}
}

// AccountResponse is the projected state of a ledger account.
type AccountResponse struct {
	Address    string                         `json:"address"`
	Sequence   string                         `json:"sequence"`
	Balances   map[string]domain.AssetBalance `json:"balances"`
	Signers    []domain.ActiveSigner          `json:"signers"`
	Thresholds ThresholdsResponse             `json:"thresholds"`
	Data       map[string]string              `json:"data"`
}

// ThresholdsResponse represents account thresholds.
type ThresholdsResponse struct {
	Low    int32 `json:"low_threshold"`
	Medium int32 `json:"med_threshold"`
	High   int32 `json:"high_threshold"`
}

func thresholdsFromDomain(t domain.Thresholds) ThresholdsResponse {
	return ThresholdsResponse{Low: t.Low, Medium: t.Medium, High: t.High}
}

// AccountFromView converts a wallet view to response.
func AccountFromView(v *usecase.WalletView) *AccountResponse {
	return &AccountResponse{
		Address:    v.Address,
		Sequence:   formatSequence(v.Sequence),
		Balances:   v.Balances,
		Signers:    v.Signers,
		Thresholds: thresholdsFromDomain(v.Thresholds),
		Data:       v.Data,
	}
}

// EscrowResponse is an unsigned escrow creation envelope.
type EscrowResponse struct {
	EscrowAddress        string          `json:"escrow_address"`
	URL                  string          `json:"@url"`
	TransactionURL       string          `json:"@transaction_url"`
	Signers              []string        `json:"signers"`
	XDR                  string          `json:"xdr"`
	TransactionHash      string          `json:"transaction_hash"`
	StartingNative       decimal.Decimal `json:"starting_native_balance"`
	NumberOfTransactions decimal.Decimal `json:"number_of_transactions"`
}

// EscrowFromResult converts an escrow result to response.
func EscrowFromResult(r *usecase.EscrowWalletResult) *EscrowResponse {
	return &EscrowResponse{
		EscrowAddress:        r.EscrowAddress,
		URL:                  r.URL,
		TransactionURL:       r.TransactionURL,
		Signers:              r.Signers,
		XDR:                  r.XDR,
		TransactionHash:      r.TransactionHash,
		StartingNative:       r.StartingNative,
		NumberOfTransactions: r.NumberOfTransactions,
	}
}

// EscrowDetailResponse is the decoded state of an escrow account.
type EscrowDetailResponse struct {
	EscrowAddress      string                         `json:"escrow_address"`
	URL                string                         `json:"@url"`
	CreatorAddress     string                         `json:"creator_address"`
	DestinationAddress string                         `json:"destination_address"`
	ProviderAddress    string                         `json:"provider_address"`
	ExpirationDate     string                         `json:"expiration_date,omitempty"`
	CostPerTransaction string                         `json:"cost_per_transaction"`
	Balances           map[string]domain.AssetBalance `json:"balances"`
	Signers            []domain.ActiveSigner          `json:"signers"`
	Thresholds         ThresholdsResponse             `json:"thresholds"`
	Sequence           string                         `json:"sequence"`
	Data               map[string]string              `json:"data"`
}

// EscrowDetailFromDomain converts an escrow detail to response.
func EscrowDetailFromDomain(d *domain.EscrowWalletDetail, url string) *EscrowDetailResponse {
	return &EscrowDetailResponse{
		EscrowAddress:      d.Address,
		URL:                url,
		CreatorAddress:     d.CreatorAddress,
		DestinationAddress: d.DestinationAddress,
		ProviderAddress:    d.ProviderAddress,
		ExpirationDate:     d.ExpirationDate,
		CostPerTransaction: d.CostPerTransaction,
		Balances:           d.Balances,
		Signers:            d.Signers,
		Thresholds:         thresholdsFromDomain(d.Thresholds),
		Sequence:           formatSequence(d.Sequence),
		Data:               d.Data,
	}
}

// CloseEscrowResponse is an unsigned escrow merge envelope.
type CloseEscrowResponse struct {
	EscrowAddress   string   `json:"escrow_address"`
	TransactionURL  string   `json:"@transaction_url"`
	Signers         []string `json:"signers"`
	XDR             string   `json:"xdr"`
	TransactionHash string   `json:"transaction_hash"`
}

// CloseEscrowFromResult converts a close result to response.
func CloseEscrowFromResult(r *usecase.CloseEscrowResult) *CloseEscrowResponse {
	return &CloseEscrowResponse{
		EscrowAddress:   r.EscrowAddress,
		TransactionURL:  r.TransactionURL,
		Signers:         r.Signers,
		XDR:             r.XDR,
		TransactionHash: r.TransactionHash,
	}
}

// JointWalletResponse is an unsigned joint wallet envelope.
type JointWalletResponse struct {
	ID              string          `json:"id"`
	URL             string          `json:"@url"`
	TransactionURL  string          `json:"@transaction_url"`
	Signers         []string        `json:"signer"`
	XDR             string          `json:"xdr"`
	TransactionHash string          `json:"transaction_hash"`
	StartingNative  decimal.Decimal `json:"starting_native_balance"`
}

// JointWalletFromResult converts a joint wallet result to response.
func JointWalletFromResult(r *usecase.JointWalletResult) *JointWalletResponse {
	return &JointWalletResponse{
		ID:              r.ID,
		URL:             r.URL,
		TransactionURL:  r.TransactionURL,
		Signers:         r.Signers,
		XDR:             r.XDR,
		TransactionHash: r.TransactionHash,
		StartingNative:  r.StartingNative,
	}
}

// PaymentResponse is an unsigned payment envelope.
type PaymentResponse struct {
	TransactionURL  string   `json:"@transaction_url"`
	Signers         []string `json:"signers"`
	XDR             string   `json:"xdr"`
	TransactionHash string   `json:"transaction_hash"`
}

// PaymentFromResult converts a payment result to response.
func PaymentFromResult(r *usecase.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		TransactionURL:  r.TransactionURL,
		Signers:         r.Signers,
		XDR:             r.XDR,
		TransactionHash: r.TransactionHash,
	}
}

// SubmitResponse is the ledger's answer to a submitted envelope.
type SubmitResponse struct {
	TransactionHash string `json:"transaction_hash"`
	Ledger          int64  `json:"ledger"`
	Successful      bool   `json:"successful"`
}

// SubmitFromDomain converts a submit result to response.
func SubmitFromDomain(r *domain.SubmitResult) *SubmitResponse {
	return &SubmitResponse{
		TransactionHash: r.Hash,
		Ledger:          r.Ledger,
		Successful:      r.Successful,
	}
}

// TransactionResponse represents a ledger transaction and its operations.
type TransactionResponse struct {
	Hash           string              `json:"transaction_hash"`
	Ledger         int64               `json:"ledger"`
	SourceAccount  string              `json:"source_account"`
	Memo           string              `json:"memo,omitempty"`
	MemoType       string              `json:"memo_type"`
	Successful     bool                `json:"successful"`
	FeeCharged     string              `json:"fee_charged"`
	OperationCount int                 `json:"operation_count"`
	EnvelopeXDR    string              `json:"envelope_xdr"`
	ResultXDR      string              `json:"result_xdr"`
	CreatedAt      time.Time           `json:"created_at"`
	Operations     []OperationResponse `json:"operations"`
}

// OperationResponse represents one applied operation.
type OperationResponse struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	SourceAccount string            `json:"source_account"`
	CreatedAt     time.Time         `json:"created_at"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// TransactionFromView converts a transaction view to response.
func TransactionFromView(v *usecase.TransactionView) *TransactionResponse {
	tx := v.Transaction
	ops := make([]OperationResponse, len(v.Operations))
	for i, op := range v.Operations {
		ops[i] = OperationResponse{
			ID:            op.ID,
			Type:          op.Type,
			SourceAccount: op.SourceAccount,
			CreatedAt:     op.CreatedAt,
			Attributes:    op.Attributes,
		}
	}

	return &TransactionResponse{
		Hash:           tx.Hash,
		Ledger:         tx.Ledger,
		SourceAccount:  tx.SourceAccount,
		Memo:           tx.Memo,
		MemoType:       tx.MemoType,
		Successful:     tx.Successful,
		FeeCharged:     tx.FeeCharged,
		OperationCount: tx.OperationCount,
		EnvelopeXDR:    tx.EnvelopeXDR,
		ResultXDR:      tx.ResultXDR,
		CreatedAt:      tx.CreatedAt,
		Operations:     ops,
	}
}

func formatSequence(seq int64) string {
	return strconv.FormatInt(seq, 10)
}
