package domain

import (
	"time"
)

// UnsignedTx is the input of envelope serialization.
type UnsignedTx struct {
	Source     string
	Memo       string
	Operations []Operation
	Sequence   int64
}

// Envelope is an unsigned serialized transaction and its network hash.
type Envelope struct {
	XDR  string
	Hash string
}

// MemoSide selects whose history is searched for a duplicate memo.
type MemoSide string

const (
	MemoOnSource      MemoSide = "source"
	MemoOnDestination MemoSide = "destination"
)

// Page order values.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// PageRequest addresses one page of ledger history.
type PageRequest struct {
	Order  string
	Cursor string
	Limit  int
}

// TxSummary is one row of an account's transaction history.
type TxSummary struct {
	CreatedAt      time.Time
	Hash           string
	PagingToken    string
	SourceAccount  string
	Memo           string
	MemoType       string
	Ledger         int64
	OperationCount int
	Successful     bool
}

// TxDetail is a single transaction as recorded by the ledger.
type TxDetail struct {
	TxSummary
	EnvelopeXDR string
	ResultXDR   string
	FeeCharged  string
}

// OperationRecord is an applied operation as reported by the ledger.
type OperationRecord struct {
	CreatedAt       time.Time
	Attributes      map[string]string
	ID              string
	PagingToken     string
	Type            string
	SourceAccount   string
	TransactionHash string
}

// SubmitResult is the outcome of posting a signed envelope.
type SubmitResult struct {
	Hash       string
	Ledger     int64
	Successful bool
}

// EnvelopeRecord is an audit row for an issued envelope.
type EnvelopeRecord struct {
	CreatedAt     time.Time
	ID            string
	Flow          string
	SourceAccount string
	TxHash        string
	XDR           string
	Sequence      int64
}
