package domain

import (
	"github.com/shopspring/decimal"
)

// OperationType tags each Operation variant.
type OperationType string

const (
	OpCreateAccount OperationType = "create_account"
	OpPayment       OperationType = "payment"
	OpChangeTrust   OperationType = "change_trust"
	OpManageData    OperationType = "manage_data"
	OpSetOptions    OperationType = "set_options"
	OpAccountMerge  OperationType = "account_merge"
)

// Operation is one step of a ledger transaction. Operations apply in list order.
type Operation interface {
	Type() OperationType
	SourceAccount() string
}

// CreateAccountOp funds a new account.
type CreateAccountOp struct {
	Source          string
	Destination     string
	StartingBalance decimal.Decimal
}

func (CreateAccountOp) Type() OperationType      { return OpCreateAccount }
func (o CreateAccountOp) SourceAccount() string { return o.Source }

// PaymentOp moves Amount of Asset to Destination.
type PaymentOp struct {
	Asset       Asset
	Source      string
	Destination string
	Amount      decimal.Decimal
}

func (PaymentOp) Type() OperationType      { return OpPayment }
func (o PaymentOp) SourceAccount() string { return o.Source }

// ChangeTrustOp creates, updates or removes a trustline.
// A nil Limit means the ledger maximum; a zero Limit removes the line.
type ChangeTrustOp struct {
	Limit  *decimal.Decimal
	Asset  Asset
	Source string
}

func (ChangeTrustOp) Type() OperationType      { return OpChangeTrust }
func (o ChangeTrustOp) SourceAccount() string { return o.Source }

// ManageDataOp sets a data entry. A nil Value clears it.
type ManageDataOp struct {
	Source string
	Name   string
	Value  []byte
}

func (ManageDataOp) Type() OperationType      { return OpManageData }
func (o ManageDataOp) SourceAccount() string { return o.Source }

// SignerWeight adds, reweights or (weight 0) removes a signer.
type SignerWeight struct {
	Address string
	Weight  uint8
}

// SetOptionsOp changes signers and thresholds. Nil fields are left untouched.
type SetOptionsOp struct {
	Signer          *SignerWeight
	MasterWeight    *uint8
	LowThreshold    *uint8
	MediumThreshold *uint8
	HighThreshold   *uint8
	Source          string
}

func (SetOptionsOp) Type() OperationType      { return OpSetOptions }
func (o SetOptionsOp) SourceAccount() string { return o.Source }

// AccountMergeOp closes Source and sends its native balance to Destination.
type AccountMergeOp struct {
	Source      string
	Destination string
}

func (AccountMergeOp) Type() OperationType      { return OpAccountMerge }
func (o AccountMergeOp) SourceAccount() string { return o.Source }

func weight(w uint8) *uint8 { return &w }

func limit(d decimal.Decimal) *decimal.Decimal { return &d }
