package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Signer weights and thresholds used by the planners.
const (
	CoSignerWeight  uint8 = 1
	EscrowThreshold uint8 = 2

	// MaxJointWalletParties keeps the creator plus parties within the ledger's
	// limit of 20 signers per account.
	MaxJointWalletParties = 19
)

// WalletIntent describes a new funded account, optionally trusting Asset.
type WalletIntent struct {
	TrustLimit      *decimal.Decimal
	Asset           Asset
	Funder          string
	Wallet          string
	StartingBalance decimal.Decimal
	Trust           bool
}

// PlanWallet orders the operations that create a wallet.
func PlanWallet(in WalletIntent) ([]Operation, error) {
	if err := ValidatePositiveAmount("starting_balance", in.StartingBalance); err != nil {
		return nil, err
	}

	ops := []Operation{
		CreateAccountOp{Source: in.Funder, Destination: in.Wallet, StartingBalance: in.StartingBalance},
	}
	if in.Trust {
		ops = append(ops, ChangeTrustOp{Source: in.Wallet, Asset: in.Asset, Limit: in.TrustLimit})
	}

	return ops, nil
}

// EscrowIntent describes a 2-of-2 creator/provider escrow account.
type EscrowIntent struct {
	TrustLimit         *decimal.Decimal
	Asset              Asset
	Escrow             string
	Creator            string
	Destination        string
	Provider           string
	ExpirationDate     string
	StartingNative     decimal.Decimal
	StartingAsset      decimal.Decimal
	CostPerTransaction decimal.Decimal
}

// PlanEscrow orders the escrow creation operations: account, trustline, metadata,
// co-signers, thresholds and finally the provider's funding payment.
func PlanEscrow(in EscrowIntent) ([]Operation, error) {
	if in.Creator == in.Provider {
		return nil, NewError(ErrInvalidValue, "%s cannot be both creator and provider", in.Creator)
	}

	ops := []Operation{
		CreateAccountOp{Source: in.Creator, Destination: in.Escrow, StartingBalance: in.StartingNative},
		ChangeTrustOp{Source: in.Escrow, Asset: in.Asset, Limit: in.TrustLimit},
	}

	entries := []struct{ name, value string }{
		{DataKeyCreator, in.Creator},
		{DataKeyDestination, in.Destination},
		{DataKeyProvider, in.Provider},
		{DataKeyExpiration, in.ExpirationDate},
		{DataKeyCostPerTransaction, in.CostPerTransaction.String()},
	}
	for _, e := range entries {
		if e.value == "" {
			continue
		}
		if err := ValidateDataEntry(e.name, []byte(e.value)); err != nil {
			return nil, err
		}
		ops = append(ops, ManageDataOp{Source: in.Escrow, Name: e.name, Value: []byte(e.value)})
	}

	ops = append(ops,
		SetOptionsOp{Source: in.Escrow, Signer: &SignerWeight{Address: in.Creator, Weight: CoSignerWeight}},
		SetOptionsOp{Source: in.Escrow, Signer: &SignerWeight{Address: in.Provider, Weight: CoSignerWeight}},
		SetOptionsOp{
			Source:          in.Escrow,
			MasterWeight:    weight(0),
			LowThreshold:    weight(EscrowThreshold),
			MediumThreshold: weight(EscrowThreshold),
			HighThreshold:   weight(EscrowThreshold),
		},
		PaymentOp{Source: in.Provider, Destination: in.Escrow, Amount: in.StartingAsset, Asset: in.Asset},
	)

	return ops, nil
}

// PaymentIntent describes a transfer of native and platform asset plus tax.
type PaymentIntent struct {
	Asset             Asset
	Source            string
	Destination       string
	TaxCollector      string
	NativeAmount      decimal.Decimal
	AssetAmount       decimal.Decimal
	TaxAmount         decimal.Decimal
	DestinationTrusts bool
}

// PlanPayment orders up to three payments: native, platform asset and tax.
func PlanPayment(in PaymentIntent) ([]Operation, error) {
	var ops []Operation

	if in.NativeAmount.IsPositive() {
		ops = append(ops, PaymentOp{Source: in.Source, Destination: in.Destination, Amount: in.NativeAmount, Asset: NativeAsset()})
	}

	if in.AssetAmount.IsPositive() {
		if !in.DestinationTrusts {
			return nil, NewError(ErrInvalidValue, "%s is not trusted %s", in.Destination, in.Asset.Code)
		}
		ops = append(ops, PaymentOp{Source: in.Source, Destination: in.Destination, Amount: in.AssetAmount, Asset: in.Asset})
	}

	if in.TaxAmount.IsPositive() {
		if in.TaxCollector == "" {
			return nil, NewError(ErrInvalidValue, "tax collector address is not configured")
		}
		ops = append(ops, PaymentOp{Source: in.Source, Destination: in.TaxCollector, Amount: in.TaxAmount, Asset: in.Asset})
	}

	if len(ops) == 0 {
		return nil, NewError(ErrInvalidValue, "at least one of amount_xlm, amount_htkn or tax_amount must be greater than 0")
	}

	return ops, nil
}

// MergeIntent describes closing an escrow and paying out its asset balance.
type MergeIntent struct {
	Asset        Asset
	Escrow       string
	Creator      string
	Parties      []Party
	DataKeys     []string
	AssetBalance decimal.Decimal
}

// PlanEscrowMerge orders the close operations: payouts, data clearing, trustline
// removal and the merge into the creator. The trustline removal and the merge are
// always the final two operations.
func PlanEscrowMerge(in MergeIntent) ([]Operation, error) {
	if !IsMatchBalance(in.Parties, in.AssetBalance) {
		return nil, NewError(ErrBalanceMismatch,
			"Balance does not match: parties total %s, escrow holds %s %s",
			SumParties(in.Parties), in.AssetBalance, in.Asset.Code)
	}

	var ops []Operation
	for _, p := range in.Parties {
		if !p.Amount.IsPositive() {
			continue
		}
		ops = append(ops, PaymentOp{Source: in.Escrow, Destination: p.Address, Amount: p.Amount, Asset: in.Asset})
	}

	// The ledger accepts the data clears before or after the trustline removal;
	// only the trailing ChangeTrust and AccountMerge pair is fixed.
	keys := append([]string(nil), in.DataKeys...)
	sort.Strings(keys)
	for _, k := range keys {
		ops = append(ops, ManageDataOp{Source: in.Escrow, Name: k})
	}

	ops = append(ops,
		ChangeTrustOp{Source: in.Escrow, Asset: in.Asset, Limit: limit(decimal.Zero)},
		AccountMergeOp{Source: in.Escrow, Destination: in.Creator},
	)

	return ops, nil
}

// JointWalletIntent describes an account co-owned by a creator and N parties.
type JointWalletIntent struct {
	Meta           map[string]string
	TrustLimit     *decimal.Decimal
	Asset          Asset
	Deal           string
	Creator        string
	Parties        []Party
	StartingNative decimal.Decimal
}

// JointWalletThreshold is the weight every joint-wallet operation needs: all
// parties plus the creator.
func JointWalletThreshold(parties int) int {
	return parties + 1
}

// JointWalletEntryCount is the number of ledger entries a joint wallet owns.
func JointWalletEntryCount(parties, meta int) int {
	return 1 + (parties + 1) + 1 + meta
}

// PlanJointWallet orders the joint wallet operations: account, trustline, metadata,
// one signer per owner, thresholds and the parties' pledges.
func PlanJointWallet(in JointWalletIntent) ([]Operation, error) {
	if len(in.Parties) == 0 {
		return nil, NewError(ErrInvalidValue, "parties must contain at least one party")
	}
	if len(in.Parties) > MaxJointWalletParties {
		return nil, NewError(ErrInvalidValue, "parties must contain at most %d parties", MaxJointWalletParties)
	}

	seen := map[string]bool{in.Creator: true, in.Deal: true}
	for _, p := range in.Parties {
		if seen[p.Address] {
			return nil, NewError(ErrInvalidValue, "%s appears more than once", p.Address)
		}
		if p.Amount.IsNegative() {
			return nil, NewError(ErrInvalidValue, "amount for %s must not be negative", p.Address)
		}
		seen[p.Address] = true
	}
	if _, ok := in.Meta[DataKeyCreator]; ok {
		return nil, NewError(ErrInvalidValue, "meta must not contain %s", DataKeyCreator)
	}

	ops := []Operation{
		CreateAccountOp{Source: in.Creator, Destination: in.Deal, StartingBalance: in.StartingNative},
		ChangeTrustOp{Source: in.Deal, Asset: in.Asset, Limit: in.TrustLimit},
		ManageDataOp{Source: in.Deal, Name: DataKeyCreator, Value: []byte(in.Creator)},
	}

	metaKeys := make([]string, 0, len(in.Meta))
	for k := range in.Meta {
		metaKeys = append(metaKeys, k)
	}
	sort.Strings(metaKeys)
	for _, k := range metaKeys {
		value := []byte(in.Meta[k])
		if err := ValidateDataEntry(k, value); err != nil {
			return nil, err
		}
		ops = append(ops, ManageDataOp{Source: in.Deal, Name: k, Value: value})
	}

	ops = append(ops, SetOptionsOp{Source: in.Deal, Signer: &SignerWeight{Address: in.Creator, Weight: CoSignerWeight}})
	for _, p := range in.Parties {
		ops = append(ops, SetOptionsOp{Source: in.Deal, Signer: &SignerWeight{Address: p.Address, Weight: CoSignerWeight}})
	}

	threshold := uint8(JointWalletThreshold(len(in.Parties)))
	ops = append(ops, SetOptionsOp{
		Source:          in.Deal,
		MasterWeight:    weight(0),
		LowThreshold:    weight(threshold),
		MediumThreshold: weight(threshold),
		HighThreshold:   weight(threshold),
	})

	for _, p := range in.Parties {
		if !p.Amount.IsPositive() {
			continue
		}
		ops = append(ops, PaymentOp{Source: p.Address, Destination: in.Deal, Amount: p.Amount, Asset: in.Asset})
	}

	return ops, nil
}

// OperationTypes lists the type tags of ops in order.
func OperationTypes(ops []Operation) []OperationType {
	out := make([]OperationType, len(ops))
	for i, op := range ops {
		out[i] = op.Type()
	}
	return out
}

func (t OperationType) String() string { return string(t) }
