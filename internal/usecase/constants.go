package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyProcessing marks a key whose first request has not finished yet.
	IdempotencyProcessing = "processing"

	// DefaultMemoSearchPages and DefaultMemoSearchPageSize bound the duplicate memo search.
	DefaultMemoSearchPages    = 10
	DefaultMemoSearchPageSize = 200
)

// Flow names label envelopes in metrics, logs and the audit trail.
const (
	FlowWallet       = "wallet"
	FlowTrustWallet  = "trust_wallet"
	FlowEscrow       = "escrow"
	FlowLegacyEscrow = "legacy_escrow"
	FlowCloseEscrow  = "close_escrow"
	FlowJointWallet  = "joint_wallet"
	FlowPayment      = "payment"
)
