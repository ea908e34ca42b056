package ledger

import (
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// VerdictCode is the outcome of validating and attempting to apply a
// candidate block. Verdicts are not Go errors — a block that fails
// validation is well-formed input, not a failure of the call itself.
type VerdictCode string

const (
	VerdictProgress               VerdictCode = "progress"
	VerdictOld                    VerdictCode = "old"
	VerdictGapPrevious            VerdictCode = "gap_previous"
	VerdictGapSource              VerdictCode = "gap_source"
	VerdictGapEpochOpenPending     VerdictCode = "gap_epoch_open_pending"
	VerdictFork                   VerdictCode = "fork"
	VerdictBadSignature            VerdictCode = "bad_signature"
	VerdictNegativeSpend           VerdictCode = "negative_spend"
	VerdictUnreceivable            VerdictCode = "unreceivable"
	VerdictOverspend               VerdictCode = "overspend"
	VerdictBalanceMismatch         VerdictCode = "balance_mismatch"
	VerdictRepresentativeMismatch VerdictCode = "representative_mismatch"
	VerdictBlockPosition           VerdictCode = "block_position"
	VerdictInsufficientWork        VerdictCode = "insufficient_work"
	VerdictOpenedBurnAccount       VerdictCode = "opened_burn_account"
)

// ProcessResult is the return value of Ledger.Process. The Old/New
// representative and AccountOpened fields are populated only on Progress;
// they exist so a caller wrapping Process in a commit can update the
// representation-weight cache and counters without re-deriving them.
type ProcessResult struct {
	Code              VerdictCode
	Sideband          *store.Sideband
	Account           primitives.Account
	OldRepresentative primitives.Account
	NewRepresentative primitives.Account
	AccountOpened     bool
}
