package ledger

import (
	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/ed25519"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// subtype is the engine's internal classification of a candidate block,
// resolved before the arithmetic and mutation stages. Legacy blocks carry
// their subtype in Kind directly; state blocks are classified from Link
// and the balance delta against the account's current balance.
type subtype int

const (
	subSend subtype = iota
	subReceive
	subChange
	subEpoch
)

func fail(code VerdictCode) (ProcessResult, error) { return ProcessResult{Code: code}, nil }

// Process validates a candidate block against the current store snapshot
// and, on Progress, applies its mutations within tx. It never commits or
// aborts tx itself and never touches the ledger cache — see
// Ledger.ProcessAndCommit for the commit-and-cache-refresh wrapper.
func (l *Ledger) Process(tx *bolt.Tx, blk *blockcodec.Block) (ProcessResult, error) {
	hash, err := blk.Hash()
	if err != nil {
		return ProcessResult{}, err
	}

	// 1. existence
	if store.BlockOrPrunedExists(tx, hash) {
		return fail(VerdictOld)
	}

	// 2. previous existence, and derive the owning account. Legacy send,
	// receive, and change blocks always continue an existing chain: a zero
	// Previous on one of them has no predecessor to gap against.
	switch blk.Kind {
	case blockcodec.KindSend, blockcodec.KindReceive, blockcodec.KindChange:
		if blk.Previous.IsZero() {
			return fail(VerdictGapPrevious)
		}
	}

	var hasPrevBlk bool
	var prevBlk *blockcodec.Block
	var prevSb store.Sideband
	if !blk.Previous.IsZero() {
		pb, psb, ok, err := store.BlockGet(tx, blk.Previous)
		if err != nil {
			return ProcessResult{}, storeErr("block_get previous", err)
		}
		if !ok {
			if store.PrunedExists(tx, blk.Previous) {
				// The frontier of any account is never pruned, so a previous
				// pointing at a pruned block cannot be the account's real
				// head: the chain moved on and this root is occupied.
				return fail(VerdictFork)
			}
			return fail(VerdictGapPrevious)
		}
		hasPrevBlk, prevBlk, prevSb = true, pb, psb
	}

	var account primitives.Account
	switch blk.Kind {
	case blockcodec.KindOpen, blockcodec.KindState:
		account = blk.Account
	default:
		account = prevSb.Account
	}

	// A state block naming an account that doesn't actually own Previous is
	// attempting to extend somebody else's chain; that root is already
	// occupied by whatever legitimately follows prevSb.Account's block.
	if blk.Kind == blockcodec.KindState && hasPrevBlk && account != prevSb.Account {
		return fail(VerdictFork)
	}

	info, hasInfo, err := store.AccountGet(tx, account)
	if err != nil {
		return ProcessResult{}, storeErr("account_get", err)
	}
	var prevBalance primitives.Amount
	var prevRepresentative primitives.Account
	var prevEpoch uint8
	if hasInfo {
		prevBalance = info.Balance
		prevRepresentative = info.Representative
		prevEpoch = info.Epoch
	}

	// 3. work, validated against the account's pre-block epoch so a newly
	// upgraded epoch-2 account's own upgrade block still uses epoch-1
	// difficulty (the difficulty step applies strictly to its successors).
	threshold := l.workThreshold(blk.Kind, prevEpoch)
	if !primitives.ValidateWork(blk.Work, blk.Root(), threshold) {
		return fail(VerdictInsufficientWork)
	}

	// 4. signature. A link matching a known epoch marker is verified
	// against that epoch's signer key instead of the account's own key;
	// falling back to the account key if no signer is configured for it.
	var epochCandidate uint8
	var isEpochLink bool
	if blk.Kind == blockcodec.KindState {
		epochCandidate, isEpochLink = l.epochOfLink[blk.Link]
	}
	usingEpochKey := false
	verifyOK := false
	if isEpochLink {
		if key, ok := l.epochSignerKeys[epochCandidate]; ok {
			verifyOK = ed25519.Verify(key, hash[:], blk.Signature[:])
			usingEpochKey = true
		}
	}
	if !usingEpochKey {
		verifyOK = primitives.Verify(account, hash, blk.Signature)
	}
	if !verifyOK {
		return fail(VerdictBadSignature)
	}
	isEpochBlock := usingEpochKey

	// Classify the subtype now that epoch status is settled.
	var sub subtype
	switch blk.Kind {
	case blockcodec.KindSend:
		sub = subSend
	case blockcodec.KindReceive, blockcodec.KindOpen:
		sub = subReceive
	case blockcodec.KindChange:
		sub = subChange
	case blockcodec.KindState:
		switch {
		case isEpochBlock:
			sub = subEpoch
		case !hasInfo:
			sub = subReceive
		case blk.Balance.Cmp(prevBalance) < 0:
			sub = subSend
		case blk.Balance.Cmp(prevBalance) > 0:
			sub = subReceive
		default:
			sub = subChange
		}
	}

	// 5. structural checks.
	if sub != subEpoch && blk.Kind != blockcodec.KindState && hasPrevBlk && prevBlk.Kind == blockcodec.KindState {
		return fail(VerdictBlockPosition)
	}
	if sub == subEpoch {
		if hasInfo {
			if epochCandidate != prevEpoch+1 {
				return fail(VerdictBlockPosition)
			}
			if blk.Representative != prevRepresentative {
				return fail(VerdictRepresentativeMismatch)
			}
			if blk.Balance.Cmp(prevBalance) != 0 {
				return fail(VerdictRepresentativeMismatch)
			}
		} else {
			if !blk.Representative.IsZero() {
				return fail(VerdictRepresentativeMismatch)
			}
			if !blk.Balance.IsZero() {
				return fail(VerdictRepresentativeMismatch)
			}
		}
	}

	// 6. source existence / pending lookup.
	var pendingKey store.PendingKey
	var pendingAmount primitives.Amount
	var pendingEpoch uint8
	consumesPending := false

	if sub == subEpoch && !hasInfo {
		any, err := hasAnyPending(tx, account)
		if err != nil {
			return ProcessResult{}, storeErr("pending_iterate", err)
		}
		if !any {
			return fail(VerdictGapEpochOpenPending)
		}
	}

	if sub == subReceive {
		var sourceHash primitives.BlockHash
		switch blk.Kind {
		case blockcodec.KindReceive:
			sourceHash = blk.Source
		case blockcodec.KindOpen:
			if blk.Account.IsBurn() {
				return fail(VerdictOpenedBurnAccount)
			}
			sourceHash = blk.Source
		case blockcodec.KindState:
			if !hasInfo && account.IsBurn() {
				return fail(VerdictOpenedBurnAccount)
			}
			sourceHash = blk.Link.AsHash()
		}
		pendingKey = store.PendingKey{Destination: account, SendHash: sourceHash}
		pend, pendOK, err := store.PendingGet(tx, pendingKey)
		if err != nil {
			return ProcessResult{}, storeErr("pending_get", err)
		}
		if !pendOK {
			if !store.BlockOrPrunedExists(tx, sourceHash) {
				return fail(VerdictGapSource)
			}
			return fail(VerdictUnreceivable)
		}
		pendingAmount = pend.Amount
		pendingEpoch = pend.Epoch
		consumesPending = true
	}

	// 7. arithmetic.
	var newBalance primitives.Amount
	switch sub {
	case subSend:
		if blk.Balance.Cmp(prevBalance) >= 0 {
			return fail(VerdictNegativeSpend)
		}
		if _, underflow := prevBalance.Sub(blk.Balance); underflow {
			return fail(VerdictOverspend)
		}
		newBalance = blk.Balance
	case subReceive:
		want, overflow := prevBalance.Add(pendingAmount)
		if overflow {
			return fail(VerdictOverspend)
		}
		if blk.Kind == blockcodec.KindState && blk.Balance.Cmp(want) != 0 {
			return fail(VerdictBalanceMismatch)
		}
		newBalance = want
	case subChange, subEpoch:
		newBalance = prevBalance
	}

	// 8. fork — checked last, against an otherwise-valid candidate.
	isOpenCandidate := blk.IsOpen()
	if isOpenCandidate {
		if hasInfo {
			return fail(VerdictFork)
		}
	} else {
		succ, ok, err := store.BlockSuccessor(tx, blk.Previous)
		if err != nil {
			return ProcessResult{}, storeErr("block_successor", err)
		}
		if ok && succ != hash {
			return fail(VerdictFork)
		}
	}

	return l.apply(tx, applyContext{
		hash:               hash,
		blk:                blk,
		account:            account,
		hasInfo:            hasInfo,
		prevBalance:        prevBalance,
		prevRepresentative: prevRepresentative,
		prevEpoch:          prevEpoch,
		prevBlockCount:     info.BlockCount,
		sub:                sub,
		newBalance:         newBalance,
		pendingKey:         pendingKey,
		pendingAmount:      pendingAmount,
		pendingEpoch:       pendingEpoch,
		consumesPending:    consumesPending,
		epochCandidate:     epochCandidate,
	})
}

// hasAnyPending reports whether account has at least one receivable entry,
// stopping at the first match.
func hasAnyPending(tx *bolt.Tx, account primitives.Account) (bool, error) {
	found := false
	err := store.PendingIterateForAccount(tx, account, func(store.PendingKey, store.PendingRecord) (bool, error) {
		found = true
		return false, nil
	})
	return found, err
}

// workThreshold returns the proof-of-work difficulty a candidate must meet.
// Epoch-2-and-later state blocks raise the bar: three quarters of the
// remaining headroom above the base threshold, mirroring nano's practice of
// stepping up difficulty at each epoch without a second configured value.
func (l *Ledger) workThreshold(kind blockcodec.Kind, accountEpoch uint8) uint64 {
	base := l.baseWorkDifficulty
	if kind != blockcodec.KindState || accountEpoch < 2 {
		return base
	}
	gap := ^uint64(0) - base
	return base + gap - gap/4
}
