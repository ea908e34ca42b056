package ledger

import (
	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// applyContext carries everything Process already determined about a
// progress-bound candidate so apply doesn't re-derive it.
type applyContext struct {
	hash    primitives.BlockHash
	blk     *blockcodec.Block
	account primitives.Account

	hasInfo            bool
	prevBalance        primitives.Amount
	prevRepresentative primitives.Account
	prevEpoch          uint8
	prevBlockCount     uint64

	sub        subtype
	newBalance primitives.Amount

	pendingKey      store.PendingKey
	pendingAmount   primitives.Amount
	pendingEpoch    uint8
	consumesPending bool

	epochCandidate uint8
}

// apply performs the single atomic bundle of mutations for a progress
// verdict: block+sideband insert, account-info update, representation
// weight move, pending insert/delete, and predecessor successor update.
func (l *Ledger) apply(tx *bolt.Tx, c applyContext) (ProcessResult, error) {
	newRepresentative := c.prevRepresentative
	switch c.blk.Kind {
	case blockcodec.KindOpen, blockcodec.KindChange:
		newRepresentative = c.blk.Representative
	case blockcodec.KindState:
		if c.sub != subEpoch {
			newRepresentative = c.blk.Representative
		}
	}

	newBlockCount := c.prevBlockCount + 1

	newEpoch := c.prevEpoch
	switch c.sub {
	case subEpoch:
		newEpoch = c.epochCandidate
	case subReceive:
		if c.consumesPending && c.pendingEpoch > newEpoch {
			newEpoch = c.pendingEpoch
		}
	}

	sb := store.Sideband{
		Account:        c.account,
		Height:         newBlockCount,
		Balance:        c.newBalance,
		Representative: newRepresentative,
		Timestamp:      l.clock(),
		IsSend:         c.sub == subSend,
		IsReceive:      c.sub == subReceive,
		IsEpoch:        c.sub == subEpoch,
		Epoch:          newEpoch,
		SourceEpoch:    c.pendingEpoch,
	}

	if err := store.BlockPut(tx, c.hash, c.blk, sb); err != nil {
		return ProcessResult{}, storeErr("block_put", err)
	}

	newInfo := store.AccountInfo{
		Head:           c.hash,
		Representative: newRepresentative,
		Balance:        c.newBalance,
		Modified:       l.clock(),
		BlockCount:     newBlockCount,
		Epoch:          newEpoch,
	}
	if err := store.AccountPut(tx, c.account, newInfo); err != nil {
		return ProcessResult{}, storeErr("account_put", err)
	}

	if c.sub != subEpoch {
		if err := moveWeight(tx, c.prevRepresentative, c.prevBalance, newRepresentative, c.newBalance); err != nil {
			return ProcessResult{}, storeErr("representation_move", err)
		}
	}

	switch c.sub {
	case subSend:
		destination := sendDestination(c.blk)
		delta, _ := c.prevBalance.Sub(c.newBalance)
		key := store.PendingKey{Destination: destination, SendHash: c.hash}
		rec := store.PendingRecord{Source: c.account, Amount: delta, Epoch: newEpoch}
		if err := store.PendingPut(tx, key, rec); err != nil {
			return ProcessResult{}, storeErr("pending_put", err)
		}
	case subReceive:
		if c.consumesPending {
			if err := store.PendingDel(tx, c.pendingKey); err != nil {
				return ProcessResult{}, storeErr("pending_del", err)
			}
		}
	}

	if !c.blk.Previous.IsZero() {
		if err := store.BlockSetSuccessor(tx, c.blk.Previous, c.hash); err != nil {
			return ProcessResult{}, storeErr("block_set_successor", err)
		}
	}

	// Legacy chains (send/receive/open/change) track their head in the
	// frontier index; state blocks are looked up through AccountInfo.Head
	// instead and never appear here.
	if c.blk.Kind != blockcodec.KindState {
		if !c.blk.Previous.IsZero() {
			if err := store.FrontierDel(tx, c.blk.Previous); err != nil {
				return ProcessResult{}, storeErr("frontier_del", err)
			}
		}
		if err := store.FrontierPut(tx, c.hash, c.account); err != nil {
			return ProcessResult{}, storeErr("frontier_put", err)
		}
	}

	return ProcessResult{
		Code:              VerdictProgress,
		Sideband:          &sb,
		Account:           c.account,
		OldRepresentative: c.prevRepresentative,
		NewRepresentative: newRepresentative,
		AccountOpened:     !c.hasInfo,
	}, nil
}

// sendDestination returns the account a send's output is payable to.
func sendDestination(blk *blockcodec.Block) primitives.Account {
	if blk.Kind == blockcodec.KindState {
		return blk.Link.AsAccount()
	}
	return blk.Destination
}

// moveWeight fully relocates balance-weighted delegation from oldRep to
// newRep using the before/after balances. When oldRep == newRep this nets
// to the same delta the legacy send/receive mutation rules describe
// (subtract/add the difference); it additionally handles the state-block
// case where a send, receive, or change also carries a representative
// change, which the simplified legacy description doesn't need to express.
func moveWeight(tx *bolt.Tx, oldRep primitives.Account, oldBalance primitives.Amount, newRep primitives.Account, newBalance primitives.Amount) error {
	if !oldRep.IsZero() {
		if err := store.RepresentationSub(tx, oldRep, oldBalance); err != nil {
			return err
		}
	}
	if !newRep.IsZero() {
		if err := store.RepresentationAdd(tx, newRep, newBalance); err != nil {
			return err
		}
	}
	return nil
}
