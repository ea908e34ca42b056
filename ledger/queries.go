package ledger

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// Balance returns the balance-after of block hash, read directly from its
// sideband.
func (l *Ledger) Balance(tx *bolt.Tx, hash primitives.BlockHash) (primitives.Amount, bool, error) {
	_, sb, ok, err := store.BlockGet(tx, hash)
	if err != nil || !ok {
		return primitives.Amount{}, ok, err
	}
	return sb.Balance, true, nil
}

// Amount returns the value moved by block hash: for a send, the amount
// debited; for a receive, the amount credited. Change and epoch blocks move
// nothing and return a zero amount.
func (l *Ledger) Amount(tx *bolt.Tx, hash primitives.BlockHash) (primitives.Amount, bool, error) {
	blk, sb, ok, err := store.BlockGet(tx, hash)
	if err != nil || !ok {
		return primitives.Amount{}, ok, err
	}
	if !sb.IsSend && !sb.IsReceive {
		return primitives.Amount{}, true, nil
	}

	var predBalance primitives.Amount
	if !blk.IsOpen() {
		_, predSb, ok, err := store.BlockGet(tx, blk.Previous)
		if err != nil {
			return primitives.Amount{}, false, err
		}
		if !ok {
			return primitives.Amount{}, false, fmt.Errorf("ledger: amount: predecessor of %x missing or pruned", hash)
		}
		predBalance = predSb.Balance
	}

	if sb.IsSend {
		delta, _ := predBalance.Sub(sb.Balance)
		return delta, true, nil
	}
	delta, _ := sb.Balance.Sub(predBalance)
	return delta, true, nil
}

// Weight returns account's total delegated voting weight. Before the store
// has processed BootstrapWeightMaxBlocks blocks, a configured bootstrap
// override takes precedence over the (still-catching-up) representation
// table, the way a freshly syncing node trusts a bundled weight snapshot
// until its own ledger has enough history to be authoritative.
func (l *Ledger) Weight(tx *bolt.Tx, account primitives.Account) (primitives.Amount, error) {
	if l.bootstrapWeightMaxBlocks > 0 && store.BlockCount(tx) < l.bootstrapWeightMaxBlocks {
		if w, ok := l.bootstrapWeights[account]; ok {
			return w, nil
		}
	}
	return store.RepresentationGet(tx, account)
}

// Account returns the account that owns block hash.
func (l *Ledger) Account(tx *bolt.Tx, hash primitives.BlockHash) (primitives.Account, bool, error) {
	_, sb, ok, err := store.BlockGet(tx, hash)
	if err != nil || !ok {
		return primitives.Account{}, ok, err
	}
	return sb.Account, true, nil
}

// Successor returns the first block extending the chain slot root, if any
// has been recorded.
func (l *Ledger) Successor(tx *bolt.Tx, root primitives.BlockHash) (primitives.BlockHash, bool, error) {
	return store.BlockSuccessor(tx, root)
}

// Latest returns account's current chain head, or the zero hash if the
// account has never been opened.
func (l *Ledger) Latest(tx *bolt.Tx, account primitives.Account) (primitives.BlockHash, error) {
	info, ok, err := store.AccountGet(tx, account)
	if err != nil || !ok {
		return primitives.BlockHash{}, err
	}
	return info.Head, nil
}

// LatestRoot returns the slot a new block from account would root on: its
// current head if opened, or the account itself if not — so a caller can
// always generate proof-of-work against the right value before knowing
// whether the account exists yet.
func (l *Ledger) LatestRoot(tx *bolt.Tx, account primitives.Account) (primitives.BlockHash, error) {
	info, ok, err := store.AccountGet(tx, account)
	if err != nil {
		return primitives.BlockHash{}, err
	}
	if !ok {
		var h primitives.BlockHash
		copy(h[:], account[:])
		return h, nil
	}
	return info.Head, nil
}

// BlockConfirmed reports whether hash's owning account has been confirmed
// at least as far as hash's own height.
func (l *Ledger) BlockConfirmed(tx *bolt.Tx, hash primitives.BlockHash) (bool, error) {
	_, sb, ok, err := store.BlockGet(tx, hash)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	ch, ok, err := store.ConfirmationHeightGet(tx, sb.Account)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return ch.Height >= sb.Height, nil
}

// DependentsConfirmed reports whether every block a candidate depends on
// (its previous, and its source for a receive) is already confirmed or
// pruned — pruning only ever happens below the confirmation frontier, so a
// pruned dependency is necessarily confirmed.
func (l *Ledger) DependentsConfirmed(tx *bolt.Tx, blk *blockcodec.Block) (bool, error) {
	if !blk.Previous.IsZero() {
		ok, err := l.confirmedOrPruned(tx, blk.Previous)
		if err != nil || !ok {
			return false, err
		}
	}
	if source, ok := l.candidateSource(tx, blk); ok {
		return l.confirmedOrPruned(tx, source)
	}
	return true, nil
}

func (l *Ledger) confirmedOrPruned(tx *bolt.Tx, hash primitives.BlockHash) (bool, error) {
	if store.PrunedExists(tx, hash) {
		return true, nil
	}
	return l.BlockConfirmed(tx, hash)
}

// CouldFit is a cheap pre-check run before taking the write lock: it
// reports whether previous and source (when the kind requires one) are at
// least present-or-pruned, without running the full validation pipeline.
func (l *Ledger) CouldFit(tx *bolt.Tx, blk *blockcodec.Block) bool {
	if !blk.Previous.IsZero() && !store.BlockOrPrunedExists(tx, blk.Previous) {
		return false
	}
	if source, ok := l.candidateSource(tx, blk); ok && !store.BlockOrPrunedExists(tx, source) {
		return false
	}
	return true
}

// candidateSource returns the source hash a block depends on, if any.
// Legacy receive/open always name one. A state block's Link names a source
// only when the block is a receive: an epoch-marker link never does, and a
// block whose balance does not rise above its previous block's balance is a
// send or change. When Previous is not readable (missing or pruned) the
// balance comparison is skipped and a non-zero Link is taken as the source.
func (l *Ledger) candidateSource(tx *bolt.Tx, blk *blockcodec.Block) (primitives.BlockHash, bool) {
	switch blk.Kind {
	case blockcodec.KindReceive, blockcodec.KindOpen:
		return blk.Source, true
	case blockcodec.KindState:
		if blk.Link.IsZero() {
			break
		}
		if _, isEpoch := l.epochOfLink[blk.Link]; isEpoch {
			break
		}
		if !blk.Previous.IsZero() {
			if _, prevSb, ok, err := store.BlockGet(tx, blk.Previous); err == nil && ok && blk.Balance.Cmp(prevSb.Balance) <= 0 {
				break
			}
		}
		return blk.Link.AsHash(), true
	}
	return primitives.BlockHash{}, false
}

// BlockOrPrunedExists reports whether hash is either a live block or a
// pruned tombstone.
func (l *Ledger) BlockOrPrunedExists(tx *bolt.Tx, hash primitives.BlockHash) bool {
	return store.BlockOrPrunedExists(tx, hash)
}

// ConfirmationHeightUpdate records account's confirmed chain position, as
// reported by the external election subsystem. The engine only validates
// that height does not move backward and that frontier is actually the
// block at that height on account's chain; it never decides confirmation
// itself.
func (l *Ledger) ConfirmationHeightUpdate(tx *bolt.Tx, account primitives.Account, height uint64, frontier primitives.BlockHash) error {
	cur, hasCur, err := store.ConfirmationHeightGet(tx, account)
	if err != nil {
		return storeErr("confirmation_height_get", err)
	}
	if hasCur && height < cur.Height {
		return fmt.Errorf("ledger: confirmation_height_update: height %d is behind current %d for %s", height, cur.Height, account)
	}

	_, sb, ok, err := store.BlockGet(tx, frontier)
	if err != nil {
		return storeErr("block_get frontier", err)
	}
	if !ok {
		return fmt.Errorf("ledger: confirmation_height_update: frontier %x not found", frontier)
	}
	if sb.Account != account {
		return fmt.Errorf("ledger: confirmation_height_update: frontier %x belongs to a different account", frontier)
	}
	if sb.Height != height {
		return fmt.Errorf("ledger: confirmation_height_update: frontier %x is at height %d, not %d", frontier, sb.Height, height)
	}

	if err := store.ConfirmationHeightPut(tx, account, store.ConfirmationHeightInfo{Height: height, Frontier: frontier}); err != nil {
		return storeErr("confirmation_height_put", err)
	}
	if hasCur && height > cur.Height {
		l.cache.AddCementedCount(int64(height - cur.Height))
	} else if !hasCur {
		l.cache.AddCementedCount(int64(height))
	}
	return nil
}

// PendingSortedByAmount returns account's receivable entries ordered by
// descending amount.
func (l *Ledger) PendingSortedByAmount(tx *bolt.Tx, account primitives.Account) ([]store.PendingEntry, error) {
	return store.PendingSortedByAmount(tx, account)
}

// FinalVotePut records the network's final vote for root.
func (l *Ledger) FinalVotePut(tx *bolt.Tx, root, block primitives.BlockHash) error {
	return store.FinalVotePut(tx, root, block)
}

// FinalVoteGet reads the final vote recorded for root, if any.
func (l *Ledger) FinalVoteGet(tx *bolt.Tx, root primitives.BlockHash) (primitives.BlockHash, bool) {
	return store.FinalVoteGet(tx, root)
}

// FinalVoteClear removes the final vote recorded for root, once it has been
// superseded by actual confirmation.
func (l *Ledger) FinalVoteClear(tx *bolt.Tx, root primitives.BlockHash) error {
	return store.FinalVoteClear(tx, root)
}
