package ledger

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// Rollback undoes hash and, cascading, every block that depends on it: its
// own successors on the same chain, and any receive elsewhere that already
// claimed a pending entry hash created. Blocks are undone newest-first so a
// dependent is always gone before its dependency is touched.
func (l *Ledger) Rollback(tx *bolt.Tx, hash primitives.BlockHash) error {
	stack := []primitives.BlockHash{hash}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		blk, sb, ok, err := store.BlockGet(tx, cur)
		if err != nil {
			return storeErr("rollback: block_get", err)
		}
		if !ok {
			// Already undone by an earlier cascade step.
			stack = stack[:len(stack)-1]
			continue
		}

		if !sb.Successor.IsZero() {
			stack = append(stack, sb.Successor)
			continue
		}

		if sb.IsSend {
			destination := sendDestination(blk)
			key := store.PendingKey{Destination: destination, SendHash: cur}
			if !store.PendingExists(tx, key) {
				claimant, found, err := l.findClaimingReceive(tx, destination, cur)
				if err != nil {
					return storeErr("rollback: find_claiming_receive", err)
				}
				if !found {
					return storeErr("rollback", fmt.Errorf("send %x already received and claimant is unreachable (pruned): cannot roll back", cur))
				}
				stack = append(stack, claimant)
				continue
			}
		}

		if err := l.rollbackOne(tx, cur, blk, sb); err != nil {
			return err
		}
		stack = stack[:len(stack)-1]
	}
	return nil
}

// rollbackOne undoes a single block that has no live successor and, if it
// was a send, no outstanding claim against its pending entry.
func (l *Ledger) rollbackOne(tx *bolt.Tx, hash primitives.BlockHash, blk *blockcodec.Block, sb store.Sideband) error {
	account := sb.Account
	isOpen := blk.IsOpen()

	var predBalance primitives.Amount
	var predRepresentative primitives.Account
	var predEpoch uint8
	var predHead primitives.BlockHash
	var predBlockCount uint64
	if !isOpen {
		_, predSb, ok, err := store.BlockGet(tx, blk.Previous)
		if err != nil {
			return storeErr("rollback: predecessor_get", err)
		}
		if !ok {
			return storeErr("rollback", fmt.Errorf("predecessor %x of %x is missing or pruned", blk.Previous, hash))
		}
		predBalance = predSb.Balance
		predRepresentative = predSb.Representative
		predEpoch = predSb.Epoch
		predHead = blk.Previous
		predBlockCount = predSb.Height
	}

	// Undo the weight move apply() made, by swapping old/new. Epoch blocks
	// never move weight, so there is nothing to reverse for them.
	if !sb.IsEpoch {
		if err := moveWeight(tx, sb.Representative, sb.Balance, predRepresentative, predBalance); err != nil {
			return storeErr("rollback: representation_move", err)
		}
	}

	switch {
	case sb.IsSend:
		destination := sendDestination(blk)
		key := store.PendingKey{Destination: destination, SendHash: hash}
		if err := store.PendingDel(tx, key); err != nil {
			return storeErr("rollback: pending_del", err)
		}
	case sb.IsReceive:
		sourceHash := receiveSourceHash(blk)
		amount, _ := sb.Balance.Sub(predBalance)

		// The source account is read back from the send's own sideband so
		// the recreated pending entry matches what PendingPut originally
		// wrote. If the send has since been pruned, the record is still
		// recreated but with an unknown (zero) source; amount and epoch
		// came from this block's own sideband and are never lost.
		var source primitives.Account
		if _, srcSb, ok, err := store.BlockGet(tx, sourceHash); err == nil && ok {
			source = srcSb.Account
		}
		rec := store.PendingRecord{Source: source, Amount: amount, Epoch: sb.SourceEpoch}
		key := store.PendingKey{Destination: account, SendHash: sourceHash}
		if err := store.PendingPut(tx, key, rec); err != nil {
			return storeErr("rollback: pending_put", err)
		}
	}

	if isOpen {
		if err := store.AccountDel(tx, account); err != nil {
			return storeErr("rollback: account_del", err)
		}
		if err := store.ConfirmationHeightDel(tx, account); err != nil {
			return storeErr("rollback: confirmation_height_del", err)
		}
	} else {
		newInfo := store.AccountInfo{
			Head:           predHead,
			Representative: predRepresentative,
			Balance:        predBalance,
			Modified:       l.clock(),
			BlockCount:     predBlockCount,
			Epoch:          predEpoch,
		}
		if err := store.AccountPut(tx, account, newInfo); err != nil {
			return storeErr("rollback: account_put", err)
		}
		if err := store.BlockSuccessorClear(tx, blk.Previous); err != nil {
			return storeErr("rollback: successor_clear", err)
		}
	}

	// Reverse the frontier move apply() made for legacy chains: hash stops
	// being the head, and its predecessor (if any) becomes the head again.
	if blk.Kind != blockcodec.KindState {
		if err := store.FrontierDel(tx, hash); err != nil {
			return storeErr("rollback: frontier_del", err)
		}
		if !isOpen {
			if err := store.FrontierPut(tx, blk.Previous, account); err != nil {
				return storeErr("rollback: frontier_put", err)
			}
		}
	}

	if err := store.BlockDel(tx, hash); err != nil {
		return storeErr("rollback: block_del", err)
	}
	return nil
}

// findClaimingReceive walks destination's chain backward from its current
// head looking for the receive that consumed sendHash's pending entry. It
// reports not-found both when no such block exists on the live chain and
// when the walk runs into a pruned block first — in the latter case the
// claimant is gone for good and the send beneath it cannot be rolled back.
func (l *Ledger) findClaimingReceive(tx *bolt.Tx, destination primitives.Account, sendHash primitives.BlockHash) (primitives.BlockHash, bool, error) {
	info, ok, err := store.AccountGet(tx, destination)
	if err != nil {
		return primitives.BlockHash{}, false, err
	}
	if !ok {
		return primitives.BlockHash{}, false, nil
	}

	cur := info.Head
	for !cur.IsZero() {
		blk, sb, ok, err := store.BlockGet(tx, cur)
		if err != nil {
			return primitives.BlockHash{}, false, err
		}
		if !ok {
			return primitives.BlockHash{}, false, nil
		}
		if sb.IsReceive && receiveSourceHash(blk) == sendHash {
			return cur, true, nil
		}
		cur = blk.Previous
	}
	return primitives.BlockHash{}, false, nil
}

// receiveSourceHash returns the hash of the send a receive-classified block
// claims, across both the legacy and state encodings.
func receiveSourceHash(blk *blockcodec.Block) primitives.BlockHash {
	if blk.Kind == blockcodec.KindState {
		return blk.Link.AsHash()
	}
	return blk.Source
}
