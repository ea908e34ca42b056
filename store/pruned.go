package store

import (
	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
)

// PrunedPut records hash as pruned: its existence remains observable even
// though its body has been discarded.
func PrunedPut(tx *bolt.Tx, hash primitives.BlockHash) error {
	return bucket(tx, bucketPruned).Put(hash[:], []byte{1})
}

// PrunedExists reports whether hash has been pruned.
func PrunedExists(tx *bolt.Tx, hash primitives.BlockHash) bool {
	return bucket(tx, bucketPruned).Get(hash[:]) != nil
}

// PrunedCount returns the number of pruned tombstones.
func PrunedCount(tx *bolt.Tx) uint64 {
	return uint64(bucket(tx, bucketPruned).Stats().KeyN)
}

// Prune walks backward from target along the predecessor chain (each
// block's stored Previous field), moving each block body into the pruned
// set, until the chain's open block is reached or batchMax bodies have
// been pruned. The current frontier of any account is never pruned: a block
// that is still its account's head is left live without consuming a batch
// slot, and the walk continues from its predecessor.
func Prune(tx *bolt.Tx, target primitives.BlockHash, batchMax int) (int, error) {
	pruned := 0
	cur := target
	for pruned < batchMax {
		blk, sb, ok, err := BlockGet(tx, cur)
		if err != nil {
			return pruned, err
		}
		if !ok {
			break
		}
		info, hasInfo, err := AccountGet(tx, sb.Account)
		if err != nil {
			return pruned, err
		}
		if hasInfo && info.Head == cur {
			if blk.IsOpen() {
				break
			}
			cur = blk.Previous
			continue
		}
		if err := PrunedPut(tx, cur); err != nil {
			return pruned, err
		}
		if err := BlockDel(tx, cur); err != nil {
			return pruned, err
		}
		pruned++
		if blk.IsOpen() {
			break
		}
		cur = blk.Previous
	}
	return pruned, nil
}
