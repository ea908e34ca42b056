package store

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
)

// BlockPut writes a block's on-disk record: wire form followed by sideband.
func BlockPut(tx *bolt.Tx, hash primitives.BlockHash, blk *blockcodec.Block, sb Sideband) error {
	wire, err := blockcodec.WriteBlock(blk)
	if err != nil {
		return err
	}
	rec := append(wire, sb.Encode()...)
	return bucket(tx, bucketBlocks).Put(hash[:], rec)
}

// BlockGet reads and decodes a block's wire form and sideband.
func BlockGet(tx *bolt.Tx, hash primitives.BlockHash) (*blockcodec.Block, Sideband, bool, error) {
	v := bucket(tx, bucketBlocks).Get(hash[:])
	if v == nil {
		return nil, Sideband{}, false, nil
	}
	if len(v) < sidebandLen {
		return nil, Sideband{}, false, fmt.Errorf("store: block record shorter than sideband")
	}
	wireLen := len(v) - sidebandLen
	blk, err := blockcodec.ParseBlock(v[:wireLen])
	if err != nil {
		return nil, Sideband{}, false, err
	}
	sb, err := DecodeSideband(v[wireLen:])
	if err != nil {
		return nil, Sideband{}, false, err
	}
	return blk, sb, true, nil
}

// BlockDel removes a block's body entirely (used by rollback; pruning uses
// PrunedPut/BlockDel together via Prune).
func BlockDel(tx *bolt.Tx, hash primitives.BlockHash) error {
	return bucket(tx, bucketBlocks).Delete(hash[:])
}

// BlockExists reports whether a block body is present (not pruned).
func BlockExists(tx *bolt.Tx, hash primitives.BlockHash) bool {
	return bucket(tx, bucketBlocks).Get(hash[:]) != nil
}

// BlockOrPrunedExists reports whether hash is either a live block body or a
// pruned tombstone — the correct existence test once pruning is enabled.
func BlockOrPrunedExists(tx *bolt.Tx, hash primitives.BlockHash) bool {
	return BlockExists(tx, hash) || PrunedExists(tx, hash)
}

// BlockCount returns the number of block bodies currently stored (pruned
// bodies are not counted; see PrunedCount).
func BlockCount(tx *bolt.Tx) uint64 {
	return uint64(bucket(tx, bucketBlocks).Stats().KeyN)
}

// BlockSuccessor returns the hash of the block extending hash's chain, if
// any has been recorded.
func BlockSuccessor(tx *bolt.Tx, hash primitives.BlockHash) (primitives.BlockHash, bool, error) {
	_, sb, ok, err := BlockGet(tx, hash)
	if err != nil || !ok || sb.Successor.IsZero() {
		return primitives.BlockHash{}, false, err
	}
	return sb.Successor, true, nil
}

// BlockSetSuccessor rewrites hash's stored sideband so its successor field
// points at successor. Used when appending a new block onto hash.
func BlockSetSuccessor(tx *bolt.Tx, hash, successor primitives.BlockHash) error {
	blk, sb, ok, err := BlockGet(tx, hash)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("store: set successor: %x not found", hash)
	}
	sb.Successor = successor
	return BlockPut(tx, hash, blk, sb)
}

// BlockSuccessorClear resets hash's successor pointer to zero, used when
// rolling back the block that currently extends it.
func BlockSuccessorClear(tx *bolt.Tx, hash primitives.BlockHash) error {
	return BlockSetSuccessor(tx, hash, primitives.BlockHash{})
}
