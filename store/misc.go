package store

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
)

// FinalVotePut records the network's final vote for root.
func FinalVotePut(tx *bolt.Tx, root primitives.BlockHash, block primitives.BlockHash) error {
	return bucket(tx, bucketFinalVotes).Put(root[:], block[:])
}

// FinalVoteGet reads the final vote recorded for root, if any.
func FinalVoteGet(tx *bolt.Tx, root primitives.BlockHash) (primitives.BlockHash, bool) {
	v := bucket(tx, bucketFinalVotes).Get(root[:])
	if v == nil {
		return primitives.BlockHash{}, false
	}
	var h primitives.BlockHash
	copy(h[:], v)
	return h, true
}

// FinalVoteClear removes the final vote recorded for root.
func FinalVoteClear(tx *bolt.Tx, root primitives.BlockHash) error {
	return bucket(tx, bucketFinalVotes).Delete(root[:])
}

// OnlineWeightPut records a trailing online-weight sample, keyed by its
// unix-second timestamp.
func OnlineWeightPut(tx *bolt.Tx, timestamp uint64, weight primitives.Amount) error {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], timestamp)
	b := weight.Bytes()
	return bucket(tx, bucketOnlineWeight).Put(key[:], b[:])
}

// OnlineWeightTrim deletes every sample older than cutoff, keeping the
// trailing window bounded.
func OnlineWeightTrim(tx *bolt.Tx, cutoff uint64) error {
	buk := bucket(tx, bucketOnlineWeight)
	c := buk.Cursor()
	var cutoffKey [8]byte
	binary.BigEndian.PutUint64(cutoffKey[:], cutoff)
	var stale [][]byte
	for k, _ := c.First(); k != nil && string(k) < string(cutoffKey[:]); k, _ = c.Next() {
		stale = append(stale, append([]byte(nil), k...))
	}
	for _, k := range stale {
		if err := buk.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// VersionGet reads the schema version recorded inside the bbolt file
// itself (distinct from the MANIFEST.json sidecar's copy). Only VersionPut
// writes it; InitManifest writes the sidecar alone.
func VersionGet(tx *bolt.Tx) (uint32, bool) {
	v := bucket(tx, bucketVersion).Get([]byte(versionKey))
	if v == nil || len(v) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(v), true
}

// VersionPut records the schema version inside the bbolt file.
func VersionPut(tx *bolt.Tx, version uint32) error {
	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], version)
	return bucket(tx, bucketVersion).Put([]byte(versionKey), v[:])
}

// PeersPut records a known peer address under an opaque key (the node layer
// owns key format; the store only persists bytes).
func PeersPut(tx *bolt.Tx, key string, addr []byte) error {
	return bucket(tx, bucketPeers).Put([]byte(key), addr)
}

// PeersGet reads a recorded peer address.
func PeersGet(tx *bolt.Tx, key string) ([]byte, bool) {
	v := bucket(tx, bucketPeers).Get([]byte(key))
	if v == nil {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

// PeersClear removes every recorded peer.
func PeersClear(tx *bolt.Tx) error {
	buk := bucket(tx, bucketPeers)
	c := buk.Cursor()
	var keys [][]byte
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	for _, k := range keys {
		if err := buk.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// UncheckedPut stashes a block that failed with a gap_* verdict, keyed by
// the hash it is waiting on (its missing previous or source), so the caller
// can retry it once that dependency arrives.
func UncheckedPut(tx *bolt.Tx, waitingOn primitives.BlockHash, blockBytes []byte) error {
	return bucket(tx, bucketUnchecked).Put(waitingOn[:], blockBytes)
}

// UncheckedGet reads back a stashed dependent block's wire bytes.
func UncheckedGet(tx *bolt.Tx, waitingOn primitives.BlockHash) ([]byte, bool) {
	v := bucket(tx, bucketUnchecked).Get(waitingOn[:])
	if v == nil {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

// UncheckedDel removes a stashed dependent block once it has been retried.
func UncheckedDel(tx *bolt.Tx, waitingOn primitives.BlockHash) error {
	return bucket(tx, bucketUnchecked).Delete(waitingOn[:])
}
