package store

import (
	"sort"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
)

// PendingPut inserts or replaces the receivable record under key.
func PendingPut(tx *bolt.Tx, key PendingKey, rec PendingRecord) error {
	return bucket(tx, bucketPending).Put(key.Bytes(), rec.Encode())
}

// PendingGet reads the receivable record under key, if any.
func PendingGet(tx *bolt.Tx, key PendingKey) (PendingRecord, bool, error) {
	v := bucket(tx, bucketPending).Get(key.Bytes())
	if v == nil {
		return PendingRecord{}, false, nil
	}
	rec, err := DecodePendingRecord(v)
	if err != nil {
		return PendingRecord{}, false, err
	}
	return rec, true, nil
}

// PendingDel removes the receivable record under key.
func PendingDel(tx *bolt.Tx, key PendingKey) error {
	return bucket(tx, bucketPending).Delete(key.Bytes())
}

// PendingExists reports whether a receivable record exists under key.
func PendingExists(tx *bolt.Tx, key PendingKey) bool {
	return bucket(tx, bucketPending).Get(key.Bytes()) != nil
}

// PendingIterateForAccount walks every pending record whose destination is
// account, in key order (so also in send-hash order).
func PendingIterateForAccount(tx *bolt.Tx, account primitives.Account, fn func(PendingKey, PendingRecord) (bool, error)) error {
	c := bucket(tx, bucketPending).Cursor()
	prefix := account[:]
	for k, v := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, v = c.Next() {
		key, err := PendingKeyFromBytes(k)
		if err != nil {
			return err
		}
		rec, err := DecodePendingRecord(v)
		if err != nil {
			return err
		}
		cont, err := fn(key, rec)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}

// PendingEntry is one row of a PendingSortedByAmount result.
type PendingEntry struct {
	Key    PendingKey
	Record PendingRecord
}

// PendingSortedByAmount returns every pending entry for account sorted by
// descending amount, the order wallets use to decide which receivable to
// claim first. This reads the whole per-account prefix into memory; callers
// with very large pending sets should prefer PendingIterateForAccount.
func PendingSortedByAmount(tx *bolt.Tx, account primitives.Account) ([]PendingEntry, error) {
	var out []PendingEntry
	err := PendingIterateForAccount(tx, account, func(k PendingKey, r PendingRecord) (bool, error) {
		out = append(out, PendingEntry{Key: k, Record: r})
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Record.Amount.Cmp(out[j].Record.Amount) > 0
	})
	return out, nil
}
