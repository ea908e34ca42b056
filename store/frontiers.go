package store

import (
	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
)

// FrontierPut records hash as a legacy chain head owned by account. State
// blocks never appear in this index; their frontier is just the account's
// AccountInfo.Head.
func FrontierPut(tx *bolt.Tx, hash primitives.BlockHash, account primitives.Account) error {
	return bucket(tx, bucketFrontiers).Put(hash[:], account[:])
}

// FrontierGet resolves a legacy frontier hash to its owning account.
func FrontierGet(tx *bolt.Tx, hash primitives.BlockHash) (primitives.Account, bool) {
	v := bucket(tx, bucketFrontiers).Get(hash[:])
	if v == nil {
		return primitives.Account{}, false
	}
	var a primitives.Account
	copy(a[:], v)
	return a, true
}

// FrontierDel removes a legacy frontier entry (the account gained a new
// head, or the entry is being rolled back).
func FrontierDel(tx *bolt.Tx, hash primitives.BlockHash) error {
	return bucket(tx, bucketFrontiers).Delete(hash[:])
}
