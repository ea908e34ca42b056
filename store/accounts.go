package store

import (
	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
)

// AccountPut writes the chain-head record for account.
func AccountPut(tx *bolt.Tx, account primitives.Account, info AccountInfo) error {
	return bucket(tx, bucketAccounts).Put(account[:], info.Encode())
}

// AccountGet reads the chain-head record for account, if any.
func AccountGet(tx *bolt.Tx, account primitives.Account) (AccountInfo, bool, error) {
	v := bucket(tx, bucketAccounts).Get(account[:])
	if v == nil {
		return AccountInfo{}, false, nil
	}
	info, err := DecodeAccountInfo(v)
	if err != nil {
		return AccountInfo{}, false, err
	}
	return info, true, nil
}

// AccountDel removes account's chain-head record entirely (used when an
// open block is rolled back).
func AccountDel(tx *bolt.Tx, account primitives.Account) error {
	return bucket(tx, bucketAccounts).Delete(account[:])
}

// AccountCount returns the number of opened accounts.
func AccountCount(tx *bolt.Tx) uint64 {
	return uint64(bucket(tx, bucketAccounts).Stats().KeyN)
}

// AccountIterate walks accounts in key order starting at (and including)
// start, calling fn for each until fn returns false or the bucket is
// exhausted.
func AccountIterate(tx *bolt.Tx, start primitives.Account, fn func(primitives.Account, AccountInfo) (bool, error)) error {
	c := bucket(tx, bucketAccounts).Cursor()
	for k, v := c.Seek(start[:]); k != nil; k, v = c.Next() {
		var a primitives.Account
		copy(a[:], k)
		info, err := DecodeAccountInfo(v)
		if err != nil {
			return err
		}
		cont, err := fn(a, info)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}
