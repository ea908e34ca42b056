package store

import (
	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
)

// ConfirmationHeightPut records account's confirmed chain position.
func ConfirmationHeightPut(tx *bolt.Tx, account primitives.Account, info ConfirmationHeightInfo) error {
	return bucket(tx, bucketConfirmationHeight).Put(account[:], info.Encode())
}

// ConfirmationHeightGet reads account's confirmed chain position, if set.
func ConfirmationHeightGet(tx *bolt.Tx, account primitives.Account) (ConfirmationHeightInfo, bool, error) {
	v := bucket(tx, bucketConfirmationHeight).Get(account[:])
	if v == nil {
		return ConfirmationHeightInfo{}, false, nil
	}
	info, err := DecodeConfirmationHeightInfo(v)
	if err != nil {
		return ConfirmationHeightInfo{}, false, err
	}
	return info, true, nil
}

// ConfirmationHeightDel removes account's confirmation record (used when an
// account's open block is rolled back).
func ConfirmationHeightDel(tx *bolt.Tx, account primitives.Account) error {
	return bucket(tx, bucketConfirmationHeight).Delete(account[:])
}
