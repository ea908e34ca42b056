package store

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
)

// RepresentationPut sets account's total delegated weight outright.
func RepresentationPut(tx *bolt.Tx, account primitives.Account, weight primitives.Amount) error {
	b := weight.Bytes()
	return bucket(tx, bucketRepresentation).Put(account[:], b[:])
}

// RepresentationGet reads account's total delegated weight, or zero if the
// account has never been named as a representative.
func RepresentationGet(tx *bolt.Tx, account primitives.Account) (primitives.Amount, error) {
	v := bucket(tx, bucketRepresentation).Get(account[:])
	if v == nil {
		return primitives.Amount{}, nil
	}
	return primitives.Uint128FromBytes(v)
}

// RepresentationAdd adds delta to account's weight.
func RepresentationAdd(tx *bolt.Tx, account primitives.Account, delta primitives.Amount) error {
	cur, err := RepresentationGet(tx, account)
	if err != nil {
		return err
	}
	sum, overflow := cur.Add(delta)
	if overflow {
		return fmt.Errorf("store: representation weight overflow for account %x", account)
	}
	return RepresentationPut(tx, account, sum)
}

// RepresentationSub subtracts delta from account's weight.
func RepresentationSub(tx *bolt.Tx, account primitives.Account, delta primitives.Amount) error {
	cur, err := RepresentationGet(tx, account)
	if err != nil {
		return err
	}
	diff, underflow := cur.Sub(delta)
	if underflow {
		return fmt.Errorf("store: representation weight underflow for account %x", account)
	}
	return RepresentationPut(tx, account, diff)
}

// RepresentationIterate walks every representative entry, zero weights included,
// used to repopulate a cold-start cache from the authoritative bucket.
func RepresentationIterate(tx *bolt.Tx, fn func(primitives.Account, primitives.Amount) (bool, error)) error {
	c := bucket(tx, bucketRepresentation).Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var a primitives.Account
		copy(a[:], k)
		w, err := primitives.Uint128FromBytes(v)
		if err != nil {
			return err
		}
		cont, err := fn(a, w)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}
