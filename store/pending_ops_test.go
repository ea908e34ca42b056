package store

import (
	"testing"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
)

func TestPendingPutGetDelExists(t *testing.T) {
	s := testStore(t)
	key := PendingKey{Destination: primitives.Account{0x01}, SendHash: primitives.BlockHash{0x02}}
	rec := PendingRecord{Source: primitives.Account{0x03}, Amount: primitives.Uint128FromUint64(100), Epoch: 1}

	if err := s.Update(func(tx *bolt.Tx) error { return PendingPut(tx, key, rec) }); err != nil {
		t.Fatalf("put: %v", err)
	}

	err := s.View(func(tx *bolt.Tx) error {
		if !PendingExists(tx, key) {
			t.Fatalf("expected pending to exist")
		}
		got, ok, err := PendingGet(tx, key)
		if err != nil {
			return err
		}
		if !ok || got != rec {
			t.Fatalf("got %+v ok=%v, want %+v", got, ok, rec)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if err := s.Update(func(tx *bolt.Tx) error { return PendingDel(tx, key) }); err != nil {
		t.Fatalf("del: %v", err)
	}
	err = s.View(func(tx *bolt.Tx) error {
		if PendingExists(tx, key) {
			t.Fatalf("expected pending to be gone")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestPendingIterateForAccountPrefixScoped(t *testing.T) {
	s := testStore(t)
	dest := primitives.Account{0x05}
	other := primitives.Account{0x06}

	err := s.Update(func(tx *bolt.Tx) error {
		entries := []struct {
			key PendingKey
			rec PendingRecord
		}{
			{PendingKey{Destination: dest, SendHash: primitives.BlockHash{0x01}}, PendingRecord{Amount: primitives.Uint128FromUint64(10)}},
			{PendingKey{Destination: dest, SendHash: primitives.BlockHash{0x02}}, PendingRecord{Amount: primitives.Uint128FromUint64(30)}},
			{PendingKey{Destination: other, SendHash: primitives.BlockHash{0x03}}, PendingRecord{Amount: primitives.Uint128FromUint64(99)}},
		}
		for _, e := range entries {
			if err := PendingPut(tx, e.key, e.rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var count int
	err = s.View(func(tx *bolt.Tx) error {
		return PendingIterateForAccount(tx, dest, func(k PendingKey, _ PendingRecord) (bool, error) {
			if k.Destination != dest {
				t.Fatalf("leaked entry for %x into dest iteration", k.Destination)
			}
			count++
			return true, nil
		})
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if count != 2 {
		t.Fatalf("count=%d, want 2", count)
	}
}

func TestPendingSortedByAmountDescending(t *testing.T) {
	s := testStore(t)
	dest := primitives.Account{0x07}

	err := s.Update(func(tx *bolt.Tx) error {
		for i, amt := range []uint64{10, 300, 20} {
			key := PendingKey{Destination: dest, SendHash: primitives.BlockHash{byte(i + 1)}}
			if err := PendingPut(tx, key, PendingRecord{Amount: primitives.Uint128FromUint64(amt)}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var sorted []PendingEntry
	err = s.View(func(tx *bolt.Tx) error {
		var err error
		sorted, err = PendingSortedByAmount(tx, dest)
		return err
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(sorted) != 3 {
		t.Fatalf("len=%d, want 3", len(sorted))
	}
	want := []uint64{300, 20, 10}
	for i, w := range want {
		if sorted[i].Record.Amount.Cmp(primitives.Uint128FromUint64(w)) != 0 {
			t.Fatalf("sorted[%d]=%s, want %d", i, sorted[i].Record.Amount.String(), w)
		}
	}
}
