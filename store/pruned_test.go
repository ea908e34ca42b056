package store

import (
	"testing"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
)

// buildChain writes n state blocks chained by Previous, all owned by
// account, with the last one left as the account's recorded head.
func buildChain(t *testing.T, s *Store, account primitives.Account, n int) []primitives.BlockHash {
	t.Helper()
	var hashes []primitives.BlockHash
	var prev primitives.BlockHash
	err := s.Update(func(tx *bolt.Tx) error {
		for i := 0; i < n; i++ {
			blk := &blockcodec.Block{
				Kind:           blockcodec.KindState,
				Account:        account,
				Previous:       prev,
				Representative: account,
				Balance:        primitives.Uint128FromUint64(uint64(i + 1)),
				Link:           blockcodec.Link{byte(i)},
			}
			hash, err := blk.Hash()
			if err != nil {
				return err
			}
			sb := Sideband{Account: account, Height: uint64(i + 1), Balance: blk.Balance}
			if err := BlockPut(tx, hash, blk, sb); err != nil {
				return err
			}
			if !prev.IsZero() {
				if err := BlockSetSuccessor(tx, prev, hash); err != nil {
					return err
				}
			}
			hashes = append(hashes, hash)
			prev = hash
		}
		return AccountPut(tx, account, AccountInfo{Head: prev, BlockCount: uint64(n)})
	})
	if err != nil {
		t.Fatalf("build chain: %v", err)
	}
	return hashes
}

func TestPruneStopsAtFrontier(t *testing.T) {
	s := testStore(t)
	account := primitives.Account{0x01}
	hashes := buildChain(t, s, account, 5)

	var pruned int
	err := s.Update(func(tx *bolt.Tx) error {
		var err error
		pruned, err = Prune(tx, hashes[4], 100)
		return err
	})
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if pruned != 4 {
		t.Fatalf("pruned=%d, want 4 (frontier never pruned)", pruned)
	}

	err = s.View(func(tx *bolt.Tx) error {
		if !BlockExists(tx, hashes[4]) {
			t.Fatalf("frontier block should remain live")
		}
		for i := 0; i < 4; i++ {
			if BlockExists(tx, hashes[i]) {
				t.Fatalf("block %d should have been pruned", i)
			}
			if !PrunedExists(tx, hashes[i]) {
				t.Fatalf("block %d should be recorded as pruned", i)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestPruneRespectsBatchMax(t *testing.T) {
	s := testStore(t)
	account := primitives.Account{0x02}
	hashes := buildChain(t, s, account, 5)

	var pruned int
	err := s.Update(func(tx *bolt.Tx) error {
		var err error
		pruned, err = Prune(tx, hashes[4], 2)
		return err
	})
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if pruned != 2 {
		t.Fatalf("pruned=%d, want 2", pruned)
	}
}
