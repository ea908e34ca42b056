package ledgercache

import (
	"testing"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

func TestCacheCounterAddAndSet(t *testing.T) {
	c := New()
	c.AddBlockCount(5)
	c.AddBlockCount(-2)
	if got := c.BlockCount(); got != 3 {
		t.Fatalf("block count=%d, want 3", got)
	}
	c.SetBlockCount(100)
	if got := c.BlockCount(); got != 100 {
		t.Fatalf("block count=%d, want 100", got)
	}
	c.AddAccountCount(1)
	c.AddCementedCount(2)
	c.AddPrunedCount(3)
	if c.AccountCount() != 1 || c.CementedCount() != 2 || c.PrunedCount() != 3 {
		t.Fatalf("counters mismatch: accounts=%d cemented=%d pruned=%d", c.AccountCount(), c.CementedCount(), c.PrunedCount())
	}
}

func TestCacheWeightDefaultsToZero(t *testing.T) {
	c := New()
	if w := c.Weight(primitives.Account{0x01}); !w.IsZero() {
		t.Fatalf("expected zero weight for unknown account")
	}
}

func TestCacheSetWeightsSingleCriticalSection(t *testing.T) {
	c := New()
	a, b := primitives.Account{0x01}, primitives.Account{0x02}
	c.SetWeights(map[primitives.Account]primitives.Amount{
		a: primitives.Uint128FromUint64(10),
		b: primitives.Uint128FromUint64(20),
	})
	if c.Weight(a).Cmp(primitives.Uint128FromUint64(10)) != 0 {
		t.Fatalf("weight(a)=%s, want 10", c.Weight(a).String())
	}
	if c.Weight(b).Cmp(primitives.Uint128FromUint64(20)) != 0 {
		t.Fatalf("weight(b)=%s, want 20", c.Weight(b).String())
	}

	c.SetWeights(map[primitives.Account]primitives.Amount{a: primitives.Uint128FromUint64(99)})
	if c.Weight(a).Cmp(primitives.Uint128FromUint64(99)) != 0 {
		t.Fatalf("weight(a) after overwrite=%s, want 99", c.Weight(a).String())
	}
	if c.Weight(b).Cmp(primitives.Uint128FromUint64(20)) != 0 {
		t.Fatalf("weight(b) should be untouched by a's update, got %s", c.Weight(b).String())
	}
}

func TestRebuildFromStore(t *testing.T) {
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	a := primitives.Account{0x01}
	rep := primitives.Account{0x02}
	err = s.Update(func(tx *bolt.Tx) error {
		if err := store.AccountPut(tx, a, store.AccountInfo{BlockCount: 1}); err != nil {
			return err
		}
		if err := store.ConfirmationHeightPut(tx, a, store.ConfirmationHeightInfo{Height: 1}); err != nil {
			return err
		}
		if err := store.RepresentationPut(tx, rep, primitives.Uint128FromUint64(500)); err != nil {
			return err
		}
		blk := &blockcodec.Block{
			Kind:        blockcodec.KindSend,
			Previous:    primitives.BlockHash{0x01},
			Destination: primitives.Account{0x02},
			Balance:     primitives.Uint128FromUint64(5),
			Signature:   primitives.Signature{0x03},
			Work:        primitives.Work(7),
		}
		hash, err := blk.Hash()
		if err != nil {
			return err
		}
		return store.BlockPut(tx, hash, blk, store.Sideband{Account: a})
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	c, err := Rebuild(s)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if c.AccountCount() != 1 {
		t.Fatalf("account count=%d, want 1", c.AccountCount())
	}
	if c.CementedCount() != 1 {
		t.Fatalf("cemented count=%d, want 1", c.CementedCount())
	}
	if c.BlockCount() != 1 {
		t.Fatalf("block count=%d, want 1", c.BlockCount())
	}
	if c.Weight(rep).Cmp(primitives.Uint128FromUint64(500)) != 0 {
		t.Fatalf("weight=%s, want 500", c.Weight(rep).String())
	}
}
