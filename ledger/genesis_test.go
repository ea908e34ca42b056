package ledger

import (
	"testing"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
)

func TestBootstrapGenesisSeedsAccountAndWeight(t *testing.T) {
	l := newTestLedger(t)
	kp, hash := bootstrapGenesis(t, l)
	account := kp.Account()

	err := l.store.View(func(tx *bolt.Tx) error {
		bal, ok, err := l.Balance(tx, hash)
		if err != nil {
			return err
		}
		if !ok || bal.Cmp(primitives.GenesisAmount) != 0 {
			t.Fatalf("balance=%s ok=%v, want %s", bal.String(), ok, primitives.GenesisAmount.String())
		}
		w, err := l.Weight(tx, account)
		if err != nil {
			return err
		}
		if w.Cmp(primitives.GenesisAmount) != 0 {
			t.Fatalf("weight=%s, want %s", w.String(), primitives.GenesisAmount.String())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if l.cache.AccountCount() != 1 {
		t.Fatalf("account count=%d, want 1", l.cache.AccountCount())
	}
	if l.cache.BlockCount() != 1 {
		t.Fatalf("block count=%d, want 1", l.cache.BlockCount())
	}
	if l.cache.CementedCount() != 1 {
		t.Fatalf("cemented count=%d, want 1", l.cache.CementedCount())
	}
}

func TestBootstrapRejectsSecondGenesis(t *testing.T) {
	l := newTestLedger(t)
	_, _ = bootstrapGenesis(t, l)

	kp2, err := primitives.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	account2 := kp2.Account()
	blk := signedState(t, kp2, account2, primitives.BlockHash{}, account2, primitives.GenesisAmount, blockcodec.Link{})

	if _, err := l.BootstrapAndCommit(blk); err == nil {
		t.Fatalf("expected bootstrap over a non-empty store to fail")
	}
}

func TestBootstrapRejectsMismatchedRepresentative(t *testing.T) {
	l := newTestLedger(t)
	kp, err := primitives.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	account := kp.Account()
	other := primitives.Account{0x42}
	blk := signedState(t, kp, account, primitives.BlockHash{}, other, primitives.GenesisAmount, blockcodec.Link{})

	if _, err := l.BootstrapAndCommit(blk); err == nil {
		t.Fatalf("expected bootstrap to reject a genesis representative other than itself")
	}
}
