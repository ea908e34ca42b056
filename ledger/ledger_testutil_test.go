package ledger

import (
	"testing"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/internal/config"
	"lattice.dev/ledger/ledgercache"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// newTestLedger builds a Ledger over a fresh temp store with a difficulty of
// zero, so every candidate's work value passes validation without an actual
// brute-force search, and a fixed clock for reproducible sideband timestamps.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.DefaultConfig()
	cfg.MaxWorkGenerateDifficulty = 0
	l := New(st, ledgercache.New(), cfg, nil)
	var now uint64 = 1_700_000_000
	l.SetClock(func() uint64 { return now })
	return l
}

func linkFromAccount(a primitives.Account) blockcodec.Link {
	var l blockcodec.Link
	copy(l[:], a[:])
	return l
}

func linkFromHash(h primitives.BlockHash) blockcodec.Link {
	var l blockcodec.Link
	copy(l[:], h[:])
	return l
}

// signedState builds a KindState block with the given fields, stamps it
// with a zero-difficulty work value, and signs it with kp.
func signedState(t *testing.T, kp primitives.KeyPair, account primitives.Account, previous primitives.BlockHash, representative primitives.Account, balance primitives.Amount, link blockcodec.Link) *blockcodec.Block {
	t.Helper()
	blk := &blockcodec.Block{
		Kind:           blockcodec.KindState,
		Account:        account,
		Previous:       previous,
		Representative: representative,
		Balance:        balance,
		Link:           link,
	}
	hash, err := blk.Hash()
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	blk.Work = primitives.GenerateWork(blk.Root(), 0)
	blk.Signature = kp.Sign(hash)
	return blk
}

// bootstrapGenesis brings up a ledger with a single open genesis account
// holding the entire supply, returning its keypair and the genesis block's
// hash for chaining further blocks from it.
func bootstrapGenesis(t *testing.T, l *Ledger) (primitives.KeyPair, primitives.BlockHash) {
	t.Helper()
	kp, err := primitives.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	account := kp.Account()
	blk := signedState(t, kp, account, primitives.BlockHash{}, account, primitives.GenesisAmount, blockcodec.Link{})

	result, err := l.BootstrapAndCommit(blk)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if result.Code != VerdictProgress {
		t.Fatalf("bootstrap verdict=%s, want progress", result.Code)
	}
	hash, _ := blk.Hash()
	return kp, hash
}

func processInTx(t *testing.T, l *Ledger, blk *blockcodec.Block) ProcessResult {
	t.Helper()
	var result ProcessResult
	err := l.store.Update(func(tx *bolt.Tx) error {
		r, err := l.Process(tx, blk)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	return result
}
