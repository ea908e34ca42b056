package ledger

import (
	"testing"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// signedLegacyOpen builds a legacy open block (not the state encoding) that
// claims sourceHash's pending entry, signed by the new account's own key.
func signedLegacyOpen(t *testing.T, kp primitives.KeyPair, sourceHash primitives.BlockHash, representative primitives.Account) *blockcodec.Block {
	t.Helper()
	account := kp.Account()
	blk := &blockcodec.Block{
		Kind:           blockcodec.KindOpen,
		Source:         sourceHash,
		Representative: representative,
		Account:        account,
	}
	hash, err := blk.Hash()
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	blk.Work = primitives.GenerateWork(blk.Root(), 0)
	blk.Signature = kp.Sign(hash)
	return blk
}

// signedLegacyChange builds a legacy change block extending previous.
func signedLegacyChange(t *testing.T, kp primitives.KeyPair, previous primitives.BlockHash, representative primitives.Account) *blockcodec.Block {
	t.Helper()
	blk := &blockcodec.Block{
		Kind:           blockcodec.KindChange,
		Previous:       previous,
		Representative: representative,
	}
	hash, err := blk.Hash()
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	blk.Work = primitives.GenerateWork(blk.Root(), 0)
	blk.Signature = kp.Sign(hash)
	return blk
}

func TestFrontierTracksLegacyChainHead(t *testing.T) {
	l := newTestLedger(t)
	genesisKp, genesisHash := bootstrapGenesis(t, l)
	genesisAccount := genesisKp.Account()

	destKp, err := primitives.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	destAccount := destKp.Account()
	amount := primitives.Uint128FromUint64(1_000)
	sendBalance, _ := primitives.GenesisAmount.Sub(amount)

	sendBlk := signedState(t, genesisKp, genesisAccount, genesisHash, genesisAccount, sendBalance, linkFromAccount(destAccount))
	if r := processInTx(t, l, sendBlk); r.Code != VerdictProgress {
		t.Fatalf("send verdict=%s, want progress", r.Code)
	}
	sendHash, _ := sendBlk.Hash()

	openBlk := signedLegacyOpen(t, destKp, sendHash, destAccount)
	if r := processInTx(t, l, openBlk); r.Code != VerdictProgress {
		t.Fatalf("open verdict=%s, want progress", r.Code)
	}
	openHash, _ := openBlk.Hash()

	checkFrontier := func(hash primitives.BlockHash, wantAccount primitives.Account, wantPresent bool) {
		t.Helper()
		err := l.store.View(func(tx *bolt.Tx) error {
			got, ok := store.FrontierGet(tx, hash)
			if ok != wantPresent {
				t.Fatalf("frontier(%x) present=%v, want %v", hash, ok, wantPresent)
			}
			if ok && got != wantAccount {
				t.Fatalf("frontier(%x) account=%x, want %x", hash, got, wantAccount)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("view: %v", err)
		}
	}

	checkFrontier(openHash, destAccount, true)

	other := primitives.Account{0x0a}
	changeBlk := signedLegacyChange(t, destKp, openHash, other)
	if r := processInTx(t, l, changeBlk); r.Code != VerdictProgress {
		t.Fatalf("change verdict=%s, want progress", r.Code)
	}
	changeHash, _ := changeBlk.Hash()

	// The old head's frontier entry is gone; the new head owns it instead.
	checkFrontier(openHash, primitives.Account{}, false)
	checkFrontier(changeHash, destAccount, true)

	err = l.store.Update(func(tx *bolt.Tx) error { return l.Rollback(tx, changeHash) })
	if err != nil {
		t.Fatalf("rollback change: %v", err)
	}
	checkFrontier(changeHash, primitives.Account{}, false)
	checkFrontier(openHash, destAccount, true)

	err = l.store.Update(func(tx *bolt.Tx) error { return l.Rollback(tx, openHash) })
	if err != nil {
		t.Fatalf("rollback open: %v", err)
	}
	checkFrontier(openHash, primitives.Account{}, false)
}
