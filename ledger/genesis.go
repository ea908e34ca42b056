package ledger

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// Bootstrap writes the one pre-mined open block that distributes the
// entire supply to the genesis account. Unlike Process, it never consults
// the pending table: genesis balance exists by construction rather than by
// receiving a send, so it bypasses the ordinary receive pipeline entirely.
// It refuses to run against a store that already holds any accounts.
func (l *Ledger) Bootstrap(tx *bolt.Tx, blk *blockcodec.Block) (ProcessResult, error) {
	hash, err := blk.Hash()
	if err != nil {
		return ProcessResult{}, err
	}

	if store.BlockOrPrunedExists(tx, hash) {
		return fail(VerdictOld)
	}
	if !blk.IsOpen() {
		return ProcessResult{}, fmt.Errorf("ledger: bootstrap: genesis block must be an open block")
	}
	if store.AccountCount(tx) != 0 || store.BlockCount(tx) != 0 {
		return ProcessResult{}, fmt.Errorf("ledger: bootstrap: store already has accounts, refusing to overwrite genesis")
	}
	if blk.Representative != blk.Account {
		return ProcessResult{}, fmt.Errorf("ledger: bootstrap: genesis representative must be the genesis account itself")
	}
	if blk.Account.IsBurn() {
		return ProcessResult{}, fmt.Errorf("ledger: bootstrap: genesis account cannot be the burn account")
	}
	if !primitives.ValidateWork(blk.Work, blk.Root(), l.baseWorkDifficulty) {
		return fail(VerdictInsufficientWork)
	}
	if !primitives.Verify(blk.Account, hash, blk.Signature) {
		return fail(VerdictBadSignature)
	}

	sb := store.Sideband{
		Account:        blk.Account,
		Height:         1,
		Balance:        blk.Balance,
		Representative: blk.Account,
		Timestamp:      l.clock(),
		IsReceive:      true,
	}
	if err := store.BlockPut(tx, hash, blk, sb); err != nil {
		return ProcessResult{}, storeErr("bootstrap: block_put", err)
	}

	info := store.AccountInfo{
		Head:           hash,
		Representative: blk.Account,
		Balance:        blk.Balance,
		Modified:       l.clock(),
		BlockCount:     1,
		Epoch:          0,
	}
	if err := store.AccountPut(tx, blk.Account, info); err != nil {
		return ProcessResult{}, storeErr("bootstrap: account_put", err)
	}
	if err := store.RepresentationPut(tx, blk.Account, blk.Balance); err != nil {
		return ProcessResult{}, storeErr("bootstrap: representation_put", err)
	}
	if err := store.ConfirmationHeightPut(tx, blk.Account, store.ConfirmationHeightInfo{Height: 1, Frontier: hash}); err != nil {
		return ProcessResult{}, storeErr("bootstrap: confirmation_height_put", err)
	}

	return ProcessResult{
		Code:              VerdictProgress,
		Sideband:          &sb,
		Account:           blk.Account,
		OldRepresentative: primitives.Account{},
		NewRepresentative: blk.Account,
		AccountOpened:     true,
	}, nil
}

// BootstrapAndCommit runs Bootstrap inside a write transaction and, on
// success, seeds the cache directly rather than reading weights back —
// there is no prior representative to reconcile against on a pristine
// store.
func (l *Ledger) BootstrapAndCommit(blk *blockcodec.Block) (ProcessResult, error) {
	var result ProcessResult
	err := l.store.Update(func(tx *bolt.Tx) error {
		r, err := l.Bootstrap(tx, blk)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return ProcessResult{}, err
	}
	if result.Code != VerdictProgress {
		return result, nil
	}

	l.cache.SetWeights(map[primitives.Account]primitives.Amount{blk.Account: blk.Balance})
	l.cache.AddBlockCount(1)
	l.cache.AddAccountCount(1)
	l.cache.AddCementedCount(1)
	l.logger.Info("bootstrapped genesis", "account", blk.Account.String(), "balance", blk.Balance.String())
	return result, nil
}
