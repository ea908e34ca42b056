package ledger

import (
	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// ProcessAndCommit runs Process inside a single write transaction and, on
// Progress, refreshes the ledger cache from the committed result. Cache
// updates happen strictly after commit. The representative weights are set
// in one critical section; the block and account counters are separate
// atomic updates made after it, so a concurrent reader can observe the new
// weights with the old counts, and the cache lags the store between commit
// and refresh.
func (l *Ledger) ProcessAndCommit(blk *blockcodec.Block) (ProcessResult, error) {
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
		return ProcessResult{}, err
	}
	if result.Code != VerdictProgress {
		return result, nil
	}

	var oldWeight, newWeight primitives.Amount
	if err := l.store.View(func(tx *bolt.Tx) error {
		w, err := store.RepresentationGet(tx, result.OldRepresentative)
		if err != nil {
			return err
		}
		oldWeight = w
		if result.NewRepresentative == result.OldRepresentative {
			newWeight = w
			return nil
		}
		w2, err := store.RepresentationGet(tx, result.NewRepresentative)
		if err != nil {
			return err
		}
		newWeight = w2
		return nil
	}); err != nil {
		return result, storeErr("representation_get (cache refresh)", err)
	}

	weights := map[primitives.Account]primitives.Amount{}
	if !result.OldRepresentative.IsZero() {
		weights[result.OldRepresentative] = oldWeight
	}
	if !result.NewRepresentative.IsZero() {
		weights[result.NewRepresentative] = newWeight
	}
	l.cache.SetWeights(weights)
	l.cache.AddBlockCount(1)
	if result.AccountOpened {
		l.cache.AddAccountCount(1)
	}
	l.logger.Debug("processed block", "account", result.Account.String(), "code", string(result.Code))
	return result, nil
}
