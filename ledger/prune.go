package ledger

import (
	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// Prune runs store.Prune inside a single write transaction and, on a
// non-zero result, refreshes the ledger cache's pruned counter strictly
// after commit, mirroring ProcessAndCommit's commit-then-refresh ordering.
func (l *Ledger) Prune(target primitives.BlockHash, batchMax int) (int, error) {
	var count int
	err := l.store.Update(func(tx *bolt.Tx) error {
		c, err := store.Prune(tx, target, batchMax)
		if err != nil {
			return err
		}
		count = c
		return nil
	})
	if err != nil {
		return 0, storeErr("prune", err)
	}
	if count > 0 {
		l.cache.AddPrunedCount(int64(count))
		l.logger.Debug("pruned blocks", "target", target.String(), "count", count)
	}
	return count, nil
}
