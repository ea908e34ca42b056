package ledgercache

import (
	"sync"
	"sync/atomic"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// Cache is the in-memory mirror of committed ledger state: reconstructible
// counters plus the representation-weight map. It is never the source of
// truth — the store is — but every caller that only needs a count or a
// weight reads this instead of scanning bbolt.
//
// Counters are plain atomics (read-mostly, single-writer updates after each
// commit). The representation map is guarded by one mutex, updated in a
// single critical section per commit so a reader never observes a partial
// update across its entries.
type Cache struct {
	accountCount atomic.Uint64
	blockCount   atomic.Uint64
	cementedCount atomic.Uint64
	prunedCount  atomic.Uint64

	mu              sync.Mutex
	representation  map[primitives.Account]primitives.Amount
}

// New returns an empty cache. For a store that already holds data, Rebuild
// returns a cache populated from it instead.
func New() *Cache {
	return &Cache{representation: make(map[primitives.Account]primitives.Amount)}
}

func (c *Cache) AccountCount() uint64  { return c.accountCount.Load() }
func (c *Cache) BlockCount() uint64    { return c.blockCount.Load() }
func (c *Cache) CementedCount() uint64 { return c.cementedCount.Load() }
func (c *Cache) PrunedCount() uint64   { return c.prunedCount.Load() }

// Weight returns account's total delegated weight, or zero if it has never
// been named as a representative.
func (c *Cache) Weight(account primitives.Account) primitives.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.representation[account]; ok {
		return w
	}
	return primitives.Amount{}
}

// SetAccountCount, SetBlockCount, SetCementedCount, SetPrunedCount overwrite
// a counter outright (used by Rebuild and whenever a commit's net delta is
// easier to compute from the store than to track incrementally).
func (c *Cache) SetAccountCount(n uint64)  { c.accountCount.Store(n) }
func (c *Cache) SetBlockCount(n uint64)    { c.blockCount.Store(n) }
func (c *Cache) SetCementedCount(n uint64) { c.cementedCount.Store(n) }
func (c *Cache) SetPrunedCount(n uint64)   { c.prunedCount.Store(n) }

func (c *Cache) AddBlockCount(delta int64)    { addInt64(&c.blockCount, delta) }
func (c *Cache) AddAccountCount(delta int64)  { addInt64(&c.accountCount, delta) }
func (c *Cache) AddCementedCount(delta int64) { addInt64(&c.cementedCount, delta) }
func (c *Cache) AddPrunedCount(delta int64)   { addInt64(&c.prunedCount, delta) }

func addInt64(a *atomic.Uint64, delta int64) {
	if delta >= 0 {
		a.Add(uint64(delta))
		return
	}
	a.Add(^uint64(-delta - 1)) // two's-complement subtraction via Add
}

// SetWeights overwrites the representation map's entries for the given
// accounts in one critical section, so a concurrent reader never observes
// only some of a commit's affected representatives updated.
func (c *Cache) SetWeights(weights map[primitives.Account]primitives.Amount) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for account, weight := range weights {
		c.representation[account] = weight
	}
}

// Rebuild repopulates the cache from a cold start by one read-transaction
// pass over the accounts bucket, mirroring the store's committed state.
func Rebuild(s *store.Store) (*Cache, error) {
	c := New()
	err := s.View(func(tx *bolt.Tx) error {
		var accounts, cemented uint64
		if err := store.AccountIterate(tx, primitives.Account{}, func(a primitives.Account, info store.AccountInfo) (bool, error) {
			accounts++
			if ch, ok, err := store.ConfirmationHeightGet(tx, a); err != nil {
				return false, err
			} else if ok {
				cemented += ch.Height
			}
			return true, nil
		}); err != nil {
			return err
		}
		rep := make(map[primitives.Account]primitives.Amount)
		if err := store.RepresentationIterate(tx, func(a primitives.Account, w primitives.Amount) (bool, error) {
			rep[a] = w
			return true, nil
		}); err != nil {
			return err
		}
		c.accountCount.Store(accounts)
		c.blockCount.Store(store.BlockCount(tx))
		c.prunedCount.Store(store.PrunedCount(tx))
		c.cementedCount.Store(cemented)
		c.representation = rep
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
