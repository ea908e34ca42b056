package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketAccounts            = []byte("accounts")
	bucketBlocks              = []byte("blocks")
	bucketPending             = []byte("pending")
	bucketFrontiers           = []byte("frontiers")
	bucketRepresentation      = []byte("representation")
	bucketConfirmationHeight  = []byte("confirmation_height")
	bucketPruned              = []byte("pruned")
	bucketUnchecked           = []byte("unchecked")
	bucketOnlineWeight        = []byte("online_weight")
	bucketPeers               = []byte("peers")
	bucketFinalVotes          = []byte("final_votes")
	bucketVersion             = []byte("version")
	bucketMeta                = []byte("meta")

	allBuckets = [][]byte{
		bucketAccounts, bucketBlocks, bucketPending, bucketFrontiers,
		bucketRepresentation, bucketConfirmationHeight, bucketPruned,
		bucketUnchecked, bucketOnlineWeight, bucketPeers, bucketFinalVotes,
		bucketVersion, bucketMeta,
	}
)

const versionKey = "schema_version"

// Store wraps a single bbolt database file holding every typed table this
// ledger core persists, plus a small JSON sidecar recording chain identity.
type Store struct {
	dir      string
	db       *bolt.DB
	manifest *Manifest
}

// Open opens (creating if absent) the bbolt database under dir and ensures
// every bucket exists. If a manifest sidecar is present its schema version
// is checked against SchemaVersion; a higher version refuses to open.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: data directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
	}

	path := filepath.Join(dir, "ledger.db")
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open bbolt: %w", err)
	}

	s := &Store{dir: dir, db: bdb}

	if err := s.db.Update(func(tx *bolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("store: create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}

	m, err := readManifest(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil // uninitialized; caller must bootstrap genesis.
		}
		_ = bdb.Close()
		return nil, fmt.Errorf("store: read manifest: %w", err)
	}
	if m.SchemaVersion > SchemaVersion {
		_ = bdb.Close()
		return nil, fmt.Errorf("store: manifest schema_version %d > supported %d", m.SchemaVersion, SchemaVersion)
	}
	s.manifest = m
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) Manifest() *Manifest {
	if s == nil {
		return nil
	}
	return s.manifest
}

// InitManifest writes the chain-identity sidecar when a store is
// bootstrapped with genesis, replacing any sidecar already present.
func (s *Store) InitManifest(m *Manifest) error {
	if err := writeManifestAtomic(s.dir, m); err != nil {
		return err
	}
	s.manifest = m
	return nil
}

// Update runs fn inside a single read-write transaction (bbolt's native
// single-writer scope); all mutations across the Store's typed tables that
// fn performs commit together or not at all.
func (s *Store) Update(fn func(tx *bolt.Tx) error) error {
	return s.db.Update(fn)
}

// View runs fn inside a read-only transaction over a consistent snapshot.
func (s *Store) View(fn func(tx *bolt.Tx) error) error {
	return s.db.View(fn)
}

func bucket(tx *bolt.Tx, name []byte) *bolt.Bucket {
	return tx.Bucket(name)
}
