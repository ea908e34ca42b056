package ledger

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/ed25519"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/internal/config"
	"lattice.dev/ledger/ledgercache"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

// Ledger is the validation/application/rollback/pruning engine over one
// store and its in-memory cache. It holds no mutable state of its own
// beyond the epoch-marker lookup tables and a bootstrap-weight override
// map; every durable fact lives in the store.
type Ledger struct {
	store  *store.Store
	cache  *ledgercache.Cache
	logger *slog.Logger

	epochSignerKeys map[uint8]ed25519.PublicKey
	epochLinkOf     map[uint8]blockcodec.Link
	epochOfLink     map[blockcodec.Link]uint8

	baseWorkDifficulty uint64

	bootstrapWeightMaxBlocks uint64
	bootstrapWeights         map[primitives.Account]primitives.Amount

	// clock supplies the sideband/account-info timestamp. Overridable so
	// tests get deterministic values instead of wall-clock time.
	clock func() uint64
}

// New constructs a Ledger over an already-opened store and a cache that
// has been Rebuild-populated (or is freshly New() for a store about to
// receive its genesis block). A nil logger discards all engine logging.
func New(st *store.Store, cache *ledgercache.Cache, cfg config.Config, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fwd, rev := buildEpochLinkTables()
	signerKeys := cfg.EpochSignerKeys
	if signerKeys == nil {
		signerKeys = map[uint8]ed25519.PublicKey{}
	}
	return &Ledger{
		store:                    st,
		cache:                    cache,
		logger:                   logger.With("component", "ledger"),
		epochSignerKeys:          signerKeys,
		epochLinkOf:              fwd,
		epochOfLink:              rev,
		baseWorkDifficulty:       cfg.MaxWorkGenerateDifficulty,
		bootstrapWeightMaxBlocks: cfg.BootstrapWeightMaxBlocks,
		bootstrapWeights:         map[primitives.Account]primitives.Amount{},
		clock:                    func() uint64 { return uint64(time.Now().Unix()) },
	}
}

// SetClock overrides the timestamp source used for sideband and
// account-info "modified" fields. Tests should install a fixed clock.
func (l *Ledger) SetClock(fn func() uint64) { l.clock = fn }

// SetBootstrapWeights installs the initial-sync weight override consulted
// by Weight until the store has processed BootstrapWeightMaxBlocks blocks.
// See Ledger.Weight.
func (l *Ledger) SetBootstrapWeights(weights map[primitives.Account]primitives.Amount) {
	l.bootstrapWeights = weights
}

// Store returns the underlying store, for callers that need to run their
// own read transactions alongside engine calls (e.g. bootstrap, CLI tools).
func (l *Ledger) Store() *store.Store { return l.store }

// Cache returns the in-memory derived-state mirror.
func (l *Ledger) Cache() *ledgercache.Cache { return l.cache }
