package ledger

import (
	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/primitives"
)

// maxKnownEpoch bounds the epoch-link lookup table built at construction.
// Nano-style networks have shipped two epoch upgrades to date; this leaves
// ample headroom without building an unbounded table.
const maxKnownEpoch = 16

// epochLink derives the canonical state-block link value that marks an
// epoch-E upgrade block. It is a hash of a fixed per-epoch string rather
// than an arbitrary constant so every participant derives the same marker
// without needing a shipped table of magic bytes.
func epochLink(epoch uint8) blockcodec.Link {
	h := primitives.Hash([]byte("epoch_v"), []byte{epoch}, []byte("_block"))
	var l blockcodec.Link
	copy(l[:], h[:])
	return l
}

// buildEpochLinkTables precomputes the forward (epoch -> link) and reverse
// (link -> epoch) tables once at construction so block classification never
// recomputes a hash per candidate.
func buildEpochLinkTables() (map[uint8]blockcodec.Link, map[blockcodec.Link]uint8) {
	fwd := make(map[uint8]blockcodec.Link, maxKnownEpoch)
	rev := make(map[blockcodec.Link]uint8, maxKnownEpoch)
	for e := uint8(1); e <= maxKnownEpoch; e++ {
		l := epochLink(e)
		fwd[e] = l
		rev[l] = e
	}
	return fwd, rev
}
