package primitives

import "encoding/binary"

// Work is the 64-bit proof-of-work nonce attached to a block.
type Work uint64

// ValidateWork reports whether work meets threshold against root: it
// computes an 8-byte blake2b digest of work(8 bytes little-endian) ∥
// root(32 bytes), interprets it as a little-endian integer, and requires
// it to be greater than or equal to threshold. Higher thresholds apply to
// epoch-2 state blocks; the caller supplies the threshold appropriate to
// the block's variant and epoch.
func ValidateWork(work Work, root BlockHash, threshold uint64) bool {
	return WorkValue(work, root) >= threshold
}

// WorkValue computes the raw difficulty value for (work, root), exposed so
// callers can report insufficient_work with the observed value.
func WorkValue(work Work, root BlockHash) uint64 {
	var buf [40]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(work))
	copy(buf[8:40], root[:])
	digest := variableHash(8, buf[:])
	return binary.LittleEndian.Uint64(digest)
}

// GenerateWork searches sequentially from zero for a work value meeting
// threshold against root. There is no GPU/dedicated-hardware path in this
// tree, and the search always starts at zero on the calling goroutine.
func GenerateWork(root BlockHash, threshold uint64) Work {
	for w := Work(0); ; w++ {
		if ValidateWork(w, root, threshold) {
			return w
		}
	}
}
