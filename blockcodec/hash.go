package blockcodec

import "lattice.dev/ledger/primitives"

// HashableBytes returns the canonical field order fed to the hash function
// for b's variant. Sideband, signature, and work are never included.
func (b *Block) HashableBytes() ([]byte, error) {
	switch b.Kind {
	case KindSend:
		bal := b.Balance.Bytes()
		out := make([]byte, 0, 32+32+16)
		out = append(out, b.Previous[:]...)
		out = append(out, b.Destination[:]...)
		out = append(out, bal[:]...)
		return out, nil
	case KindReceive:
		out := make([]byte, 0, 32+32)
		out = append(out, b.Previous[:]...)
		out = append(out, b.Source[:]...)
		return out, nil
	case KindOpen:
		out := make([]byte, 0, 32+32+32)
		out = append(out, b.Source[:]...)
		out = append(out, b.Representative[:]...)
		out = append(out, b.Account[:]...)
		return out, nil
	case KindChange:
		out := make([]byte, 0, 32+32)
		out = append(out, b.Previous[:]...)
		out = append(out, b.Representative[:]...)
		return out, nil
	case KindState:
		bal := b.Balance.Bytes()
		out := make([]byte, 0, 32+32+32+16+32)
		out = append(out, b.Account[:]...)
		out = append(out, b.Previous[:]...)
		out = append(out, b.Representative[:]...)
		out = append(out, bal[:]...)
		out = append(out, b.Link[:]...)
		return out, nil
	default:
		return nil, parseErr(ErrCodeUnknownKind, "unknown block kind")
	}
}

// Hash computes b's 32-byte content-addressed block hash.
func (b *Block) Hash() (primitives.BlockHash, error) {
	raw, err := b.HashableBytes()
	if err != nil {
		return primitives.BlockHash{}, err
	}
	return primitives.Hash(raw), nil
}
