package store

import (
	"encoding/binary"
	"fmt"

	"lattice.dev/ledger/primitives"
)

// Sideband is metadata stored alongside a block body but excluded from its
// hash: the owning account, chain position, resulting balance, the
// representative in effect as of this block, timestamp, forward link to the
// next block, and classification flags. Representative is carried here (and
// not just in AccountInfo) so rolling a block back can restore the account's
// prior delegate without walking the chain backward looking for the last
// block that actually set one.
type Sideband struct {
	Account        primitives.Account
	Height         uint64
	Balance        primitives.Amount
	Representative primitives.Account
	Timestamp      uint64
	Successor      primitives.BlockHash
	IsSend         bool
	IsReceive      bool
	IsEpoch        bool
	Epoch          uint8
	SourceEpoch    uint8
}

const sidebandLen = 32 + 8 + 16 + 32 + 8 + 32 + 1 + 1 + 1

func (s Sideband) flags() byte {
	var f byte
	if s.IsSend {
		f |= 1 << 0
	}
	if s.IsReceive {
		f |= 1 << 1
	}
	if s.IsEpoch {
		f |= 1 << 2
	}
	return f
}

// Encode serializes s as:
// account(32) ∥ height(8) ∥ balance(16) ∥ representative(32) ∥ timestamp(8) ∥
// successor(32) ∥ flags(1) ∥ epoch(1) ∥ source_epoch(1).
func (s Sideband) Encode() []byte {
	out := make([]byte, sidebandLen)
	off := 0
	copy(out[off:off+32], s.Account[:])
	off += 32
	binary.LittleEndian.PutUint64(out[off:off+8], s.Height)
	off += 8
	bal := s.Balance.Bytes()
	copy(out[off:off+16], bal[:])
	off += 16
	copy(out[off:off+32], s.Representative[:])
	off += 32
	binary.LittleEndian.PutUint64(out[off:off+8], s.Timestamp)
	off += 8
	copy(out[off:off+32], s.Successor[:])
	off += 32
	out[off] = s.flags()
	off++
	out[off] = s.Epoch
	off++
	out[off] = s.SourceEpoch
	return out
}

// DecodeSideband parses the layout produced by Encode.
func DecodeSideband(b []byte) (Sideband, error) {
	if len(b) != sidebandLen {
		return Sideband{}, fmt.Errorf("store: sideband: expected %d bytes, got %d", sidebandLen, len(b))
	}
	var s Sideband
	off := 0
	copy(s.Account[:], b[off:off+32])
	off += 32
	s.Height = binary.LittleEndian.Uint64(b[off : off+8])
	off += 8
	bal, err := primitives.Uint128FromBytes(b[off : off+16])
	if err != nil {
		return Sideband{}, err
	}
	s.Balance = bal
	off += 16
	copy(s.Representative[:], b[off:off+32])
	off += 32
	s.Timestamp = binary.LittleEndian.Uint64(b[off : off+8])
	off += 8
	copy(s.Successor[:], b[off:off+32])
	off += 32
	flags := b[off]
	s.IsSend = flags&(1<<0) != 0
	s.IsReceive = flags&(1<<1) != 0
	s.IsEpoch = flags&(1<<2) != 0
	off++
	s.Epoch = b[off]
	off++
	s.SourceEpoch = b[off]
	return s, nil
}
