package store

import (
	"encoding/binary"
	"fmt"

	"lattice.dev/ledger/primitives"
)

// AccountInfo is the per-account chain head record, keyed by account.
type AccountInfo struct {
	Head           primitives.BlockHash
	Representative primitives.Account
	Balance        primitives.Amount
	Modified       uint64 // unix seconds
	BlockCount     uint64
	Epoch          uint8
}

const accountInfoLen = 32 + 32 + 16 + 8 + 8 + 1

// Encode serializes a as head(32) ∥ rep(32) ∥ balance(16) ∥ modified(8) ∥
// block_count(8) ∥ epoch(1).
func (a AccountInfo) Encode() []byte {
	out := make([]byte, accountInfoLen)
	off := 0
	copy(out[off:off+32], a.Head[:])
	off += 32
	copy(out[off:off+32], a.Representative[:])
	off += 32
	bal := a.Balance.Bytes()
	copy(out[off:off+16], bal[:])
	off += 16
	binary.LittleEndian.PutUint64(out[off:off+8], a.Modified)
	off += 8
	binary.LittleEndian.PutUint64(out[off:off+8], a.BlockCount)
	off += 8
	out[off] = a.Epoch
	return out
}

// DecodeAccountInfo parses the layout produced by Encode.
func DecodeAccountInfo(b []byte) (AccountInfo, error) {
	if len(b) != accountInfoLen {
		return AccountInfo{}, fmt.Errorf("store: account info: expected %d bytes, got %d", accountInfoLen, len(b))
	}
	var a AccountInfo
	off := 0
	copy(a.Head[:], b[off:off+32])
	off += 32
	copy(a.Representative[:], b[off:off+32])
	off += 32
	bal, err := primitives.Uint128FromBytes(b[off : off+16])
	if err != nil {
		return AccountInfo{}, err
	}
	a.Balance = bal
	off += 16
	a.Modified = binary.LittleEndian.Uint64(b[off : off+8])
	off += 8
	a.BlockCount = binary.LittleEndian.Uint64(b[off : off+8])
	off += 8
	a.Epoch = b[off]
	return a, nil
}

// ConfirmationHeightInfo tracks how far an account's chain is confirmed.
type ConfirmationHeightInfo struct {
	Height   uint64
	Frontier primitives.BlockHash
}

const confirmationHeightInfoLen = 8 + 32

// Encode serializes c as height(8) ∥ frontier(32).
func (c ConfirmationHeightInfo) Encode() []byte {
	out := make([]byte, confirmationHeightInfoLen)
	binary.LittleEndian.PutUint64(out[0:8], c.Height)
	copy(out[8:40], c.Frontier[:])
	return out
}

// DecodeConfirmationHeightInfo parses the layout produced by Encode.
func DecodeConfirmationHeightInfo(b []byte) (ConfirmationHeightInfo, error) {
	if len(b) != confirmationHeightInfoLen {
		return ConfirmationHeightInfo{}, fmt.Errorf("store: confirmation height info: expected %d bytes, got %d", confirmationHeightInfoLen, len(b))
	}
	var c ConfirmationHeightInfo
	c.Height = binary.LittleEndian.Uint64(b[0:8])
	copy(c.Frontier[:], b[8:40])
	return c, nil
}
