package store

import (
	"fmt"

	"lattice.dev/ledger/primitives"
)

// PendingKey identifies a not-yet-received send: the destination account and
// the hash of the send block that created the receivable amount.
type PendingKey struct {
	Destination primitives.Account
	SendHash    primitives.BlockHash
}

// Bytes encodes the key as destination(32) ∥ send_hash(32), the literal
// byte layout used as the pending bucket's key.
func (k PendingKey) Bytes() []byte {
	out := make([]byte, 64)
	copy(out[0:32], k.Destination[:])
	copy(out[32:64], k.SendHash[:])
	return out
}

// PendingKeyFromBytes parses a 64-byte pending-bucket key.
func PendingKeyFromBytes(b []byte) (PendingKey, error) {
	if len(b) != 64 {
		return PendingKey{}, fmt.Errorf("store: pending key: expected 64 bytes, got %d", len(b))
	}
	var k PendingKey
	copy(k.Destination[:], b[0:32])
	copy(k.SendHash[:], b[32:64])
	return k, nil
}

// PendingRecord is the receivable amount and its origin, keyed by PendingKey.
type PendingRecord struct {
	Source primitives.Account
	Amount primitives.Amount
	Epoch  uint8
}

const pendingRecordLen = 32 + 16 + 1

// Encode serializes r as source(32) ∥ amount(16) ∥ epoch(1).
func (r PendingRecord) Encode() []byte {
	out := make([]byte, pendingRecordLen)
	copy(out[0:32], r.Source[:])
	bal := r.Amount.Bytes()
	copy(out[32:48], bal[:])
	out[48] = r.Epoch
	return out
}

// DecodePendingRecord parses the layout produced by Encode.
func DecodePendingRecord(b []byte) (PendingRecord, error) {
	if len(b) != pendingRecordLen {
		return PendingRecord{}, fmt.Errorf("store: pending record: expected %d bytes, got %d", pendingRecordLen, len(b))
	}
	var r PendingRecord
	copy(r.Source[:], b[0:32])
	amt, err := primitives.Uint128FromBytes(b[32:48])
	if err != nil {
		return PendingRecord{}, err
	}
	r.Amount = amt
	r.Epoch = b[48]
	return r, nil
}
