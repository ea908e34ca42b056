package store

import (
	"testing"

	"lattice.dev/ledger/primitives"
)

func TestSidebandEncodeDecodeRoundTrip(t *testing.T) {
	var account, rep primitives.Account
	account[0] = 0x11
	rep[0] = 0x22
	var successor primitives.BlockHash
	successor[0] = 0x33

	sb := Sideband{
		Account:        account,
		Height:         7,
		Balance:        primitives.Uint128FromUint64(500),
		Representative: rep,
		Timestamp:      1234567,
		Successor:      successor,
		IsSend:         true,
		IsReceive:      false,
		IsEpoch:        false,
		Epoch:          2,
		SourceEpoch:    1,
	}

	got, err := DecodeSideband(sb.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != sb {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, sb)
	}
}

func TestSidebandFlagsIndependence(t *testing.T) {
	cases := []Sideband{
		{IsSend: true},
		{IsReceive: true},
		{IsEpoch: true},
		{},
	}
	for _, sb := range cases {
		got, err := DecodeSideband(sb.Encode())
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.IsSend != sb.IsSend || got.IsReceive != sb.IsReceive || got.IsEpoch != sb.IsEpoch {
			t.Fatalf("flags mismatch: got %+v, want %+v", got, sb)
		}
	}
}

func TestDecodeSidebandRejectsWrongLength(t *testing.T) {
	if _, err := DecodeSideband([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short buffer")
	}
}
