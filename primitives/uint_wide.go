package primitives

import (
	"fmt"
	"math/big"
)

// Uint256 and Uint512 are fixed-width unsigned integers wider than a
// balance. Uint256 offers Add and Cmp; Uint512 offers only byte and string
// conversion. No other code in this tree uses them. They are backed by
// math/big rather than hand-rolled bits.Add64 chains: these widths are
// rarely on a hot path, so the simplicity of big.Int outweighs the
// allocation cost.
type Uint256 struct {
	v *big.Int
}

type Uint512 struct {
	v *big.Int
}

func newWide(byteLen int, b []byte) (*big.Int, error) {
	if len(b) != byteLen {
		return nil, fmt.Errorf("primitives: expected %d bytes, got %d", byteLen, len(b))
	}
	return new(big.Int).SetBytes(b), nil
}

// Uint256FromBytes parses a 32-byte big-endian buffer.
func Uint256FromBytes(b []byte) (Uint256, error) {
	v, err := newWide(32, b)
	if err != nil {
		return Uint256{}, err
	}
	return Uint256{v: v}, nil
}

// Bytes encodes the value as a 32-byte big-endian buffer.
func (u Uint256) Bytes() [32]byte {
	var out [32]byte
	if u.v != nil {
		u.v.FillBytes(out[:])
	}
	return out
}

// Add returns u+v and reports whether the result overflows 256 bits.
func (u Uint256) Add(v Uint256) (Uint256, bool) {
	sum := new(big.Int).Add(u.bigOrZero(), v.bigOrZero())
	return Uint256{v: sum}, sum.BitLen() > 256
}

// Cmp compares u and v.
func (u Uint256) Cmp(v Uint256) int { return u.bigOrZero().Cmp(v.bigOrZero()) }

func (u Uint256) String() string { return u.bigOrZero().String() }

func (u Uint256) bigOrZero() *big.Int {
	if u.v == nil {
		return new(big.Int)
	}
	return u.v
}

// Uint512FromBytes parses a 64-byte big-endian buffer.
func Uint512FromBytes(b []byte) (Uint512, error) {
	v, err := newWide(64, b)
	if err != nil {
		return Uint512{}, err
	}
	return Uint512{v: v}, nil
}

// Bytes encodes the value as a 64-byte big-endian buffer.
func (u Uint512) Bytes() [64]byte {
	var out [64]byte
	if u.v != nil {
		u.v.FillBytes(out[:])
	}
	return out
}

func (u Uint512) String() string {
	if u.v == nil {
		return "0"
	}
	return u.v.String()
}
