package primitives

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"math/big"
)

// Uint128 is an exact 128-bit unsigned integer, stored big-endian-logical
// (Hi holds the upper 64 bits). All consensus-path arithmetic uses this type
// instead of float64 so that balances never lose precision.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// MaxUint128 is 2^128 - 1, the genesis amount.
var MaxUint128 = Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}

// Uint128FromUint64 widens a 64-bit value.
func Uint128FromUint64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Uint128FromBytes parses a 16-byte big-endian buffer.
func Uint128FromBytes(b []byte) (Uint128, error) {
	if len(b) != 16 {
		return Uint128{}, fmt.Errorf("uint128: expected 16 bytes, got %d", len(b))
	}
	return Uint128{
		Hi: binary.BigEndian.Uint64(b[0:8]),
		Lo: binary.BigEndian.Uint64(b[8:16]),
	}, nil
}

// Bytes encodes u as a 16-byte big-endian buffer.
func (u Uint128) Bytes() [16]byte {
	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], u.Hi)
	binary.BigEndian.PutUint64(out[8:16], u.Lo)
	return out
}

// IsZero reports whether u is the additive identity.
func (u Uint128) IsZero() bool { return u.Hi == 0 && u.Lo == 0 }

// Cmp returns -1, 0, or 1 as u is less than, equal to, or greater than v.
func (u Uint128) Cmp(v Uint128) int {
	if u.Hi != v.Hi {
		if u.Hi < v.Hi {
			return -1
		}
		return 1
	}
	switch {
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	default:
		return 0
	}
}

// Add returns u+v and reports whether the addition overflowed 128 bits.
func (u Uint128) Add(v Uint128) (Uint128, bool) {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, carry2 := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}, carry2 != 0
}

// Sub returns u-v and reports whether the subtraction underflowed (u < v).
func (u Uint128) Sub(v Uint128) (Uint128, bool) {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, borrow2 := bits.Sub64(u.Hi, v.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}, borrow2 != 0
}

// String renders u in base-10, preserving exact-integer precision.
func (u Uint128) String() string {
	return u.big().String()
}

func (u Uint128) big() *big.Int {
	hi := new(big.Int).SetUint64(u.Hi)
	hi.Lsh(hi, 64)
	lo := new(big.Int).SetUint64(u.Lo)
	return hi.Add(hi, lo)
}

// MarshalJSON renders u as a decimal string rather than a raw JSON number,
// so values above 2^53 survive round-tripping without float64 precision
// loss.
func (u Uint128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// UnmarshalJSON parses a quoted decimal string produced by MarshalJSON.
func (u *Uint128) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("uint128: expected quoted decimal string")
	}
	v, ok := new(big.Int).SetString(string(b[1:len(b)-1]), 10)
	if !ok {
		return fmt.Errorf("uint128: invalid decimal string %q", string(b))
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		return fmt.Errorf("uint128: value out of range")
	}
	bs := v.FillBytes(make([]byte, 16))
	parsed, err := Uint128FromBytes(bs)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
