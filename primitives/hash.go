package primitives

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// BlockHash is the 256-bit content-addressed digest of a block's hashable
// fields — never the sideband, never the signature, never the work value.
type BlockHash [32]byte

func (h BlockHash) IsZero() bool { return h == BlockHash{} }

func (h BlockHash) String() string { return hex.EncodeToString(h[:]) }

// BlockHashFromHex parses a 64-character hex string into a BlockHash.
func BlockHashFromHex(s string) (BlockHash, error) {
	var h BlockHash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	if len(b) != len(h) {
		return h, errLen("block hash", len(h), len(b))
	}
	copy(h[:], b)
	return h, nil
}

func (h BlockHash) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

func (h *BlockHash) UnmarshalJSON(b []byte) error {
	s, err := unquoteJSONString(b)
	if err != nil {
		return err
	}
	parsed, err := BlockHashFromHex(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Hash feeds each of parts, in order, into blake2b and returns the 32-byte
// digest. Block hashing always calls this with the variant's hashable
// fields in canonical order — never the sideband, signature, or work
// bytes.
func Hash(parts ...[]byte) BlockHash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on a bad key length; we never pass one.
		panic("primitives: blake2b.New256: " + err.Error())
	}
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out BlockHash
	copy(out[:], h.Sum(nil))
	return out
}

// variableHash computes a blake2b digest of the given size over data. Used
// by work validation, which needs an 8-byte digest rather than the 32-byte
// digest block hashing uses.
func variableHash(size int, data []byte) []byte {
	h, err := blake2b.New(size, nil)
	if err != nil {
		panic("primitives: blake2b.New: " + err.Error())
	}
	_, _ = h.Write(data)
	return h.Sum(nil)
}
