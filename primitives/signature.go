package primitives

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"
)

// Signature is a 512-bit Ed25519 signature over a block hash.
type Signature [64]byte

func (s Signature) IsZero() bool { return s == Signature{} }

func (s Signature) String() string { return hex.EncodeToString(s[:]) }

func (s Signature) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Signature) UnmarshalJSON(b []byte) error {
	str, err := unquoteJSONString(b)
	if err != nil {
		return err
	}
	raw, err := hex.DecodeString(str)
	if err != nil {
		return err
	}
	if len(raw) != len(s) {
		return errLen("signature", len(s), len(raw))
	}
	copy(s[:], raw)
	return nil
}

// KeyPair wraps an Ed25519 signing keypair. It is a plain struct rather
// than an interface: there is exactly one signing backend in play, so an
// indirection layer would have no second implementation to justify it.
// See DESIGN.md for the fuller rationale.
type KeyPair struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// GenerateKeyPair creates a fresh Ed25519 keypair.
func GenerateKeyPair() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Public: pub, Private: priv}, nil
}

// Account returns the 256-bit account identifier naming this keypair's chain.
func (k KeyPair) Account() Account {
	var a Account
	copy(a[:], k.Public)
	return a
}

// Sign produces a Signature over hash using k's private key.
func (k KeyPair) Sign(hash BlockHash) Signature {
	raw := ed25519.Sign(k.Private, hash[:])
	var sig Signature
	copy(sig[:], raw)
	return sig
}

// Verify reports whether sig is a valid Ed25519 signature over hash by the
// Ed25519 public key named by account.
func Verify(account Account, hash BlockHash, sig Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(account[:]), hash[:], sig[:])
}
