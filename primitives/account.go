package primitives

import "encoding/hex"

// Account is a 256-bit Ed25519 public key naming one account chain. The
// zero value is the sentinel "unopened/absent" account.
type Account [32]byte

// BurnAccount is the distinguished account forbidden as the opener-account
// of any block.
var BurnAccount = Account{0xff}

// IsZero reports whether a is the unopened/absent sentinel.
func (a Account) IsZero() bool { return a == Account{} }

// IsBurn reports whether a is the protocol's burn account.
func (a Account) IsBurn() bool { return a == BurnAccount }

func (a Account) String() string { return hex.EncodeToString(a[:]) }

// AccountFromHex parses a 64-character hex string into an Account.
func AccountFromHex(s string) (Account, error) {
	var a Account
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, err
	}
	if len(b) != len(a) {
		return a, errLen("account", len(a), len(b))
	}
	copy(a[:], b)
	return a, nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Account) UnmarshalJSON(b []byte) error {
	s, err := unquoteJSONString(b)
	if err != nil {
		return err
	}
	parsed, err := AccountFromHex(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
