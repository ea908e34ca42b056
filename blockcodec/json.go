package blockcodec

import (
	"encoding/json"
	"fmt"

	"lattice.dev/ledger/primitives"
)

// blockJSON is the on-wire JSON shape: every variant shares one struct with
// an explicit type tag, and fields irrelevant to a given Kind are simply
// omitted by the encoder's zero-value check (omitempty).
type blockJSON struct {
	Type           string                `json:"type"`
	Previous       *primitives.BlockHash `json:"previous,omitempty"`
	Destination    *primitives.Account   `json:"destination,omitempty"`
	Balance        *primitives.Amount    `json:"balance,omitempty"`
	Source         *primitives.BlockHash `json:"source,omitempty"`
	Representative *primitives.Account   `json:"representative,omitempty"`
	Account        *primitives.Account   `json:"account,omitempty"`
	Link           *Link                 `json:"link,omitempty"`
	Signature      primitives.Signature  `json:"signature"`
	Work           primitives.Work       `json:"work"`
}

func (l Link) MarshalJSON() ([]byte, error) {
	var h primitives.BlockHash
	copy(h[:], l[:])
	return h.MarshalJSON()
}

func (l *Link) UnmarshalJSON(b []byte) error {
	var h primitives.BlockHash
	if err := h.UnmarshalJSON(b); err != nil {
		return err
	}
	copy(l[:], h[:])
	return nil
}

func (b *Block) MarshalJSON() ([]byte, error) {
	j := blockJSON{
		Type:      b.Kind.String(),
		Signature: b.Signature,
		Work:      b.Work,
	}
	switch b.Kind {
	case KindSend:
		j.Previous = &b.Previous
		j.Destination = &b.Destination
		j.Balance = &b.Balance
	case KindReceive:
		j.Previous = &b.Previous
		j.Source = &b.Source
	case KindOpen:
		j.Source = &b.Source
		j.Representative = &b.Representative
		j.Account = &b.Account
	case KindChange:
		j.Previous = &b.Previous
		j.Representative = &b.Representative
	case KindState:
		j.Account = &b.Account
		j.Previous = &b.Previous
		j.Representative = &b.Representative
		j.Balance = &b.Balance
		j.Link = &b.Link
	default:
		return nil, parseErr(ErrCodeUnknownKind, "unknown block kind")
	}
	return json.Marshal(j)
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var j blockJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return parseErr(ErrCodeBadJSON, err.Error())
	}

	kind, err := kindFromString(j.Type)
	if err != nil {
		return err
	}
	out := Block{Kind: kind, Signature: j.Signature, Work: j.Work}

	need := func(name string, present bool) error {
		if !present {
			return parseErr(ErrCodeBadJSON, fmt.Sprintf("%s: missing field %q", kind, name))
		}
		return nil
	}

	switch kind {
	case KindSend:
		if err := need("previous", j.Previous != nil); err != nil {
			return err
		}
		if err := need("destination", j.Destination != nil); err != nil {
			return err
		}
		if err := need("balance", j.Balance != nil); err != nil {
			return err
		}
		out.Previous, out.Destination, out.Balance = *j.Previous, *j.Destination, *j.Balance
	case KindReceive:
		if err := need("previous", j.Previous != nil); err != nil {
			return err
		}
		if err := need("source", j.Source != nil); err != nil {
			return err
		}
		out.Previous, out.Source = *j.Previous, *j.Source
	case KindOpen:
		if err := need("source", j.Source != nil); err != nil {
			return err
		}
		if err := need("representative", j.Representative != nil); err != nil {
			return err
		}
		if err := need("account", j.Account != nil); err != nil {
			return err
		}
		out.Source, out.Representative, out.Account = *j.Source, *j.Representative, *j.Account
	case KindChange:
		if err := need("previous", j.Previous != nil); err != nil {
			return err
		}
		if err := need("representative", j.Representative != nil); err != nil {
			return err
		}
		out.Previous, out.Representative = *j.Previous, *j.Representative
	case KindState:
		if err := need("account", j.Account != nil); err != nil {
			return err
		}
		if err := need("previous", j.Previous != nil); err != nil {
			return err
		}
		if err := need("representative", j.Representative != nil); err != nil {
			return err
		}
		if err := need("balance", j.Balance != nil); err != nil {
			return err
		}
		if err := need("link", j.Link != nil); err != nil {
			return err
		}
		out.Account, out.Previous, out.Representative = *j.Account, *j.Previous, *j.Representative
		out.Balance, out.Link = *j.Balance, *j.Link
	}

	*b = out
	return nil
}

func kindFromString(s string) (Kind, error) {
	switch s {
	case "send":
		return KindSend, nil
	case "receive":
		return KindReceive, nil
	case "open":
		return KindOpen, nil
	case "change":
		return KindChange, nil
	case "state":
		return KindState, nil
	default:
		return KindInvalid, parseErr(ErrCodeUnknownKind, fmt.Sprintf("unknown type %q", s))
	}
}
