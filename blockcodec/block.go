package blockcodec

import "lattice.dev/ledger/primitives"

// Kind distinguishes the five block variants. It is read first from the
// wire stream; every other field is decoded according to it.
type Kind byte

const (
	KindInvalid Kind = 0
	KindSend    Kind = 1
	KindReceive Kind = 2
	KindOpen    Kind = 3
	KindChange  Kind = 4
	KindState   Kind = 5
)

func (k Kind) String() string {
	switch k {
	case KindSend:
		return "send"
	case KindReceive:
		return "receive"
	case KindOpen:
		return "open"
	case KindChange:
		return "change"
	case KindState:
		return "state"
	default:
		return "invalid"
	}
}

// Link is the polymorphic field on a state block: a destination account on
// send, a source hash on receive, an epoch marker on epoch-upgrade, and
// ignored on pure change. It is stored as raw bytes; the engine interprets
// it once it has classified the block's subtype.
type Link [32]byte

func (l Link) AsAccount() primitives.Account {
	var a primitives.Account
	copy(a[:], l[:])
	return a
}

func (l Link) AsHash() primitives.BlockHash {
	var h primitives.BlockHash
	copy(h[:], l[:])
	return h
}

func (l Link) IsZero() bool { return l == Link{} }

// Block is a tagged sum over the five variants. Only the fields relevant
// to Kind are populated; callers branch on Kind, never on a type assertion.
//
// Signature and Work are part of the wire form but never the hashable
// tuple: HashableBytes never reads them.
type Block struct {
	Kind Kind

	// Legacy fields.
	Previous       primitives.BlockHash // send, receive, change, state
	Destination    primitives.Account   // send
	Balance        primitives.Amount    // send (balance-after-send), state (balance-after)
	Source         primitives.BlockHash // receive, open
	Representative primitives.Account   // open, change, state
	Account        primitives.Account   // open, state

	// Universal (state) fields.
	Link Link

	// Wire-only fields (never hashed).
	Signature primitives.Signature
	Work      primitives.Work
}

// Root returns the slot this block occupies for fork detection: previous
// for non-opens, account for opens. A state block with a zero Previous is
// itself an open (state-open), so it roots on Account exactly like a
// legacy open.
func (b *Block) Root() primitives.BlockHash {
	if b.Kind == KindOpen || (b.Kind == KindState && b.Previous.IsZero()) {
		var h primitives.BlockHash
		copy(h[:], b.Account[:])
		return h
	}
	return b.Previous
}

// IsOpen reports whether b is the first block on its chain.
func (b *Block) IsOpen() bool {
	return b.Kind == KindOpen || (b.Kind == KindState && b.Previous.IsZero())
}
