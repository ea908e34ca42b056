package blockcodec

import "lattice.dev/ledger/primitives"

// ParseBlock decodes the wire form produced by WriteBlock: a one-byte Kind
// tag, the variant's fields in canonical order, a 64-byte signature, and an
// 8-byte little-endian work value. It rejects trailing bytes.
func ParseBlock(b []byte) (*Block, error) {
	off := 0
	tag, err := readU8(b, &off)
	if err != nil {
		return nil, err
	}
	blk := &Block{Kind: Kind(tag)}

	switch blk.Kind {
	case KindSend:
		if err := readInto(b, &off, blk.Previous[:]); err != nil {
			return nil, err
		}
		if err := readInto(b, &off, blk.Destination[:]); err != nil {
			return nil, err
		}
		if err := readAmount(b, &off, &blk.Balance); err != nil {
			return nil, err
		}
	case KindReceive:
		if err := readInto(b, &off, blk.Previous[:]); err != nil {
			return nil, err
		}
		if err := readInto(b, &off, blk.Source[:]); err != nil {
			return nil, err
		}
	case KindOpen:
		if err := readInto(b, &off, blk.Source[:]); err != nil {
			return nil, err
		}
		if err := readInto(b, &off, blk.Representative[:]); err != nil {
			return nil, err
		}
		if err := readInto(b, &off, blk.Account[:]); err != nil {
			return nil, err
		}
	case KindChange:
		if err := readInto(b, &off, blk.Previous[:]); err != nil {
			return nil, err
		}
		if err := readInto(b, &off, blk.Representative[:]); err != nil {
			return nil, err
		}
	case KindState:
		if err := readInto(b, &off, blk.Account[:]); err != nil {
			return nil, err
		}
		if err := readInto(b, &off, blk.Previous[:]); err != nil {
			return nil, err
		}
		if err := readInto(b, &off, blk.Representative[:]); err != nil {
			return nil, err
		}
		if err := readAmount(b, &off, &blk.Balance); err != nil {
			return nil, err
		}
		if err := readInto(b, &off, blk.Link[:]); err != nil {
			return nil, err
		}
	default:
		return nil, parseErr(ErrCodeUnknownKind, "unknown block kind tag")
	}

	if err := readInto(b, &off, blk.Signature[:]); err != nil {
		return nil, err
	}
	work, err := readU64le(b, &off)
	if err != nil {
		return nil, err
	}
	blk.Work = primitives.Work(work)

	if off != len(b) {
		return nil, parseErr(ErrCodeTrailingData, "trailing bytes after block")
	}
	return blk, nil
}

func readInto(b []byte, off *int, dst []byte) error {
	raw, err := readBytes(b, off, len(dst))
	if err != nil {
		return err
	}
	copy(dst, raw)
	return nil
}

func readAmount(b []byte, off *int, dst *primitives.Amount) error {
	raw, err := readBytes(b, off, 16)
	if err != nil {
		return err
	}
	v, err := primitives.Uint128FromBytes(raw)
	if err != nil {
		return parseErr(ErrCodeTruncated, err.Error())
	}
	*dst = v
	return nil
}
