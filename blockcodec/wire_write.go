package blockcodec

// WriteBlock serializes b to its wire form: a one-byte Kind tag, the
// hashable fields in canonical order, the 64-byte signature, and the
// 8-byte little-endian work value.
func WriteBlock(b *Block) ([]byte, error) {
	hashable, err := b.HashableBytes()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+len(hashable)+64+8)
	out = append(out, byte(b.Kind))
	out = append(out, hashable...)
	out = append(out, b.Signature[:]...)
	out = AppendU64le(out, uint64(b.Work))
	return out, nil
}
