package blockcodec

import "encoding/binary"

// Shared cursor-based read/write helpers for the block wire format.

func readU8(b []byte, off *int) (uint8, error) {
	if *off+1 > len(b) {
		return 0, parseErr(ErrCodeTruncated, "unexpected EOF (u8)")
	}
	v := b[*off]
	*off++
	return v, nil
}

func readU64le(b []byte, off *int) (uint64, error) {
	if *off+8 > len(b) {
		return 0, parseErr(ErrCodeTruncated, "unexpected EOF (u64le)")
	}
	v := binary.LittleEndian.Uint64(b[*off : *off+8])
	*off += 8
	return v, nil
}

func readBytes(b []byte, off *int, n int) ([]byte, error) {
	if n < 0 {
		return nil, parseErr(ErrCodeTruncated, "negative length")
	}
	if *off+n > len(b) {
		return nil, parseErr(ErrCodeTruncated, "unexpected EOF (bytes)")
	}
	v := b[*off : *off+n]
	*off += n
	return v, nil
}

// AppendU64le appends v as an 8-byte little-endian value to dst.
func AppendU64le(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}
