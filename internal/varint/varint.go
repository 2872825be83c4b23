// Package varint implements the protobuf-style varint and zigzag integer
// codecs that every higher layer of osmpbf builds on: 7-bit little-endian
// groups with the high bit as a continuation flag, and zigzag mapping for
// signed values.
package varint

import (
	"github.com/navio-go/osmpbf/internal/oerrors"
)

// maxVarintBytes bounds a valid varint: 10 groups cover a full 64-bit value
// with the usual protobuf encoding; an 11th continuation byte is malformed.
const maxVarintBytes = 10

// ReadUvarint decodes an unsigned varint from buf starting at off and
// returns the value, the number of bytes consumed, and an error.
func ReadUvarint(buf []byte, off int) (uint64, int, error) {
	var x uint64
	var s uint
	for i := 0; i < maxVarintBytes; i++ {
		if off+i >= len(buf) {
			return 0, 0, oerrors.NewUnexpectedEOFError("truncated varint")
		}
		b := buf[off+i]
		if b < 0x80 {
			if i == maxVarintBytes-1 && b > 1 {
				return 0, 0, oerrors.NewMalformedError("varint overflow")
			}
			x |= uint64(b) << s
			return x, i + 1, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, 0, oerrors.NewMalformedError("varint overflow")
}

// AppendUvarint appends the varint encoding of v to buf and returns the
// extended slice.
func AppendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// ZigZagEncode maps a signed value to an unsigned one so that small-magnitude
// values of either sign occupy few varint bytes: n -> (n<<1) ^ (n>>63).
func ZigZagEncode(n int64) uint64 {
	return (uint64(n) << 1) ^ uint64(n>>63)
}

// ZigZagDecode inverts ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// ReadVarint decodes a zigzag-encoded signed varint.
func ReadVarint(buf []byte, off int) (int64, int, error) {
	u, n, err := ReadUvarint(buf, off)
	if err != nil {
		return 0, 0, err
	}
	return ZigZagDecode(u), n, nil
}

// AppendVarint appends the zigzag varint encoding of v to buf.
func AppendVarint(buf []byte, v int64) []byte {
	return AppendUvarint(buf, ZigZagEncode(v))
}
