// Package pbfproto is a hand-rolled encoder/decoder for the fixed set of
// protobuf messages the OSM PBF container format uses (BlobHeader, Blob,
// HeaderBlock, HeaderBBox, PrimitiveBlock, PrimitiveGroup, StringTable,
// Info, DenseInfo, Node, DenseNodes, Way, Relation). It does not use a
// generated-protobuf dependency: the message set is small and fixed, and
// the spec this package implements treats the codec as a from-scratch
// component rather than a wrapper around .proto-generated types.
package pbfproto

import (
	"unicode/utf8"

	"github.com/navio-go/osmpbf/internal/oerrors"
	"github.com/navio-go/osmpbf/internal/varint"
)

type wireType uint8

const (
	wireVarint  wireType = 0
	wireFixed64 wireType = 1
	wireBytes   wireType = 2
	wireFixed32 wireType = 5
)

func tag(fieldNum int, wt wireType) uint64 {
	return uint64(fieldNum)<<3 | uint64(wt)
}

func appendTag(buf []byte, fieldNum int, wt wireType) []byte {
	return varint.AppendUvarint(buf, tag(fieldNum, wt))
}

func appendVarintField(buf []byte, fieldNum int, v uint64) []byte {
	buf = appendTag(buf, fieldNum, wireVarint)
	return varint.AppendUvarint(buf, v)
}

func appendZigZagField(buf []byte, fieldNum int, v int64) []byte {
	buf = appendTag(buf, fieldNum, wireVarint)
	return varint.AppendVarint(buf, v)
}

func appendBytesField(buf []byte, fieldNum int, v []byte) []byte {
	buf = appendTag(buf, fieldNum, wireBytes)
	buf = varint.AppendUvarint(buf, uint64(len(v)))
	return append(buf, v...)
}

func appendStringField(buf []byte, fieldNum int, v string) []byte {
	return appendBytesField(buf, fieldNum, []byte(v))
}

// reader is a cursor over an encoded message's bytes.
type reader struct {
	buf []byte
	off int
}

func newReader(buf []byte) *reader { return &reader{buf: buf} }

func (r *reader) done() bool { return r.off >= len(r.buf) }

func (r *reader) readTag() (fieldNum int, wt wireType, err error) {
	u, n, err := varint.ReadUvarint(r.buf, r.off)
	if err != nil {
		return 0, 0, err
	}
	r.off += n
	return int(u >> 3), wireType(u & 0x7), nil
}

func (r *reader) readUvarint() (uint64, error) {
	u, n, err := varint.ReadUvarint(r.buf, r.off)
	if err != nil {
		return 0, err
	}
	r.off += n
	return u, nil
}

func (r *reader) readVarint() (int64, error) {
	v, n, err := varint.ReadVarint(r.buf, r.off)
	if err != nil {
		return 0, err
	}
	r.off += n
	return v, nil
}

func (r *reader) readBytes() ([]byte, error) {
	n, err := r.readUvarint()
	if err != nil {
		return nil, err
	}
	if r.off+int(n) > len(r.buf) {
		return nil, oerrors.NewUnexpectedEOFError("truncated length-delimited field")
	}
	out := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	return out, nil
}

func (r *reader) readString() (string, error) {
	b, err := r.readBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", oerrors.NewMalformedError("string field is not valid UTF-8")
	}
	return string(b), nil
}

func (r *reader) readFixed32() (uint32, error) {
	if r.off+4 > len(r.buf) {
		return 0, oerrors.NewUnexpectedEOFError("truncated fixed32 field")
	}
	v := uint32(r.buf[r.off]) | uint32(r.buf[r.off+1])<<8 | uint32(r.buf[r.off+2])<<16 | uint32(r.buf[r.off+3])<<24
	r.off += 4
	return v, nil
}

func (r *reader) readFixed64() (uint64, error) {
	if r.off+8 > len(r.buf) {
		return 0, oerrors.NewUnexpectedEOFError("truncated fixed64 field")
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(r.buf[r.off+i]) << (8 * i)
	}
	r.off += 8
	return v, nil
}

// skip discards a field's payload given its wire type, used for unknown
// field numbers.
func (r *reader) skip(wt wireType) error {
	switch wt {
	case wireVarint:
		_, err := r.readUvarint()
		return err
	case wireFixed64:
		_, err := r.readFixed64()
		return err
	case wireBytes:
		_, err := r.readBytes()
		return err
	case wireFixed32:
		_, err := r.readFixed32()
		return err
	default:
		return oerrors.NewMalformedError("unsupported wire type")
	}
}

// packedUvarints reads a length-delimited field whose payload is a
// concatenation of varints (a "packed repeated" field).
func (r *reader) packedUvarints() ([]uint64, error) {
	b, err := r.readBytes()
	if err != nil {
		return nil, err
	}
	var out []uint64
	off := 0
	for off < len(b) {
		u, n, err := varint.ReadUvarint(b, off)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
		off += n
	}
	return out, nil
}

func (r *reader) packedVarints() ([]int64, error) {
	us, err := r.packedUvarints()
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(us))
	for i, u := range us {
		out[i] = varint.ZigZagDecode(u)
	}
	return out, nil
}
