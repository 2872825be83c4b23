package blobio

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/navio-go/osmpbf/internal/model"
	"github.com/navio-go/osmpbf/internal/oerrors"
	"github.com/navio-go/osmpbf/internal/pbfproto"
)

const maxBlobHeaderLen = 64 * 1024

// Stream is a lazy, finite, forward-only sequence of BlobDescriptors over a
// file. It seeks past each blob body rather than reading it; bodies are
// read on demand via ReadBodyAt.
type Stream struct {
	f     *os.File
	path  string
	index int
}

// OpenStream opens path for sequential blob-descriptor scanning.
func OpenStream(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oerrors.NewIOError("open", err)
	}
	return &Stream{f: f, path: path}, nil
}

// Close releases the underlying file handle.
func (s *Stream) Close() error {
	return s.f.Close()
}

// Next reads the next blob header and returns its descriptor, advancing the
// file cursor past the blob body without reading it. Returns io.EOF when
// the stream is exhausted at a blob boundary.
func (s *Stream) Next() (model.BlobDescriptor, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(s.f, lenBuf[:]); err != nil {
		if err == io.EOF {
			return model.BlobDescriptor{}, io.EOF
		}
		return model.BlobDescriptor{}, oerrors.NewUnexpectedEOFError("truncated blob header length prefix")
	}
	n := int32(binary.BigEndian.Uint32(lenBuf[:]))
	if n <= 0 || n > maxBlobHeaderLen {
		return model.BlobDescriptor{}, oerrors.NewMalformedError("blob header length out of range")
	}

	headerBuf := make([]byte, n)
	if _, err := io.ReadFull(s.f, headerBuf); err != nil {
		return model.BlobDescriptor{}, oerrors.NewUnexpectedEOFError("truncated blob header")
	}
	header, err := pbfproto.UnmarshalBlobHeader(headerBuf)
	if err != nil {
		return model.BlobDescriptor{}, err
	}

	offset, err := s.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return model.BlobDescriptor{}, oerrors.NewIOError("seek", err)
	}

	blockType := model.BlockData
	if header.Type == "OSMHeader" {
		blockType = model.BlockHeader
	}
	desc := model.BlobDescriptor{
		Path:   s.path,
		Index:  s.index,
		Offset: offset,
		Length: int64(header.DataSize),
		Type:   blockType,
	}
	s.index++

	if _, err := s.f.Seek(int64(header.DataSize), io.SeekCurrent); err != nil {
		return model.BlobDescriptor{}, oerrors.NewIOError("seek", err)
	}
	return desc, nil
}

// ReadBodyAt opens a fresh handle on desc.Path and reads exactly desc.Length
// bytes starting at desc.Offset, supporting random access independent of
// any open Stream.
func ReadBodyAt(desc model.BlobDescriptor) ([]byte, error) {
	f, err := os.Open(desc.Path)
	if err != nil {
		return nil, oerrors.NewIOError("open", err)
	}
	defer f.Close()
	if _, err := f.Seek(desc.Offset, io.SeekStart); err != nil {
		return nil, oerrors.NewIOError("seek", err)
	}
	buf := make([]byte, desc.Length)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, oerrors.NewUnexpectedEOFError("truncated blob body")
	}
	return buf, nil
}
