// Package blobio implements the blob envelope (PrimitiveBlock/HeaderBlock
// bytes wrapped in zlib-or-raw Blob messages) and the length-prefixed blob
// stream reader that scans a PBF file's framing without eagerly decoding
// bodies.
package blobio

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/navio-go/osmpbf/internal/model"
	"github.com/navio-go/osmpbf/internal/oerrors"
	"github.com/navio-go/osmpbf/internal/pbfproto"
)

// EncodeBlob wraps body (a marshalled PrimitiveBlock or HeaderBlock) in a
// Blob message per compression, then in its preceding BlobHeader, returning
// both as bytes ready to be length-prefixed onto a file.
func EncodeBlob(blockType model.BlockType, body []byte, compression model.CompressionType) (headerBytes, blobBytes []byte, err error) {
	blob := &pbfproto.Blob{}
	switch compression {
	case model.Uncompressed:
		blob.Raw = body
	case model.Zlib:
		var buf bytes.Buffer
		w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, nil, oerrors.NewIOError("zlib writer init", err)
		}
		if _, err := w.Write(body); err != nil {
			return nil, nil, oerrors.NewIOError("zlib compress", err)
		}
		if err := w.Close(); err != nil {
			return nil, nil, oerrors.NewIOError("zlib compress", err)
		}
		blob.ZlibData = buf.Bytes()
		blob.HasRawSize = true
		blob.RawSize = int32(len(body))
	default:
		return nil, nil, oerrors.NewMalformedError("unknown compression type")
	}

	blobBytes = blob.Marshal()
	header := &pbfproto.BlobHeader{
		Type:     blockType.String(),
		DataSize: int32(len(blobBytes)),
	}
	return header.Marshal(), blobBytes, nil
}

// DecodeBlob unwraps a Blob message's bytes back to the original
// PrimitiveBlock/HeaderBlock payload. Only raw and zlib_data variants are
// supported; every other populated variant is rejected with
// UnsupportedCompressionError.
func DecodeBlob(blobBytes []byte) ([]byte, error) {
	blob, err := pbfproto.UnmarshalBlob(blobBytes)
	if err != nil {
		return nil, err
	}
	switch {
	case blob.Raw != nil:
		return blob.Raw, nil
	case blob.ZlibData != nil:
		r, err := zlib.NewReader(bytes.NewReader(blob.ZlibData))
		if err != nil {
			return nil, oerrors.NewMalformedError("invalid zlib stream: " + err.Error())
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, oerrors.NewIOError("zlib decompress", err)
		}
		if blob.HasRawSize && len(out) != int(blob.RawSize) {
			return nil, oerrors.NewMalformedError("blob raw_size does not match decompressed length")
		}
		return out, nil
	case blob.HasLzmaData:
		return nil, oerrors.NewUnsupportedCompressionError("lzma_data")
	case blob.HasOBSData:
		return nil, oerrors.NewUnsupportedCompressionError("OBSOLETE_bzip2_data")
	case blob.HasLz4Data:
		return nil, oerrors.NewUnsupportedCompressionError("lz4_data")
	case blob.HasZstdData:
		return nil, oerrors.NewUnsupportedCompressionError("zstd_data")
	default:
		return nil, oerrors.NewMalformedError("blob has no populated data variant")
	}
}
