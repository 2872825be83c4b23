package osmpbf

import (
	"io"

	"golang.org/x/xerrors"

	"github.com/navio-go/osmpbf/internal/blobio"
)

// Reader owns a file's parsed FileInfo and path. It opens fresh file
// handles on demand for each iterator or random-access read; it holds no
// long-lived file handle of its own.
type Reader struct {
	path string
	info FileInfo
}

// NewReader opens path, decodes its first blob as the OSMHeader, and
// validates every entry of its required_features against the supported set
// {OsmSchema-V0.6, DenseNodes, HistoricalInformation, Sort.Type_then_ID}.
func NewReader(path string) (*Reader, error) {
	stream, err := blobio.OpenStream(path)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	desc, err := stream.Next()
	if err != nil {
		if err == io.EOF {
			return nil, xerrors.Errorf("open %s: %w", path, NewMalformedError("file contains no blobs"))
		}
		return nil, err
	}
	if desc.Type != BlockHeader {
		return nil, NewMalformedError("first blob is not OSMHeader")
	}

	body, err := readBlobBody(desc)
	if err != nil {
		return nil, xerrors.Errorf("decode header blob: %w", err)
	}
	info, err := decodeHeaderBlob(body)
	if err != nil {
		return nil, xerrors.Errorf("decode header block: %w", err)
	}
	for _, f := range info.RequiredFeatures {
		if !supportedRequiredFeatures[f] {
			return nil, NewUnsupportedFeatureError(f)
		}
	}

	return &Reader{path: path, info: info}, nil
}

// Info returns the file's parsed header.
func (r *Reader) Info() FileInfo { return r.info }

func readBlobBody(desc BlobDescriptor) ([]byte, error) {
	raw, err := blobio.ReadBodyAt(desc)
	if err != nil {
		return nil, err
	}
	return blobio.DecodeBlob(raw)
}

// BlobIterator is a finite, forward-only sequence of BlobDescriptors.
// Restart it by calling Reader.Blobs again.
type BlobIterator struct {
	stream *blobio.Stream
}

// Blobs returns a fresh sequence of BlobDescriptors over the file,
// including the header as its first element.
func (r *Reader) Blobs() (*BlobIterator, error) {
	stream, err := blobio.OpenStream(r.path)
	if err != nil {
		return nil, err
	}
	return &BlobIterator{stream: stream}, nil
}

// Next returns the next descriptor, or io.EOF when exhausted.
func (it *BlobIterator) Next() (BlobDescriptor, error) {
	return it.stream.Next()
}

// Close releases the iterator's file handle.
func (it *BlobIterator) Close() error { return it.stream.Close() }

// BlockIterator wraps a BlobIterator, eagerly reading and decompressing
// each blob's body and decoding it into a FileBlock.
type BlockIterator struct {
	blobs *BlobIterator
}

// Blocks returns a fresh sequence of FileBlocks over the file.
func (r *Reader) Blocks() (*BlockIterator, error) {
	blobs, err := r.Blobs()
	if err != nil {
		return nil, err
	}
	return &BlockIterator{blobs: blobs}, nil
}

// Next returns the next FileBlock, or io.EOF when exhausted.
func (it *BlockIterator) Next() (FileBlock, error) {
	desc, err := it.blobs.Next()
	if err != nil {
		return FileBlock{}, err
	}
	body, err := readBlobBody(desc)
	if err != nil {
		return FileBlock{}, err
	}
	meta := FileBlockMetadata{Type: desc.Type, Index: desc.Index}
	if desc.Type == BlockHeader {
		info, err := decodeHeaderBlob(body)
		if err != nil {
			return FileBlock{}, err
		}
		return FileBlock{Metadata: meta, Header: &info}, nil
	}
	elements, err := decodeDataBlob(body)
	if err != nil {
		return FileBlock{}, err
	}
	return FileBlock{Metadata: meta, Data: &OsmData{Index: desc.Index, Elements: elements}}, nil
}

// Close releases the iterator's file handle.
func (it *BlockIterator) Close() error { return it.blobs.Close() }

// ElementIterator wraps a BlockIterator, discarding the header block and
// flattening each data block's elements into a single sequence.
type ElementIterator struct {
	blocks  *BlockIterator
	pending []Element
	pos     int
}

// Elements returns a fresh sequence of Elements over the file, with the
// header filtered out.
func (r *Reader) Elements() (*ElementIterator, error) {
	blocks, err := r.Blocks()
	if err != nil {
		return nil, err
	}
	first, err := blocks.Next()
	if err != nil {
		return nil, err
	}
	if first.Header == nil {
		return nil, NewMalformedError("first block is not a header block")
	}
	return &ElementIterator{blocks: blocks}, nil
}

// Next returns the next Element, or io.EOF when exhausted.
func (it *ElementIterator) Next() (Element, error) {
	for it.pos >= len(it.pending) {
		block, err := it.blocks.Next()
		if err != nil {
			return Element{}, err
		}
		if block.Data == nil {
			continue
		}
		it.pending = block.Data.Elements
		it.pos = 0
	}
	e := it.pending[it.pos]
	it.pos++
	return e, nil
}

// Close releases the iterator's file handle.
func (it *ElementIterator) Close() error { return it.blocks.Close() }
