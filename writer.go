package osmpbf

import (
	"github.com/google/renameio"
)

// defaultBlockSize is the number of elements the Writer batches into one
// PrimitiveBlock before flushing, matching the reference encoder's default.
const defaultBlockSize = 8000

// Writer serializes a sequence of Elements to a PBF file, enforcing the
// container's type order: once a Way has been written, no further Node may
// be written, and once a Relation has been written, no further Node or Way
// may be written. Ids are not checked as they arrive; a node block whose
// ids are not strictly ascending fails when it is flushed. Within one Writer.WriteElement
// sequence it does not itself sort; callers that cannot guarantee order
// must presort, or use ParallelWriter, which restores order internally.
type Writer struct {
	f           *renameio.PendingFile
	compression CompressionType
	blockSize   int

	pending  []Element
	lastKind ElementKind
	haveLast bool

	closed bool
}

// NewWriter creates path (atomically on Close) and writes info as the
// file's OSMHeader block.
func NewWriter(path string, info FileInfo, compression CompressionType) (*Writer, error) {
	f, err := renameio.TempFile("", path)
	if err != nil {
		return nil, err
	}

	if info.RequiredFeatures == nil {
		info.RequiredFeatures = defaultRequiredFeatures(info)
	}
	if info.OptionalFeatures == nil {
		info.OptionalFeatures = defaultOptionalFeatures()
	}

	w := &Writer{f: f, compression: compression, blockSize: defaultBlockSize}
	if err := w.writeHeader(info); err != nil {
		f.Cleanup()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeHeader(info FileInfo) error {
	header, blob, err := encodeHeaderBlob(info)
	if err != nil {
		return err
	}
	return writeFramedBlob(w.f, header, blob)
}

// WriteElement appends e to the pending block, flushing automatically when
// the block reaches its target size or when e's kind differs from the
// pending block's kind. It returns MalformedError if e would regress the
// type order (e.g. a Node after a Way has already been written).
func (w *Writer) WriteElement(e Element) error {
	if w.haveLast && e.Kind < w.lastKind {
		return NewMalformedError("element written out of type order")
	}
	if w.haveLast && e.Kind != w.lastKind && len(w.pending) > 0 {
		if err := w.flush(); err != nil {
			return err
		}
	}
	w.pending = append(w.pending, e)
	w.lastKind = e.Kind
	w.haveLast = true
	if len(w.pending) >= w.blockSize {
		return w.flush()
	}
	return nil
}

// WriteElements writes each element of es in order via WriteElement.
func (w *Writer) WriteElements(es []Element) error {
	for _, e := range es {
		if err := w.WriteElement(e); err != nil {
			return err
		}
	}
	return nil
}

// Write appends a pre-built FileBlock's data directly as one blob, after
// flushing any pending elements, bypassing the Writer's own batching. It
// returns MalformedError if the block's kind would regress the type order.
// The header block, if any, is ignored: a Writer's header is fixed at
// construction.
func (w *Writer) Write(block FileBlock) error {
	if block.Data == nil {
		return nil
	}
	var kind ElementKind
	if len(block.Data.Elements) > 0 {
		kind = block.Data.Elements[0].Kind
		if w.haveLast && kind < w.lastKind {
			return NewMalformedError("block written out of type order")
		}
	}
	if err := w.flush(); err != nil {
		return err
	}
	header, blob, err := encodeDataBlob(block.Data.Elements, w.compression)
	if err != nil {
		return err
	}
	if err := writeFramedBlob(w.f, header, blob); err != nil {
		return err
	}
	w.lastKind = kind
	w.haveLast = true
	return nil
}

func (w *Writer) flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	header, blob, err := encodeDataBlob(w.pending, w.compression)
	if err != nil {
		return err
	}
	if err := writeFramedBlob(w.f, header, blob); err != nil {
		return err
	}
	w.pending = w.pending[:0]
	return nil
}

// Close flushes any pending elements and atomically replaces the
// destination path with the completed file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.flush(); err != nil {
		w.f.Cleanup()
		return err
	}
	return w.f.CloseAtomicallyReplace()
}
