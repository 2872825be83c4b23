package osmpbf

import "github.com/navio-go/osmpbf/internal/oerrors"

// The error taxonomy below mirrors the container's failure modes one for
// one. Decoders and readers construct one of these (never a bare
// fmt.Errorf) so that callers can discriminate with errors.As. Errors from
// creating, writing or committing an output file, and context cancellation
// inside ParallelWriter, are returned as the underlying error, not wrapped
// in IOError; nothing in this module currently returns PipelineAbortedError.
type (
	// IOError wraps an underlying file open/read/write/seek failure.
	IOError = oerrors.IOError
	// UnexpectedEOFError reports a truncated varint, blob body, or length
	// prefix.
	UnexpectedEOFError = oerrors.UnexpectedEOFError
	// MalformedError reports a structurally invalid message: varint
	// overflow, wire-type mismatch, an out-of-range enum, a missing
	// required field, or a PrimitiveGroup mixing element types.
	MalformedError = oerrors.MalformedError
	// UnsupportedCompressionError reports a Blob payload variant other
	// than raw or zlib_data.
	UnsupportedCompressionError = oerrors.UnsupportedCompressionError
	// UnsupportedFeatureError reports a required_features entry outside
	// the reader's allow-list.
	UnsupportedFeatureError = oerrors.UnsupportedFeatureError
	// OrderLostError reports an element the parallel writer's ordering
	// stage saw below its current lower bound.
	OrderLostError = oerrors.OrderLostError
	// PipelineAbortedError reports a stage failure that stopped the
	// parallel writer pipeline from continuing.
	PipelineAbortedError = oerrors.PipelineAbortedError
)

// Constructors mirror internal/oerrors one for one so callers outside this
// module never need to reach into internal/.
var (
	NewIOError                     = oerrors.NewIOError
	NewUnexpectedEOFError          = oerrors.NewUnexpectedEOFError
	NewMalformedError              = oerrors.NewMalformedError
	NewUnsupportedCompressionError = oerrors.NewUnsupportedCompressionError
	NewUnsupportedFeatureError     = oerrors.NewUnsupportedFeatureError
	NewOrderLostError              = oerrors.NewOrderLostError
	NewPipelineAbortedError        = oerrors.NewPipelineAbortedError
)
