// Package oerrors defines the error taxonomy shared by every codec layer of
// osmpbf: varint, pbfproto, blockio, blobio and the public package's read
// path construct and propagate these types rather than ad-hoc errors, so
// that a caller can use errors.As against one of a small, closed set of
// kinds. The public package's write path returns output-file errors
// unwrapped.
package oerrors

import "fmt"

// IOError wraps an underlying file open/read/write/seek failure.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("osmpbf: io error during %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

func NewIOError(op string, err error) *IOError {
	return &IOError{Op: op, Err: err}
}

// UnexpectedEOFError reports a truncated varint, blob body or length prefix.
type UnexpectedEOFError struct {
	Context string
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("osmpbf: unexpected eof: %s", e.Context)
}

func NewUnexpectedEOFError(context string) *UnexpectedEOFError {
	return &UnexpectedEOFError{Context: context}
}

// MalformedError reports varint overflow, wire-type mismatch, an out-of-range
// enum value, a missing required field, invalid UTF-8, or a PrimitiveGroup
// that mixes element types.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string { return fmt.Sprintf("osmpbf: malformed: %s", e.Reason) }

func NewMalformedError(reason string) *MalformedError {
	return &MalformedError{Reason: reason}
}

// UnsupportedCompressionError reports a Blob payload variant other than raw
// or zlib_data.
type UnsupportedCompressionError struct {
	Variant string
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("osmpbf: unsupported blob compression: %s", e.Variant)
}

func NewUnsupportedCompressionError(variant string) *UnsupportedCompressionError {
	return &UnsupportedCompressionError{Variant: variant}
}

// UnsupportedFeatureError reports a required_features entry outside the
// reader's allow-list.
type UnsupportedFeatureError struct {
	Name string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("osmpbf: unsupported required feature: %s", e.Name)
}

func NewUnsupportedFeatureError(name string) *UnsupportedFeatureError {
	return &UnsupportedFeatureError{Name: name}
}

// OrderLostError reports an element seen by the ordering stage of the
// parallel writer below the current lower bound.
type OrderLostError struct {
	Reason string
}

func (e *OrderLostError) Error() string { return fmt.Sprintf("osmpbf: order lost: %s", e.Reason) }

func NewOrderLostError(reason string) *OrderLostError {
	return &OrderLostError{Reason: reason}
}

// PipelineAbortedError reports a stage failure that prevented the parallel
// writer pipeline from continuing.
type PipelineAbortedError struct {
	Stage string
	Err   error
}

func (e *PipelineAbortedError) Error() string {
	return fmt.Sprintf("osmpbf: pipeline aborted in %s stage: %v", e.Stage, e.Err)
}
func (e *PipelineAbortedError) Unwrap() error { return e.Err }

func NewPipelineAbortedError(stage string, err error) *PipelineAbortedError {
	return &PipelineAbortedError{Stage: stage, Err: err}
}
