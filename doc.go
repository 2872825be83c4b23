// Package osmpbf implements a streaming reader and writer for the
// OpenStreetMap PBF container format, plus a parallel encode/write
// pipeline that preserves the format's on-disk element ordering (type,
// then id) while compressing blocks concurrently.
//
// A Reader parses a file's header into a FileInfo and exposes sequential
// iteration over blobs, blocks and elements, as well as a parallel element
// driver and a shared blob iterator for fork-join consumers such as
// CalculateBoundingBox. A Writer
// appends elements to an output file in canonical order; a ParallelWriter
// accepts elements in any order and re-imposes canonical order through a
// three-stage order/encode/write pipeline.
package osmpbf
