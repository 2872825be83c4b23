package osmpbf

import "github.com/navio-go/osmpbf/internal/model"

// Coordinate is a latitude/longitude pair in double-precision degrees.
type Coordinate = model.Coordinate

// Tag is a single (key, value) pair of UTF-8 strings.
type Tag = model.Tag

// BoundingBox bounds a set of coordinates: left/right are longitude,
// bottom/top are latitude, all in degrees.
type BoundingBox = model.BoundingBox

// Info carries the changeset/version/author metadata common to Node, Way
// and Relation.
type Info = model.Info

// MemberType discriminates a Relation Member's referenced kind.
type MemberType = model.MemberType

const (
	MemberNode     = model.MemberNode
	MemberWay      = model.MemberWay
	MemberRelation = model.MemberRelation
)

// Member is one entry of a Relation.
type Member = model.Member

// CompressionType selects how a written block's blob payload is stored.
type CompressionType = model.CompressionType

const (
	Uncompressed = model.Uncompressed
	Zlib         = model.Zlib
)

// BlockType discriminates a blob's declared type string.
type BlockType = model.BlockType

const (
	BlockHeader = model.BlockHeader
	BlockData   = model.BlockData
)
