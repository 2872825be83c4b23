// Package model holds the value types shared across every osmpbf codec
// layer: the element data model, the compression and member-type enums, and
// the blob/block metadata types. It sits below the root package so that
// internal/blockio and internal/blobio can share these types with the
// public API without an import cycle; package osmpbf re-exports them as
// type aliases.
package model

// Coordinate is a latitude/longitude pair in double-precision degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Tag is a single (key, value) pair. No uniqueness constraint is implied.
type Tag struct {
	Key   string
	Value string
}

// BoundingBox bounds a set of coordinates. Left/right are longitude,
// bottom/top are latitude, all in degrees.
type BoundingBox struct {
	Left   float64
	Bottom float64
	Right  float64
	Top    float64
}

// ExpandPoint widens b, if necessary, to contain c.
func (b BoundingBox) ExpandPoint(c Coordinate) BoundingBox {
	out := b
	if c.Lon < out.Left {
		out.Left = c.Lon
	}
	if c.Lon > out.Right {
		out.Right = c.Lon
	}
	if c.Lat < out.Bottom {
		out.Bottom = c.Lat
	}
	if c.Lat > out.Top {
		out.Top = c.Lat
	}
	return out
}

// ExpandBox widens b to contain other.
func (b BoundingBox) ExpandBox(other BoundingBox) BoundingBox {
	out := b
	if other.Left < out.Left {
		out.Left = other.Left
	}
	if other.Right > out.Right {
		out.Right = other.Right
	}
	if other.Bottom < out.Bottom {
		out.Bottom = other.Bottom
	}
	if other.Top > out.Top {
		out.Top = other.Top
	}
	return out
}

// MemberType discriminates a Relation Member's referenced kind.
type MemberType int32

const (
	MemberNode MemberType = iota
	MemberWay
	MemberRelation
)

// Member is one entry of a Relation: a reference to a peer entity plus its
// role within the relation. Resolution of Ref to an actual entity is a
// caller concern; the model never holds a direct handle.
type Member struct {
	Ref  int64
	Type MemberType
	Role string
}

// Info carries the metadata common to Node, Way and Relation: the OSM
// changeset/version/author bookkeeping fields that ride alongside the
// element's own data.
type Info struct {
	Version   int32 // -1 when unknown
	Timestamp int64 // epoch milliseconds
	Changeset int64
	UID       int32
	User      string
	Visible   bool
}

// Node is a single OSM node: a coordinate plus tags.
type Node struct {
	ID    int64
	Info  Info
	Coord Coordinate
	Tags  []Tag
}

// Way is an ordered sequence of node id references plus tags. References are
// not resolved to Nodes.
type Way struct {
	ID   int64
	Info Info
	Refs []int64
	Tags []Tag
}

// Relation is an ordered sequence of Members plus tags.
type Relation struct {
	ID      int64
	Info    Info
	Members []Member
	Tags    []Tag
}

// ElementKind discriminates the variant held by an Element.
type ElementKind int

const (
	KindNode ElementKind = iota
	KindWay
	KindRelation
	KindSentinel
)

// Element is the tagged union {Node, Way, Relation, Sentinel}. Sentinel is
// an internal boundary marker emitted by the parallel driver at the end of
// each blob's elements; it is never serialised and must be filtered by any
// caller that feeds a writer.
type Element struct {
	Kind     ElementKind
	Node     Node
	Way      Way
	Relation Relation
}

// NewNodeElement wraps n as an Element.
func NewNodeElement(n Node) Element { return Element{Kind: KindNode, Node: n} }

// NewWayElement wraps w as an Element.
func NewWayElement(w Way) Element { return Element{Kind: KindWay, Way: w} }

// NewRelationElement wraps r as an Element.
func NewRelationElement(r Relation) Element { return Element{Kind: KindRelation, Relation: r} }

// SentinelElement is the shared Sentinel value.
var SentinelElement = Element{Kind: KindSentinel}

// ID returns the element's id. Sentinel has no id and returns 0.
func (e Element) ID() int64 {
	switch e.Kind {
	case KindNode:
		return e.Node.ID
	case KindWay:
		return e.Way.ID
	case KindRelation:
		return e.Relation.ID
	default:
		return 0
	}
}

// Less orders elements by (kind, id): Node < Way < Relation, then ascending
// id. Sentinel compares distinctly (greater than every real element) and
// must never reach this comparison in output.
func (e Element) Less(other Element) bool {
	if e.Kind != other.Kind {
		return e.Kind < other.Kind
	}
	return e.ID() < other.ID()
}

// Compare returns -1, 0 or 1 per the Less ordering, for sort.Slice-adjacent
// call sites that want a three-way comparator.
func (e Element) Compare(other Element) int {
	if e.Kind != other.Kind {
		if e.Kind < other.Kind {
			return -1
		}
		return 1
	}
	a, b := e.ID(), other.ID()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// FileInfo is the parsed contents of the OSMHeader block.
type FileInfo struct {
	BoundingBox                    *BoundingBox
	RequiredFeatures                []string
	OptionalFeatures                []string
	WritingProgram                  string
	Source                          string
	OsmosisReplicationTimestamp     int64
	HasOsmosisReplicationTimestamp  bool
	OsmosisReplicationSequence      int64
	HasOsmosisReplicationSequence   bool
	OsmosisReplicationBaseURL       string

	// HasHistory is a derived field, not stored on disk: set when
	// RequiredFeatures contains HistoricalInformation. Writer and
	// ParallelWriter consult it to decide the default required-feature set.
	HasHistory bool
}

// CompressionType selects how a block codec's output blob payload is stored.
type CompressionType int

const (
	Uncompressed CompressionType = iota
	Zlib
)

// BlockType discriminates a blob's declared type string.
type BlockType int

const (
	BlockHeader BlockType = iota
	BlockData
)

func (t BlockType) String() string {
	if t == BlockHeader {
		return "OSMHeader"
	}
	return "OSMData"
}

// BlobDescriptor locates one blob body within a file without having read it.
type BlobDescriptor struct {
	Path   string
	Index  int
	Offset int64
	Length int64
	Type   BlockType
}

// FileBlockMetadata carries a blob's type and index, independent of payload.
type FileBlockMetadata struct {
	Type  BlockType
	Index int
}

// OsmData is the decoded payload of one data blob: its index plus the
// Elements derived from the PrimitiveBlock.
type OsmData struct {
	Index    int
	Elements []Element
}

// FileBlock is the tagged union {Header(metadata, FileInfo), Data(metadata,
// OsmData)} produced by the file block iterator.
type FileBlock struct {
	Metadata FileBlockMetadata
	Header   *FileInfo
	Data     *OsmData
}
