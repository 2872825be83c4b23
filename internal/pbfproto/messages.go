package pbfproto

// MemberType mirrors Relation.MemberType: 0=Node, 1=Way, 2=Relation. Any
// other decoded value is a hard Malformed error.
type MemberType int32

const (
	MemberTypeNode     MemberType = 0
	MemberTypeWay      MemberType = 1
	MemberTypeRelation MemberType = 2
)

// BlobHeader is the small fixed message preceding every Blob in the file.
type BlobHeader struct {
	Type      string
	IndexData []byte
	DataSize  int32
}

// Blob holds exactly one populated payload variant. Unpopulated fields are
// nil/zero; Has* predicates distinguish "absent" from "present and zero".
type Blob struct {
	Raw        []byte
	HasRawSize bool
	RawSize    int32
	ZlibData   []byte
	// LzmaData, OBSDeprecated, Lz4Data, ZstdData are accepted on the wire
	// only to be recognised and rejected; their bytes are not retained.
	HasLzmaData  bool
	HasOBSData   bool
	HasLz4Data   bool
	HasZstdData  bool
}

// HeaderBBox is HeaderBlock's optional bounding box, all fields scaled by
// 1e9 (nanodegrees).
type HeaderBBox struct {
	Left   int64
	Right  int64
	Top    int64
	Bottom int64
}

// HeaderBlock is the decoded payload of the file's one OSMHeader blob.
type HeaderBlock struct {
	BBox                               *HeaderBBox
	RequiredFeatures                   []string
	OptionalFeatures                   []string
	WritingProgram                     string
	HasWritingProgram                  bool
	Source                             string
	HasSource                          bool
	OsmosisReplicationTimestamp        int64
	HasOsmosisReplicationTimestamp     bool
	OsmosisReplicationSequenceNumber   int64
	HasOsmosisReplicationSequenceNumber bool
	OsmosisReplicationBaseURL          string
	HasOsmosisReplicationBaseURL       bool
}

// StringTable is the per-block interned string list; index 0 is always "".
type StringTable struct {
	S [][]byte
}

// Info carries the non-dense per-element metadata.
type Info struct {
	Version      int32
	HasVersion   bool
	Timestamp    int64
	HasTimestamp bool
	Changeset    int64
	HasChangeset bool
	UID          int32
	HasUID       bool
	UserSID      uint32
	HasUserSID   bool
	Visible      bool
	HasVisible   bool
}

// DenseInfo is the columnar metadata for a DenseNodes group; every slice has
// the same length as DenseNodes.ID. Timestamp/Changeset/UID/UserSID are
// delta-coded against the previous entry; Version is not.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	UID       []int32
	UserSID   []int32
	Visible   []bool
}

// Node is a non-dense node entry.
type Node struct {
	ID   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  int64
	Lon  int64
}

// DenseNodes is the columnar, delta-coded encoding of many nodes. KeysVals
// interleaves (key_sid, value_sid) pairs per node, each node's run
// terminated by a literal 0.
type DenseNodes struct {
	ID       []int64
	DenseInfo *DenseInfo
	Lat      []int64
	Lon      []int64
	KeysVals []int32
}

// Way is a non-dense way entry. Refs is delta-coded.
type Way struct {
	ID   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

// Relation is a non-dense relation entry. MemIDs is delta-coded.
type Relation struct {
	ID       int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSID []int32
	MemIDs   []int64
	Types    []MemberType
}

// PrimitiveGroup holds exactly one populated element-kind field, enforced by
// the block codec rather than by this struct.
type PrimitiveGroup struct {
	Nodes      []Node
	Dense      *DenseNodes
	Ways       []Way
	Relations  []Relation
}

// PrimitiveBlock is the decoded payload of one data blob.
type PrimitiveBlock struct {
	StringTable      StringTable
	Groups           []PrimitiveGroup
	Granularity      int32
	DateGranularity  int32
	LatOffset        int64
	LonOffset        int64
}

// NewPrimitiveBlock returns a PrimitiveBlock with the default granularities
// and offsets the spec mandates.
func NewPrimitiveBlock() *PrimitiveBlock {
	return &PrimitiveBlock{
		Granularity:     100,
		DateGranularity: 1000,
	}
}
