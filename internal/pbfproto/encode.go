package pbfproto

import "github.com/navio-go/osmpbf/internal/varint"

func appendBoolField(buf []byte, fieldNum int, v bool) []byte {
	u := uint64(0)
	if v {
		u = 1
	}
	return appendVarintField(buf, fieldNum, u)
}

func appendInt32Field(buf []byte, fieldNum int, v int32) []byte {
	return appendVarintField(buf, fieldNum, uint64(int64(v)))
}

func appendUint32Field(buf []byte, fieldNum int, v uint32) []byte {
	return appendVarintField(buf, fieldNum, uint64(v))
}

func appendInt64Field(buf []byte, fieldNum int, v int64) []byte {
	return appendVarintField(buf, fieldNum, uint64(v))
}

// appendPackedPlain packs a slice of plain (non-zigzag) values as one
// length-delimited field.
func appendPackedPlain(buf []byte, fieldNum int, vals []int64) []byte {
	if len(vals) == 0 {
		return buf
	}
	var payload []byte
	for _, v := range vals {
		payload = varint.AppendUvarint(payload, uint64(v))
	}
	return appendBytesField(buf, fieldNum, payload)
}

func appendPackedPlain32(buf []byte, fieldNum int, vals []int32) []byte {
	if len(vals) == 0 {
		return buf
	}
	conv := make([]int64, len(vals))
	for i, v := range vals {
		conv[i] = int64(v)
	}
	return appendPackedPlain(buf, fieldNum, conv)
}

func appendPackedUint32(buf []byte, fieldNum int, vals []uint32) []byte {
	if len(vals) == 0 {
		return buf
	}
	var payload []byte
	for _, v := range vals {
		payload = varint.AppendUvarint(payload, uint64(v))
	}
	return appendBytesField(buf, fieldNum, payload)
}

func appendPackedZigZag(buf []byte, fieldNum int, vals []int64) []byte {
	if len(vals) == 0 {
		return buf
	}
	var payload []byte
	for _, v := range vals {
		payload = varint.AppendVarint(payload, v)
	}
	return appendBytesField(buf, fieldNum, payload)
}

func appendPackedZigZag32(buf []byte, fieldNum int, vals []int32) []byte {
	if len(vals) == 0 {
		return buf
	}
	conv := make([]int64, len(vals))
	for i, v := range vals {
		conv[i] = int64(v)
	}
	return appendPackedZigZag(buf, fieldNum, conv)
}

func appendPackedBool(buf []byte, fieldNum int, vals []bool) []byte {
	if len(vals) == 0 {
		return buf
	}
	payload := make([]byte, 0, len(vals))
	for _, v := range vals {
		if v {
			payload = append(payload, 1)
		} else {
			payload = append(payload, 0)
		}
	}
	return appendBytesField(buf, fieldNum, payload)
}

func appendPackedMemberType(buf []byte, fieldNum int, vals []MemberType) []byte {
	if len(vals) == 0 {
		return buf
	}
	conv := make([]int64, len(vals))
	for i, v := range vals {
		conv[i] = int64(v)
	}
	return appendPackedPlain(buf, fieldNum, conv)
}

// Marshal encodes h.
func (h *BlobHeader) Marshal() []byte {
	var buf []byte
	buf = appendStringField(buf, 1, h.Type)
	if h.IndexData != nil {
		buf = appendBytesField(buf, 2, h.IndexData)
	}
	buf = appendInt32Field(buf, 3, h.DataSize)
	return buf
}

// Marshal encodes b.
func (b *Blob) Marshal() []byte {
	var buf []byte
	if b.Raw != nil {
		buf = appendBytesField(buf, 1, b.Raw)
	}
	if b.HasRawSize {
		buf = appendInt32Field(buf, 2, b.RawSize)
	}
	if b.ZlibData != nil {
		buf = appendBytesField(buf, 3, b.ZlibData)
	}
	return buf
}

// Marshal encodes bb.
func (bb *HeaderBBox) Marshal() []byte {
	var buf []byte
	buf = appendZigZagField(buf, 1, bb.Left)
	buf = appendZigZagField(buf, 2, bb.Right)
	buf = appendZigZagField(buf, 3, bb.Top)
	buf = appendZigZagField(buf, 4, bb.Bottom)
	return buf
}

// Marshal encodes h.
func (h *HeaderBlock) Marshal() []byte {
	var buf []byte
	if h.BBox != nil {
		buf = appendBytesField(buf, 1, h.BBox.Marshal())
	}
	for _, f := range h.RequiredFeatures {
		buf = appendStringField(buf, 4, f)
	}
	for _, f := range h.OptionalFeatures {
		buf = appendStringField(buf, 5, f)
	}
	if h.HasWritingProgram {
		buf = appendStringField(buf, 16, h.WritingProgram)
	}
	if h.HasSource {
		buf = appendStringField(buf, 17, h.Source)
	}
	if h.HasOsmosisReplicationTimestamp {
		buf = appendInt64Field(buf, 32, h.OsmosisReplicationTimestamp)
	}
	if h.HasOsmosisReplicationSequenceNumber {
		buf = appendInt64Field(buf, 33, h.OsmosisReplicationSequenceNumber)
	}
	if h.HasOsmosisReplicationBaseURL {
		buf = appendStringField(buf, 34, h.OsmosisReplicationBaseURL)
	}
	return buf
}

// Marshal encodes t.
func (t *StringTable) Marshal() []byte {
	var buf []byte
	for _, s := range t.S {
		buf = appendBytesField(buf, 1, s)
	}
	return buf
}

// Marshal encodes info. A nil info marshals to nothing.
func (info *Info) Marshal() []byte {
	if info == nil {
		return nil
	}
	var buf []byte
	if info.HasVersion {
		buf = appendInt32Field(buf, 1, info.Version)
	}
	if info.HasTimestamp {
		buf = appendInt64Field(buf, 2, info.Timestamp)
	}
	if info.HasChangeset {
		buf = appendInt64Field(buf, 3, info.Changeset)
	}
	if info.HasUID {
		buf = appendInt32Field(buf, 4, info.UID)
	}
	if info.HasUserSID {
		buf = appendUint32Field(buf, 5, info.UserSID)
	}
	if info.HasVisible {
		buf = appendBoolField(buf, 6, info.Visible)
	}
	return buf
}

// Marshal encodes di.
func (di *DenseInfo) Marshal() []byte {
	var buf []byte
	buf = appendPackedPlain32(buf, 1, di.Version)
	buf = appendPackedZigZag(buf, 2, di.Timestamp)
	buf = appendPackedZigZag(buf, 3, di.Changeset)
	buf = appendPackedZigZag32(buf, 4, di.UID)
	buf = appendPackedZigZag32(buf, 5, di.UserSID)
	buf = appendPackedBool(buf, 6, di.Visible)
	return buf
}

// Marshal encodes n.
func (n *Node) Marshal() []byte {
	var buf []byte
	buf = appendZigZagField(buf, 1, n.ID)
	buf = appendPackedUint32(buf, 2, n.Keys)
	buf = appendPackedUint32(buf, 3, n.Vals)
	if n.Info != nil {
		buf = appendBytesField(buf, 4, n.Info.Marshal())
	}
	buf = appendZigZagField(buf, 8, n.Lat)
	buf = appendZigZagField(buf, 9, n.Lon)
	return buf
}

// Marshal encodes dn.
func (dn *DenseNodes) Marshal() []byte {
	var buf []byte
	buf = appendPackedZigZag(buf, 1, dn.ID)
	if dn.DenseInfo != nil {
		buf = appendBytesField(buf, 5, dn.DenseInfo.Marshal())
	}
	buf = appendPackedZigZag(buf, 8, dn.Lat)
	buf = appendPackedZigZag(buf, 9, dn.Lon)
	buf = appendPackedPlain32(buf, 10, dn.KeysVals)
	return buf
}

// Marshal encodes w.
func (w *Way) Marshal() []byte {
	var buf []byte
	buf = appendInt64Field(buf, 1, w.ID)
	buf = appendPackedUint32(buf, 2, w.Keys)
	buf = appendPackedUint32(buf, 3, w.Vals)
	if w.Info != nil {
		buf = appendBytesField(buf, 4, w.Info.Marshal())
	}
	buf = appendPackedZigZag(buf, 8, w.Refs)
	return buf
}

// Marshal encodes r.
func (r *Relation) Marshal() []byte {
	var buf []byte
	buf = appendInt64Field(buf, 1, r.ID)
	buf = appendPackedUint32(buf, 2, r.Keys)
	buf = appendPackedUint32(buf, 3, r.Vals)
	if r.Info != nil {
		buf = appendBytesField(buf, 4, r.Info.Marshal())
	}
	buf = appendPackedPlain32(buf, 8, r.RolesSID)
	buf = appendPackedZigZag(buf, 9, r.MemIDs)
	buf = appendPackedMemberType(buf, 10, r.Types)
	return buf
}

// Marshal encodes g.
func (g *PrimitiveGroup) Marshal() []byte {
	var buf []byte
	for i := range g.Nodes {
		buf = appendBytesField(buf, 1, g.Nodes[i].Marshal())
	}
	if g.Dense != nil {
		buf = appendBytesField(buf, 2, g.Dense.Marshal())
	}
	for i := range g.Ways {
		buf = appendBytesField(buf, 3, g.Ways[i].Marshal())
	}
	for i := range g.Relations {
		buf = appendBytesField(buf, 4, g.Relations[i].Marshal())
	}
	return buf
}

// Marshal encodes pb.
func (pb *PrimitiveBlock) Marshal() []byte {
	var buf []byte
	buf = appendBytesField(buf, 1, pb.StringTable.Marshal())
	for i := range pb.Groups {
		buf = appendBytesField(buf, 2, pb.Groups[i].Marshal())
	}
	if pb.Granularity != 0 && pb.Granularity != 100 {
		buf = appendInt32Field(buf, 17, pb.Granularity)
	}
	if pb.DateGranularity != 0 && pb.DateGranularity != 1000 {
		buf = appendInt32Field(buf, 18, pb.DateGranularity)
	}
	if pb.LatOffset != 0 {
		buf = appendInt64Field(buf, 19, pb.LatOffset)
	}
	if pb.LonOffset != 0 {
		buf = appendInt64Field(buf, 20, pb.LonOffset)
	}
	return buf
}
