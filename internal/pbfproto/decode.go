package pbfproto

import "github.com/navio-go/osmpbf/internal/oerrors"

// UnmarshalBlobHeader decodes a BlobHeader message. type and datasize are
// required; a missing one is a Malformed (SchemaViolation) error.
func UnmarshalBlobHeader(buf []byte) (*BlobHeader, error) {
	h := &BlobHeader{}
	var haveType, haveSize bool
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			s, err := r.readString()
			if err != nil {
				return nil, err
			}
			h.Type = s
			haveType = true
		case 2:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			h.IndexData = append([]byte(nil), b...)
		case 3:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			h.DataSize = int32(v)
			haveSize = true
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	if !haveType {
		return nil, oerrors.NewMalformedError("BlobHeader missing required field type")
	}
	if !haveSize {
		return nil, oerrors.NewMalformedError("BlobHeader missing required field datasize")
	}
	return h, nil
}

// UnmarshalBlob decodes a Blob message, recognising but not retaining the
// compression variants osmpbf rejects (lzma_data, OBSOLETE_bzip2_data,
// lz4_data, zstd_data).
func UnmarshalBlob(buf []byte) (*Blob, error) {
	b := &Blob{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			v, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			b.Raw = append([]byte(nil), v...)
		case 2:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			b.RawSize = int32(v)
			b.HasRawSize = true
		case 3:
			v, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			b.ZlibData = append([]byte(nil), v...)
		case 4:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
			b.HasLzmaData = true
		case 5:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
			b.HasOBSData = true
		case 6:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
			b.HasLz4Data = true
		case 7:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
			b.HasZstdData = true
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// UnmarshalHeaderBBox decodes a HeaderBBox message.
func UnmarshalHeaderBBox(buf []byte) (*HeaderBBox, error) {
	bb := &HeaderBBox{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			bb.Left = v
		case 2:
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			bb.Right = v
		case 3:
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			bb.Top = v
		case 4:
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			bb.Bottom = v
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return bb, nil
}

// UnmarshalHeaderBlock decodes a HeaderBlock message.
func UnmarshalHeaderBlock(buf []byte) (*HeaderBlock, error) {
	h := &HeaderBlock{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			bb, err := UnmarshalHeaderBBox(b)
			if err != nil {
				return nil, err
			}
			h.BBox = bb
		case 4:
			s, err := r.readString()
			if err != nil {
				return nil, err
			}
			h.RequiredFeatures = append(h.RequiredFeatures, s)
		case 5:
			s, err := r.readString()
			if err != nil {
				return nil, err
			}
			h.OptionalFeatures = append(h.OptionalFeatures, s)
		case 16:
			s, err := r.readString()
			if err != nil {
				return nil, err
			}
			h.WritingProgram = s
			h.HasWritingProgram = true
		case 17:
			s, err := r.readString()
			if err != nil {
				return nil, err
			}
			h.Source = s
			h.HasSource = true
		case 32:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			h.OsmosisReplicationTimestamp = int64(v)
			h.HasOsmosisReplicationTimestamp = true
		case 33:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			h.OsmosisReplicationSequenceNumber = int64(v)
			h.HasOsmosisReplicationSequenceNumber = true
		case 34:
			s, err := r.readString()
			if err != nil {
				return nil, err
			}
			h.OsmosisReplicationBaseURL = s
			h.HasOsmosisReplicationBaseURL = true
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return h, nil
}

// UnmarshalStringTable decodes a StringTable message.
func UnmarshalStringTable(buf []byte) (*StringTable, error) {
	t := &StringTable{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		if fn != 1 {
			if err := r.skip(wt); err != nil {
				return nil, err
			}
			continue
		}
		b, err := r.readBytes()
		if err != nil {
			return nil, err
		}
		t.S = append(t.S, append([]byte(nil), b...))
	}
	return t, nil
}

// UnmarshalInfo decodes an Info message.
func UnmarshalInfo(buf []byte) (*Info, error) {
	info := &Info{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			info.Version = int32(v)
			info.HasVersion = true
		case 2:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			info.Timestamp = int64(v)
			info.HasTimestamp = true
		case 3:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			info.Changeset = int64(v)
			info.HasChangeset = true
		case 4:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			info.UID = int32(v)
			info.HasUID = true
		case 5:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			info.UserSID = uint32(v)
			info.HasUserSID = true
		case 6:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			info.Visible = v != 0
			info.HasVisible = true
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return info, nil
}

func plainInt32Slice(raw []uint64) []int32 {
	out := make([]int32, len(raw))
	for i, v := range raw {
		out[i] = int32(int64(v))
	}
	return out
}

func zigZagInt32Slice(vals []int64) []int32 {
	out := make([]int32, len(vals))
	for i, v := range vals {
		out[i] = int32(v)
	}
	return out
}

// UnmarshalDenseInfo decodes a DenseInfo message.
func UnmarshalDenseInfo(buf []byte) (*DenseInfo, error) {
	di := &DenseInfo{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			di.Version = plainInt32Slice(raw)
		case 2:
			v, err := r.packedVarints()
			if err != nil {
				return nil, err
			}
			di.Timestamp = v
		case 3:
			v, err := r.packedVarints()
			if err != nil {
				return nil, err
			}
			di.Changeset = v
		case 4:
			v, err := r.packedVarints()
			if err != nil {
				return nil, err
			}
			di.UID = zigZagInt32Slice(v)
		case 5:
			v, err := r.packedVarints()
			if err != nil {
				return nil, err
			}
			di.UserSID = zigZagInt32Slice(v)
		case 6:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			di.Visible = make([]bool, len(raw))
			for i, v := range raw {
				di.Visible[i] = v != 0
			}
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return di, nil
}

func plainUint32Slice(raw []uint64) []uint32 {
	out := make([]uint32, len(raw))
	for i, v := range raw {
		out[i] = uint32(v)
	}
	return out
}

// UnmarshalNode decodes a non-dense Node message.
func UnmarshalNode(buf []byte) (*Node, error) {
	n := &Node{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			n.ID = v
		case 2:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			n.Keys = plainUint32Slice(raw)
		case 3:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			n.Vals = plainUint32Slice(raw)
		case 4:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			info, err := UnmarshalInfo(b)
			if err != nil {
				return nil, err
			}
			n.Info = info
		case 8:
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			n.Lat = v
		case 9:
			v, err := r.readVarint()
			if err != nil {
				return nil, err
			}
			n.Lon = v
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return n, nil
}

// UnmarshalDenseNodes decodes a DenseNodes message.
func UnmarshalDenseNodes(buf []byte) (*DenseNodes, error) {
	dn := &DenseNodes{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			v, err := r.packedVarints()
			if err != nil {
				return nil, err
			}
			dn.ID = v
		case 5:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			di, err := UnmarshalDenseInfo(b)
			if err != nil {
				return nil, err
			}
			dn.DenseInfo = di
		case 8:
			v, err := r.packedVarints()
			if err != nil {
				return nil, err
			}
			dn.Lat = v
		case 9:
			v, err := r.packedVarints()
			if err != nil {
				return nil, err
			}
			dn.Lon = v
		case 10:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			dn.KeysVals = plainInt32Slice(raw)
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return dn, nil
}

// UnmarshalWay decodes a Way message.
func UnmarshalWay(buf []byte) (*Way, error) {
	w := &Way{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			w.ID = int64(v)
		case 2:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			w.Keys = plainUint32Slice(raw)
		case 3:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			w.Vals = plainUint32Slice(raw)
		case 4:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			info, err := UnmarshalInfo(b)
			if err != nil {
				return nil, err
			}
			w.Info = info
		case 8:
			v, err := r.packedVarints()
			if err != nil {
				return nil, err
			}
			w.Refs = v
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return w, nil
}

// UnmarshalRelation decodes a Relation message, rejecting any member type
// enum value outside {0,1,2}.
func UnmarshalRelation(buf []byte) (*Relation, error) {
	rel := &Relation{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			rel.ID = int64(v)
		case 2:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			rel.Keys = plainUint32Slice(raw)
		case 3:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			rel.Vals = plainUint32Slice(raw)
		case 4:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			info, err := UnmarshalInfo(b)
			if err != nil {
				return nil, err
			}
			rel.Info = info
		case 8:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			rel.RolesSID = plainInt32Slice(raw)
		case 9:
			v, err := r.packedVarints()
			if err != nil {
				return nil, err
			}
			rel.MemIDs = v
		case 10:
			raw, err := r.packedUvarints()
			if err != nil {
				return nil, err
			}
			rel.Types = make([]MemberType, len(raw))
			for i, v := range raw {
				if v > 2 {
					return nil, oerrors.NewMalformedError("relation member type out of range")
				}
				rel.Types[i] = MemberType(v)
			}
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return rel, nil
}

// UnmarshalPrimitiveGroup decodes a PrimitiveGroup message.
func UnmarshalPrimitiveGroup(buf []byte) (*PrimitiveGroup, error) {
	g := &PrimitiveGroup{}
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			n, err := UnmarshalNode(b)
			if err != nil {
				return nil, err
			}
			g.Nodes = append(g.Nodes, *n)
		case 2:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			dn, err := UnmarshalDenseNodes(b)
			if err != nil {
				return nil, err
			}
			g.Dense = dn
		case 3:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			w, err := UnmarshalWay(b)
			if err != nil {
				return nil, err
			}
			g.Ways = append(g.Ways, *w)
		case 4:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			rel, err := UnmarshalRelation(b)
			if err != nil {
				return nil, err
			}
			g.Relations = append(g.Relations, *rel)
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// UnmarshalPrimitiveBlock decodes a PrimitiveBlock message, applying the
// documented defaults (granularity=100, date_granularity=1000, offsets=0)
// for absent fields.
func UnmarshalPrimitiveBlock(buf []byte) (*PrimitiveBlock, error) {
	pb := NewPrimitiveBlock()
	r := newReader(buf)
	for !r.done() {
		fn, wt, err := r.readTag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			st, err := UnmarshalStringTable(b)
			if err != nil {
				return nil, err
			}
			pb.StringTable = *st
		case 2:
			b, err := r.readBytes()
			if err != nil {
				return nil, err
			}
			g, err := UnmarshalPrimitiveGroup(b)
			if err != nil {
				return nil, err
			}
			pb.Groups = append(pb.Groups, *g)
		case 17:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			pb.Granularity = int32(v)
		case 18:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			pb.DateGranularity = int32(v)
		case 19:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			pb.LatOffset = int64(v)
		case 20:
			v, err := r.readUvarint()
			if err != nil {
				return nil, err
			}
			pb.LonOffset = int64(v)
		default:
			if err := r.skip(wt); err != nil {
				return nil, err
			}
		}
	}
	return pb, nil
}
