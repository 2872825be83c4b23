package blockio

import (
	"math"

	"github.com/navio-go/osmpbf/internal/model"
	"github.com/navio-go/osmpbf/internal/oerrors"
	"github.com/navio-go/osmpbf/internal/pbfproto"
)

// DefaultGranularity and DefaultDateGranularity are the format's default
// block granularities. The builders take granularities as parameters;
// Compose passes the values set by pbfproto.NewPrimitiveBlock, which are
// these same defaults.
const (
	DefaultGranularity     int32 = 100
	DefaultDateGranularity int32 = 1000
)

func degToRaw(deg float64, offset int64, granularity int32) int64 {
	nano := math.Round(deg * 1e9)
	return int64(math.Round((nano - float64(offset)) / float64(granularity)))
}

func rawToDeg(raw int64, offset int64, granularity int32) float64 {
	nano := offset + int64(granularity)*raw
	return float64(nano) * 1e-9
}

func timestampToStored(ms int64, dateGranularity int32) int64 {
	return ms / int64(dateGranularity)
}

func storedToTimestamp(stored int64, dateGranularity int32) int64 {
	return stored * int64(dateGranularity)
}

// BuildDenseGroup encodes nodes (required to be in ascending id order) into
// a DenseNodes message, interning strings via table.
func BuildDenseGroup(nodes []model.Node, table *StringTableBuilder, granularity, dateGranularity int32, latOffset, lonOffset int64) (*pbfproto.DenseNodes, error) {
	dn := &pbfproto.DenseNodes{
		ID:  make([]int64, len(nodes)),
		Lat: make([]int64, len(nodes)),
		Lon: make([]int64, len(nodes)),
		DenseInfo: &pbfproto.DenseInfo{
			Version:   make([]int32, len(nodes)),
			Timestamp: make([]int64, len(nodes)),
			Changeset: make([]int64, len(nodes)),
			UID:       make([]int32, len(nodes)),
			UserSID:   make([]int32, len(nodes)),
			Visible:   make([]bool, len(nodes)),
		},
	}
	var prevID, prevLat, prevLon, prevTS, prevCS, prevUID, prevUserSID int64
	for i, n := range nodes {
		if i > 0 && n.ID <= nodes[i-1].ID {
			return nil, oerrors.NewMalformedError("dense node builder requires strictly ascending ids")
		}
		rawLat := degToRaw(n.Coord.Lat, latOffset, granularity)
		rawLon := degToRaw(n.Coord.Lon, lonOffset, granularity)
		storedTS := timestampToStored(n.Info.Timestamp, dateGranularity)
		userSID := int64(table.Add(n.Info.User))

		dn.ID[i] = n.ID - prevID
		dn.Lat[i] = rawLat - prevLat
		dn.Lon[i] = rawLon - prevLon
		dn.DenseInfo.Version[i] = n.Info.Version
		dn.DenseInfo.Timestamp[i] = storedTS - prevTS
		dn.DenseInfo.Changeset[i] = n.Info.Changeset - prevCS
		dn.DenseInfo.UID[i] = int32(int64(n.Info.UID) - prevUID)
		dn.DenseInfo.UserSID[i] = int32(userSID - prevUserSID)
		dn.DenseInfo.Visible[i] = n.Info.Visible

		for _, tg := range n.Tags {
			dn.KeysVals = append(dn.KeysVals, int32(table.Add(tg.Key)), int32(table.Add(tg.Value)))
		}
		dn.KeysVals = append(dn.KeysVals, 0)

		prevID = n.ID
		prevLat = rawLat
		prevLon = rawLon
		prevTS = storedTS
		prevCS = n.Info.Changeset
		prevUID = int64(n.Info.UID)
		prevUserSID = userSID
	}
	return dn, nil
}

// DecodeDenseGroup inverts BuildDenseGroup, resolving string indices
// against table.
func DecodeDenseGroup(dn *pbfproto.DenseNodes, table [][]byte, granularity, dateGranularity int32, latOffset, lonOffset int64) ([]model.Node, error) {
	n := len(dn.ID)
	nodes := make([]model.Node, n)
	var curID, curLat, curLon, curTS, curCS, curUID, curUserSID int64
	kvIdx := 0
	for i := 0; i < n; i++ {
		curID += dn.ID[i]
		curLat += dn.Lat[i]
		curLon += dn.Lon[i]

		var version int32
		var visible bool
		if dn.DenseInfo != nil {
			if i < len(dn.DenseInfo.Version) {
				version = dn.DenseInfo.Version[i]
			}
			if i < len(dn.DenseInfo.Timestamp) {
				curTS += dn.DenseInfo.Timestamp[i]
			}
			if i < len(dn.DenseInfo.Changeset) {
				curCS += dn.DenseInfo.Changeset[i]
			}
			if i < len(dn.DenseInfo.UID) {
				curUID += int64(dn.DenseInfo.UID[i])
			}
			if i < len(dn.DenseInfo.UserSID) {
				curUserSID += int64(dn.DenseInfo.UserSID[i])
			}
			if i < len(dn.DenseInfo.Visible) {
				visible = dn.DenseInfo.Visible[i]
			} else {
				visible = true
			}
		} else {
			visible = true
		}

		user, err := lookupString(table, uint32(curUserSID))
		if err != nil {
			return nil, err
		}

		var tags []model.Tag
		for kvIdx < len(dn.KeysVals) {
			k := dn.KeysVals[kvIdx]
			kvIdx++
			if k == 0 {
				break
			}
			if kvIdx >= len(dn.KeysVals) {
				return nil, oerrors.NewMalformedError("dense keys_vals truncated")
			}
			v := dn.KeysVals[kvIdx]
			kvIdx++
			key, err := lookupString(table, uint32(k))
			if err != nil {
				return nil, err
			}
			val, err := lookupString(table, uint32(v))
			if err != nil {
				return nil, err
			}
			tags = append(tags, model.Tag{Key: key, Value: val})
		}

		nodes[i] = model.Node{
			ID: curID,
			Info: model.Info{
				Version:   version,
				Timestamp: storedToTimestamp(curTS, dateGranularity),
				Changeset: curCS,
				UID:       int32(curUID),
				User:      user,
				Visible:   visible,
			},
			Coord: model.Coordinate{
				Lat: rawToDeg(curLat, latOffset, granularity),
				Lon: rawToDeg(curLon, lonOffset, granularity),
			},
			Tags: tags,
		}
	}
	return nodes, nil
}

func lookupString(table [][]byte, idx uint32) (string, error) {
	if int(idx) >= len(table) {
		return "", oerrors.NewMalformedError("string table index out of range")
	}
	return string(table[idx]), nil
}
