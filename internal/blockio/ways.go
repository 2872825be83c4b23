package blockio

import (
	"github.com/navio-go/osmpbf/internal/model"
	"github.com/navio-go/osmpbf/internal/pbfproto"
)

func buildInfo(info model.Info, table *StringTableBuilder, dateGranularity int32) *pbfproto.Info {
	return &pbfproto.Info{
		Version: info.Version, HasVersion: true,
		Timestamp: timestampToStored(info.Timestamp, dateGranularity), HasTimestamp: true,
		Changeset: info.Changeset, HasChangeset: true,
		UID: info.UID, HasUID: true,
		UserSID: table.Add(info.User), HasUserSID: true,
		Visible: info.Visible, HasVisible: true,
	}
}

func decodeInfo(pi *pbfproto.Info, table [][]byte, dateGranularity int32) (model.Info, error) {
	if pi == nil {
		return model.Info{}, nil
	}
	user, err := lookupString(table, pi.UserSID)
	if err != nil {
		return model.Info{}, err
	}
	return model.Info{
		Version:   pi.Version,
		Timestamp: storedToTimestamp(pi.Timestamp, dateGranularity),
		Changeset: pi.Changeset,
		UID:       pi.UID,
		User:      user,
		Visible:   pi.Visible,
	}, nil
}

func buildTags(tags []model.Tag, table *StringTableBuilder) ([]uint32, []uint32) {
	if len(tags) == 0 {
		return nil, nil
	}
	keys := make([]uint32, len(tags))
	vals := make([]uint32, len(tags))
	for i, tg := range tags {
		keys[i] = table.Add(tg.Key)
		vals[i] = table.Add(tg.Value)
	}
	return keys, vals
}

func decodeTags(keys, vals []uint32, table [][]byte) ([]model.Tag, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	tags := make([]model.Tag, len(keys))
	for i := range keys {
		k, err := lookupString(table, keys[i])
		if err != nil {
			return nil, err
		}
		v, err := lookupString(table, vals[i])
		if err != nil {
			return nil, err
		}
		tags[i] = model.Tag{Key: k, Value: v}
	}
	return tags, nil
}

// BuildWay encodes a single non-dense Way entry, delta-coding refs.
func BuildWay(w model.Way, table *StringTableBuilder, dateGranularity int32) *pbfproto.Way {
	keys, vals := buildTags(w.Tags, table)
	refs := make([]int64, len(w.Refs))
	var prev int64
	for i, ref := range w.Refs {
		refs[i] = ref - prev
		prev = ref
	}
	return &pbfproto.Way{
		ID:   w.ID,
		Keys: keys,
		Vals: vals,
		Info: buildInfo(w.Info, table, dateGranularity),
		Refs: refs,
	}
}

// DecodeWay inverts BuildWay.
func DecodeWay(pw *pbfproto.Way, table [][]byte, dateGranularity int32) (model.Way, error) {
	info, err := decodeInfo(pw.Info, table, dateGranularity)
	if err != nil {
		return model.Way{}, err
	}
	tags, err := decodeTags(pw.Keys, pw.Vals, table)
	if err != nil {
		return model.Way{}, err
	}
	refs := make([]int64, len(pw.Refs))
	var cur int64
	for i, d := range pw.Refs {
		cur += d
		refs[i] = cur
	}
	return model.Way{ID: pw.ID, Info: info, Refs: refs, Tags: tags}, nil
}
