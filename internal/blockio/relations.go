package blockio

import (
	"github.com/navio-go/osmpbf/internal/model"
	"github.com/navio-go/osmpbf/internal/oerrors"
	"github.com/navio-go/osmpbf/internal/pbfproto"
)

// BuildRelation encodes a single non-dense Relation entry, delta-coding
// member ids.
func BuildRelation(rel model.Relation, table *StringTableBuilder, dateGranularity int32) *pbfproto.Relation {
	keys, vals := buildTags(rel.Tags, table)
	memIDs := make([]int64, len(rel.Members))
	rolesSID := make([]int32, len(rel.Members))
	types := make([]pbfproto.MemberType, len(rel.Members))
	var prev int64
	for i, m := range rel.Members {
		memIDs[i] = m.Ref - prev
		prev = m.Ref
		rolesSID[i] = int32(table.Add(m.Role))
		types[i] = pbfproto.MemberType(m.Type)
	}
	return &pbfproto.Relation{
		ID:       rel.ID,
		Keys:     keys,
		Vals:     vals,
		Info:     buildInfo(rel.Info, table, dateGranularity),
		RolesSID: rolesSID,
		MemIDs:   memIDs,
		Types:    types,
	}
}

// DecodeRelation inverts BuildRelation.
func DecodeRelation(pr *pbfproto.Relation, table [][]byte, dateGranularity int32) (model.Relation, error) {
	info, err := decodeInfo(pr.Info, table, dateGranularity)
	if err != nil {
		return model.Relation{}, err
	}
	tags, err := decodeTags(pr.Keys, pr.Vals, table)
	if err != nil {
		return model.Relation{}, err
	}
	if len(pr.MemIDs) != len(pr.Types) || len(pr.MemIDs) != len(pr.RolesSID) {
		return model.Relation{}, oerrors.NewMalformedError("relation member arrays have mismatched lengths")
	}
	members := make([]model.Member, len(pr.MemIDs))
	var cur int64
	for i := range pr.MemIDs {
		cur += pr.MemIDs[i]
		role, err := lookupString(table, uint32(pr.RolesSID[i]))
		if err != nil {
			return model.Relation{}, err
		}
		members[i] = model.Member{
			Ref:  cur,
			Type: model.MemberType(pr.Types[i]),
			Role: role,
		}
	}
	return model.Relation{ID: pr.ID, Info: info, Members: members, Tags: tags}, nil
}
