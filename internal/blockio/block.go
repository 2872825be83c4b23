package blockio

import (
	"github.com/navio-go/osmpbf/internal/model"
	"github.com/navio-go/osmpbf/internal/oerrors"
	"github.com/navio-go/osmpbf/internal/pbfproto"
)

// Compose builds a PrimitiveBlock from a slice of elements that must all
// share a single kind (Node, Way or Relation); mixed-kind input is
// rejected. Nodes are encoded densely; Ways and Relations are not.
func Compose(elements []model.Element) (*pbfproto.PrimitiveBlock, error) {
	if len(elements) == 0 {
		return nil, oerrors.NewMalformedError("cannot compose an empty block")
	}
	kind := elements[0].Kind
	for _, e := range elements[1:] {
		if e.Kind != kind {
			return nil, oerrors.NewMalformedError("PrimitiveGroup mixing element types")
		}
	}

	pb := pbfproto.NewPrimitiveBlock()
	table := NewStringTableBuilder()
	group := pbfproto.PrimitiveGroup{}

	switch kind {
	case model.KindNode:
		nodes := make([]model.Node, len(elements))
		for i, e := range elements {
			nodes[i] = e.Node
		}
		dn, err := BuildDenseGroup(nodes, table, pb.Granularity, pb.DateGranularity, pb.LatOffset, pb.LonOffset)
		if err != nil {
			return nil, err
		}
		group.Dense = dn
	case model.KindWay:
		ways := make([]pbfproto.Way, len(elements))
		for i, e := range elements {
			ways[i] = *BuildWay(e.Way, table, pb.DateGranularity)
		}
		group.Ways = ways
	case model.KindRelation:
		rels := make([]pbfproto.Relation, len(elements))
		for i, e := range elements {
			rels[i] = *BuildRelation(e.Relation, table, pb.DateGranularity)
		}
		group.Relations = rels
	default:
		return nil, oerrors.NewMalformedError("sentinel element cannot be composed into a block")
	}

	pb.StringTable = pbfproto.StringTable{S: table.Build()}
	pb.Groups = []pbfproto.PrimitiveGroup{group}
	return pb, nil
}

// Decompose inverts Compose (and also accepts multi-group blocks produced
// elsewhere), returning every element in block order: within each group,
// dense nodes first, then non-dense nodes, ways, relations.
func Decompose(pb *pbfproto.PrimitiveBlock) ([]model.Element, error) {
	table := pb.StringTable.S
	var out []model.Element
	for _, g := range pb.Groups {
		if g.Dense != nil {
			nodes, err := DecodeDenseGroup(g.Dense, table, pb.Granularity, pb.DateGranularity, pb.LatOffset, pb.LonOffset)
			if err != nil {
				return nil, err
			}
			for _, n := range nodes {
				out = append(out, model.NewNodeElement(n))
			}
		}
		for i := range g.Nodes {
			pn := g.Nodes[i]
			info, err := decodeInfo(pn.Info, table, pb.DateGranularity)
			if err != nil {
				return nil, err
			}
			tags, err := decodeTags(pn.Keys, pn.Vals, table)
			if err != nil {
				return nil, err
			}
			out = append(out, model.NewNodeElement(model.Node{
				ID:   pn.ID,
				Info: info,
				Coord: model.Coordinate{
					Lat: rawToDeg(pn.Lat, pb.LatOffset, pb.Granularity),
					Lon: rawToDeg(pn.Lon, pb.LonOffset, pb.Granularity),
				},
				Tags: tags,
			}))
		}
		for i := range g.Ways {
			w, err := DecodeWay(&g.Ways[i], table, pb.DateGranularity)
			if err != nil {
				return nil, err
			}
			out = append(out, model.NewWayElement(w))
		}
		for i := range g.Relations {
			r, err := DecodeRelation(&g.Relations[i], table, pb.DateGranularity)
			if err != nil {
				return nil, err
			}
			out = append(out, model.NewRelationElement(r))
		}
	}
	return out, nil
}
