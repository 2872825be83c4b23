package blockio

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/navio-go/osmpbf/internal/model"
)

func TestComposeDecomposeNodes(t *testing.T) {
	nodes := []model.Node{
		{ID: 10, Coord: model.Coordinate{Lat: 0, Lon: 0.0000001}, Info: model.Info{Version: 1, User: "u"}},
		{ID: 11, Coord: model.Coordinate{Lat: 0, Lon: 0.0000002}, Info: model.Info{Version: 1, User: "u"}},
		{ID: 13, Coord: model.Coordinate{Lat: 0, Lon: 0.0000003}, Info: model.Info{Version: 1, User: "u"}},
		{ID: 20, Coord: model.Coordinate{Lat: 0, Lon: 0.0000004}, Info: model.Info{Version: 1, User: "u"}, Tags: []model.Tag{{Key: "k", Value: "v"}}},
	}
	elems := make([]model.Element, len(nodes))
	for i, n := range nodes {
		elems[i] = model.NewNodeElement(n)
	}
	pb, err := Compose(elems)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decompose(pb)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(nodes) {
		t.Fatalf("got %d elements, want %d", len(out), len(nodes))
	}
	for i, e := range out {
		if e.Node.ID != nodes[i].ID {
			t.Errorf("id[%d] = %d, want %d", i, e.Node.ID, nodes[i].ID)
		}
		if diff := e.Node.Coord.Lon - nodes[i].Coord.Lon; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("lon[%d] = %v, want %v (diff %v)", i, e.Node.Coord.Lon, nodes[i].Coord.Lon, diff)
		}
	}
	if out[3].Node.Tags[0] != (model.Tag{Key: "k", Value: "v"}) {
		t.Errorf("tags = %v", out[3].Node.Tags)
	}
}

func TestComposeNodeNoTags(t *testing.T) {
	elems := []model.Element{model.NewNodeElement(model.Node{ID: 1})}
	pb, err := Compose(elems)
	if err != nil {
		t.Fatal(err)
	}
	if len(pb.Groups[0].Dense.KeysVals) != 1 || pb.Groups[0].Dense.KeysVals[0] != 0 {
		t.Errorf("keys_vals = %v, want a lone 0", pb.Groups[0].Dense.KeysVals)
	}
}

func TestComposeRejectsMixedTypes(t *testing.T) {
	elems := []model.Element{
		model.NewNodeElement(model.Node{ID: 1}),
		model.NewWayElement(model.Way{ID: 2}),
	}
	if _, err := Compose(elems); err == nil {
		t.Fatal("expected error composing mixed-type block")
	}
}

func TestComposeDecomposeWayZeroRefs(t *testing.T) {
	w := model.Way{ID: 3, Info: model.Info{Version: 1}}
	pb, err := Compose([]model.Element{model.NewWayElement(w)})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decompose(pb)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || len(out[0].Way.Refs) != 0 {
		t.Errorf("got %+v", out)
	}
}

func TestComposeDecomposeRelationZeroMembers(t *testing.T) {
	rel := model.Relation{ID: 1, Info: model.Info{Version: 1}}
	pb, err := Compose([]model.Element{model.NewRelationElement(rel)})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decompose(pb)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || len(out[0].Relation.Members) != 0 {
		t.Errorf("got %+v", out)
	}
}

func TestComposeDecomposeRelationWithMembers(t *testing.T) {
	rel := model.Relation{
		ID:   1,
		Info: model.Info{Version: 1},
		Members: []model.Member{
			{Ref: 3, Type: model.MemberWay, Role: "outer"},
		},
	}
	pb, err := Compose([]model.Element{model.NewRelationElement(rel)})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decompose(pb)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rel, out[0].Relation); diff != "" {
		t.Errorf("relation mismatch (-want +got):\n%s", diff)
	}
}

func TestStringTableIndexZero(t *testing.T) {
	b := NewStringTableBuilder()
	list := b.Build()
	if len(list) != 1 || string(list[0]) != "" {
		t.Errorf("string table did not seed index 0 as empty, got %v", list)
	}
}

func TestStringTableDedup(t *testing.T) {
	b := NewStringTableBuilder()
	a1 := b.Add("hello")
	a2 := b.Add("world")
	a3 := b.Add("hello")
	if a1 != a3 {
		t.Errorf("expected repeated Add to return same index, got %d and %d", a1, a3)
	}
	if a2 == a1 {
		t.Errorf("expected distinct strings to get distinct indices")
	}
}

func TestBuildDenseGroupRejectsNonAscendingIDs(t *testing.T) {
	table := NewStringTableBuilder()
	nodes := []model.Node{{ID: 5}, {ID: 3}}
	if _, err := BuildDenseGroup(nodes, table, DefaultGranularity, DefaultDateGranularity, 0, 0); err == nil {
		t.Fatal("expected error for non-ascending ids")
	}
}

func TestTimestampConvention(t *testing.T) {
	const ms = int64(1_700_000_123_000)
	stored := timestampToStored(ms, DefaultDateGranularity)
	recovered := storedToTimestamp(stored, DefaultDateGranularity)
	want := (ms / int64(DefaultDateGranularity)) * int64(DefaultDateGranularity)
	if recovered != want {
		t.Errorf("recovered timestamp = %d, want %d", recovered, want)
	}
}
