package osmpbf

import (
	"io"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, info FileInfo, elements []Element) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.osm.pbf")
	w, err := NewWriter(path, info, Zlib)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteElements(elements); err != nil {
		t.Fatalf("WriteElements: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestHeaderRoundTrip(t *testing.T) {
	info := FileInfo{
		WritingProgram: "osmpbf-test",
		BoundingBox:    &BoundingBox{Left: -1, Right: 1, Top: 2, Bottom: -2},
	}
	path := writeTestFile(t, info, nil)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got := r.Info()
	if got.WritingProgram != info.WritingProgram {
		t.Errorf("WritingProgram = %q, want %q", got.WritingProgram, info.WritingProgram)
	}
	if got.BoundingBox == nil {
		t.Fatal("BoundingBox is nil")
	}
	if diff := got.BoundingBox.Left - info.BoundingBox.Left; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("BoundingBox.Left = %v, want %v", got.BoundingBox.Left, info.BoundingBox.Left)
	}
}

func TestSingleNodeRoundTrip(t *testing.T) {
	n := NewNodeElement(Node{
		ID:    42,
		Coord: Coordinate{Lat: 51.5, Lon: -0.1},
		Info:  Info{Version: 1, User: "alice"},
		Tags:  []Tag{{Key: "amenity", Value: "cafe"}},
	})
	path := writeTestFile(t, FileInfo{}, []Element{n})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	it, err := r.Elements()
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	defer it.Close()

	got, err := it.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got.Kind != KindNode || got.Node.ID != 42 {
		t.Errorf("got %+v", got)
	}
	if got.Node.Tags[0] != (Tag{Key: "amenity", Value: "cafe"}) {
		t.Errorf("tags = %v", got.Node.Tags)
	}
	if _, err := it.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestDenseDeltaRoundTrip(t *testing.T) {
	var elements []Element
	for i := int64(0); i < 50; i++ {
		elements = append(elements, NewNodeElement(Node{
			ID:    100 + i,
			Coord: Coordinate{Lat: float64(i) * 0.001, Lon: float64(i) * -0.001},
			Info:  Info{Version: 1},
		}))
	}
	path := writeTestFile(t, FileInfo{}, elements)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	it, err := r.Elements()
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	defer it.Close()

	for i, want := range elements {
		got, err := it.Next()
		if err != nil {
			t.Fatalf("Next[%d]: %v", i, err)
		}
		if got.Node.ID != want.Node.ID {
			t.Errorf("id[%d] = %d, want %d", i, got.Node.ID, want.Node.ID)
		}
	}
}

func TestTypeBoundaryRoundTrip(t *testing.T) {
	elements := []Element{
		NewNodeElement(Node{ID: 1, Info: Info{Version: 1}}),
		NewNodeElement(Node{ID: 2, Info: Info{Version: 1}}),
		NewWayElement(Way{ID: 1, Info: Info{Version: 1}, Refs: []int64{1, 2}}),
		NewRelationElement(Relation{ID: 1, Info: Info{Version: 1}, Members: []Member{{Ref: 1, Type: MemberWay, Role: "outer"}}}),
	}
	path := writeTestFile(t, FileInfo{}, elements)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	it, err := r.Elements()
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	defer it.Close()

	var kinds []ElementKind
	for {
		e, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		kinds = append(kinds, e.Kind)
	}
	want := []ElementKind{KindNode, KindNode, KindWay, KindRelation}
	if len(kinds) != len(want) {
		t.Fatalf("got %d elements, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kind[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestUnsupportedFeatureRejected(t *testing.T) {
	info := FileInfo{RequiredFeatures: []string{"Exotic.Feature"}}
	path := writeTestFile(t, info, nil)

	if _, err := NewReader(path); err == nil {
		t.Fatal("expected UnsupportedFeatureError")
	}
}

func TestEmptyHeaderOnlyFile(t *testing.T) {
	path := writeTestFile(t, FileInfo{}, nil)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	it, err := r.Elements()
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	defer it.Close()
	if _, err := it.Next(); err != io.EOF {
		t.Errorf("expected io.EOF on empty file, got %v", err)
	}
}
