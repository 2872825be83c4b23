package osmpbf

import (
	"io"
	"path/filepath"
	"testing"
)

func TestParallelWriterOrderRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reordered.osm.pbf")
	pw, err := NewParallelWriter(path, 4*defaultBlockSize, defaultBlockSize, FileInfo{}, Zlib)
	if err != nil {
		t.Fatalf("NewParallelWriter: %v", err)
	}

	const n = 500
	// Feed nodes in reverse id order within the Node phase, then a way.
	for i := n; i >= 1; i-- {
		if err := pw.WriteElement(NewNodeElement(Node{ID: int64(i), Info: Info{Version: 1}})); err != nil {
			t.Fatalf("WriteElement(node %d): %v", i, err)
		}
	}
	if err := pw.WriteElement(NewWayElement(Way{ID: 1, Info: Info{Version: 1}, Refs: []int64{1, 2}})); err != nil {
		t.Fatalf("WriteElement(way): %v", err)
	}
	if err := pw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	it, err := r.Elements()
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	defer it.Close()

	var lastKind ElementKind
	var lastNodeID int64
	haveLast := false
	for {
		e, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if haveLast && e.Kind < lastKind {
			t.Fatalf("type order violated: saw %v after %v", e.Kind, lastKind)
		}
		if e.Kind == KindNode {
			if haveLast && lastKind == KindNode && e.Node.ID < lastNodeID {
				t.Fatalf("id order violated within nodes: %d after %d", e.Node.ID, lastNodeID)
			}
			lastNodeID = e.Node.ID
		}
		lastKind = e.Kind
		haveLast = true
	}
}

func TestParallelWriterOrderLost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orderlost.osm.pbf")
	// A tiny ordering buffer forces an early flush, after which a
	// far-out-of-range element must trip OrderLostError.
	pw, err := NewParallelWriter(path, 4, 4, FileInfo{}, Uncompressed)
	if err != nil {
		t.Fatalf("NewParallelWriter: %v", err)
	}
	defer pw.Close()

	for i := 100; i < 200; i++ {
		if err := pw.WriteElement(NewNodeElement(Node{ID: int64(i), Info: Info{Version: 1}})); err != nil {
			// An early OrderLostError here is also an acceptable outcome
			// of a too-small ordering buffer; the property under test is
			// that disorder below the flushed bound is never silently
			// accepted.
			return
		}
	}
	// The lower bound (the first id of the last flushed block) is now far
	// above 1; an element at id 1 must be rejected rather than silently
	// reordered incorrectly.
	if err := pw.WriteElement(NewNodeElement(Node{ID: 1, Info: Info{Version: 1}})); err == nil {
		t.Fatal("expected OrderLostError for a far out-of-range element")
	} else if _, ok := err.(*OrderLostError); !ok {
		t.Fatalf("got %T, want *OrderLostError", err)
	}
}
