package osmpbf

import (
	"path/filepath"
	"testing"
)

func TestWriterRejectsTypeRegression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.osm.pbf")
	w, err := NewWriter(path, FileInfo{}, Zlib)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteElement(NewWayElement(Way{ID: 1, Info: Info{Version: 1}})); err != nil {
		t.Fatalf("first WriteElement: %v", err)
	}
	if err := w.WriteElement(NewNodeElement(Node{ID: 1, Info: Info{Version: 1}})); err == nil {
		t.Fatal("expected error writing a Node after a Way")
	}
}

func TestWriterBlockBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boundary.osm.pbf")
	w, err := NewWriter(path, FileInfo{}, Uncompressed)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for i := int64(0); i < int64(defaultBlockSize)*2+3; i++ {
		if err := w.WriteElement(NewNodeElement(Node{ID: i + 1, Info: Info{Version: 1}})); err != nil {
			t.Fatalf("WriteElement[%d]: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
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

	count := 0
	for {
		if _, err := it.Next(); err != nil {
			break
		}
		count++
	}
	want := int(defaultBlockSize)*2 + 3
	if count != want {
		t.Errorf("got %d elements, want %d", count, want)
	}
}
