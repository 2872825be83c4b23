package osmpbf

import (
	"sync"
	"testing"
)

func TestParallelForEachVisitsEveryElementAndSentinel(t *testing.T) {
	var elements []Element
	for i := int64(0); i < int64(defaultBlockSize)+5; i++ {
		elements = append(elements, NewNodeElement(Node{ID: i + 1, Info: Info{Version: 1}}))
	}
	path := writeTestFile(t, FileInfo{}, elements)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	var (
		mu        sync.Mutex
		seen      = make(map[int64]bool)
		sentinels int
	)
	err = r.ParallelForEach(4, func(e Element) error {
		mu.Lock()
		defer mu.Unlock()
		if e.Kind == KindSentinel {
			sentinels++
			return nil
		}
		seen[e.Node.ID] = true
		return nil
	})
	if err != nil {
		t.Fatalf("ParallelForEach: %v", err)
	}
	if len(seen) != len(elements) {
		t.Errorf("saw %d distinct nodes, want %d", len(seen), len(elements))
	}
	if sentinels == 0 {
		t.Error("expected at least one sentinel")
	}
}

func TestParallelForEachPropagatesError(t *testing.T) {
	elements := []Element{NewNodeElement(Node{ID: 1, Info: Info{Version: 1}})}
	path := writeTestFile(t, FileInfo{}, elements)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	wantErr := NewMalformedError("boom")
	err = r.ParallelForEach(2, func(e Element) error {
		if e.Kind == KindNode {
			return wantErr
		}
		return nil
	})
	if err != wantErr {
		t.Fatalf("got %v, want %v", err, wantErr)
	}
}

func TestCalculateBoundingBox(t *testing.T) {
	elements := []Element{
		NewNodeElement(Node{ID: 1, Coord: Coordinate{Lat: 10, Lon: 20}, Info: Info{Version: 1}}),
		NewNodeElement(Node{ID: 2, Coord: Coordinate{Lat: -5, Lon: -30}, Info: Info{Version: 1}}),
		NewNodeElement(Node{ID: 3, Coord: Coordinate{Lat: 40, Lon: 5}, Info: Info{Version: 1}}),
	}
	path := writeTestFile(t, FileInfo{}, elements)

	box, err := CalculateBoundingBox(path, 2)
	if err != nil {
		t.Fatalf("CalculateBoundingBox: %v", err)
	}
	if box.Top < 39.9 || box.Top > 40.1 {
		t.Errorf("Top = %v, want ~40", box.Top)
	}
	if box.Bottom < -5.1 || box.Bottom > -4.9 {
		t.Errorf("Bottom = %v, want ~-5", box.Bottom)
	}
	if box.Left < -30.1 || box.Left > -29.9 {
		t.Errorf("Left = %v, want ~-30", box.Left)
	}
	if box.Right < 19.9 || box.Right > 20.1 {
		t.Errorf("Right = %v, want ~20", box.Right)
	}
}
