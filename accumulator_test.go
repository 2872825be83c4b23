package osmpbf

import "testing"

func TestAccumulatorFlushesAtCapacity(t *testing.T) {
	a := NewAccumulator(2)
	if flushed, ok, err := a.Add(NewNodeElement(Node{ID: 1})); err != nil || ok {
		t.Fatalf("add 1: flushed=%v ok=%v err=%v", flushed, ok, err)
	}
	flushed, ok, err := a.Add(NewNodeElement(Node{ID: 2}))
	if err != nil {
		t.Fatalf("add 2: %v", err)
	}
	if !ok || len(flushed) != 2 {
		t.Fatalf("expected a full block of 2, got %v (ok=%v)", flushed, ok)
	}
	if a.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after flush", a.Len())
	}
}

func TestAccumulatorFlushesOnTypeTransition(t *testing.T) {
	a := NewAccumulator(100)
	a.Add(NewNodeElement(Node{ID: 1}))
	a.Add(NewNodeElement(Node{ID: 2}))
	flushed, ok, err := a.Add(NewWayElement(Way{ID: 1}))
	if err != nil {
		t.Fatalf("add way: %v", err)
	}
	if !ok || len(flushed) != 2 {
		t.Fatalf("expected the 2 pending nodes flushed on transition, got %v (ok=%v)", flushed, ok)
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (the way just added)", a.Len())
	}
}

func TestAccumulatorRejectsTypeRegression(t *testing.T) {
	a := NewAccumulator(100)
	a.Add(NewWayElement(Way{ID: 1}))
	if _, _, err := a.Add(NewNodeElement(Node{ID: 1})); err == nil {
		t.Fatal("expected error adding a Node after a Way")
	}
}

func TestAccumulatorIgnoresSentinel(t *testing.T) {
	a := NewAccumulator(100)
	a.Add(NewNodeElement(Node{ID: 1}))
	if flushed, ok, err := a.Add(Sentinel); err != nil || ok || flushed != nil {
		t.Fatalf("sentinel should be a no-op, got flushed=%v ok=%v err=%v", flushed, ok, err)
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
}
