package random

import (
	"sync"
	"testing"
)

func TestSeededDeterminism(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestLockedConcurrent(t *testing.T) {
	src := New(7)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if v := src.IntN(10); v < 0 || v >= 10 {
					t.Errorf("out of range: %d", v)
					return
				}
				src.Float64()
				src.Int64N(5)
			}
		}()
	}
	wg.Wait()
}

func TestChoice(t *testing.T) {
	items := []string{"a", "b", "c"}
	seen := make(map[string]bool)
	src := NewSeeded(1)
	for i := 0; i < 200; i++ {
		seen[Choice[string](src, items)] = true
	}
	if len(seen) != len(items) {
		t.Errorf("expected every item to be drawn, got %v", seen)
	}
}
