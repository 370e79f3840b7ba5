package tour

import (
	"sync"
	"testing"
)

func TestRegistryLastWriterWins(t *testing.T) {
	r := NewRegistry()
	r.Register(TargetAddButton, Rect{X: 1, Y: 2, W: 3, H: 4})
	r.Register(TargetAddButton, Rect{X: 10, Y: 20, W: 30, H: 40})

	rect, ok := r.Lookup(TargetAddButton)
	if !ok {
		t.Fatal("expected a rect")
	}
	if rect != (Rect{X: 10, Y: 20, W: 30, H: 40}) {
		t.Fatalf("rect = %+v, want the later registration", rect)
	}
}

func TestRegistryAbsentIsNotAnError(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup(TargetStreakBadge); ok {
		t.Fatal("lookup of unregistered target returned a rect")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Register(TargetTabBar, Rect{X: n, Y: j, W: 10, H: 1})
				r.Lookup(TargetTabBar)
			}
		}(i)
	}
	wg.Wait()
	if _, ok := r.Lookup(TargetTabBar); !ok {
		t.Fatal("rect lost after concurrent writes")
	}
}
