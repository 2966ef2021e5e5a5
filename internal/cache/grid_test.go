package cache

import "testing"

func TestGridPushRespectsCapacity(t *testing.T) {
	g := NewGrid[int](2, 3, func(age int) int { return 10 / (age + 1) })
	if got := g.Capacity(0); got != 10 {
		t.Fatalf("expected capacity 10 at age 0, got %d", got)
	}
	if got := g.Capacity(1); got != 5 {
		t.Fatalf("expected capacity 5 at age 1, got %d", got)
	}

	for i := 0; i < 5; i++ {
		if _, stored := g.Push(0, 1, i); !stored {
			t.Fatalf("expected push %d to succeed within capacity", i)
		}
	}
	if _, stored := g.Push(0, 1, 99); stored {
		t.Fatal("expected push beyond capacity to fail")
	}
	if got := g.Len(0, 1); got != 5 {
		t.Fatalf("expected len 5, got %d", got)
	}
}

func TestGridZeroCapacityNeverStores(t *testing.T) {
	g := NewGrid[int](1, 1, func(age int) int { return 0 })
	if _, stored := g.Push(0, 0, 1); stored {
		t.Fatal("expected zero-capacity grid to reject every push")
	}
	if g.Len(0, 0) != 0 {
		t.Fatal("expected len 0")
	}
}

func TestGridOutOfBoundsIsSafe(t *testing.T) {
	g := NewGrid[int](2, 2, func(age int) int { return 4 })
	if _, stored := g.Push(5, 0, 1); stored {
		t.Fatal("expected out-of-range id to fail")
	}
	if got := g.Len(5, 0); got != 0 {
		t.Fatalf("expected len 0 for out-of-range id, got %d", got)
	}
	if got := g.Capacity(5); got != 0 {
		t.Fatalf("expected capacity 0 for out-of-range age, got %d", got)
	}
}

func TestGridReservePointerStaysValidAfterLaterReserves(t *testing.T) {
	g := NewGrid[int](1, 1, func(age int) int { return 4 })
	slotA, _, ok := g.Reserve(0, 0)
	if !ok {
		t.Fatal("expected first reserve to succeed")
	}
	*slotA = 111
	_, _, _ = g.Reserve(0, 0)
	_, _, _ = g.Reserve(0, 0)
	if got, _ := g.Get(0, 0, 0); got != 111 {
		t.Fatalf("expected reserved slot to keep its value across later reserves, got %d", got)
	}
}

func TestGridForEachVisitsOnlyFilledSlots(t *testing.T) {
	g := NewGrid[string](2, 1, func(age int) int { return 3 })
	g.Push(0, 0, "a")
	g.Push(1, 0, "b")
	g.Push(1, 0, "c")

	seen := map[string]bool{}
	count := 0
	g.ForEach(func(id, age, variant int, value string) {
		count++
		seen[value] = true
	})
	if count != 3 {
		t.Fatalf("expected 3 visited entries, got %d", count)
	}
	for _, want := range []string{"a", "b", "c"} {
		if !seen[want] {
			t.Fatalf("expected to visit %q", want)
		}
	}
}
