package sparse

import "testing"

func TestSparseSetInsertAndContains(t *testing.T) {
	s := NewSparseSet(10)
	if s.Contains(5) {
		t.Fatal("5 should not be in an empty set")
	}
	s.Insert(5)
	if !s.Contains(5) {
		t.Fatal("5 should be in the set after Insert")
	}
	if s.Contains(3) {
		t.Fatal("3 was never inserted")
	}
}

func TestSparseSetInsertDuplicateIsNoOp(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(5)
	s.Insert(5)
	if s.Size() != 1 {
		t.Fatalf("expected Size()=1 after duplicate insert, got %d", s.Size())
	}
}

func TestSparseSetContainsOutOfBounds(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(5)
	if s.Contains(10) {
		t.Error("Contains(10) should be false for capacity 10")
	}
	if s.Contains(100) {
		t.Error("Contains(100) should be false for capacity 10")
	}
}

func TestSparseSetRemoveLastElement(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(5)
	s.Remove(5)
	if s.Size() != 0 {
		t.Errorf("expected empty set after removing last element, got %d", s.Size())
	}
	if s.Contains(5) {
		t.Error("5 should not be in set after removal")
	}
}

func TestSparseSetRemoveMiddleElement(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(1)
	s.Insert(2)
	s.Insert(3)

	s.Remove(1)
	if s.Contains(1) {
		t.Error("1 should not be in set after removal")
	}
	if !s.Contains(2) {
		t.Error("2 should still be in set")
	}
	if !s.Contains(3) {
		t.Error("3 should still be in set")
	}
	if s.Size() != 2 {
		t.Errorf("expected Size()=2, got %d", s.Size())
	}
}

func TestSparseSetRemoveNonExistent(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(5)
	s.Remove(3) // not in set, no-op
	if s.Size() != 1 {
		t.Errorf("expected Size()=1, got %d", s.Size())
	}
}

func TestSparseSetClear(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(1)
	s.Insert(2)
	s.Clear()
	if !s.IsEmpty() {
		t.Fatal("expected IsEmpty() after Clear")
	}
	if s.Contains(1) || s.Contains(2) {
		t.Fatal("Clear should remove all members")
	}
}

func TestSparseSetValues(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(7)
	s.Insert(2)
	s.Insert(5)

	got := s.Values()
	if len(got) != 3 {
		t.Fatalf("expected 3 values, got %d", len(got))
	}
	// insertion order: 7, 2, 5
	if got[0] != 7 || got[1] != 2 || got[2] != 5 {
		t.Errorf("expected [7,2,5], got %v", got)
	}
}

func TestSparseSetIter(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(7)
	s.Insert(2)
	s.Insert(5)

	var collected []uint32
	s.Iter(func(v uint32) { collected = append(collected, v) })

	if len(collected) != 3 {
		t.Fatalf("expected 3 items, got %d", len(collected))
	}
	if collected[0] != 7 || collected[1] != 2 || collected[2] != 5 {
		t.Errorf("expected [7,2,5], got %v", collected)
	}
}

func TestSparseSetIterEmpty(t *testing.T) {
	s := NewSparseSet(10)
	called := false
	s.Iter(func(uint32) { called = true })
	if called {
		t.Error("Iter should not call the function on an empty set")
	}
}
