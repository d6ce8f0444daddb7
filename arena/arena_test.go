package arena

import "testing"

func TestAllocAlignment(t *testing.T) {
	a := New(64)
	b1 := a.Alloc(3)
	b2 := a.Alloc(3)
	if len(b1) != 3 || len(b2) != 3 {
		t.Fatalf("unexpected slice lengths: %d, %d", len(b1), len(b2))
	}
	if a.Used()%align != 0 {
		t.Errorf("Used() = %d, not 4-byte aligned", a.Used())
	}
}

func TestAllocOverflowPanics(t *testing.T) {
	a := New(8)
	defer func() {
		if recover() == nil {
			t.Errorf("Alloc() did not panic on overflow")
		}
	}()
	a.Alloc(64)
}

func TestReset(t *testing.T) {
	a := New(16)
	a.Alloc(8)
	a.Reset()
	if a.Used() != 0 {
		t.Errorf("Used() after Reset = %d, want 0", a.Used())
	}
}
