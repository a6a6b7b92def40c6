package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 32; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed must yield the same float sequence")
		}
		if a.IntN(100) != b.IntN(100) {
			t.Fatal("same seed must yield the same int sequence")
		}
	}
}

func TestIntNBounds(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 100; i++ {
		if n := r.IntN(5); n < 0 || n >= 5 {
			t.Fatalf("IntN(5) = %d", n)
		}
	}
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
	if got := r.IntN(-3); got != 0 {
		t.Fatalf("IntN(-3) = %d, want 0", got)
	}
}
