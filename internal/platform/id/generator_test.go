package id

import "testing"

func TestMatchID_IndependentOfSideOrder(t *testing.T) {
	t.Parallel()

	a := MatchID("2024-03-15", "real-madrid", "breogan")
	b := MatchID("2024-03-15", "breogan", "real-madrid")
	if a != b {
		t.Fatalf("MatchID depends on order: %q vs %q", a, b)
	}
	if a != "20240315_breogan_real-madrid" {
		t.Fatalf("MatchID=%q", a)
	}
}

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	g := NewRandomGenerator()
	first, err := g.NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	second, err := g.NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	if len(first) != 32 || first == second {
		t.Fatalf("unexpected ids %q %q", first, second)
	}
}
