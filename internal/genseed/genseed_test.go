package genseed

import "testing"

func distinct(t *testing.T, values []int) {
	t.Helper()
	seen := make(map[int]bool, len(values))
	for _, v := range values {
		if seen[v] {
			t.Fatalf("duplicate value %d in %v", v, values)
		}
		seen[v] = true
	}
}

func TestGenerateProducesDistinctValues(t *testing.T) {
	values := Generate(50, 1)
	if len(values) != 50 {
		t.Fatalf("got %d values, want 50", len(values))
	}
	distinct(t, values)
	for _, v := range values {
		if v < 0 || v >= 50 {
			t.Fatalf("value %d out of range [0,50)", v)
		}
	}
}

func TestGenerateIsSeedDeterministic(t *testing.T) {
	a := Generate(30, 99)
	b := Generate(30, 99)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: %d vs %d, same seed should reproduce", i, a[i], b[i])
		}
	}
}

func TestGenerateDiffersAcrossSeeds(t *testing.T) {
	a := Generate(30, 1)
	b := Generate(30, 2)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical permutations")
	}
}

func TestGenerateZero(t *testing.T) {
	values := Generate(0, 1)
	if len(values) != 0 {
		t.Fatalf("got %d values, want 0", len(values))
	}
}

func TestGenerateRangeProducesDistinctValuesInRange(t *testing.T) {
	values := GenerateRange(10, 100, 120, 5)
	if len(values) != 10 {
		t.Fatalf("got %d values, want 10", len(values))
	}
	distinct(t, values)
	for _, v := range values {
		if v < 100 || v >= 120 {
			t.Fatalf("value %d out of range [100,120)", v)
		}
	}
}

func TestGenerateRangeIsSeedDeterministic(t *testing.T) {
	a := GenerateRange(15, 0, 50, 42)
	b := GenerateRange(15, 0, 50, 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: %d vs %d, same seed should reproduce", i, a[i], b[i])
		}
	}
}
