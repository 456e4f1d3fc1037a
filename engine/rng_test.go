package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatalf("same-seed RNGs diverged at draw %d", i)
		}
	}

	c := NewRNG(43)
	same := true
	d := NewRNG(42)
	for i := 0; i < 20; i++ {
		if c.Intn(1000) != d.Intn(1000) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical sequences")
	}
}

func TestBetween_Inclusive(t *testing.T) {
	rng := NewRNG(1)
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		v := rng.Between(-2, 2)
		if v < -2 || v > 2 {
			t.Fatalf("Between(-2, 2) = %d out of range", v)
		}
		seen[v] = true
	}
	for v := -2; v <= 2; v++ {
		if !seen[v] {
			t.Errorf("value %d never drawn across 500 samples", v)
		}
	}
}

func TestChance_Extremes(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 50; i++ {
		if rng.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !rng.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}

func TestFloat_Range(t *testing.T) {
	rng := NewRNG(9)
	for i := 0; i < 200; i++ {
		f := rng.Float()
		if f < 0 || f >= 1 {
			t.Fatalf("Float() = %v outside [0, 1)", f)
		}
	}
}

func TestWeightedSelect(t *testing.T) {
	rng := NewRNG(7)
	counts := make([]int, 3)
	for i := 0; i < 3000; i++ {
		idx := rng.WeightedSelect([]int{8, 1, 1})
		if idx < 0 || idx > 2 {
			t.Fatalf("index %d out of range", idx)
		}
		counts[idx]++
	}
	// The 8-weight entry should dominate both 1-weight entries.
	if counts[0] <= counts[1]*3 || counts[0] <= counts[2]*3 {
		t.Errorf("weighting not respected: %v", counts)
	}

	if idx := rng.WeightedSelect([]int{5}); idx != 0 {
		t.Errorf("single entry selection = %d, want 0", idx)
	}
}

func TestPosition_CountsEveryDraw(t *testing.T) {
	rng := NewRNG(3)
	if rng.Position() != 0 {
		t.Fatalf("fresh position = %d, want 0", rng.Position())
	}
	rng.Intn(10)
	rng.Between(1, 5)
	rng.Float()
	rng.Chance(0.5)
	rng.WeightedSelect([]int{1, 2})
	if rng.Position() != 5 {
		t.Errorf("position = %d after 5 draws, want 5", rng.Position())
	}
}

func TestRestoreRNG_ResumesSequence(t *testing.T) {
	orig := NewRNG(42)
	for i := 0; i < 10; i++ {
		orig.Float()
	}
	var want []float64
	for i := 0; i < 10; i++ {
		want = append(want, orig.Float())
	}

	restored := RestoreRNG(42, 10)
	if restored.Position() != 10 {
		t.Fatalf("restored position = %d, want 10", restored.Position())
	}
	for i, w := range want {
		if got := restored.Float(); got != w {
			t.Fatalf("draw %d after restore = %v, want %v", i, got, w)
		}
	}
}
