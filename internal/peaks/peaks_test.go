package peaks

import "testing"

func TestWindowMaxPools(t *testing.T) {
	s := &Set{Values: []float64{0, 0.2, 0.9, 0.1}, Duration: 4}
	got := s.Window(0, 4, 2)
	if len(got) != 2 {
		t.Fatalf("got %d columns, want 2", len(got))
	}
	if got[0] != 0.2 || got[1] != 0.9 {
		t.Errorf("window = %v, want [0.2 0.9]", got)
	}
}

func TestWindowOutOfRangeIsZero(t *testing.T) {
	s := &Set{Values: []float64{0.5}, Duration: 1}
	got := s.Window(5, 2, 3)
	for i, v := range got {
		if v != 0 {
			t.Errorf("column %d = %v, want 0 outside the data", i, v)
		}
	}
}

func TestWindowDegenerateInputs(t *testing.T) {
	var nilSet *Set
	if out := nilSet.Window(0, 1, 4); out != nil {
		t.Error("nil set should yield nil")
	}
	s := &Set{Values: []float64{0.5}, Duration: 1}
	if out := s.Window(0, 0, 4); out != nil {
		t.Error("zero span should yield nil")
	}
	if out := s.Window(0, 1, 0); out != nil {
		t.Error("zero columns should yield nil")
	}
}
