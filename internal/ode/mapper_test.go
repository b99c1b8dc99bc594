package ode

import "testing"

func TestMapperRoundTrip(t *testing.T) {
	m := NewMapper(3)
	if idx := m.AddSecondary(3); idx != 1 {
		t.Fatalf("expected secondary index 1, got %d", idx)
	}
	if idx := m.AddSecondary(5); idx != 2 {
		t.Fatalf("expected secondary index 2, got %d", idx)
	}

	if got := m.TotalDimension(); got != 11 {
		t.Fatalf("expected total dimension 11, got %d", got)
	}
	if got := m.NumberOfEquations(); got != 3 {
		t.Fatalf("expected 3 equations, got %d", got)
	}

	complete := make([]float64, 11)
	for i := range complete {
		complete[i] = float64(i)
	}

	for idx := 0; idx <= 2; idx++ {
		block, err := m.Extract(idx, complete)
		if err != nil {
			t.Fatalf("extract(%d): %v", idx, err)
		}
		clone := make([]float64, 11)
		if err := m.Insert(idx, block, clone); err != nil {
			t.Fatalf("insert(%d): %v", idx, err)
		}
		// Only the block at idx should be nonzero in clone.
		reextracted, err := m.Extract(idx, clone)
		if err != nil {
			t.Fatalf("re-extract(%d): %v", idx, err)
		}
		for i := range block {
			if block[i] != reextracted[i] {
				t.Fatalf("round trip mismatch at block %d index %d: %v != %v", idx, i, block[i], reextracted[i])
			}
		}
	}
}

func TestMapperDimensionMismatch(t *testing.T) {
	m := NewMapper(3)
	m.AddSecondary(2)

	if _, err := m.Extract(0, make([]float64, 4)); err != ErrDimensionMismatch {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if err := m.Insert(0, make([]float64, 3), make([]float64, 4)); err != ErrDimensionMismatch {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if err := m.Insert(0, make([]float64, 2), make([]float64, 5)); err != ErrDimensionMismatch {
		t.Fatalf("expected ErrDimensionMismatch for wrong block width, got %v", err)
	}
}

func TestMapperOutOfRange(t *testing.T) {
	m := NewMapper(3)
	m.AddSecondary(2)

	if _, err := m.Extract(2, make([]float64, 5)); err != ErrOutOfRange {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := m.Extract(-1, make([]float64, 5)); err != ErrOutOfRange {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}
