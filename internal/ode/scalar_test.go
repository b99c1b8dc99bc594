package ode

import (
	"math"
	"testing"
)

func TestRealArithmetic(t *testing.T) {
	a, b := Real(3), Real(4)
	if a.Add(b) != 7 {
		t.Fatalf("add: got %v", a.Add(b))
	}
	if a.Mul(b) != 12 {
		t.Fatalf("mul: got %v", a.Mul(b))
	}
	if a.Sub(b) != -1 {
		t.Fatalf("sub: got %v", a.Sub(b))
	}
	if a.Quo(b) != 0.75 {
		t.Fatalf("quo: got %v", a.Quo(b))
	}
	if a.Neg() != -3 {
		t.Fatalf("neg: got %v", a.Neg())
	}
	if a.Real() != 3 {
		t.Fatalf("real: got %v", a.Real())
	}
	if math.Abs(float64(Real(9).Sqrt())-3) > 1e-12 {
		t.Fatalf("sqrt: got %v", Real(9).Sqrt())
	}
}

func TestUlp(t *testing.T) {
	if ulp(1.0) <= 0 {
		t.Fatal("ulp(1.0) should be positive")
	}
	if ulp(0.0) != math.SmallestNonzeroFloat64 {
		t.Fatalf("ulp(0) = %v", ulp(0.0))
	}
}
