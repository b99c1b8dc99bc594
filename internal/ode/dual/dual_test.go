package dual

import (
	"math"
	"testing"
)

func TestNumberArithmeticTracksDerivative(t *testing.T) {
	x := Seed(2.0) // d/dx x = 1

	// f(x) = x^2 + 3
	f := x.Mul(x).Add(New(3))
	if f.A != 7 {
		t.Fatalf("f(2) = %v, want 7", f.A)
	}
	if f.B != 4 { // f'(x) = 2x = 4
		t.Fatalf("f'(2) = %v, want 4", f.B)
	}
}

func TestNumberSinCos(t *testing.T) {
	x := Seed(0.0)
	s := x.Sin()
	if math.Abs(s.A-0) > 1e-12 {
		t.Fatalf("sin(0) = %v", s.A)
	}
	if math.Abs(s.B-1) > 1e-12 { // d/dx sin(x) at 0 = cos(0) = 1
		t.Fatalf("sin'(0) = %v, want 1", s.B)
	}
}

func TestNumberQuo(t *testing.T) {
	x := Seed(4.0)
	f := New(1).Quo(x) // f(x) = 1/x, f'(x) = -1/x^2
	if math.Abs(f.A-0.25) > 1e-12 {
		t.Fatalf("1/4 = %v", f.A)
	}
	if math.Abs(f.B-(-1.0/16.0)) > 1e-12 {
		t.Fatalf("f'(4) = %v, want -1/16", f.B)
	}
}
