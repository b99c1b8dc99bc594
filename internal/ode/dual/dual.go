// Package dual provides a forward-mode dual-number [Scalar] instantiation
// for the ODE engine in github.com/adaptive-ode/dynsim/internal/ode,
// enabling first-order sensitivity analysis: integrating a Number-valued
// state alongside its derivative with respect to a perturbed parameter or
// initial condition carries that sensitivity through every arithmetic
// operation automatically, the way a Taylor-series or
// automatic-differentiation scalar would.
package dual

import "math"

// Number is a+b·ε, where ε²=0: a is the value, b is its derivative with
// respect to the tracked parameter.
type Number struct {
	A, B float64
}

// New returns a constant (zero-derivative) Number.
func New(a float64) Number { return Number{A: a} }

// Seed returns a Number whose derivative with respect to the tracked
// parameter is 1 — the starting point for propagating a sensitivity.
func Seed(a float64) Number { return Number{A: a, B: 1} }

func (n Number) Add(o Number) Number { return Number{A: n.A + o.A, B: n.B + o.B} }
func (n Number) Sub(o Number) Number { return Number{A: n.A - o.A, B: n.B - o.B} }
func (n Number) Mul(o Number) Number {
	return Number{A: n.A * o.A, B: n.A*o.B + n.B*o.A}
}
func (n Number) Quo(o Number) Number {
	return Number{A: n.A / o.A, B: (n.B*o.A - n.A*o.B) / (o.A * o.A)}
}
func (n Number) Neg() Number     { return Number{A: -n.A, B: -n.B} }
func (n Number) Real() float64   { return n.A }
func (n Number) NewFromFloat(f float64) Number { return Number{A: f} }

func (n Number) Sqrt() Number {
	s := math.Sqrt(n.A)
	return Number{A: s, B: n.B / (2 * s)}
}

func (n Number) Sin() Number {
	return Number{A: math.Sin(n.A), B: n.B * math.Cos(n.A)}
}

func (n Number) Cos() Number {
	return Number{A: math.Cos(n.A), B: -n.B * math.Sin(n.A)}
}
