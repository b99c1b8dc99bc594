package ode

import "math"

// Scalar is the algebraic field element that time and state are expressed
// in. Real doubles ([Real]) are one instantiation; a dual-number scalar
// enabling sensitivity analysis is another
// (github.com/adaptive-ode/dynsim/internal/ode/dual.Number). Engine code is
// polymorphic over Scalar rather than hard-coded to float64.
type Scalar[S any] interface {
	Add(S) S
	Sub(S) S
	Mul(S) S
	Quo(S) S
	Neg() S
	Real() float64
	Sqrt() S
	Sin() S
	Cos() S
	NewFromFloat(float64) S
}

// Real is the float64 instantiation of [Scalar].
type Real float64

func (r Real) Add(o Real) Real            { return r + o }
func (r Real) Sub(o Real) Real            { return r - o }
func (r Real) Mul(o Real) Real            { return r * o }
func (r Real) Quo(o Real) Real            { return r / o }
func (r Real) Neg() Real                  { return -r }
func (r Real) Real() float64              { return float64(r) }
func (r Real) Sqrt() Real                 { return Real(math.Sqrt(float64(r))) }
func (r Real) Sin() Real                  { return Real(math.Sin(float64(r))) }
func (r Real) Cos() Real                  { return Real(math.Cos(float64(r))) }
func (r Real) NewFromFloat(f float64) Real { return Real(f) }

// ulp returns the spacing between x and the next representable float64,
// matching java.lang.Math.ulp semantics used by the source this engine
// generalizes.
func ulp(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	x = math.Abs(x)
	if math.IsInf(x, 1) {
		return math.Inf(1)
	}
	if x == math.MaxFloat64 {
		return x - math.Nextafter(x, 0)
	}
	return math.Nextafter(x, math.Inf(1)) - x
}
