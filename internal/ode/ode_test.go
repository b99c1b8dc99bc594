package ode

import (
	"math"
	"testing"
)

// linearPrimary is ẏ = (0, 1, 2), constant regardless of y.
type linearPrimary struct{}

func (linearPrimary) Dimension() int                     { return 3 }
func (linearPrimary) Init(t0 Real, y0 []Real, tF Real)    {}
func (linearPrimary) RHS(t Real, y []Real) ([]Real, error) {
	return []Real{0, 1, 2}, nil
}

// negLinearSecondary is ẏS = -(0, 1, 2, ...) sized to dim.
type negLinearSecondary struct{ dim int }

func (s negLinearSecondary) Dimension() int { return s.dim }
func (s negLinearSecondary) Init(t0 Real, yP0, yS0 []Real, tF Real) {}
func (s negLinearSecondary) RHS(t Real, yP, ydP, yS []Real) ([]Real, error) {
	out := make([]Real, s.dim)
	for i := range out {
		out[i] = Real(-float64(i))
	}
	return out, nil
}

func TestScenarioPrimaryOnlyLinear(t *testing.T) {
	ode := NewExpandableODE[Real](linearPrimary{})
	integ := NewIntegrator[Real](NewFixedStepAdapter[Real](Real(1), SchemeRK4))

	s0 := State[Real]{T: 10, Y: []Real{0, 1, 2}}
	final, err := integ.Integrate(ode, s0, 100)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}

	want := []float64{0, 91, 182}
	for i, w := range want {
		if math.Abs(float64(final.Y[i])-w) > 1e-9 {
			t.Fatalf("y[%d] = %v, want %v", i, final.Y[i], w)
		}
	}
	if integ.GetEvaluations() <= 0 {
		t.Fatal("expected a positive, finite evaluation count")
	}
}

func TestScenarioPrimaryPlusTwoSecondaries(t *testing.T) {
	ode := NewExpandableODE[Real](linearPrimary{})
	if idx := ode.AddSecondary(negLinearSecondary{dim: 3}); idx != 1 {
		t.Fatalf("expected secondary index 1, got %d", idx)
	}
	if idx := ode.AddSecondary(negLinearSecondary{dim: 5}); idx != 2 {
		t.Fatalf("expected secondary index 2, got %d", idx)
	}

	if got := ode.Mapper().TotalDimension(); got != 11 {
		t.Fatalf("expected total dimension 11, got %d", got)
	}
	if got := ode.Mapper().NumberOfEquations(); got != 3 {
		t.Fatalf("expected 3 equations, got %d", got)
	}

	y0 := make([]Real, 11)
	for i := range y0 {
		y0[i] = Real(i)
	}
	if err := ode.Init(10, y0, 100); err != nil {
		t.Fatalf("init: %v", err)
	}

	yd, err := ode.ComputeDerivatives(10, y0)
	if err != nil {
		t.Fatalf("computeDerivatives: %v", err)
	}

	want := []float64{0, 1, 2, 0, -1, -2, 0, -1, -2, -3, -4}
	for i, w := range want {
		if float64(yd[i]) != w {
			t.Fatalf("yd[%d] = %v, want %v", i, yd[i], w)
		}
	}
}

// harmonicPrimary is ẏP = (y1, -y0): simple harmonic oscillator.
type harmonicPrimary struct{}

func (harmonicPrimary) Dimension() int                  { return 2 }
func (harmonicPrimary) Init(t0 Real, y0 []Real, tF Real) {}
func (harmonicPrimary) RHS(t Real, y []Real) ([]Real, error) {
	return []Real{y[1], -y[0]}, nil
}

// linearSecondary is ẏS = -1.
type linearSecondary struct{}

func (linearSecondary) Dimension() int { return 1 }
func (linearSecondary) Init(t0 Real, yP0, yS0 []Real, tF Real) {}
func (linearSecondary) RHS(t Real, yP, ydP, yS []Real) ([]Real, error) {
	return []Real{-1}, nil
}

func TestScenarioHarmonicWithLinearSecondary(t *testing.T) {
	ode := NewExpandableODE[Real](harmonicPrimary{})
	ode.AddSecondary(linearSecondary{})

	integ := NewIntegrator[Real](NewFixedStepAdapter[Real](Real(1e-3), SchemeRK4))

	s0 := State[Real]{T: 0, Y: []Real{0, 1, 1}}
	final, err := integ.Integrate(ode, s0, 10)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}

	if math.Abs(float64(final.Y[0])-math.Sin(10)) > 1e-6 {
		t.Fatalf("yP0 = %v, want sin(10) = %v", final.Y[0], math.Sin(10))
	}
	if math.Abs(float64(final.Y[1])-math.Cos(10)) > 1e-6 {
		t.Fatalf("yP1 = %v, want cos(10) = %v", final.Y[1], math.Cos(10))
	}
	if math.Abs(float64(final.Y[2])-(1-10)) > 1e-6 {
		t.Fatalf("yS = %v, want %v", final.Y[2], 1-10)
	}
}

func TestIntervalTooSmallFailsBeforeAnyCallback(t *testing.T) {
	calledInit := false
	ode := NewExpandableODE[Real](&countingPrimary{onInit: func() { calledInit = true }})
	integ := NewIntegrator[Real](NewFixedStepAdapter[Real](Real(1), SchemeEuler))

	_, err := integ.Integrate(ode, State[Real]{T: 5, Y: []Real{0}}, 5)
	if err != ErrIntervalTooSmall {
		t.Fatalf("expected ErrIntervalTooSmall, got %v", err)
	}
	if calledInit {
		t.Fatal("ode.Init must not be called before the interval sanity check")
	}
}

type countingPrimary struct {
	onInit func()
}

func (c *countingPrimary) Dimension() int { return 1 }
func (c *countingPrimary) Init(t0 Real, y0 []Real, tF Real) {
	if c.onInit != nil {
		c.onInit()
	}
}
func (c *countingPrimary) RHS(t Real, y []Real) ([]Real, error) { return []Real{0}, nil }
