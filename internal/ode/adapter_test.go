package ode

import (
	"math"
	"testing"
)

// decayPrimary is ẏ = -y, exact solution y(t) = y0*e^-(t-t0).
type decayPrimary struct{}

func (decayPrimary) Dimension() int                     { return 1 }
func (decayPrimary) Init(t0 Real, y0 []Real, tF Real)    {}
func (decayPrimary) RHS(t Real, y []Real) ([]Real, error) { return []Real{-y[0]}, nil }

func TestFixedStepAdapterEulerFirstOrderError(t *testing.T) {
	run := func(dt float64) float64 {
		ode := NewExpandableODE[Real](decayPrimary{})
		integ := NewIntegrator[Real](NewFixedStepAdapter[Real](Real(dt), SchemeEuler))
		final, err := integ.Integrate(ode, State[Real]{T: 0, Y: []Real{1}}, 1)
		if err != nil {
			t.Fatalf("integrate dt=%v: %v", dt, err)
		}
		return math.Abs(float64(final.Y[0]) - math.Exp(-1))
	}

	errCoarse := run(0.01)
	errFine := run(0.005)

	// Halving the step should roughly halve a first-order method's error.
	ratio := errCoarse / errFine
	if ratio < 1.7 || ratio > 2.3 {
		t.Fatalf("euler error ratio = %v, want close to 2 (first-order)", ratio)
	}
}

func TestFixedStepAdapterRK4FourthOrderError(t *testing.T) {
	run := func(dt float64) float64 {
		ode := NewExpandableODE[Real](decayPrimary{})
		integ := NewIntegrator[Real](NewFixedStepAdapter[Real](Real(dt), SchemeRK4))
		final, err := integ.Integrate(ode, State[Real]{T: 0, Y: []Real{1}}, 1)
		if err != nil {
			t.Fatalf("integrate dt=%v: %v", dt, err)
		}
		return math.Abs(float64(final.Y[0]) - math.Exp(-1))
	}

	errCoarse := run(0.1)
	errFine := run(0.05)

	// Halving the step should cut a fourth-order method's error by ~16x.
	ratio := errCoarse / errFine
	if ratio < 12 || ratio > 20 {
		t.Fatalf("rk4 error ratio = %v, want close to 16 (fourth-order)", ratio)
	}

	if errFine > 1e-6 {
		t.Fatalf("rk4 error at dt=0.05 = %v, expected well under 1e-6", errFine)
	}
}

func TestFixedStepAdapterClipsFinalStepToTarget(t *testing.T) {
	ode := NewExpandableODE[Real](decayPrimary{})
	integ := NewIntegrator[Real](NewFixedStepAdapter[Real](Real(0.3), SchemeRK4))

	var lastT float64
	recorder := &FuncStepHandler[Real]{
		HandleStepFunc: func(interp StepInterpolator[Real]) error {
			lastT = float64(interp.CurrentState().T)
			return nil
		},
	}
	integ.AddStepHandler(recorder)

	final, err := integ.Integrate(ode, State[Real]{T: 0, Y: []Real{1}}, 1)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}

	if float64(final.T) != 1 {
		t.Fatalf("final.T = %v, want exactly 1 (clipped to target)", float64(final.T))
	}
	if lastT != 1 {
		t.Fatalf("last delivered step time = %v, want exactly 1", lastT)
	}
}

func TestFixedStepAdapterBackwardIntegration(t *testing.T) {
	ode := NewExpandableODE[Real](decayPrimary{})
	integ := NewIntegrator[Real](NewFixedStepAdapter[Real](Real(0.01), SchemeRK4))

	final, err := integ.Integrate(ode, State[Real]{T: 1, Y: []Real{Real(math.Exp(-1))}}, 0)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	if math.Abs(float64(final.Y[0])-1) > 1e-6 {
		t.Fatalf("backward final.Y[0] = %v, want 1", final.Y[0])
	}
	if float64(final.T) != 0 {
		t.Fatalf("final.T = %v, want exactly 0", float64(final.T))
	}
}
