package ode

import (
	"math"
	"testing"
)

func TestHermiteInterpolatorMatchesEndpoints(t *testing.T) {
	prev := StateAndDerivative[Real]{T: 0, Y: []Real{0}, Yd: []Real{1}}
	curr := StateAndDerivative[Real]{T: 1, Y: []Real{1}, Yd: []Real{1}}
	h := NewHermiteInterpolator[Real](prev, curr, true)

	at0 := h.GetInterpolatedState(0)
	if at0.Y[0] != 0 {
		t.Fatalf("y(0) = %v, want 0", at0.Y[0])
	}
	at1 := h.GetInterpolatedState(1)
	if math.Abs(float64(at1.Y[0])-1) > 1e-12 {
		t.Fatalf("y(1) = %v, want 1", at1.Y[0])
	}

	// y(t) = t exactly reproduces this particular linear case at the
	// midpoint too.
	mid := h.GetInterpolatedState(0.5)
	if math.Abs(float64(mid.Y[0])-0.5) > 1e-9 {
		t.Fatalf("y(0.5) = %v, want 0.5", mid.Y[0])
	}
}

func TestRestrictIsIdempotent(t *testing.T) {
	prev := StateAndDerivative[Real]{T: 0, Y: []Real{0, 1}, Yd: []Real{1, -1}}
	curr := StateAndDerivative[Real]{T: 2, Y: []Real{2, -1}, Yd: []Real{1, -1}}
	h := NewHermiteInterpolator[Real](prev, curr, true)

	once := h.Restrict(0.5, 1.5).(*HermiteInterpolator[Real])
	twice := once.Restrict(0.5, 1.5).(*HermiteInterpolator[Real])

	if once.PreviousState().T != twice.PreviousState().T || once.CurrentState().T != twice.CurrentState().T {
		t.Fatalf("restrict not idempotent on bounds: once=%v/%v twice=%v/%v",
			once.PreviousState().T, once.CurrentState().T, twice.PreviousState().T, twice.CurrentState().T)
	}
	for i := range once.PreviousState().Y {
		if once.PreviousState().Y[i] != twice.PreviousState().Y[i] {
			t.Fatalf("restrict not idempotent on prev.Y[%d]", i)
		}
	}
}
