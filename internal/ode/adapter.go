package ode

import (
	"github.com/adaptive-ode/dynsim/internal/dynamo"
	"github.com/adaptive-ode/dynsim/internal/integrators"
)

// Scheme selects which fixed-step scheme [FixedStepAdapter] advances
// with. For the [Real] instantiation these dispatch straight to
// internal/integrators' own Euler/RK4/RK45 tableaux against a
// dynamo.System view of the ODE's right-hand side; SchemeRK45 there
// asks for a single Dormand-Prince step at the adapter's fixed dt
// (integrators.RK45.Step, which discards the step size its embedded
// error estimate proposes), since step-size control is this package's
// job, not the wrapped stepper's. Only under
// a non-Real Scalar instantiation (github.com/adaptive-ode/dynsim/internal/ode/dual,
// for sensitivity analysis) does the adapter fall back to hand-rolled,
// Scalar-polymorphic restatements of the same tableaux, because
// internal/integrators is float64-concrete and has no dual-number leg.
type Scheme int

const (
	// SchemeEuler is the forward Euler method (order 1).
	SchemeEuler Scheme = iota
	// SchemeRK4 is the classical 4-stage Runge-Kutta method (order 4).
	SchemeRK4
	// SchemeRK45 takes one fixed-size Dormand-Prince stage (order 5),
	// discarding its embedded error estimate. Real-only: falls back to
	// SchemeRK4 under a non-Real Scalar.
	SchemeRK45
)

// FixedStepAdapter wraps a fixed nominal step size and scheme as a
// [Stepper], producing a [HermiteInterpolator] per accepted step. It
// clips its nominal step so the final step of an integration lands
// exactly on tTarget.
type FixedStepAdapter[S Scalar[S]] struct {
	Dt     S
	Scheme Scheme
}

// NewFixedStepAdapter returns an adapter taking steps of magnitude |dt|
// (the sign is derived from the direction of travel on each call).
func NewFixedStepAdapter[S Scalar[S]](dt S, scheme Scheme) *FixedStepAdapter[S] {
	return &FixedStepAdapter[S]{Dt: dt, Scheme: scheme}
}

func (a *FixedStepAdapter[S]) ProposeStep(rhs DerivativeFunc[S], current StateAndDerivative[S], tTarget S) (StateAndDerivative[S], StepInterpolator[S], error) {
	forward := tTarget.Real() >= current.T.Real()

	dt := a.Dt
	if dt.Real() < 0 {
		dt = dt.Neg()
	}
	if !forward {
		dt = dt.Neg()
	}

	remaining := tTarget.Sub(current.T)
	if forward {
		if dt.Real() > remaining.Real() {
			dt = remaining
		}
	} else {
		if dt.Real() < remaining.Real() {
			dt = remaining
		}
	}

	next, err := a.step(rhs, current, dt)
	if err != nil {
		return StateAndDerivative[S]{}, nil, err
	}

	interp := NewHermiteInterpolator[S](current, next, forward)
	return next, interp, nil
}

// step dispatches to the teacher-backed Real path when S is
// instantiated as Real, and to the generic Scalar-polymorphic
// fallback otherwise. The type assertion on the receiver itself
// (rather than on a value of S) is what lets a single generic method
// body reach a concrete, non-generic collaborator for one
// instantiation only.
func (a *FixedStepAdapter[S]) step(rhs DerivativeFunc[S], cur StateAndDerivative[S], dt S) (StateAndDerivative[S], error) {
	if ra, ok := any(a).(*FixedStepAdapter[Real]); ok {
		rrhs, _ := any(rhs).(DerivativeFunc[Real])
		rcur, _ := any(cur).(StateAndDerivative[Real])
		rdt, _ := any(dt).(Real)

		rnext, err := ra.stepTeacher(rrhs, rcur, rdt)
		if err != nil {
			var zero StateAndDerivative[S]
			return zero, err
		}
		next, _ := any(rnext).(StateAndDerivative[S])
		return next, nil
	}

	switch a.Scheme {
	case SchemeRK4, SchemeRK45:
		return a.stepRK4Generic(rhs, cur, dt)
	default:
		return a.stepEulerGeneric(rhs, cur, dt)
	}
}

// stepTeacher advances one fixed step using internal/integrators'
// own Euler/RK4/RK45 steppers, wrapping rhs as a dynamo.System so the
// same tableaux the rest of the domain drives its physics models with
// also drive the event-aware core.
func (a *FixedStepAdapter[S]) stepTeacher(rhs DerivativeFunc[Real], cur StateAndDerivative[Real], dt Real) (StateAndDerivative[Real], error) {
	sys := &rhsSystem{rhs: rhs, dim: len(cur.Y)}
	x := make(dynamo.State, len(cur.Y))
	for i, v := range cur.Y {
		x[i] = float64(v)
	}
	t := float64(cur.T)
	dtf := float64(dt)

	var xNext dynamo.State
	switch a.Scheme {
	case SchemeRK4:
		xNext = integrators.NewRK4().Step(sys, x, nil, t, dtf)
	case SchemeRK45:
		xNext = integrators.NewRK45().Step(sys, x, nil, t, dtf)
	default:
		xNext = integrators.NewEuler().Step(sys, x, nil, t, dtf)
	}
	if sys.err != nil {
		return StateAndDerivative[Real]{}, sys.err
	}

	t1 := cur.T.Add(dt)
	y := make([]Real, len(xNext))
	for i, v := range xNext {
		y[i] = Real(v)
	}
	yd, err := rhs(t1, y)
	if err != nil {
		return StateAndDerivative[Real]{}, err
	}
	return StateAndDerivative[Real]{T: t1, Y: y, Yd: yd}, nil
}

// rhsSystem presents a [DerivativeFunc] as a dynamo.System, so a
// stepper written against internal/dynamo's float64 vocabulary can
// drive an ExpandableODE's right-hand side. dynamo.System.Derive has
// no error return; a failure is stashed on err and surfaces to the
// caller once the stepper has returned.
type rhsSystem struct {
	rhs DerivativeFunc[Real]
	dim int
	err error
}

func (s *rhsSystem) StateDim() int   { return s.dim }
func (s *rhsSystem) ControlDim() int { return 0 }

func (s *rhsSystem) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	y := make([]Real, len(x))
	for i, v := range x {
		y[i] = Real(v)
	}
	yd, err := s.rhs(Real(t), y)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return make(dynamo.State, len(x))
	}
	out := make(dynamo.State, len(yd))
	for i, v := range yd {
		out[i] = float64(v)
	}
	return out
}

func (a *FixedStepAdapter[S]) stepEulerGeneric(rhs DerivativeFunc[S], cur StateAndDerivative[S], dt S) (StateAndDerivative[S], error) {
	n := len(cur.Y)
	y := make([]S, n)
	for i := 0; i < n; i++ {
		y[i] = cur.Y[i].Add(dt.Mul(cur.Yd[i]))
	}
	t1 := cur.T.Add(dt)
	yd, err := rhs(t1, y)
	if err != nil {
		return StateAndDerivative[S]{}, err
	}
	return StateAndDerivative[S]{T: t1, Y: y, Yd: yd}, nil
}

func (a *FixedStepAdapter[S]) stepRK4Generic(rhs DerivativeFunc[S], cur StateAndDerivative[S], dt S) (StateAndDerivative[S], error) {
	n := len(cur.Y)
	half := dt.NewFromFloat(0.5).Mul(dt)
	two := dt.NewFromFloat(2)
	six := dt.NewFromFloat(6)

	k1 := cur.Yd

	y2 := make([]S, n)
	for i := 0; i < n; i++ {
		y2[i] = cur.Y[i].Add(half.Mul(k1[i]))
	}
	k2, err := rhs(cur.T.Add(half), y2)
	if err != nil {
		return StateAndDerivative[S]{}, err
	}

	y3 := make([]S, n)
	for i := 0; i < n; i++ {
		y3[i] = cur.Y[i].Add(half.Mul(k2[i]))
	}
	k3, err := rhs(cur.T.Add(half), y3)
	if err != nil {
		return StateAndDerivative[S]{}, err
	}

	y4 := make([]S, n)
	for i := 0; i < n; i++ {
		y4[i] = cur.Y[i].Add(dt.Mul(k3[i]))
	}
	t1 := cur.T.Add(dt)
	k4, err := rhs(t1, y4)
	if err != nil {
		return StateAndDerivative[S]{}, err
	}

	yNext := make([]S, n)
	for i := 0; i < n; i++ {
		sum := k1[i].Add(two.Mul(k2[i])).Add(two.Mul(k3[i])).Add(k4[i])
		yNext[i] = cur.Y[i].Add(dt.Quo(six).Mul(sum))
	}

	ydNext, err := rhs(t1, yNext)
	if err != nil {
		return StateAndDerivative[S]{}, err
	}

	return StateAndDerivative[S]{T: t1, Y: yNext, Yd: ydNext}, nil
}
