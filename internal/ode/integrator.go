package ode

import "math"

// DerivativeFunc is a counted right-hand side evaluation: it wraps
// [ExpandableODE.ComputeDerivatives] with the integrator's evaluation
// [Incrementor], so every collaborator (stepper, event solver) that calls
// it is automatically subject to the evaluation-limit contract.
type DerivativeFunc[S Scalar[S]] func(t S, y []S) ([]S, error)

// Stepper is the concrete numerical scheme supplied by the caller; the
// concrete Runge-Kutta tableaux and embedded error estimators live
// outside this package, against this interface. It proposes one step
// from current towards tTarget (clipping at tTarget if the natural step
// would overshoot it) and returns the resulting state-and-derivative
// together with a dense [StepInterpolator] covering the step.
type Stepper[S Scalar[S]] interface {
	ProposeStep(rhs DerivativeFunc[S], current StateAndDerivative[S], tTarget S) (StateAndDerivative[S], StepInterpolator[S], error)
}

// Integrator is the step loop: it drives a [Stepper], invokes the
// step-acceptance procedure, manages the evaluation counter, and
// surfaces termination. It exclusively owns the mutable trajectory
// state (stepStart, stepSize, isLastStep, resetOccurred); step handlers
// and event detectors are shared-by-reference collaborators whose
// internals it never touches except through their declared callbacks.
//
// An Integrator instance is not reentrant: a user callback must not call
// Integrate on the same instance. Distinct instances are independent.
type Integrator[S Scalar[S]] struct {
	stepper Stepper[S]

	eventStates []*EventState[S]
	handlers    []StepHandler[S]

	evaluations *Incrementor

	stepStart     StateAndDerivative[S]
	signedStepSize S
	isLastStep    bool
	resetOccurred bool
}

// NewIntegrator constructs an Integrator driving stepper, with unbounded
// evaluations by default.
func NewIntegrator[S Scalar[S]](stepper Stepper[S]) *Integrator[S] {
	return &Integrator[S]{
		stepper:     stepper,
		evaluations: NewIncrementor(-1),
	}
}

// AddStepHandler registers h to be called after every accepted
// (sub-)step.
func (in *Integrator[S]) AddStepHandler(h StepHandler[S]) {
	in.handlers = append(in.handlers, h)
}

// ClearStepHandlers removes all registered step handlers.
func (in *Integrator[S]) ClearStepHandlers() {
	in.handlers = nil
}

// AddEventDetector wraps detector in an [EventState] and registers it.
func (in *Integrator[S]) AddEventDetector(detector Detector[S]) *EventState[S] {
	es := NewEventState(detector)
	in.eventStates = append(in.eventStates, es)
	return es
}

// ClearEventDetectors removes all registered event detectors.
func (in *Integrator[S]) ClearEventDetectors() {
	in.eventStates = nil
}

// GetEventDetectors returns an unmodifiable view of the registered
// detectors, in registration order.
func (in *Integrator[S]) GetEventDetectors() []Detector[S] {
	out := make([]Detector[S], len(in.eventStates))
	for i, es := range in.eventStates {
		out[i] = es.Detector()
	}
	return out
}

// SetMaxEvaluations sets the evaluation cap; negative means unbounded.
func (in *Integrator[S]) SetMaxEvaluations(n int) { in.evaluations.SetMax(n) }

// GetMaxEvaluations returns the configured evaluation cap.
func (in *Integrator[S]) GetMaxEvaluations() int { return in.evaluations.Max() }

// GetEvaluations returns the number of right-hand side evaluations
// performed by the most recent (or in-progress) Integrate call.
func (in *Integrator[S]) GetEvaluations() int { return in.evaluations.Count() }

// GetStepStart returns the state-and-derivative at the start of the most
// recently accepted step.
func (in *Integrator[S]) GetStepStart() StateAndDerivative[S] { return in.stepStart }

// GetCurrentSignedStepsize returns the signed step size of the most
// recently accepted step (negative for backward integration).
func (in *Integrator[S]) GetCurrentSignedStepsize() S { return in.signedStepSize }

// Integrate advances ode's state from s0 to tTarget, delivering
// interpolated samples to registered step handlers and dispatching
// registered event detectors along the way. It returns the final
// state-and-derivative: either at tTarget, at a STOP event's reported
// stop time, or it returns whatever error a user callback produced,
// unrecovered.
func (in *Integrator[S]) Integrate(ode *ExpandableODE[S], s0 State[S], tTarget S) (StateAndDerivative[S], error) {
	if !intervalLargeEnough(s0.T, tTarget) {
		return StateAndDerivative[S]{}, ErrIntervalTooSmall
	}
	if len(s0.Y) != ode.Dimension() {
		return StateAndDerivative[S]{}, ErrDimensionMismatch
	}

	in.evaluations.Reset()
	in.resetOccurred = false

	if err := ode.Init(s0.T, s0.Y, tTarget); err != nil {
		return StateAndDerivative[S]{}, err
	}

	rhs := in.countedRHS(ode)

	yd0, err := rhs(s0.T, s0.Y)
	if err != nil {
		return StateAndDerivative[S]{}, err
	}
	current := StateAndDerivative[S]{T: s0.T, Y: cloneSlice(s0.Y), Yd: yd0}

	forward := tTarget.Real() >= s0.T.Real()

	for _, es := range in.eventStates {
		if err := es.Init(current.State(), tTarget); err != nil {
			return StateAndDerivative[S]{}, err
		}
	}
	for _, h := range in.handlers {
		if err := h.Init(current, tTarget); err != nil {
			return StateAndDerivative[S]{}, err
		}
	}

	stateInitialized := false // forces the first accepted step to reinitializeBegin exactly once
	in.stepStart = current

	for {
		candidate, interp, err := in.stepper.ProposeStep(rhs, current, tTarget)
		if err != nil {
			return StateAndDerivative[S]{}, err
		}
		in.signedStepSize = candidate.T.Sub(current.T)

		result, err := acceptStep(in.eventStates, in.handlers, ode, interp, tTarget, forward, !stateInitialized)
		if err != nil {
			return StateAndDerivative[S]{}, err
		}
		stateInitialized = true

		switch result.Kind {
		case AcceptStop:
			in.stepStart = result.State
			return result.State, nil

		case AcceptReset:
			in.resetOccurred = true
			in.stepStart = result.State
			current = result.State
			// The outer stepper discards its in-flight step; the next
			// accepted step starts fresh from a (possibly discontinuous)
			// state, so event states must reinitializeBegin again.
			stateInitialized = false

		case AcceptContinue:
			in.stepStart = result.State
			current = result.State
			if result.IsLastStep {
				return result.State, nil
			}
		}
	}
}

func (in *Integrator[S]) countedRHS(ode *ExpandableODE[S]) DerivativeFunc[S] {
	return func(t S, y []S) ([]S, error) {
		if err := in.evaluations.Increment(); err != nil {
			return nil, err
		}
		return ode.ComputeDerivatives(t, y)
	}
}

// intervalLargeEnough requires |tTarget-t0| to be at least 1000 ulp of
// the larger-magnitude endpoint.
func intervalLargeEnough[S Scalar[S]](t0, tTarget S) bool {
	a, b := math.Abs(t0.Real()), math.Abs(tTarget.Real())
	scale := a
	if b > scale {
		scale = b
	}
	return math.Abs(tTarget.Real()-t0.Real()) >= 1000*ulp(scale)
}
