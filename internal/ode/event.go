package ode

import "math"

// Action is a handler-returned directive controlling what the
// step-acceptance loop does after an event fires.
type Action int

const (
	// ActionContinue resumes integration; the event is re-armed on the
	// remainder of the current step.
	ActionContinue Action = iota
	// ActionStop halts integration at (or just past) the located root.
	ActionStop
	// ActionResetState replaces the full state and recomputes
	// derivatives from it.
	ActionResetState
	// ActionResetDerivatives keeps the state but forces a derivative
	// recomputation (e.g. a discontinuous right-hand side).
	ActionResetDerivatives
	// ActionResetEvents restarts the detection pass for the remainder
	// of the current step without altering the state.
	ActionResetEvents
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "CONTINUE"
	case ActionStop:
		return "STOP"
	case ActionResetState:
		return "RESET_STATE"
	case ActionResetDerivatives:
		return "RESET_DERIVATIVES"
	case ActionResetEvents:
		return "RESET_EVENTS"
	default:
		return "UNKNOWN"
	}
}

// EventOccurrence is what a [Detector]'s handler returns: the action to
// take, and for RESET_STATE/RESET_DERIVATIVES the replacement state, or
// for STOP the time to report as the integration's stop point (which may
// be slightly past the root, per the STOP-at-root nudge).
type EventOccurrence[S Scalar[S]] struct {
	Action    Action
	NewState  *State[S]
	StopTime  *S
}

// Detector is the user contract an [EventState] wraps: a continuous sign
// function g, a maximum check interval, a root-solving policy, and a
// handler invoked once a root is located.
type Detector[S Scalar[S]] interface {
	// G is the continuous sign function, zero at the event.
	G(state State[S]) (S, error)
	// MaxCheckInterval is the largest gap between sign evaluations
	// inside a step (Δ).
	MaxCheckInterval() S
	// MaxIterations caps the root solve.
	MaxIterations() int
	// Solver returns the bracketing root solver used to locate tE.
	Solver() RootSolver[S]
	// Handler is invoked once a root at tE is located; increasing
	// reports whether g was rising through zero.
	Handler(state State[S], increasing bool) (EventOccurrence[S], error)
}

const machineEpsilon = 2.220446049250313e-16

// EventState is the per-detector state machine: it tracks a detector's
// sign, brackets roots, re-queues itself after resets, and survives other
// events mutating its sign function mid-step.
type EventState[S Scalar[S]] struct {
	detector Detector[S]
	forward  bool

	tPrev, gPrev S
	tLast, gLast S

	pending    bool
	tE         S
	increasing bool
}

// NewEventState wraps detector in a fresh, uninitialized EventState.
func NewEventState[S Scalar[S]](detector Detector[S]) *EventState[S] {
	return &EventState[S]{detector: detector}
}

// Detector returns the wrapped user detector.
func (e *EventState[S]) Detector() Detector[S] { return e.detector }

// HasPending reports whether a root is currently pending dispatch.
func (e *EventState[S]) HasPending() bool { return e.pending }

// PendingTime returns the currently pending root time. Only meaningful
// when HasPending is true.
func (e *EventState[S]) PendingTime() S { return e.tE }

// Init samples g(s0), recording the initial sign and the integration
// direction (tTarget relative to s0.T).
func (e *EventState[S]) Init(s0 State[S], tTarget S) error {
	e.forward = tTarget.Real() >= s0.T.Real()
	g0, err := e.detector.G(s0)
	if err != nil {
		return err
	}
	e.tPrev, e.gPrev = s0.T, g0
	e.tLast, e.gLast = s0.T, g0
	e.pending = false
	return nil
}

// ReinitializeBegin is called once at the start of the first accepted
// step per integration. It scans ahead to seed gPrev, and if g is exactly
// zero at the step start it nudges forward by a resolution-dependent
// amount so that zero is not immediately (and spuriously) re-detected as
// a crossing.
func (e *EventState[S]) ReinitializeBegin(interp StepInterpolator[S]) error {
	s0 := interp.PreviousState()
	g0, err := e.detector.G(s0.State())
	if err != nil {
		return err
	}

	if g0.Real() == 0 {
		nudge := e.nudgeAmount()
		t1 := e.advance(s0.T, nudge)
		curr := interp.CurrentState()
		if e.withinBounds(t1, s0.T, curr.T) {
			st := interp.GetInterpolatedState(t1)
			g1, err := e.detector.G(st.State())
			if err != nil {
				return err
			}
			e.tPrev, e.gPrev = t1, g1
		} else {
			e.tPrev, e.gPrev = s0.T, g0
		}
	} else {
		e.tPrev, e.gPrev = s0.T, g0
	}
	e.tLast, e.gLast = e.tPrev, e.gPrev
	e.pending = false
	return nil
}

// AfterReset re-seeds sign tracking from a freshly recomputed
// state-and-derivative following a RESET_STATE/RESET_DERIVATIVES action:
// without this, a detector whose sign flipped because of the very reset
// that just occurred could immediately misfire on the next step.
func (e *EventState[S]) AfterReset(s StateAndDerivative[S]) error {
	g, err := e.detector.G(s.State())
	if err != nil {
		return err
	}
	e.tPrev, e.gPrev = s.T, g
	e.tLast, e.gLast = s.T, g
	e.pending = false
	return nil
}

// EvaluateStep subdivides [tPrev, interp.CurrentState().T] into
// sub-intervals of length at most Δ; if g changes sign in a sub-interval,
// the solver locates tE to the solver's accuracy and EvaluateStep reports
// a pending root.
func (e *EventState[S]) EvaluateStep(interp StepInterpolator[S]) (bool, error) {
	start, startG := e.tPrev, e.gPrev
	end := interp.CurrentState().T

	// A scan start at or past the step end in the direction of travel
	// (a post-event nudge beyond the restricted step) leaves nothing to scan.
	if !e.intervalHasLength(start, end) || (end.Real() > start.Real()) != e.forward {
		e.pending = false
		return false, nil
	}
	// A zero sample at the scan start is the root just handled, sampled on a
	// zero-length interpolator; take g there again from this step and keep it.
	if startG.Real() == 0 && e.withinBounds(start, interp.PreviousState().T, end) {
		g0, err := e.detector.G(interp.GetInterpolatedState(start).State())
		if err != nil {
			return false, err
		}
		e.gPrev, startG = g0, g0
	}

	n := e.subintervalCount(start, end)
	tLo, gLo := start, startG
	for i := 1; i <= n; i++ {
		frac := float64(i) / float64(n)
		tHi := e.lerpTime(start, end, frac)
		sHi := interp.GetInterpolatedState(tHi)
		gHi, err := e.detector.G(sHi.State())
		if err != nil {
			return false, err
		}
		if e.signChange(gLo, gHi) {
			root, err := e.solveRoot(interp, tLo, tHi, gLo, gHi)
			if err != nil {
				return false, err
			}
			e.pending = true
			e.tE = root
			e.increasing = gHi.Real() > gLo.Real()
			return true, nil
		}
		tLo, gLo = tHi, gHi
	}
	e.pending = false
	return false, nil
}

// TryAdvance attempts to update (tLast, gLast) to state. It returns true
// if doing so reveals a new event strictly between the previous tLast
// and state.T — i.e. an event triggered by another event's reset that
// changed this detector's g in flight.
func (e *EventState[S]) TryAdvance(state State[S], interp StepInterpolator[S]) (bool, error) {
	prevT, prevG := e.tLast, e.gLast
	newG, err := e.detector.G(state)
	if err != nil {
		return false, err
	}
	e.tLast, e.gLast = state.T, newG

	if !e.intervalHasLength(prevT, state.T) {
		return false, nil
	}
	if !e.signChange(prevG, newG) {
		return false, nil
	}

	root, err := e.solveRoot(interp, prevT, state.T, prevG, newG)
	if err != nil {
		return false, err
	}
	if !e.strictlyBetween(root, prevT, state.T) {
		return false, nil
	}
	e.pending = true
	e.tE = root
	e.increasing = newG.Real() > prevG.Real()
	return true, nil
}

// DoEvent invokes the user handler for the currently pending root,
// advancing (tPrev, gPrev) past tE for CONTINUE/RESET_EVENTS so the
// detector can fire again later in the same step without immediately
// re-triggering on its own just-located root.
func (e *EventState[S]) DoEvent(state State[S], interp StepInterpolator[S]) (EventOccurrence[S], error) {
	occ, err := e.detector.Handler(state, e.increasing)
	if err != nil {
		return occ, err
	}
	switch occ.Action {
	case ActionContinue, ActionResetEvents:
		nudge := e.nudgeAmount()
		t1 := e.advance(e.tE, nudge)
		st := interp.GetInterpolatedState(t1)
		g1, gerr := e.detector.G(st.State())
		if gerr != nil {
			return occ, gerr
		}
		e.tPrev, e.gPrev = t1, g1
		e.tLast, e.gLast = t1, g1
	}
	e.pending = false
	return occ, nil
}

func (e *EventState[S]) nudgeAmount() S {
	var zero S
	tau := e.detector.Solver().Accuracy().Real()
	delta := e.detector.MaxCheckInterval().Real()
	fromDelta := delta * machineEpsilon * 4
	amount := math.Max(tau, fromDelta)
	if amount <= 0 {
		amount = machineEpsilon
	}
	return zero.NewFromFloat(amount)
}

func (e *EventState[S]) advance(t, delta S) S {
	if e.forward {
		return t.Add(delta)
	}
	return t.Sub(delta)
}

func (e *EventState[S]) withinBounds(t, a, b S) bool {
	lo, hi := a.Real(), b.Real()
	if lo > hi {
		lo, hi = hi, lo
	}
	return t.Real() >= lo && t.Real() <= hi
}

func (e *EventState[S]) strictlyBetween(t, a, b S) bool {
	lo, hi := a.Real(), b.Real()
	if lo > hi {
		lo, hi = hi, lo
	}
	return t.Real() > lo && t.Real() < hi
}

func (e *EventState[S]) intervalHasLength(a, b S) bool {
	return a.Real() != b.Real()
}

func (e *EventState[S]) subintervalCount(a, b S) int {
	length := math.Abs(b.Real() - a.Real())
	delta := math.Abs(e.detector.MaxCheckInterval().Real())
	if delta <= 0 || math.IsInf(delta, 1) {
		return 1
	}
	n := int(math.Ceil(length / delta))
	if n < 1 {
		n = 1
	}
	return n
}

func (e *EventState[S]) lerpTime(a, b S, frac float64) S {
	var zero S
	f := zero.NewFromFloat(frac)
	return a.Add(b.Sub(a).Mul(f))
}

func (e *EventState[S]) signChange(a, b S) bool {
	av, bv := a.Real(), b.Real()
	if av == 0 || bv == 0 {
		return av != bv
	}
	return (av > 0) != (bv > 0)
}

func (e *EventState[S]) solveRoot(interp StepInterpolator[S], lo, hi, gLo, gHi S) (S, error) {
	f := func(t S) (S, error) {
		st := interp.GetInterpolatedState(t)
		return e.detector.G(st.State())
	}
	return e.detector.Solver().Solve(f, lo, hi, gLo, gHi, e.detector.MaxIterations())
}
