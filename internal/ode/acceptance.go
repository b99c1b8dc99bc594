package ode

import (
	"container/heap"
	"math"
)

// StepHandler is delivered every accepted (sub-)step, in non-decreasing
// σ·tE order.
type StepHandler[S Scalar[S]] interface {
	Init(s0 StateAndDerivative[S], tEnd S) error
	HandleStep(interp StepInterpolator[S]) error
	Finish(final StateAndDerivative[S]) error
}

// AcceptKind tags what kind of outcome an accepted step produced, instead
// of overloading a mutable flag: a STOP or RESET return is a one-shot
// tagged variant the outer integrator dispatches on, not shared state it
// has to remember to clear.
type AcceptKind int

const (
	AcceptContinue AcceptKind = iota
	AcceptReset
	AcceptStop
)

// AcceptResult is the outcome of running the step-acceptance loop over
// one stepper-proposed interval.
type AcceptResult[S Scalar[S]] struct {
	Kind       AcceptKind
	State      StateAndDerivative[S]
	IsLastStep bool
}

type pqItem[S Scalar[S]] struct {
	ev  *EventState[S]
	key float64
	seq int
}

// eventQueue is the priority queue of pending events ordered by σ·tE,
// with explicit remove-and-reinsert to update a key rather than an
// ad-hoc decrease-key. Ties on σ·tE fall back to registration order:
// whichever detector was added first with Integrator.AddEventDetector
// fires first.
type eventQueue[S Scalar[S]] struct {
	items []*pqItem[S]
}

func (q *eventQueue[S]) Len() int { return len(q.items) }
func (q *eventQueue[S]) Less(i, j int) bool {
	if q.items[i].key != q.items[j].key {
		return q.items[i].key < q.items[j].key
	}
	return q.items[i].seq < q.items[j].seq
}
func (q *eventQueue[S]) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *eventQueue[S]) Push(x any)    { q.items = append(q.items, x.(*pqItem[S])) }
func (q *eventQueue[S]) Pop() any {
	old := q.items
	n := len(old)
	it := old[n-1]
	q.items = old[:n-1]
	return it
}

func pushEvent[S Scalar[S]](q *eventQueue[S], sigma float64, es *EventState[S], seq int) {
	heap.Push(q, &pqItem[S]{ev: es, key: sigma * es.PendingTime().Real(), seq: seq})
}

// acceptStep runs the step-acceptance loop over one stepper-proposed
// interpolator. firstStep requests the once-per-integration
// reinitializeBegin pass.
func acceptStep[S Scalar[S]](
	eventStates []*EventState[S],
	handlers []StepHandler[S],
	composite *ExpandableODE[S],
	interp0 StepInterpolator[S],
	tEnd S,
	forward bool,
	firstStep bool,
) (AcceptResult[S], error) {
	sigma := 1.0
	if !forward {
		sigma = -1.0
	}

	if firstStep {
		for _, es := range eventStates {
			if err := es.ReinitializeBegin(interp0); err != nil {
				return AcceptResult[S]{}, err
			}
		}
	}

	interp := interp0

	seqOf := make(map[*EventState[S]]int, len(eventStates))
	for i, es := range eventStates {
		seqOf[es] = i
	}

outer:
	for {
		q := &eventQueue[S]{}
		heap.Init(q)
		for _, es := range eventStates {
			pending, err := es.EvaluateStep(interp)
			if err != nil {
				return AcceptResult[S]{}, err
			}
			if pending {
				pushEvent(q, sigma, es, seqOf[es])
			}
		}

		for {
			if q.Len() == 0 {
				curr := interp0.CurrentState()
				anyNew := false
				for _, es := range eventStates {
					newRoot, err := es.TryAdvance(curr.State(), interp)
					if err != nil {
						return AcceptResult[S]{}, err
					}
					if newRoot {
						pushEvent(q, sigma, es, seqOf[es])
						anyNew = true
					}
				}
				if anyNew {
					continue
				}
				break outer
			}

			item := heap.Pop(q).(*pqItem[S])
			E := item.ev

			eventState := interp.GetInterpolatedState(E.PendingTime())
			interp = interp.Restrict(interp.PreviousState().T, eventState.T)

			// Concurrency of events: re-query every other detector against
			// the partial advance. If one now reports a new, earlier root,
			// the dispatched event must not be E — requeue and restart the
			// pop from the top of this loop so the globally earliest
			// consistent event is always the one delivered.
			disturbed := false
			for _, Eprime := range eventStates {
				if Eprime == E {
					continue
				}
				newRoot, err := Eprime.TryAdvance(eventState.State(), interp)
				if err != nil {
					return AcceptResult[S]{}, err
				}
				if newRoot {
					disturbed = true
				}
			}
			if disturbed {
				rebuilt := &eventQueue[S]{}
				heap.Init(rebuilt)
				seen := make(map[*EventState[S]]bool, len(eventStates))
				for q.Len() > 0 {
					old := heap.Pop(q).(*pqItem[S])
					seen[old.ev] = true
					if old.ev.HasPending() {
						pushEvent(rebuilt, sigma, old.ev, seqOf[old.ev])
					}
				}
				for _, Eprime := range eventStates {
					if Eprime == E || seen[Eprime] {
						continue
					}
					if Eprime.HasPending() {
						pushEvent(rebuilt, sigma, Eprime, seqOf[Eprime])
					}
				}
				pushEvent(rebuilt, sigma, E, seqOf[E])
				*q = *rebuilt
				continue
			}

			for _, h := range handlers {
				if err := h.HandleStep(interp); err != nil {
					return AcceptResult[S]{}, err
				}
			}

			occ, err := E.DoEvent(eventState.State(), interp)
			if err != nil {
				return AcceptResult[S]{}, err
			}

			switch occ.Action {
			case ActionStop:
				stopT := E.PendingTime()
				if occ.StopTime != nil {
					stopT = *occ.StopTime
				}
				final := interp.GetInterpolatedState(stopT)
				interp = interp.Restrict(interp.PreviousState().T, final.T)
				for _, h := range handlers {
					if err := h.HandleStep(interp); err != nil {
						return AcceptResult[S]{}, err
					}
					if err := h.Finish(final); err != nil {
						return AcceptResult[S]{}, err
					}
				}
				return AcceptResult[S]{Kind: AcceptStop, State: final, IsLastStep: true}, nil

			case ActionResetState, ActionResetDerivatives:
				newState := eventState.State()
				if occ.NewState != nil {
					newState = *occ.NewState
				}
				yd, err := composite.ComputeDerivatives(newState.T, newState.Y)
				if err != nil {
					return AcceptResult[S]{}, err
				}
				result := StateAndDerivative[S]{T: newState.T, Y: cloneSlice(newState.Y), Yd: yd}
				for _, es := range eventStates {
					if err := es.AfterReset(result); err != nil {
						return AcceptResult[S]{}, err
					}
				}
				return AcceptResult[S]{Kind: AcceptReset, State: result}, nil

			case ActionResetEvents:
				interp = interp.Restrict(eventState.T, interp0.CurrentState().T)
				continue outer

			default: // ActionContinue
				interp = interp.Restrict(eventState.T, interp0.CurrentState().T)
				pending, err := E.EvaluateStep(interp)
				if err != nil {
					return AcceptResult[S]{}, err
				}
				if pending {
					pushEvent(q, sigma, E, seqOf[E])
				}
			}
		}
	}

	curr := interp0.CurrentState()
	isLast := math.Abs(curr.T.Real()-tEnd.Real()) < ulp(tEnd.Real())
	for _, h := range handlers {
		if err := h.HandleStep(interp); err != nil {
			return AcceptResult[S]{}, err
		}
		if isLast {
			if err := h.Finish(curr); err != nil {
				return AcceptResult[S]{}, err
			}
		}
	}
	return AcceptResult[S]{Kind: AcceptContinue, State: curr, IsLastStep: isLast}, nil
}
