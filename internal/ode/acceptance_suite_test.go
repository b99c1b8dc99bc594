package ode

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// Describes the "concurrency of events" behavior: a detector's
// handler can change another, not-yet-fired detector's sign function
// mid-step, exposing a root that the initial detection pass never saw
// because at scan time the sign function hadn't changed shape yet. The
// step-acceptance loop must re-query every other detector before
// dispatching the one it just popped, and if that reveals a new,
// earlier root it must requeue and deliver events in strict
// chronological order regardless of detection order.
var _ = Describe("event cascades", func() {
	It("delivers a root revealed mid-step by another event's handler, in time order", func() {
		var order []string
		var times []float64
		flipped := false
		zFired := false

		solver := NewBracketingSolver[Real](1e-9)

		// X crosses at t=1 unconditionally; firing it flips the shared
		// flag that changes Z's sign function.
		detX := &FuncDetector[Real]{
			GFunc:      func(s State[Real]) (Real, error) { return s.T - 1, nil },
			MaxCheck:   Real(0.5),
			MaxIter:    100,
			RootSolver: solver,
			HandlerFunc: func(state State[Real], increasing bool) (EventOccurrence[Real], error) {
				order = append(order, "X")
				times = append(times, float64(state.T))
				flipped = true
				return EventOccurrence[Real]{Action: ActionContinue}, nil
			},
		}

		// Y crosses at t=4 unconditionally, independent of the flag.
		detY := &FuncDetector[Real]{
			GFunc:      func(s State[Real]) (Real, error) { return s.T - 4, nil },
			MaxCheck:   Real(0.5),
			MaxIter:    100,
			RootSolver: solver,
			HandlerFunc: func(state State[Real], increasing bool) (EventOccurrence[Real], error) {
				order = append(order, "Y")
				times = append(times, float64(state.T))
				return EventOccurrence[Real]{Action: ActionContinue}, nil
			},
		}

		// Z reports no crossing at all while flipped is false (its g
		// is a positive constant), so the initial detection pass never
		// arms it. Once X's handler sets flipped, Z's g becomes 2-t,
		// crossing at t=2 — strictly between X's root and Y's root,
		// and strictly ahead of Z's own last sampled point.
		detZ := &FuncDetector[Real]{
			GFunc: func(s State[Real]) (Real, error) {
				if !flipped {
					return Real(1), nil
				}
				return 2 - s.T, nil
			},
			MaxCheck:   Real(0.5),
			MaxIter:    100,
			RootSolver: solver,
			HandlerFunc: func(state State[Real], increasing bool) (EventOccurrence[Real], error) {
				order = append(order, "Z")
				times = append(times, float64(state.T))
				zFired = true
				return EventOccurrence[Real]{Action: ActionContinue}, nil
			},
		}

		ode := NewExpandableODE[Real](constantPrimary{dim: 1})
		// A single fixed step spans the whole [0,5] interval, so all
		// three roots are located within one call to the step-acceptance
		// loop and the cascade must be resolved without ever handing
		// control back to the outer integrator loop.
		integ := NewIntegrator[Real](NewFixedStepAdapter[Real](5, SchemeEuler))
		integ.AddEventDetector(detX)
		integ.AddEventDetector(detY)
		integ.AddEventDetector(detZ)

		_, err := integ.Integrate(ode, State[Real]{T: 0, Y: []Real{0}}, 5)
		Expect(err).NotTo(HaveOccurred())

		Expect(zFired).To(BeTrue(), "Z's cascade-revealed root must fire even though the initial detection pass never armed it")
		Expect(order).To(Equal([]string{"X", "Z", "Y"}))

		Expect(times).To(HaveLen(3))
		Expect(times[0]).To(BeNumerically("~", 1, 1e-6))
		Expect(times[1]).To(BeNumerically("~", 2, 1e-6))
		Expect(times[2]).To(BeNumerically("~", 4, 1e-6))

		for i := 1; i < len(times); i++ {
			Expect(times[i]).To(BeNumerically(">", times[i-1]), "events must be delivered in non-decreasing time order")
		}
	})
})
