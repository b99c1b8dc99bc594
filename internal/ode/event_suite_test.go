package ode

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("event detection and dispatch", func() {

	Describe("a STOP detector", func() {
		It("halts integration at the located root", func() {
			solver := NewBracketingSolver[Real](1e-9)
			detector := &FuncDetector[Real]{
				GFunc: func(s State[Real]) (Real, error) {
					return s.T - 5, nil
				},
				MaxCheck:   Real(math.Inf(1)),
				MaxIter:    100,
				RootSolver: solver,
				HandlerFunc: func(state State[Real], increasing bool) (EventOccurrence[Real], error) {
					Expect(increasing).To(BeTrue())
					return EventOccurrence[Real]{Action: ActionStop}, nil
				},
			}

			ode := NewExpandableODE[Real](constantPrimary{dim: 1})
			integ := NewIntegrator[Real](NewFixedStepAdapter[Real](0.5, SchemeRK4))
			integ.AddEventDetector(detector)

			final, err := integ.Integrate(ode, State[Real]{T: 0, Y: []Real{0}}, 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(float64(final.T)).To(BeNumerically("~", 5, 1e-9))
		})
	})

	Describe("two detectors sharing an exact root", func() {
		It("dispatches them in registration order", func() {
			var order []string
			solver := NewBracketingSolver[Real](1e-12)

			detA := &FuncDetector[Real]{
				GFunc:      func(s State[Real]) (Real, error) { return s.T - 2, nil },
				MaxCheck:   Real(0.1),
				MaxIter:    100,
				RootSolver: solver,
				HandlerFunc: func(state State[Real], increasing bool) (EventOccurrence[Real], error) {
					order = append(order, "A")
					return EventOccurrence[Real]{Action: ActionContinue}, nil
				},
			}
			detB := &FuncDetector[Real]{
				GFunc:      func(s State[Real]) (Real, error) { return s.T - 2, nil },
				MaxCheck:   Real(0.1),
				MaxIter:    100,
				RootSolver: solver,
				HandlerFunc: func(state State[Real], increasing bool) (EventOccurrence[Real], error) {
					order = append(order, "B")
					return EventOccurrence[Real]{Action: ActionContinue}, nil
				},
			}

			ode := NewExpandableODE[Real](constantPrimary{dim: 1})
			integ := NewIntegrator[Real](NewFixedStepAdapter[Real](1, SchemeEuler))
			integ.AddEventDetector(detA)
			integ.AddEventDetector(detB)

			_, err := integ.Integrate(ode, State[Real]{T: 0, Y: []Real{0}}, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(order).To(Equal([]string{"A", "B"}))
		})
	})
})
