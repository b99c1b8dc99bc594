package main

import (
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/adaptive-ode/dynsim/internal/dynamo"
	"github.com/adaptive-ode/dynsim/internal/ode"
	"github.com/adaptive-ode/dynsim/internal/ode/scenario"
	"github.com/adaptive-ode/dynsim/internal/tui"
	"github.com/spf13/cobra"
)

var (
	scenarioFile string
	eventsLive   bool
)

// dynamicsPrimary adapts a dynamo.System (uncontrolled, u=0) into an
// internal/ode.PrimaryEquations[ode.Real], so the physics domain
// models drive the event-aware core the same way they drive
// internal/integrators' fixed steppers elsewhere in this command.
type dynamicsPrimary struct {
	dyn dynamo.System
	u   dynamo.Control
}

func (p *dynamicsPrimary) Dimension() int                                  { return p.dyn.StateDim() }
func (p *dynamicsPrimary) Init(t0 ode.Real, y0 []ode.Real, tFinal ode.Real) {}
func (p *dynamicsPrimary) RHS(t ode.Real, y []ode.Real) ([]ode.Real, error) {
	x := make(dynamo.State, len(y))
	for i, v := range y {
		x[i] = float64(v)
	}
	xd := p.dyn.Derive(x, p.u, float64(t))
	out := make([]ode.Real, len(xd))
	for i, v := range xd {
		out[i] = ode.Real(v)
	}
	return out, nil
}

// eventLogEntry records one dispatched detector for the summary table and
// the live replay view.
type eventLogEntry struct {
	Name string
	Time float64
	Kind string
}

func buildDetector(cfg scenario.DetectorConfig, log *[]eventLogEntry) (ode.Detector[ode.Real], error) {
	solver := ode.NewBracketingSolver[ode.Real](ode.Real(cfg.SolverAccuracy))

	var g func(ode.State[ode.Real]) (ode.Real, error)
	switch cfg.Kind {
	case "time_at":
		g = func(s ode.State[ode.Real]) (ode.Real, error) {
			return s.T - ode.Real(cfg.Threshold), nil
		}
	case "component_crossing":
		g = func(s ode.State[ode.Real]) (ode.Real, error) {
			if cfg.Component >= len(s.Y) {
				return 0, ode.ErrOutOfRange
			}
			return s.Y[cfg.Component] - ode.Real(cfg.Threshold), nil
		}
	default:
		return nil, fmt.Errorf("events: unknown detector kind %q", cfg.Kind)
	}

	var action ode.Action
	switch cfg.Action {
	case "stop":
		action = ode.ActionStop
	case "reset_events":
		action = ode.ActionResetEvents
	default:
		action = ode.ActionContinue
	}

	return &ode.FuncDetector[ode.Real]{
		GFunc:      g,
		MaxCheck:   ode.Real(cfg.MaxCheckInterval),
		MaxIter:    cfg.MaxIterations,
		RootSolver: solver,
		HandlerFunc: func(state ode.State[ode.Real], increasing bool) (ode.EventOccurrence[ode.Real], error) {
			*log = append(*log, eventLogEntry{Name: cfg.Name, Time: float64(state.T), Kind: cfg.Kind})
			return ode.EventOccurrence[ode.Real]{Action: action}, nil
		},
	}, nil
}

func runEvents(cmd *cobra.Command, args []string) error {
	sc := scenario.Default()
	if scenarioFile != "" {
		loaded, err := scenario.Load(scenarioFile)
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
		sc = loaded
	}
	if len(args) > 0 {
		sc.Model = args[0]
	}
	if cmd.Flags().Changed("dt") {
		sc.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		sc.Duration = duration
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	dyn, err := buildModel(sc.Model)
	if err != nil {
		return err
	}

	init := sc.InitState
	if len(init) == 0 {
		init = make([]float64, dyn.StateDim())
		init[0] = 0.5
	}
	if len(init) != dyn.StateDim() {
		return fmt.Errorf("events: scenario init_state has %d entries, model %s needs %d", len(init), sc.Model, dyn.StateDim())
	}

	scheme := ode.SchemeRK4
	switch sc.Scheme {
	case "euler":
		scheme = ode.SchemeEuler
	case "rk45":
		scheme = ode.SchemeRK45
	}

	primary := &dynamicsPrimary{dyn: dyn, u: make(dynamo.Control, dyn.ControlDim())}
	composite := ode.NewExpandableODE[ode.Real](primary)
	integ := ode.NewIntegrator[ode.Real](ode.NewFixedStepAdapter[ode.Real](ode.Real(sc.Dt), scheme))

	var eventLog []eventLogEntry
	for _, dc := range sc.Detectors {
		det, err := buildDetector(dc, &eventLog)
		if err != nil {
			return err
		}
		integ.AddEventDetector(det)
	}

	var times, trace []float64
	recorder := &ode.FuncStepHandler[ode.Real]{
		HandleStepFunc: func(interp ode.StepInterpolator[ode.Real]) error {
			curr := interp.CurrentState()
			times = append(times, float64(curr.T))
			if len(curr.Y) > 0 {
				trace = append(trace, float64(curr.Y[0]))
			} else {
				trace = append(trace, 0)
			}
			return nil
		},
	}
	integ.AddStepHandler(recorder)

	y0 := make([]ode.Real, len(init))
	for i, v := range init {
		y0[i] = ode.Real(v)
	}

	fmt.Printf("running events scenario: model=%s scheme=%s dt=%.4g duration=%.4g detectors=%d\n",
		sc.Model, sc.Scheme, sc.Dt, sc.Duration, len(sc.Detectors))
	start := time.Now()

	final, err := integ.Integrate(composite, ode.State[ode.Real]{T: 0, Y: y0}, ode.Real(sc.Duration))
	if err != nil {
		return fmt.Errorf("integration failed after %d evaluations: %w", integ.GetEvaluations(), err)
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v (%d evaluations, %d accepted steps)\n\n", elapsed, integ.GetEvaluations(), len(times))

	if len(eventLog) == 0 {
		fmt.Println("no events fired")
	} else {
		fmt.Println("events:")
		for _, e := range eventLog {
			fmt.Printf("  t=%9.4f  %-24s  %s\n", e.Time, e.Name, e.Kind)
		}
	}
	fmt.Printf("\nfinal state at t=%.4f: %v\n\n", float64(final.T), final.Y)

	if len(trace) > 1 {
		graph := asciigraph.Plot(trace,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s: x0 vs accepted step", sc.Model)),
		)
		fmt.Println(graph)
	}

	if eventsLive {
		eventNames := make([]string, len(eventLog))
		eventTimes := make([]float64, len(eventLog))
		for i, e := range eventLog {
			eventNames[i] = e.Name
			eventTimes[i] = e.Time
		}
		m := tui.NewEventsModel(sc.Model, times, trace, eventNames, eventTimes)
		return tui.RunEventsProgram(m)
	}

	return nil
}
