package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adaptive-ode/dynsim/internal/dynamo"
	"github.com/adaptive-ode/dynsim/internal/ode"
	"github.com/spf13/cobra"
)

// main is the entry point for the dynsim CLI; it registers commands and
// flags, drives the default event scenario in live mode when no
// subcommand is given, and executes the root command. It exits the
// process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "dynsim",
		Short: "adaptive event-driven ODE integration lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			eventsLive = true
			return runEvents(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynsim", "data directory")

	eventsCmd := &cobra.Command{
		Use:   "events [model]",
		Short: "run a model to a stopping event, reporting every detector crossing",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEvents,
	}
	eventsCmd.Flags().StringVar(&scenarioFile, "scenario", "", "event scenario file path (yaml)")
	eventsCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	eventsCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	eventsCmd.Flags().BoolVar(&eventsLive, "live", false, "replay the run in a live terminal view")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [scheme1] [scheme2] ...",
		Short: "compare fixed-step schemes on the same model, driven through the event-aware core",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	compareCmd.Flags().Float64Var(&theta, "theta", 0.5, "initial angle")

	rootCmd.AddCommand(eventsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	dataDir  string
	dt       float64
	duration float64
	theta    float64
)

// schemeByName maps the compare command's scheme flag value to the
// ode.Scheme it selects, defaulting to SchemeRK4 for an unrecognized
// name.
func schemeByName(name string) ode.Scheme {
	switch name {
	case "euler":
		return ode.SchemeEuler
	case "rk45":
		return ode.SchemeRK45
	default:
		return ode.SchemeRK4
	}
}

// compareIntegrators drives the same model through several fixed-step
// schemes, each wrapped by internal/ode.FixedStepAdapter, and reports
// the final state, energy drift (for models implementing
// dynamo.Hamiltonian) and wall-clock time for each.
func compareIntegrators(cmd *cobra.Command, args []string) error {
	modelName := args[0]
	schemeNames := args[1:]

	dyn, err := buildModel(modelName)
	if err != nil {
		return err
	}

	initState := initialStateFor(modelName, dyn)

	fmt.Printf("comparing schemes for %s (dt=%.4f, duration=%.1fs)\n\n", modelName, dt, duration)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "scheme", "final_x0", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 52))

	hamiltonian, isHamiltonian := dyn.(dynamo.Hamiltonian)
	var initialEnergy float64
	if isHamiltonian {
		initialEnergy = hamiltonian.Energy(dynamo.State(initState))
	}

	for _, schemeName := range schemeNames {
		primary := &dynamicsPrimary{dyn: dyn, u: make(dynamo.Control, dyn.ControlDim())}
		composite := ode.NewExpandableODE[ode.Real](primary)
		integ := ode.NewIntegrator[ode.Real](ode.NewFixedStepAdapter[ode.Real](ode.Real(dt), schemeByName(schemeName)))

		y0 := make([]ode.Real, len(initState))
		for i, v := range initState {
			y0[i] = ode.Real(v)
		}

		start := time.Now()
		final, err := integ.Integrate(composite, ode.State[ode.Real]{T: 0, Y: y0}, ode.Real(duration))
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", schemeName, err)
			continue
		}

		finalX0 := 0.0
		if len(final.Y) > 0 {
			finalX0 = float64(final.Y[0])
		}

		energyDrift := 0.0
		if isHamiltonian {
			finalState := make(dynamo.State, len(final.Y))
			for i, v := range final.Y {
				finalState[i] = float64(v)
			}
			energyDrift = hamiltonian.Energy(finalState) - initialEnergy
		}

		fmt.Printf("%-12s  %12.6f  %12.2e  %12.2f\n", schemeName, finalX0, energyDrift, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

// initialStateFor returns a model-appropriate initial condition sized
// to dyn.StateDim().
func initialStateFor(model string, dyn dynamo.System) []float64 {
	switch model {
	case "cartpole":
		return []float64{0, 0, theta, 0}
	case "nbody":
		n := dyn.StateDim() / 4
		state := make([]float64, n*4)
		for i := 0; i < n; i++ {
			angle := float64(i) * 2.0 * 3.14159 / float64(n)
			state[i*4] = 2.0 * float64(i+1) * 0.5
			state[i*4+2] = 0.5 * float64(i+1) * 0.3 * angle
		}
		return state
	case "drone":
		return []float64{0, 5, theta, 0, 0, 0}
	case "spring_mass":
		return []float64{1.0, 0}
	default:
		state := make([]float64, dyn.StateDim())
		if len(state) > 0 {
			state[0] = theta
		}
		return state
	}
}
