// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical scheme interface
//   - [Controller]: feedback controller interface
//   - [Hamiltonian]: energy accounting for conservative systems
//
// # Example
//
//	dyn := physics.NewPendulum()
//	// prim is an ode.PrimaryEquations[ode.Real] whose RHS calls
//	// dyn.Derive(x, u, t); cmd/dynsim's dynamicsPrimary is one such adapter.
//	integ := ode.NewIntegrator[ode.Real](ode.NewFixedStepAdapter[ode.Real](0.01, ode.SchemeRK4))
//	final, _ := integ.Integrate(ode.NewExpandableODE[ode.Real](prim), x0, tFinal)
//
// internal/ode.FixedStepAdapter is what actually drives a System through
// one of internal/integrators' tableaux; this package supplies the
// vocabulary (State, Control, System) those tableaux and the physics
// models in internal/physics are written against.
package dynamo
