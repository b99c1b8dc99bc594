// Package ode provides a generic, event-aware ordinary differential
// equation integration core.
//
// It is built around a small set of pieces, leaves first:
//
//   - [Scalar]: an algebraic field element (add, sub, mul, div, a real
//     projection, elementary functions). [Real] is the float64
//     instantiation; [github.com/adaptive-ode/dynsim/internal/ode/dual.Number]
//     is a forward-mode dual number enabling sensitivity analysis.
//   - [Mapper]: offset/width bookkeeping for a primary block plus zero or
//     more secondary blocks packed into one state vector.
//   - [ExpandableODE]: the composite right-hand side (primary + ordered
//     secondaries) that the mapper serves.
//   - [StepInterpolator]: dense output for an accepted step, restrictable
//     to a sub-interval.
//   - [EventState]: per-detector sign tracking, bracketing and root
//     location, wrapping a user [Detector].
//   - [Integrator]: the step loop driving a [Stepper], the event
//     acceptance procedure, and termination.
//
// None of this package's types are safe for concurrent use by multiple
// goroutines; a single [Integrator] drives one logical call chain, and
// user callbacks (rhs, g, handler, handleStep) are the only suspension
// points. See cmd/dynsim's "events" subcommand for an end-to-end example.
package ode
