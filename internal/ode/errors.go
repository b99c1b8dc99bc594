package ode

import "errors"

// Domain errors for the ODE integration core.
var (
	// ErrIntervalTooSmall indicates |tTarget-t0| is within 1000 ulp of zero.
	ErrIntervalTooSmall = errors.New("ode: integration interval too small")

	// ErrDimensionMismatch indicates a mapper operation or initial state
	// was given a vector of the wrong length.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch")

	// ErrOutOfRange indicates a mapper index outside [0, n].
	ErrOutOfRange = errors.New("ode: block index out of range")

	// ErrEvaluationLimitExceeded indicates the evaluation counter would
	// exceed its configured maximum.
	ErrEvaluationLimitExceeded = errors.New("ode: evaluation limit exceeded")

	// ErrRootNotBracketed indicates the event solver exhausted its
	// iteration budget without bracketing a root.
	ErrRootNotBracketed = errors.New("ode: root not bracketed within iteration budget")
)
