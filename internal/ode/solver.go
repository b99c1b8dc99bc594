package ode

// RootSolver is the bracketing univariate root solver used as an
// external collaborator. It locates a root of a continuous function
// known to change sign between lo and hi, to the solver's own absolute
// accuracy, within a bounded number of iterations.
type RootSolver[S Scalar[S]] interface {
	// Solve returns t in [lo, hi] (or [hi, lo] if hi < lo) such that
	// f(t) is within the solver's absolute accuracy of zero. fLo, fHi
	// are f(lo), f(hi) and must have opposite sign (or one of them be
	// exactly zero). Returns ErrRootNotBracketed if maxIter is exhausted.
	Solve(f func(S) (S, error), lo, hi, fLo, fHi S, maxIter int) (S, error)

	// Accuracy returns the solver's absolute accuracy, used by
	// [EventState] to size the post-event and reinitialization nudges.
	Accuracy() S
}

// BracketingSolver is a regula-falsi root solver using the Illinois
// correction to avoid the stagnation plain false-position suffers when one
// endpoint's function value stays the same sign across iterations. It is
// the one piece of this engine built directly on the standard library
// (see DESIGN.md): no bracketing univariate solver exists anywhere in the
// example pack's dependency graph.
type BracketingSolver[S Scalar[S]] struct {
	AbsoluteAccuracy S
}

// NewBracketingSolver returns a solver with the given absolute accuracy.
func NewBracketingSolver[S Scalar[S]](absoluteAccuracy S) *BracketingSolver[S] {
	return &BracketingSolver[S]{AbsoluteAccuracy: absoluteAccuracy}
}

func (b *BracketingSolver[S]) Accuracy() S { return b.AbsoluteAccuracy }

func (b *BracketingSolver[S]) Solve(f func(S) (S, error), lo, hi, fLo, fHi S, maxIter int) (S, error) {
	var zero S
	half := zero.NewFromFloat(0.5)

	if fLo.Real() == 0 {
		return lo, nil
	}
	if fHi.Real() == 0 {
		return hi, nil
	}

	sideCount := 0 // consecutive iterations the same endpoint was kept, for the Illinois halving
	lastSide := 0  // -1: lo kept, +1: hi kept

	for iter := 0; iter < maxIter; iter++ {
		// Regula falsi: linear interpolation between (lo,fLo) and (hi,fHi).
		t := hi.Mul(fLo).Sub(lo.Mul(fHi)).Quo(fLo.Sub(fHi))

		ft, err := f(t)
		if err != nil {
			return zero, err
		}

		width := hi.Sub(lo)
		if width.Real() < 0 {
			width = width.Neg()
		}
		if width.Real() <= b.AbsoluteAccuracy.Real() || ft.Real() == 0 {
			return t, nil
		}

		if sameSign(ft, fLo) {
			lo, fLo = t, ft
			if lastSide == -1 {
				sideCount++
			} else {
				sideCount = 0
			}
			lastSide = -1
			if sideCount >= 2 {
				fHi = fHi.Mul(half)
				sideCount = 0
			}
		} else {
			hi, fHi = t, ft
			if lastSide == 1 {
				sideCount++
			} else {
				sideCount = 0
			}
			lastSide = 1
			if sideCount >= 2 {
				fLo = fLo.Mul(half)
				sideCount = 0
			}
		}
	}

	return zero, ErrRootNotBracketed
}

func sameSign[S Scalar[S]](a, b S) bool {
	return (a.Real() > 0) == (b.Real() > 0)
}
