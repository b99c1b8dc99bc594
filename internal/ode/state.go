package ode

// State is a time plus a flat state vector: a primary block followed by
// zero or more secondary blocks, as laid out by a [Mapper]. It is
// immutable once constructed.
type State[S Scalar[S]] struct {
	T S
	Y []S
}

// StateAndDerivative adds the derivative vector ẏ alongside y, mirroring
// y's dimension.
type StateAndDerivative[S Scalar[S]] struct {
	T  S
	Y  []S
	Yd []S
}

// State discards the derivative, returning the plain [State].
func (s StateAndDerivative[S]) State() State[S] {
	return State[S]{T: s.T, Y: s.Y}
}

func cloneSlice[S Scalar[S]](src []S) []S {
	dst := make([]S, len(src))
	copy(dst, src)
	return dst
}
