package ode

// StepInterpolator is a dense-output object associated with an accepted
// step: it can evaluate the state at any interior time and be restricted
// to a sub-interval of the step. Concrete steppers produce these; this
// package consumes them through the interface only, treating
// scheme-specific dense output as an external collaborator. [StepInterpolator]
// holds its own (prev, curr) and forward flag so repeated restriction is
// idempotent: restricting twice to the same bounds returns an
// interpolator equal to restricting once.
type StepInterpolator[S Scalar[S]] interface {
	// Forward reports whether the underlying integration runs forward in
	// time (t increasing).
	Forward() bool
	// PreviousState returns the state-and-derivative at the low end of
	// the current (possibly restricted) interval.
	PreviousState() StateAndDerivative[S]
	// CurrentState returns the state-and-derivative at the high end of
	// the current (possibly restricted) interval.
	CurrentState() StateAndDerivative[S]
	// GetInterpolatedState evaluates the dense output at time t, which
	// must lie within the closed [PreviousState().T, CurrentState().T]
	// interval (or its reverse, backward).
	GetInterpolatedState(t S) StateAndDerivative[S]
	// Restrict returns an interpolator covering the closed sub-interval
	// [a, b] of the current interval. Restricting to the interpolator's
	// own current bounds is a no-op that returns an equal interpolator.
	Restrict(a, b S) StepInterpolator[S]
}

// HermiteInterpolator is a cubic Hermite dense-output interpolator built
// from the state and derivative at both ends of a step. It carries no
// scheme-specific correction terms, and is the minimal concrete
// interpolator the engine needs to exercise restrict/getInterpolatedState
// in tests and in the [FixedStepAdapter].
type HermiteInterpolator[S Scalar[S]] struct {
	prev, curr StateAndDerivative[S]
	forward    bool
}

// NewHermiteInterpolator builds an interpolator over the accepted step
// [prev, curr]. forward must match the sign of curr.T-prev.T.
func NewHermiteInterpolator[S Scalar[S]](prev, curr StateAndDerivative[S], forward bool) *HermiteInterpolator[S] {
	return &HermiteInterpolator[S]{prev: prev, curr: curr, forward: forward}
}

func (h *HermiteInterpolator[S]) Forward() bool                        { return h.forward }
func (h *HermiteInterpolator[S]) PreviousState() StateAndDerivative[S]  { return h.prev }
func (h *HermiteInterpolator[S]) CurrentState() StateAndDerivative[S]   { return h.curr }

// GetInterpolatedState evaluates the cubic Hermite polynomial determined
// by (y0, ẏ0) at prev.T and (y1, ẏ1) at curr.T, at time t.
func (h *HermiteInterpolator[S]) GetInterpolatedState(t S) StateAndDerivative[S] {
	t0, t1 := h.prev.T, h.curr.T
	dt := t1.Sub(t0)
	if dt.Real() == 0 {
		return h.prev
	}
	theta := t.Sub(t0).Quo(dt)

	n := len(h.prev.Y)
	y := make([]S, n)
	yd := make([]S, n)
	var zero S
	one := zero.NewFromFloat(1)
	two := zero.NewFromFloat(2)
	three := zero.NewFromFloat(3)
	four := zero.NewFromFloat(4)
	six := zero.NewFromFloat(6)

	th2 := theta.Mul(theta)
	th3 := th2.Mul(theta)

	// Hermite basis functions.
	h00 := two.Mul(th3).Sub(three.Mul(th2)).Add(one)
	h10 := th3.Sub(two.Mul(th2)).Add(theta)
	h01 := three.Mul(th2).Sub(two.Mul(th3))
	h11 := th3.Sub(th2)

	// Derivative of the basis functions w.r.t. theta, scaled by d(theta)/dt = 1/dt.
	dh00 := six.Mul(th2).Sub(six.Mul(theta))
	dh10 := three.Mul(th2).Sub(four.Mul(theta)).Add(one)
	dh01 := six.Mul(theta).Sub(six.Mul(th2))
	dh11 := three.Mul(th2).Sub(two.Mul(theta))

	for i := 0; i < n; i++ {
		y0, y1 := h.prev.Y[i], h.curr.Y[i]
		m0, m1 := h.prev.Yd[i].Mul(dt), h.curr.Yd[i].Mul(dt)

		y[i] = h00.Mul(y0).Add(h10.Mul(m0)).Add(h01.Mul(y1)).Add(h11.Mul(m1))
		yd[i] = dh00.Mul(y0).Add(dh10.Mul(m0)).Add(dh01.Mul(y1)).Add(dh11.Mul(m1)).Quo(dt)
	}

	return StateAndDerivative[S]{T: t, Y: y, Yd: yd}
}

// Restrict returns a new interpolator covering [a, b]; both endpoints are
// obtained via GetInterpolatedState, except when a or b coincide with the
// existing bounds (in which case the existing endpoint state is reused
// verbatim, which is what makes Restrict idempotent: restricting an
// already-restricted interpolator to the same [a, b] is a no-op).
func (h *HermiteInterpolator[S]) Restrict(a, b S) StepInterpolator[S] {
	newPrev := h.endpointAt(a)
	newCurr := h.endpointAt(b)
	return &HermiteInterpolator[S]{prev: newPrev, curr: newCurr, forward: h.forward}
}

func (h *HermiteInterpolator[S]) endpointAt(t S) StateAndDerivative[S] {
	if t.Real() == h.prev.T.Real() {
		return h.prev
	}
	if t.Real() == h.curr.T.Real() {
		return h.curr
	}
	return h.GetInterpolatedState(t)
}
