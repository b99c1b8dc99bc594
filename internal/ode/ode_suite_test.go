package ode

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestODE(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ode Suite")
}

// constantPrimary is ẏ = 0: the state never moves on its own, so every
// event crossing in the suites below comes purely from the detectors'
// G functions depending on t (and, for the cascade scenario, on each
// other's handlers), not from any dynamics of the primary system.
type constantPrimary struct{ dim int }

func (c constantPrimary) Dimension() int                          { return c.dim }
func (c constantPrimary) Init(t0 Real, y0 []Real, tFinal Real)     {}
func (c constantPrimary) RHS(t Real, y []Real) ([]Real, error) {
	out := make([]Real, c.dim)
	return out, nil
}
