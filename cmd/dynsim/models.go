package main

import (
	"fmt"
	"sort"

	"github.com/adaptive-ode/dynsim/internal/dynamo"
	"github.com/adaptive-ode/dynsim/internal/physics"
)

// modelRegistry maps a scenario's model name to a constructor for the
// dynamo.System driving it, built directly on internal/physics.
var modelRegistry = map[string]func() dynamo.System{
	"pendulum":         func() dynamo.System { return physics.NewPendulum() },
	"spring_mass":      func() dynamo.System { return physics.NewSpringMass() },
	"vanderpol":        func() dynamo.System { return physics.NewVanDerPol() },
	"duffing":          func() dynamo.System { return physics.NewDuffing() },
	"rossler":          func() dynamo.System { return physics.NewRossler() },
	"lorenz":           func() dynamo.System { return physics.NewLorenz() },
	"doublewell":       func() dynamo.System { return physics.NewDoubleWell() },
	"gyroscope":        func() dynamo.System { return physics.NewGyroscope() },
	"coupledpendulum":  func() dynamo.System { return physics.NewCoupledPendulums() },
	"masschain":        func() dynamo.System { return physics.NewMassChain(4) },
	"cartpole":         func() dynamo.System { return physics.NewCartPole() },
	"drone":            func() dynamo.System { return physics.NewDrone() },
	"magneticpendulum": func() dynamo.System { return physics.NewMagneticPendulum() },
	"threebody":        func() dynamo.System { return physics.NewThreeBody() },
	"nbody":            func() dynamo.System { return physics.NewNBody(6) },
	"wave":             func() dynamo.System { return physics.NewWave(16) },
	"sph":              func() dynamo.System { return physics.NewSPH(24) },
	"hybrid":           func() dynamo.System { return physics.NewHybrid(4, 8) },
}

// buildModel looks up name in modelRegistry, returning the sorted list
// of known names in the error when it isn't found.
func buildModel(name string) (dynamo.System, error) {
	ctor, ok := modelRegistry[name]
	if !ok {
		names := make([]string, 0, len(modelRegistry))
		for n := range modelRegistry {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown model %q, known models: %v", name, names)
	}
	return ctor(), nil
}
