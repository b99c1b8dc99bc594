// Package scenario loads YAML descriptions of an event-aware integration
// run: which model and stepper to use, the time span, and a list of
// event detectors to attach before integrating. It offers a
// Default/Load/Save trio; the events command reads its run settings
// from here, while the compare command takes its settings from flags.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
)

// Scenario is the top-level YAML document.
type Scenario struct {
	Model      string           `yaml:"model"`
	Scheme     string           `yaml:"scheme"`
	Dt         float64          `yaml:"dt"`
	Duration   float64          `yaml:"duration"`
	InitState  []float64        `yaml:"init_state"`
	Detectors  []DetectorConfig `yaml:"detectors"`
}

// DetectorConfig describes one event detector. Kind selects the built-in
// sign function; the events command translates this into a
// [github.com/adaptive-ode/dynsim/internal/ode.FuncDetector]:
//
//   - "component_crossing": g(y) = y[Component] - Threshold
//   - "time_at":            g(t) = t - Threshold (Component is ignored)
type DetectorConfig struct {
	Name             string  `yaml:"name"`
	Kind             string  `yaml:"kind"`
	Component        int     `yaml:"component"`
	Threshold        float64 `yaml:"threshold"`
	Action           string  `yaml:"action"` // continue | stop | reset_events
	MaxCheckInterval float64 `yaml:"max_check_interval"`
	MaxIterations    int     `yaml:"max_iterations"`
	SolverAccuracy   float64 `yaml:"solver_accuracy"`
}

// Default returns a scenario with a single time-at-duration STOP
// detector, so `dynsim events` with no scenario file still does something
// sensible.
func Default() *Scenario {
	return &Scenario{
		Model:    "pendulum",
		Scheme:   "rk4",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Detectors: []DetectorConfig{
			{
				Name:             "duration-reached",
				Kind:             "time_at",
				Threshold:        DefaultDuration,
				Action:           "stop",
				MaxCheckInterval: DefaultDt,
				MaxIterations:    100,
				SolverAccuracy:   1e-9,
			},
		},
	}
}

// Load reads and unmarshals a scenario file, starting from Default() so
// unspecified fields keep their defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save marshals s to path as YAML.
func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first structural problem found, if any: an
// unknown detector kind or action, or a component index that cannot
// possibly be right (negative).
func (s *Scenario) Validate() error {
	for _, d := range s.Detectors {
		switch d.Kind {
		case "component_crossing", "time_at":
		default:
			return fmt.Errorf("scenario: detector %q: unknown kind %q", d.Name, d.Kind)
		}
		switch d.Action {
		case "continue", "stop", "reset_events":
		default:
			return fmt.Errorf("scenario: detector %q: unknown action %q", d.Name, d.Action)
		}
		if d.Kind == "component_crossing" && d.Component < 0 {
			return fmt.Errorf("scenario: detector %q: negative component index %d", d.Name, d.Component)
		}
	}
	return nil
}
