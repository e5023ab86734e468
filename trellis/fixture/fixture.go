// Package fixture loads PointSampler input from YAML scenario files,
// for use by the cmd/descartes-plan CLI and by tests that want a
// deterministic sample set without a real IK backend behind it.
package fixture

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go.viam.com/descartes/trellis"
)

// Waypoint is one entry of a Scenario: a waypoint's raw IK samples, each a
// flat list of DOF values.
type Waypoint struct {
	Samples [][]float64 `yaml:"samples"`
}

// Scenario is a complete build input: an ordered list of waypoints, each
// with its precomputed IK candidates.
type Scenario struct {
	Waypoints []Waypoint `yaml:"waypoints"`
}

// LoadScenario reads and parses a YAML scenario file from path.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, errors.Wrapf(err, "reading scenario file %q", path)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, errors.Wrapf(err, "parsing scenario file %q", path)
	}
	if len(sc.Waypoints) == 0 {
		return Scenario{}, errors.Errorf("scenario file %q has no waypoints", path)
	}
	return sc, nil
}

// Samplers converts every waypoint in the scenario into a Sampler,
// ready to pass to trellis.GraphSolver.Build.
func (sc Scenario) Samplers() []trellis.PointSampler {
	samplers := make([]trellis.PointSampler, len(sc.Waypoints))
	for i, wp := range sc.Waypoints {
		samplers[i] = NewSampler(wp.Samples)
	}
	return samplers
}

// Sampler is a trellis.PointSampler backed by a fixed set of samples read
// from a Scenario file rather than computed by a live IK solver.
type Sampler struct {
	samples [][]float64
}

// NewSampler wraps a raw set of per-sample DOF vectors.
func NewSampler(samples [][]float64) *Sampler {
	return &Sampler{samples: samples}
}

// Generate implements trellis.PointSampler.
func (s *Sampler) Generate(_ context.Context) (trellis.SampleGroup, error) {
	if len(s.samples) == 0 {
		return trellis.SampleGroup{}, fmt.Errorf("fixture: no samples available")
	}
	return trellis.NewSampleGroup(0, s.samples)
}
