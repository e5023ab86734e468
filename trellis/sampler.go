package trellis

import "context"

// PointSampler produces the complete IK candidate set for one Cartesian
// waypoint. Implementations own robot kinematics, IK solving and joint
// limits; none of that is this package's concern.
type PointSampler interface {
	// Generate returns all feasible IK samples for the waypoint this
	// sampler was built for. It must return at least one sample on
	// success. PointID on the returned SampleGroup is ignored by callers;
	// GraphSolver overwrites it with the waypoint's index.
	Generate(ctx context.Context) (SampleGroup, error)
}

// ClosestSampler is an optional extension to PointSampler used by sparse
// planners, not by GraphSolver itself.
type ClosestSampler interface {
	// GetClosest returns the single sample nearest to ref, or false if
	// this sampler does not support closest-sample queries.
	GetClosest(ctx context.Context, ref PointData) (SampleGroup, bool)
}

// ProxySampler wraps a precomputed SampleGroup (or a single PointData) and
// returns it verbatim from Generate. It exists so that callers who already
// have samples in hand do not need to write a PointSampler of their own.
type ProxySampler struct {
	group SampleGroup
}

// NewProxySampler wraps an already-computed SampleGroup.
func NewProxySampler(group SampleGroup) *ProxySampler {
	return &ProxySampler{group: group}
}

// NewProxySamplerFromPoint wraps a single PointData as a one-sample group.
func NewProxySamplerFromPoint(p PointData) *ProxySampler {
	return &ProxySampler{group: SampleGroup{
		PointID:    p.PointID,
		NumSamples: 1,
		NumDOFs:    len(p.Values),
		Values:     append([]float64(nil), p.Values...),
	}}
}

// Generate implements PointSampler.
func (p *ProxySampler) Generate(_ context.Context) (SampleGroup, error) {
	return p.group, nil
}

// GetClosest implements ClosestSampler by always returning the whole wrapped
// group. ref is not consulted, so a group of several samples is returned
// as is rather than narrowed to the single nearest sample.
func (p *ProxySampler) GetClosest(_ context.Context, _ PointData) (SampleGroup, bool) {
	return p.group, true
}

// EdgeEvaluator scores transitions between two adjacent SampleGroups. It is
// the only domain knob the solver exposes: robot-specific transition cost
// (joint distance, collision checks, time-optimality, ...) lives entirely
// behind this interface.
type EdgeEvaluator interface {
	// Evaluate returns one EdgeProperties per ordered pair (i, j) with
	// i ranging over s1's samples and j over s2's, in deterministic
	// row-major order (i outer, j inner) so the vertex-ID mapping stays
	// reproducible. excludeS1/excludeS2 are an optimization hook for
	// sparse/incremental planners; GraphSolver always passes them empty.
	Evaluate(ctx context.Context, s1, s2 SampleGroup, excludeS1, excludeS2 []int) ([]EdgeProperties, error)
}
