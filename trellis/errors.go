package trellis

import "errors"

// Sentinel error kinds. build and solve wrap these with fmt.Errorf("%w", ...)
// so callers can match them with errors.Is while still getting a
// human-readable message naming the offending waypoint(s).
var (
	// ErrSamplingFailed means a PointSampler.generate returned no samples.
	ErrSamplingFailed = errors.New("trellis: sampling failed")

	// ErrInvalidSamples means a SampleGroup was empty or had inconsistent DOFs.
	ErrInvalidSamples = errors.New("trellis: invalid sample group")

	// ErrNoValidTransition means an EdgeEvaluator returned nothing, or no
	// edge between two adjacent layers was valid.
	ErrNoValidTransition = errors.New("trellis: no valid transition")

	// ErrDuplicateEdge means the same ordered vertex pair was added twice
	// within one build. Indicates a programming error in the evaluator
	// or in the solver's own bookkeeping.
	ErrDuplicateEdge = errors.New("trellis: duplicate edge")

	// ErrNotBuilt means solve was called before a successful build.
	ErrNotBuilt = errors.New("trellis: solver has not been built")

	// ErrNoFeasiblePath means every terminal vertex was unreachable.
	ErrNoFeasiblePath = errors.New("trellis: no feasible path")

	// ErrIncompletePath means backtracking did not assign a sample to
	// every waypoint.
	ErrIncompletePath = errors.New("trellis: incomplete path")

	// ErrInternalInconsistency covers programmer errors: negative vertex
	// IDs, out-of-range point IDs, a sample index out of range during
	// backtrack, and similar invariant violations.
	ErrInternalInconsistency = errors.New("trellis: internal inconsistency")
)
