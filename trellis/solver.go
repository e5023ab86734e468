package trellis

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"go.viam.com/descartes/internal/buildstats"
	"go.viam.com/descartes/logging"
)

// state is GraphSolver's lifecycle: EMPTY -> BUILT -> BUILT. solve is
// idempotent and non-mutating; build resets to EMPTY on any failure.
type state int

const (
	stateEmpty state = iota
	stateBuilt
)

// GraphSolver owns the trellis graph, the SamplesContainer and the
// PointSamplers passed to build. It runs build then solve and produces the
// chosen sample per waypoint that minimizes total transition cost.
//
// GraphSolver is not safe for concurrent use: build and solve must not run
// concurrently with each other or with themselves on the same instance.
type GraphSolver struct {
	evaluator EdgeEvaluator
	container SamplesContainer
	logger    logging.Logger
	planID    uuid.UUID

	state    state
	graph    *trellisGraph
	samplers []PointSampler
	offsets  []int // offsets[k] = vertex ID of waypoint k's first sample
	terminal []int // terminal vertex IDs: layer N-1 samples reached by >=1 valid edge

	recorder *buildstats.Recorder
}

// Option configures a GraphSolver at construction.
type Option func(*GraphSolver)

// WithContainer overrides the default DenseContainer.
func WithContainer(c SamplesContainer) Option {
	return func(s *GraphSolver) { s.container = c }
}

// WithLogger overrides the default logger.
func WithLogger(l logging.Logger) Option {
	return func(s *GraphSolver) { s.logger = l }
}

// NewGraphSolver builds a GraphSolver around the given EdgeEvaluator.
func NewGraphSolver(evaluator EdgeEvaluator, opts ...Option) *GraphSolver {
	s := &GraphSolver{
		evaluator: evaluator,
		container: NewDenseContainer(),
		logger:    logging.NewLogger("trellis"),
		planID:    uuid.New(),
		recorder:  buildstats.NewRecorder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("plan_id", s.planID.String())
	return s
}

// Stats returns instrumentation for the most recent build+solve cycle.
func (s *GraphSolver) Stats() buildstats.Stats {
	return s.recorder.Stats()
}

// Build constructs the trellis graph for the given ordered waypoints. On
// any failure the solver resets to EMPTY so the caller may safely retry.
func (s *GraphSolver) Build(ctx context.Context, points []PointSampler) error {
	s.recorder.StartBuild()
	if err := s.build(ctx, points); err != nil {
		s.reset()
		s.logger.Errorw("build failed", "err", err.Error())
		return err
	}
	s.state = stateBuilt
	s.recorder.FinishBuild(len(points), s.graph.numVertices(), s.graph.numEdges())
	s.logger.Infow("build succeeded",
		"waypoints", len(points), "vertices", s.graph.numVertices(), "edges", s.graph.numEdges())
	return nil
}

func (s *GraphSolver) reset() {
	s.state = stateEmpty
	s.graph = nil
	s.samplers = nil
	s.offsets = nil
	s.terminal = nil
	s.container.Clear()
}

func (s *GraphSolver) build(ctx context.Context, points []PointSampler) error {
	n := len(points)
	if n < 1 {
		return fmt.Errorf("%w: build requires at least one waypoint", ErrInternalInconsistency)
	}

	s.container.Allocate(n)
	s.samplers = points
	s.graph = newTrellisGraph()
	s.offsets = make([]int, n)
	s.terminal = nil

	if _, err := s.graph.addVertex(VertexProperties{PointID: VirtualPointID, SampleIndex: 0}); err != nil {
		return err
	}

	groups := make([]SampleGroup, n)
	for k := 0; k < n; k++ {
		sg, err := points[k].Generate(ctx)
		if err != nil {
			return fmt.Errorf("%w: waypoint %d: %s", ErrSamplingFailed, k, err)
		}
		sg.PointID = k
		if verr := sg.Validate(); verr != nil {
			return verr
		}
		if err := s.container.Set(k, sg); err != nil {
			return err
		}
		groups[k] = sg

		s.offsets[k] = s.graph.nextID
		for sampleIdx := 0; sampleIdx < sg.NumSamples; sampleIdx++ {
			if _, err := s.graph.addVertex(VertexProperties{PointID: k, SampleIndex: sampleIdx}); err != nil {
				return err
			}
		}
	}

	// validate DOF consistency across every group in one pass, aggregating
	// every offending waypoint into a single wrapped error rather than
	// stopping at the first mismatch.
	if n > 1 {
		dofs := groups[0].NumDOFs
		var errAll error
		for k := 1; k < n; k++ {
			if groups[k].NumDOFs != dofs {
				multierr.AppendInto(&errAll, fmt.Errorf(
					"waypoint %d has %d dofs, expected %d", k, groups[k].NumDOFs, dofs))
			}
		}
		if errAll != nil {
			return fmt.Errorf("%w: %s", ErrInvalidSamples, errAll)
		}
	}

	virtualEdgeAdded := make(map[int]bool)
	for k := 0; k < n-1; k++ {
		edges, err := s.evaluator.Evaluate(ctx, groups[k], groups[k+1], nil, nil)
		if err != nil {
			return fmt.Errorf("%w: between waypoints %d and %d: %s", ErrNoValidTransition, k, k+1, err)
		}
		numValid := 0
		for _, e := range edges {
			if e.Valid {
				numValid++
			}
		}
		if len(edges) == 0 || numValid == 0 {
			return fmt.Errorf("%w: between waypoints %d and %d", ErrNoValidTransition, k, k+1)
		}
		s.logger.Debugw("evaluated layer", "k", k, "k+1", k+1, "edges", len(edges), "valid", numValid)

		reachedLastLayer := make(map[int]bool)
		for _, e := range edges {
			if !e.Valid {
				continue
			}
			u := s.offsets[k] + e.SrcVtx.SampleIndex
			v := s.offsets[k+1] + e.DstVtx.SampleIndex

			if k == 0 && !virtualEdgeAdded[u] {
				if err := s.graph.addEdge(virtualVertexID, u, 0); err != nil {
					return err
				}
				virtualEdgeAdded[u] = true
			}

			if err := s.graph.addEdge(u, v, e.Weight); err != nil {
				return err
			}
			if k == n-2 {
				reachedLastLayer[v] = true
			}
		}
		if k == n-2 {
			s.terminal = s.terminal[:0]
			for v := range reachedLastLayer {
				s.terminal = append(s.terminal, v)
			}
			sort.Ints(s.terminal)
		}
	}

	// Degenerate single-waypoint plan: every sample of the only waypoint is
	// reachable directly from the virtual source with weight 0, and is its
	// own terminal.
	if n == 1 {
		for sampleIdx := 0; sampleIdx < groups[0].NumSamples; sampleIdx++ {
			u := s.offsets[0] + sampleIdx
			if err := s.graph.addEdge(virtualVertexID, u, 0); err != nil {
				return err
			}
			s.terminal = append(s.terminal, u)
		}
	}

	return nil
}

// Solve runs uniform-cost shortest-path search from the virtual source and
// backtracks the winning sample per waypoint. Solve is idempotent: calling
// it twice without an intervening Build returns identical output.
func (s *GraphSolver) Solve(ctx context.Context) ([]SampleGroup, error) {
	if s.state != stateBuilt {
		return nil, ErrNotBuilt
	}

	s.recorder.StartSolve()
	result, err := s.solve(ctx)
	s.recorder.FinishSolve()
	if err != nil {
		s.logger.Errorw("solve failed", "err", err.Error())
		return nil, err
	}
	s.logger.Infow("solve succeeded", "waypoints", len(result))
	return result, nil
}

func (s *GraphSolver) solve(_ context.Context) ([]SampleGroup, error) {
	dist, pred, err := s.graph.shortestPaths()
	if err != nil {
		return nil, err
	}

	best, ok := s.bestTerminal(dist)
	if !ok {
		return nil, ErrNoFeasiblePath
	}

	n := len(s.samplers)
	chosen := make([]int, n) // chosen[k] = sample index, or -1 if unassigned
	for k := range chosen {
		chosen[k] = -1
	}

	current := best
	for current != virtualVertexID {
		props, ok := s.graph.vertices[current]
		if !ok {
			return nil, fmt.Errorf("%w: vertex %d has no properties", ErrInternalInconsistency, current)
		}
		if props.PointID < 0 || props.PointID >= n {
			return nil, fmt.Errorf("%w: vertex %d has out-of-range point id %d", ErrInternalInconsistency, current, props.PointID)
		}
		if chosen[props.PointID] != -1 {
			return nil, fmt.Errorf("%w: waypoint %d assigned more than one sample during backtrack", ErrInternalInconsistency, props.PointID)
		}
		chosen[props.PointID] = props.SampleIndex

		prev, ok := pred[current]
		if !ok {
			return nil, fmt.Errorf("%w: no predecessor recorded for vertex %d", ErrInternalInconsistency, current)
		}
		current = prev
	}

	result := make([]SampleGroup, n)
	for k := 0; k < n; k++ {
		if chosen[k] == -1 {
			return nil, fmt.Errorf("%w: waypoint %d was not assigned a sample", ErrIncompletePath, k)
		}
		group, err := s.container.At(k)
		if err != nil {
			return nil, err
		}
		result[k] = group.single(chosen[k])
	}
	return result, nil
}

// bestTerminal picks the recorded terminal vertex with smallest dist,
// breaking ties by smallest vertex ID. Terminal vertices are kept sorted
// ascending by ID, so a strict '<' comparison naturally keeps the first
// (smallest-ID) vertex on a tie.
func (s *GraphSolver) bestTerminal(dist map[int]int64) (int, bool) {
	bestDist := int64(math.MaxInt64)
	bestVertex := -1
	found := false
	for _, v := range s.terminal {
		d, ok := dist[v]
		if !ok {
			d = math.MaxInt64
		}
		if d >= math.MaxInt64 {
			continue
		}
		if !found || d < bestDist {
			bestDist = d
			bestVertex = v
			found = true
		}
	}
	return bestVertex, found
}
