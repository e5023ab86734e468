package trellis

import (
	"context"
	"testing"

	"go.viam.com/test"
)

// layerOf returns the layer index of a vertex: 0 for the virtual source,
// k+1 for a sample vertex belonging to waypoint k.
func layerOf(s *GraphSolver, vertexID int) int {
	props := s.graph.vertices[vertexID]
	if props.isVirtual() {
		return 0
	}
	return props.PointID + 1
}

func buildSolver(t *testing.T, layers [][]float64) *GraphSolver {
	t.Helper()
	samplers := proxySamplers(layers)
	solver := NewGraphSolver(NewJointDistanceEvaluator())
	test.That(t, solver.Build(context.Background(), samplers), test.ShouldBeNil)
	return solver
}

// (V-LAYER): every vertex belongs to exactly one layer; vertex 0 is the
// unique virtual source.
func TestInvariantVertexLayer(t *testing.T) {
	s := buildSolver(t, [][]float64{{0, 1}, {0, 1, 2}, {0}})

	test.That(t, s.graph.vertices[0].isVirtual(), test.ShouldBeTrue)
	for id, props := range s.graph.vertices {
		if id == 0 {
			continue
		}
		test.That(t, props.isVirtual(), test.ShouldBeFalse)
		test.That(t, props.PointID, test.ShouldBeGreaterThanOrEqualTo, 0)
	}
}

// (E-LAYER): for every edge (u, v), layer(v) == layer(u) + 1.
func TestInvariantEdgeLayer(t *testing.T) {
	s := buildSolver(t, [][]float64{{0, 1}, {0, 1, 2}, {0, 5}})

	for _, e := range s.graph.g.Edges() {
		u, uErr := vertexIDFromKey(e.From)
		v, vErr := vertexIDFromKey(e.To)
		test.That(t, uErr, test.ShouldBeNil)
		test.That(t, vErr, test.ShouldBeNil)
		test.That(t, layerOf(s, v), test.ShouldEqual, layerOf(s, u)+1)
	}
}

// (NO-PARALLEL): no ordered pair (u, v) appears as a graph edge more than once.
func TestInvariantNoParallelEdges(t *testing.T) {
	s := buildSolver(t, [][]float64{{0, 1, 2}, {0, 1, 2}, {0, 1}})

	seen := make(map[[2]int]bool)
	for _, e := range s.graph.g.Edges() {
		u, _ := vertexIDFromKey(e.From)
		v, _ := vertexIDFromKey(e.To)
		key := [2]int{u, v}
		test.That(t, seen[key], test.ShouldBeFalse)
		seen[key] = true
	}
}

// (E-COVER): every sample vertex in layer 1 is reachable from vertex 0 via
// a zero-weight virtual edge iff it has at least one outgoing valid edge
// to layer 2.
func TestInvariantVirtualEdgeCoverage(t *testing.T) {
	eval := &matrixEvaluator{
		weights: [][][]float64{
			{{1}, {1}}, // wp0 -> wp1: two src samples, one dst sample
		},
		valid: [][][]bool{
			{{true}, {false}}, // only src sample 0 has a valid onward edge
		},
	}
	samplers := proxySamplers([][]float64{{0, 1}, {0}})
	s := NewGraphSolver(eval)
	test.That(t, s.Build(context.Background(), samplers), test.ShouldBeNil)

	hasVirtualEdge := make(map[int]bool)
	for _, e := range s.graph.g.Edges() {
		u, _ := vertexIDFromKey(e.From)
		if u == virtualVertexID {
			v, _ := vertexIDFromKey(e.To)
			hasVirtualEdge[v] = true
		}
	}

	layer1Sample0 := s.offsets[0] + 0
	layer1Sample1 := s.offsets[0] + 1
	test.That(t, hasVirtualEdge[layer1Sample0], test.ShouldBeTrue)
	test.That(t, hasVirtualEdge[layer1Sample1], test.ShouldBeFalse)
}
