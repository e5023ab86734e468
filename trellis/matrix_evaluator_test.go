package trellis

import "context"

// matrixEvaluator is a test-only EdgeEvaluator backed by an explicit
// n1 x n2 weight/validity matrix per adjacent layer pair, keyed by the
// source layer's point ID. It lets tests construct exact, hand-checkable
// trellis graphs without relying on a distance metric.
type matrixEvaluator struct {
	// weights[k] is the n1 x n2 matrix for the pair (waypoint k, waypoint k+1).
	weights [][][]float64
	// valid[k], if non-nil, marks which entries of weights[k] are valid.
	// A nil entry means every edge in that layer is valid.
	valid [][][]bool
}

func (m *matrixEvaluator) Evaluate(_ context.Context, s1, s2 SampleGroup, excludeS1, excludeS2 []int) ([]EdgeProperties, error) {
	k := s1.PointID
	w := m.weights[k]
	excl1 := toSet(excludeS1)
	excl2 := toSet(excludeS2)

	edges := make([]EdgeProperties, 0, s1.NumSamples*s2.NumSamples)
	for i := 0; i < s1.NumSamples; i++ {
		if excl1[i] {
			continue
		}
		for j := 0; j < s2.NumSamples; j++ {
			if excl2[j] {
				continue
			}
			valid := true
			if k < len(m.valid) && m.valid[k] != nil {
				valid = m.valid[k][i][j]
			}
			edges = append(edges, EdgeProperties{
				SrcVtx: VertexProperties{PointID: s1.PointID, SampleIndex: i},
				DstVtx: VertexProperties{PointID: s2.PointID, SampleIndex: j},
				Weight: w[i][j],
				Valid:  valid,
			})
		}
	}
	return edges, nil
}
