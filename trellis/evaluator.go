package trellis

import (
	"context"
	"math"

	"go.viam.com/utils"
)

// ParallelEdgeThreshold is the n1*n2 edge count above which
// JointDistanceEvaluator fans its per-pair cost computation out across a
// small worker pool instead of evaluating serially.
const ParallelEdgeThreshold = 64

// JointDistanceEvaluator is a ready-to-use EdgeEvaluator scoring a
// transition by the sum of absolute per-joint differences. An edge is
// invalid only when either endpoint sample has zero degrees of freedom;
// otherwise every transition is valid and its weight is always
// non-negative, satisfying the EdgeEvaluator contract without any
// robot-specific knowledge.
type JointDistanceEvaluator struct {
	// NumWorkers bounds the worker pool used for large layers. Zero means
	// use a small fixed pool sized for typical multi-core machines.
	NumWorkers int
}

// NewJointDistanceEvaluator returns the default evaluator.
func NewJointDistanceEvaluator() *JointDistanceEvaluator {
	return &JointDistanceEvaluator{}
}

// Evaluate implements EdgeEvaluator.
func (e *JointDistanceEvaluator) Evaluate(
	ctx context.Context,
	s1, s2 SampleGroup,
	excludeS1, excludeS2 []int,
) ([]EdgeProperties, error) {
	if err := s1.Validate(); err != nil {
		return nil, err
	}
	if err := s2.Validate(); err != nil {
		return nil, err
	}

	excl1 := toSet(excludeS1)
	excl2 := toSet(excludeS2)

	srcIdx := make([]int, 0, s1.NumSamples)
	for i := 0; i < s1.NumSamples; i++ {
		if !excl1[i] {
			srcIdx = append(srcIdx, i)
		}
	}
	dstIdx := make([]int, 0, s2.NumSamples)
	for j := 0; j < s2.NumSamples; j++ {
		if !excl2[j] {
			dstIdx = append(dstIdx, j)
		}
	}

	n := len(srcIdx) * len(dstIdx)
	edges := make([]EdgeProperties, n)

	compute := func(flatIdx int) {
		ii := flatIdx / len(dstIdx)
		jj := flatIdx % len(dstIdx)
		i := srcIdx[ii]
		j := dstIdx[jj]
		edges[flatIdx] = e.evaluatePair(s1, s2, i, j)
	}

	if n > ParallelEdgeThreshold {
		e.evaluateParallel(ctx, n, compute)
	} else {
		for flat := 0; flat < n; flat++ {
			compute(flat)
		}
	}
	return edges, nil
}

func (e *JointDistanceEvaluator) evaluatePair(s1, s2 SampleGroup, i, j int) EdgeProperties {
	src := VertexProperties{PointID: s1.PointID, SampleIndex: i}
	dst := VertexProperties{PointID: s2.PointID, SampleIndex: j}

	if s1.NumDOFs == 0 || s2.NumDOFs == 0 {
		return EdgeProperties{SrcVtx: src, DstVtx: dst, Valid: false}
	}

	a := s1.At(i).Values
	b := s2.At(j).Values
	weight := 0.0
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for k := 0; k < n; k++ {
		weight += math.Abs(a[k] - b[k])
	}
	return EdgeProperties{SrcVtx: src, DstVtx: dst, Weight: weight, Valid: true}
}

// evaluateParallel fans n independent compute(i) calls out across a fixed
// worker pool, the way motionplan's nearestNeighbor.go parallelizes once a
// workload crosses a size threshold. Workers take indices from a shared
// job channel; output order (already fixed by writing into `edges` by
// index in the caller) stays deterministic regardless of scheduling.
func (e *JointDistanceEvaluator) evaluateParallel(ctx context.Context, n int, compute func(int)) {
	workers := e.NumWorkers
	if workers <= 0 {
		workers = 4
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	done := make(chan struct{}, workers)
	for w := 0; w < workers; w++ {
		utils.PanicCapturingGo(func() {
			defer func() { done <- struct{}{} }()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				compute(idx)
			}
		})
	}
	for w := 0; w < workers; w++ {
		<-done
	}
}

func toSet(xs []int) map[int]bool {
	if len(xs) == 0 {
		return nil
	}
	m := make(map[int]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}
