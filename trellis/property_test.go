package trellis

import (
	"context"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

// bruteForceOptimum exhaustively enumerates every sample selection and
// returns the minimum total cost, for comparison against GraphSolver.
func bruteForceOptimum(weights [][][]float64, counts []int) float64 {
	n := len(counts)
	best := make([]float64, 1)
	best[0] = -1

	var rec func(k int, prev int, acc float64)
	rec = func(k int, prev int, acc float64) {
		if k == n {
			if best[0] < 0 || acc < best[0] {
				best[0] = acc
			}
			return
		}
		for s := 0; s < counts[k]; s++ {
			next := acc
			if k > 0 {
				next += weights[k-1][prev][s]
			}
			rec(k+1, s, next)
		}
	}
	rec(0, 0, 0)
	return best[0]
}

// TestOptimalityAgainstBruteForce checks the OPTIMALITY property: random
// n_k in [1,5], random weights in [0,1), all edges valid, solver output
// cost must equal the brute-forced minimum.
func TestOptimalityAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 25; trial++ {
		numWaypoints := 2 + rng.Intn(4) // 2..5 waypoints keeps brute force cheap
		counts := make([]int, numWaypoints)
		for k := range counts {
			counts[k] = 1 + rng.Intn(5)
		}

		weights := make([][][]float64, numWaypoints-1)
		for k := 0; k < numWaypoints-1; k++ {
			weights[k] = make([][]float64, counts[k])
			for i := range weights[k] {
				weights[k][i] = make([]float64, counts[k+1])
				for j := range weights[k][i] {
					weights[k][i][j] = rng.Float64()
				}
			}
		}

		expected := bruteForceOptimum(weights, counts)

		samples := make([][]float64, numWaypoints)
		for k, c := range counts {
			samples[k] = make([]float64, c)
			for i := range samples[k] {
				samples[k][i] = float64(i)
			}
		}
		samplers := proxySamplers(samples)

		eval := &matrixEvaluator{weights: weights}
		solver := NewGraphSolver(eval)
		test.That(t, solver.Build(context.Background(), samplers), test.ShouldBeNil)

		sol, err := solver.Solve(context.Background())
		test.That(t, err, test.ShouldBeNil)

		actual := 0.0
		for k := 0; k < numWaypoints-1; k++ {
			srcIdx := int(sol[k].Values[0])
			dstIdx := int(sol[k+1].Values[0])
			actual += weights[k][srcIdx][dstIdx]
		}

		test.That(t, actual, test.ShouldAlmostEqual, expected)
	}
}
