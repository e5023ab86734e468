// Package buildstats collects lightweight, purely observational timing and
// sizing counters for one GraphSolver build+solve cycle.
package buildstats

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Stats is a snapshot of one build+solve cycle's instrumentation.
type Stats struct {
	Waypoints     int
	Vertices      int
	Edges         int
	BuildDuration time.Duration
	SolveDuration time.Duration
}

// Recorder times a build and a solve phase using an injectable clock,
// defaulting to the real wall clock. Clock may be replaced, for example
// with clock.NewMock(), to get deterministic durations.
type Recorder struct {
	Clock clock.Clock

	buildStart time.Time
	solveStart time.Time
	stats      Stats
}

// NewRecorder returns a Recorder backed by the real clock.
func NewRecorder() *Recorder {
	return &Recorder{Clock: clock.New()}
}

// StartBuild marks the beginning of a build phase.
func (r *Recorder) StartBuild() {
	r.buildStart = r.Clock.Now()
}

// FinishBuild records the build phase's duration and graph size.
func (r *Recorder) FinishBuild(waypoints, vertices, edges int) {
	r.stats.Waypoints = waypoints
	r.stats.Vertices = vertices
	r.stats.Edges = edges
	r.stats.BuildDuration = r.Clock.Now().Sub(r.buildStart)
}

// StartSolve marks the beginning of a solve phase.
func (r *Recorder) StartSolve() {
	r.solveStart = r.Clock.Now()
}

// FinishSolve records the solve phase's duration.
func (r *Recorder) FinishSolve() {
	r.stats.SolveDuration = r.Clock.Now().Sub(r.solveStart)
}

// Stats returns the most recently recorded snapshot.
func (r *Recorder) Stats() Stats {
	return r.stats
}
