// Package trellis builds and solves a layered trellis graph over Cartesian
// waypoints and their inverse-kinematics sample sets, selecting the single
// joint-space configuration per waypoint that minimizes the total transition
// cost along the whole sequence.
//
// A GraphSolver is given one PointSampler per waypoint and one
// EdgeEvaluator shared across all adjacent layers. build constructs the
// graph; solve runs a uniform-cost shortest-path search from a virtual
// source vertex and backtracks the winning sample for every waypoint.
package trellis
