// Package kernel contains shared value objects used across the dispatch
// domain model. These are small immutable types with validation that the
// aggregates (order, robot, robotcommand) build on.
package kernel
