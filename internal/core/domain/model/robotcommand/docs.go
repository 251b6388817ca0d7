// Package robotcommand contains the RobotCommand aggregate: one queued
// instruction for a robot, with a lifecycle that leaves Pending exactly once
// (execution report, sweeper timeout, or cancellation) and the timeout
// exemption for the emergency door release.
package robotcommand
