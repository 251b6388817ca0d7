package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/robotcommand"
)

// CommandRepository defines the persistence contract for the per-robot
// command queues.
//
// UpdateIfStatus is the single gate out of Pending: the execution report,
// the timeout sweeper, and cancellation all go through it, so whichever
// writer commits first wins and the others observe false.
type CommandRepository interface {
	// Add persists a new command to its robot's queue.
	Add(ctx context.Context, aggregate *robotcommand.RobotCommand) error

	// Get retrieves a command by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*robotcommand.RobotCommand, error)

	// GetActionableByRobot retrieves the robot's Pending and Executing
	// commands in sent-at order. This is the polling read.
	GetActionableByRobot(ctx context.Context, robotID kernel.UUID) ([]*robotcommand.RobotCommand, error)

	// GetPendingOlderThan retrieves Pending commands sent before the cutoff,
	// excluding timeout-exempt types. Used by the timeout sweeper.
	GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*robotcommand.RobotCommand, error)

	// UpdateIfStatus persists the aggregate only if the stored row is still
	// in the expected status. Returns false when another writer moved the
	// command first.
	UpdateIfStatus(
		ctx context.Context,
		aggregate *robotcommand.RobotCommand,
		expected robotcommand.Status,
	) (bool, error)

	// DeleteTerminalBefore removes commands that reached the given terminal
	// status before the cutoff, returning how many rows went away. Used by
	// the retention purge.
	DeleteTerminalBefore(ctx context.Context, status robotcommand.Status, cutoff time.Time) (int64, error)
}
