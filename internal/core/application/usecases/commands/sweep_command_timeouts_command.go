package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSweepCommandTimeoutsCommandIsNotConstructed = errors.New(
	"SweepCommandTimeoutsCommand must be created via NewSweepCommandTimeoutsCommand constructor",
)

// SweepCommandTimeoutsCommand triggers a pass of the timeout sweeper,
// optionally scoped to a single robot. The poll endpoint runs a scoped pass
// before answering; the background job runs an unscoped one.
type SweepCommandTimeoutsCommand struct { //nolint:recvcheck //using for validation
	robotID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSweepCommandTimeoutsCommand creates a sweeper pass command. A nil
// robotID sweeps every robot's queue.
func NewSweepCommandTimeoutsCommand(robotID *kernel.UUID) (SweepCommandTimeoutsCommand, error) {
	if robotID != nil {
		if err := robotID.Validate(); err != nil {
			return SweepCommandTimeoutsCommand{}, err
		}
	}

	return SweepCommandTimeoutsCommand{
		robotID: robotID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepCommandTimeoutsCommand) Validate() error {
	return c.guard.Validate(ErrSweepCommandTimeoutsCommandIsNotConstructed)
}

// RobotID returns the sweep scope, nil for all robots.
func (c SweepCommandTimeoutsCommand) RobotID() *kernel.UUID {
	return c.robotID
}
