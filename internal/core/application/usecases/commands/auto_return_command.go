package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAutoReturnCommandIsNotConstructed = errors.New(
	"AutoReturnCommand must be created via NewAutoReturnCommand constructor",
)

// AutoReturnCommand sends a robot back to the warehouse after its pickup
// window expired, cancelling any Delivered cargo still on board.
type AutoReturnCommand struct { //nolint:recvcheck //using for validation
	robotID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAutoReturnCommand creates a command to auto-return a robot.
func NewAutoReturnCommand(robotID kernel.UUID) (AutoReturnCommand, error) {
	if err := robotID.Validate(); err != nil {
		return AutoReturnCommand{}, err
	}

	return AutoReturnCommand{
		robotID: robotID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoReturnCommand) Validate() error {
	return c.guard.Validate(ErrAutoReturnCommandIsNotConstructed)
}

// RobotID returns the robot to send back.
func (c AutoReturnCommand) RobotID() kernel.UUID {
	return c.robotID
}
