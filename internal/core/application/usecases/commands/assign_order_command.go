package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand requests assignment of a pending order to a robot.
// The robot may be chosen explicitly by the dispatcher or left nil to let
// the engine pick any available one.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	robotID      *kernel.UUID
	dispatcherID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign an order to a robot.
func NewAssignOrderCommand(
	orderID kernel.UUID,
	robotID *kernel.UUID,
	dispatcherID *kernel.UUID,
) (AssignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignOrderCommand{}, err
	}
	if robotID != nil {
		if err := robotID.Validate(); err != nil {
			return AssignOrderCommand{}, err
		}
	}

	return AssignOrderCommand{
		orderID:      orderID,
		robotID:      robotID,
		dispatcherID: dispatcherID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RobotID returns the explicitly requested robot, nil for auto-selection.
func (c AssignOrderCommand) RobotID() *kernel.UUID {
	return c.robotID
}

// DispatcherID returns the assigning operator, nil for automation.
func (c AssignOrderCommand) DispatcherID() *kernel.UUID {
	return c.dispatcherID
}
