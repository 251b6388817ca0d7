package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateRobotCommandIsNotConstructed = errors.New(
		"CreateRobotCommand must be created via NewCreateRobotCommand constructor",
	)
	ErrRobotNameIsRequired = errors.New("robot name is required")
)

// CreateRobotCommand registers a new robot with the fleet.
type CreateRobotCommand struct { //nolint:recvcheck //using for validation
	robotID kernel.UUID
	name    string

	guard guard.ConstructorGuard
}

// NewCreateRobotCommand creates a command to register a robot.
func NewCreateRobotCommand(robotID kernel.UUID, name string) (CreateRobotCommand, error) {
	if err := robotID.Validate(); err != nil {
		return CreateRobotCommand{}, err
	}
	if name == "" {
		return CreateRobotCommand{}, ErrRobotNameIsRequired
	}

	return CreateRobotCommand{
		robotID: robotID,
		name:    name,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRobotCommand) Validate() error {
	return c.guard.Validate(ErrCreateRobotCommandIsNotConstructed)
}

// RobotID returns the new robot's identifier.
func (c CreateRobotCommand) RobotID() kernel.UUID {
	return c.robotID
}

// Name returns the robot's display name.
func (c CreateRobotCommand) Name() string {
	return c.name
}
