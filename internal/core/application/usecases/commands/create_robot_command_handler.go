package commands

import (
	"context"

	"dispatch/internal/core/domain/model/robot"
)

// CreateRobotCommandHandler registers a new robot: idle, door closed, full
// battery, parked at the warehouse.
type CreateRobotCommandHandler struct {
	uowFactory RobotUoWFactory
}

// NewCreateRobotCommandHandler creates a handler for robot registration.
func NewCreateRobotCommandHandler(uowFactory RobotUoWFactory) CreateRobotCommandHandler {
	return CreateRobotCommandHandler{uowFactory: uowFactory}
}

// Handle processes the registration command.
func (h CreateRobotCommandHandler) Handle(ctx context.Context, cmd CreateRobotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newRobot, err := robot.NewRobot(cmd.RobotID(), cmd.Name())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RobotRepository().Add(ctx, newRobot); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
