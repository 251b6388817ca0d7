package commands

import (
	"context"
)

// UpdateRobotTelemetryCommandHandler applies a robot's self-reported state.
// The robot is the source of truth for its own telemetry, so unlike the
// engine transitions this accepts any valid status.
type UpdateRobotTelemetryCommandHandler struct {
	uowFactory RobotUoWFactory
}

// NewUpdateRobotTelemetryCommandHandler creates a handler for telemetry
// updates.
func NewUpdateRobotTelemetryCommandHandler(uowFactory RobotUoWFactory) UpdateRobotTelemetryCommandHandler {
	return UpdateRobotTelemetryCommandHandler{uowFactory: uowFactory}
}

// Handle processes the telemetry update.
func (h UpdateRobotTelemetryCommandHandler) Handle(ctx context.Context, cmd UpdateRobotTelemetryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.RobotRepository().Get(ctx, cmd.RobotID())
	if err != nil {
		return err
	}

	if cmd.Status() != nil {
		if err = target.SetStatus(*cmd.Status()); err != nil {
			return err
		}
	}
	if cmd.DoorState() != nil {
		if err = target.SetDoorState(*cmd.DoorState()); err != nil {
			return err
		}
	}
	if cmd.BatteryLevel() != nil {
		target.UpdateBattery(*cmd.BatteryLevel())
	}
	if cmd.Location() != nil {
		target.UpdateLocation(*cmd.Location())
	}

	if err = uow.RobotRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
