package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateRobotTelemetryCommandIsNotConstructed = errors.New(
	"UpdateRobotTelemetryCommand must be created via NewUpdateRobotTelemetryCommand constructor",
)

// UpdateRobotTelemetryCommand carries a robot's self-reported state. All
// fields except the robot id are optional; absent fields leave the stored
// value untouched.
type UpdateRobotTelemetryCommand struct { //nolint:recvcheck //using for validation
	robotID      kernel.UUID
	status       *robot.Status
	doorState    *robot.DoorState
	batteryLevel *int
	location     *string

	guard guard.ConstructorGuard
}

// NewUpdateRobotTelemetryCommand creates a telemetry update command.
func NewUpdateRobotTelemetryCommand(
	robotID kernel.UUID,
	status *robot.Status,
	doorState *robot.DoorState,
	batteryLevel *int,
	location *string,
) (UpdateRobotTelemetryCommand, error) {
	if err := robotID.Validate(); err != nil {
		return UpdateRobotTelemetryCommand{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return UpdateRobotTelemetryCommand{}, err
		}
	}
	if doorState != nil {
		if err := doorState.Validate(); err != nil {
			return UpdateRobotTelemetryCommand{}, err
		}
	}

	return UpdateRobotTelemetryCommand{
		robotID:      robotID,
		status:       status,
		doorState:    doorState,
		batteryLevel: batteryLevel,
		location:     location,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRobotTelemetryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRobotTelemetryCommandIsNotConstructed)
}

// RobotID returns the reporting robot's identifier.
func (c UpdateRobotTelemetryCommand) RobotID() kernel.UUID {
	return c.robotID
}

// Status returns the reported status, nil when not reported.
func (c UpdateRobotTelemetryCommand) Status() *robot.Status {
	return c.status
}

// DoorState returns the reported door state, nil when not reported.
func (c UpdateRobotTelemetryCommand) DoorState() *robot.DoorState {
	return c.doorState
}

// BatteryLevel returns the reported battery percentage, nil when not reported.
func (c UpdateRobotTelemetryCommand) BatteryLevel() *int {
	return c.batteryLevel
}

// Location returns the reported location, nil when not reported.
func (c UpdateRobotTelemetryCommand) Location() *string {
	return c.location
}
