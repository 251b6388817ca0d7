package robotcommand

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Type identifies the instruction carried by a robot command.
type Type string

const (
	// OpenDoor asks the robot to open its cargo door.
	OpenDoor Type = "open_door"

	// CloseDoor asks the robot to close its cargo door.
	CloseDoor Type = "close_door"

	// StartDelivery asks a loading robot to begin its delivery run.
	StartDelivery Type = "start_delivery"

	// StopRobot halts the robot and returns it to idle.
	StopRobot Type = "stop_robot"

	// ArrivedAtDestination notifies that the robot reached a destination.
	ArrivedAtDestination Type = "arrived_at_destination"

	// AutoReturn sends the robot back to the warehouse.
	AutoReturn Type = "auto_return"

	// EmergencyOpenDoor is the safety-critical door release. It bypasses the
	// poll round trip (applied synchronously at enqueue time) and is exempt
	// from timeout failure.
	EmergencyOpenDoor Type = "emergency_open_door"
)

func getValidTypes() map[Type]struct{} {
	return map[Type]struct{}{
		OpenDoor:             {},
		CloseDoor:            {},
		StartDelivery:        {},
		StopRobot:            {},
		ArrivedAtDestination: {},
		AutoReturn:           {},
		EmergencyOpenDoor:    {},
	}
}

// TypeFromString parses a command type from its wire representation.
func TypeFromString(s string) (Type, error) {
	t := Type(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks if the Type is one of the defined command types.
func (t Type) Validate() error {
	if _, ok := getValidTypes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("command type is invalid",
			fmt.Errorf("%q is not a valid command type", string(t)))
	}
	return nil
}

// String returns the wire representation of the type.
func (t Type) String() string {
	return string(t)
}

// TimeoutExempt reports whether the sweeper must never fail this command
// type regardless of age.
func (t Type) TimeoutExempt() bool {
	return t == EmergencyOpenDoor
}
