package robot

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the operational state of a delivery robot.
//
// The regular duty cycle is:
//
//	Idle ──> Loading ──> Delivering ──> Returning ──> Idle
//
// Maintenance is reachable from any state through telemetry updates and is
// outside the delivery cycle.
type Status string

const (
	// Idle means the robot is available for assignment.
	Idle Status = "IDLE"

	// Loading means an order was assigned and the robot is being loaded.
	Loading Status = "LOADING"

	// Delivering means the robot is en route with loaded orders.
	Delivering Status = "DELIVERING"

	// Maintenance means the robot is out of service.
	Maintenance Status = "MAINTENANCE"

	// Returning means the robot is heading back to the warehouse.
	Returning Status = "RETURNING"
)

func getValidStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Idle:        {},
		Loading:     {},
		Delivering:  {},
		Maintenance: {},
		Returning:   {},
	}
}

// StatusFromString parses a robot status from its wire representation.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks if the Status is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid robot status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// DoorState represents the state of the robot's cargo door.
type DoorState string

const (
	// DoorOpen means the cargo door is open.
	DoorOpen DoorState = "OPEN"

	// DoorClosed means the cargo door is closed.
	DoorClosed DoorState = "CLOSED"
)

// DoorStateFromString parses a door state from its wire representation.
func DoorStateFromString(s string) (DoorState, error) {
	state := DoorState(s)
	if err := state.Validate(); err != nil {
		return "", err
	}
	return state, nil
}

// Validate checks if the DoorState is OPEN or CLOSED.
func (d DoorState) Validate() error {
	if d != DoorOpen && d != DoorClosed {
		return errs.NewValueIsInvalidErrorWithCause("doorState is invalid",
			fmt.Errorf("%q is not a valid door state", string(d)))
	}
	return nil
}

// String returns the wire representation of the door state.
func (d DoorState) String() string {
	return string(d)
}
