package robot

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrRobotIsNotConstructed is returned when a Robot instance was not created
// through NewRobot or RestoreRobot.
var ErrRobotIsNotConstructed = errors.New("Robot must be created via NewRobot or RestoreRobot")

// Robot is the aggregate root for one delivery unit. It tracks the duty
// cycle status, cargo door state, telemetry (battery, location), and the two
// timers the recovery logic depends on: when the current delivery started
// and when the robot began waiting for a pickup scan.
//
// Invariant: the pickup-wait timer is non-nil exactly while the robot holds
// at least one Delivered order awaiting handoff confirmation.
type Robot struct {
	id   kernel.UUID
	name string

	status    Status
	doorState DoorState

	batteryLevel int
	location     string

	deliveryStartTime *time.Time
	qrWaitStartTime   *time.Time

	isConstructed bool
}

// NewRobot creates a new idle robot at the warehouse with a closed door and
// a full battery.
func NewRobot(id kernel.UUID, name string) (*Robot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Robot{
		id:            id,
		name:          name,
		status:        Idle,
		doorState:     DoorClosed,
		batteryLevel:  100,
		location:      "Warehouse",
		isConstructed: true,
	}, nil
}

// RestoreRobot reconstructs a Robot from persistence.
func RestoreRobot(
	id kernel.UUID,
	name string,
	status Status,
	doorState DoorState,
	batteryLevel int,
	location string,
	deliveryStartTime *time.Time,
	qrWaitStartTime *time.Time,
) (*Robot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := doorState.Validate(); err != nil {
		return nil, err
	}
	if batteryLevel < 0 || batteryLevel > 100 {
		return nil, errs.NewValueIsOutOfRangeError("batteryLevel", batteryLevel, 0, 100)
	}

	return &Robot{
		id:                id,
		name:              name,
		status:            status,
		doorState:         doorState,
		batteryLevel:      batteryLevel,
		location:          location,
		deliveryStartTime: deliveryStartTime,
		qrWaitStartTime:   qrWaitStartTime,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Robot instance was properly constructed.
func (r *Robot) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRobotIsNotConstructed
	}
	return nil
}

// ID returns the robot's unique identifier.
func (r *Robot) ID() kernel.UUID {
	return r.id
}

// Name returns the robot's display name.
func (r *Robot) Name() string {
	return r.name
}

// Status returns the current duty-cycle status.
func (r *Robot) Status() Status {
	return r.status
}

// DoorState returns the cargo door state.
func (r *Robot) DoorState() DoorState {
	return r.doorState
}

// BatteryLevel returns the battery percentage, 0 to 100.
func (r *Robot) BatteryLevel() int {
	return r.batteryLevel
}

// Location returns the robot's last reported location.
func (r *Robot) Location() string {
	return r.location
}

// DeliveryStartTime returns when the current delivery run started, nil when
// not delivering.
func (r *Robot) DeliveryStartTime() *time.Time {
	return r.deliveryStartTime
}

// QRWaitStartTime returns when the robot began waiting at the destination
// for a pickup scan, nil while no Delivered order is on board.
func (r *Robot) QRWaitStartTime() *time.Time {
	return r.qrWaitStartTime
}

// IsAvailable reports whether the robot can take a new assignment.
func (r *Robot) IsAvailable() bool {
	return r.status == Idle
}

// BeginLoading marks the robot as receiving packages for an assigned order.
// Requires the robot to be available.
func (r *Robot) BeginLoading() error {
	if r.status != Idle {
		return errs.NewStateConflictError("robot", r.id.String(), Idle.String(), r.status.String())
	}
	r.status = Loading
	return nil
}

// StartDelivery begins the delivery run: the robot leaves loading, and the
// delivery timer starts. Requires Loading status.
func (r *Robot) StartDelivery(now time.Time) error {
	if r.status != Loading {
		return errs.NewStateConflictError("robot", r.id.String(), Loading.String(), r.status.String())
	}
	r.status = Delivering
	r.deliveryStartTime = &now
	return nil
}

// Stop halts the robot wherever it is: back to Idle with both timers
// cleared. Orders en route revert to Assigned at the engine level.
func (r *Robot) Stop() {
	r.status = Idle
	r.deliveryStartTime = nil
	r.qrWaitStartTime = nil
}

// StartPickupWait starts the pickup-wait window after arriving at a
// destination with a Delivered order on board.
func (r *Robot) StartPickupWait(now time.Time) {
	r.qrWaitStartTime = &now
}

// ClearPickupWait stops the pickup-wait window after a successful handoff.
func (r *Robot) ClearPickupWait() {
	r.qrWaitStartTime = nil
}

// AutoReturn sends the robot back to the warehouse after the pickup window
// expired. Undelivered cargo is cancelled at the engine level.
func (r *Robot) AutoReturn() {
	r.status = Returning
	r.qrWaitStartTime = nil
	r.deliveryStartTime = nil
}

// SetDoorState records the cargo door state as reported by the robot.
func (r *Robot) SetDoorState(state DoorState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	r.doorState = state
	return nil
}

// UpdateLocation records the robot's reported position. The location is an
// opaque string owned by the robot's navigation stack.
func (r *Robot) UpdateLocation(location string) {
	r.location = location
}

// UpdateBattery records the reported battery level, clamped to 0..100.
func (r *Robot) UpdateBattery(level int) {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	r.batteryLevel = level
}

// SetStatus applies a status reported over the telemetry surface. Unlike the
// duty-cycle transitions this accepts any valid status: the robot is the
// source of truth for its own operational state.
func (r *Robot) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
