package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrHandoffAlreadyAttached is returned when a handoff token is attached to
	// an order that already carries one. The token is generated exactly once,
	// at order creation, and is never regenerated.
	ErrHandoffAlreadyAttached = errors.New("handoff token is already attached to the order")
)

// Order is the aggregate root for one package delivery from a student to a
// destination building. It owns the order lifecycle from creation through
// assignment, delivery, and the handoff at pickup time.
//
// Order maintains these invariants:
//   - Status transitions follow the state machine defined on Status
//   - The robot reference is set from Assigned onward and never cleared
//   - The handoff token is attached exactly once and consumed exactly once
//   - Can only be created through NewOrder / RestoreOrder
type Order struct {
	id           kernel.UUID
	studentID    kernel.UUID
	dispatcherID *kernel.UUID
	robotID      *kernel.UUID

	packageInfo PackageInfo

	pickupBuilding     string
	pickupInstructions string
	deliveryBuilding   string
	deliveryRoom       string

	status Status

	handoffPayload   string
	handoffSignature string
	handoffValid     bool
	scannedAt        *time.Time

	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with a still-unattached
// handoff token. The caller is expected to attach the token immediately via
// AttachHandoff before the order is persisted for the first time.
func NewOrder(
	id kernel.UUID,
	studentID kernel.UUID,
	packageInfo PackageInfo,
	pickupBuilding, pickupInstructions string,
	deliveryBuilding, deliveryRoom string,
	now time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := studentID.Validate(); err != nil {
		return nil, err
	}
	if pickupBuilding == "" {
		return nil, errs.NewValueIsRequiredError("pickupBuilding")
	}
	if deliveryBuilding == "" {
		return nil, errs.NewValueIsRequiredError("deliveryBuilding")
	}

	return &Order{
		id:                 id,
		studentID:          studentID,
		packageInfo:        packageInfo,
		pickupBuilding:     pickupBuilding,
		pickupInstructions: pickupInstructions,
		deliveryBuilding:   deliveryBuilding,
		deliveryRoom:       deliveryRoom,
		status:             Pending,
		handoffValid:       false,
		createdAt:          now,
		isConstructed:      true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// creation-time rules. The stored state is trusted; only structural
// validation applies.
func RestoreOrder(
	id kernel.UUID,
	studentID kernel.UUID,
	dispatcherID *kernel.UUID,
	robotID *kernel.UUID,
	packageInfo PackageInfo,
	pickupBuilding, pickupInstructions string,
	deliveryBuilding, deliveryRoom string,
	status Status,
	handoffPayload, handoffSignature string,
	handoffValid bool,
	scannedAt *time.Time,
	createdAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := studentID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:                 id,
		studentID:          studentID,
		dispatcherID:       dispatcherID,
		robotID:            robotID,
		packageInfo:        packageInfo,
		pickupBuilding:     pickupBuilding,
		pickupInstructions: pickupInstructions,
		deliveryBuilding:   deliveryBuilding,
		deliveryRoom:       deliveryRoom,
		status:             status,
		handoffPayload:     handoffPayload,
		handoffSignature:   handoffSignature,
		handoffValid:       handoffValid,
		scannedAt:          scannedAt,
		createdAt:          createdAt,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StudentID returns the requesting student's identifier.
func (o *Order) StudentID() kernel.UUID {
	return o.studentID
}

// Dispatcher returns the operator who assigned the order, nil when unassigned.
func (o *Order) Dispatcher() *kernel.UUID {
	return o.dispatcherID
}

// Robot returns the carrying robot's identifier, nil when unassigned.
func (o *Order) Robot() *kernel.UUID {
	return o.robotID
}

// Package returns the package attributes.
func (o *Order) Package() PackageInfo {
	return o.packageInfo
}

// PickupBuilding returns where the package is picked up from.
func (o *Order) PickupBuilding() string {
	return o.pickupBuilding
}

// PickupInstructions returns optional pickup notes.
func (o *Order) PickupInstructions() string {
	return o.pickupInstructions
}

// DeliveryBuilding returns the destination building.
func (o *Order) DeliveryBuilding() string {
	return o.deliveryBuilding
}

// DeliveryRoom returns the destination room, empty when unspecified.
func (o *Order) DeliveryRoom() string {
	return o.deliveryRoom
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// HandoffPayload returns the canonical JSON the handoff token signs.
func (o *Order) HandoffPayload() string {
	return o.handoffPayload
}

// HandoffSignature returns the hex-encoded token signature.
func (o *Order) HandoffSignature() string {
	return o.handoffSignature
}

// HandoffValid reports whether the handoff token can still be redeemed.
func (o *Order) HandoffValid() bool {
	return o.handoffValid
}

// ScannedAt returns when the handoff token was verified, nil before pickup.
func (o *Order) ScannedAt() *time.Time {
	return o.scannedAt
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AttachHandoff stores the generated handoff token on the order and arms it.
// The token is attached exactly once; a second call fails regardless of the
// token content.
func (o *Order) AttachHandoff(payload, signature string) error {
	if o.handoffPayload != "" || o.handoffSignature != "" {
		return ErrHandoffAlreadyAttached
	}
	if payload == "" {
		return errs.NewValueIsRequiredError("handoff payload")
	}
	o.handoffPayload = payload
	o.handoffSignature = signature
	o.handoffValid = true
	return nil
}

// Assign assigns the order to a robot, recording the dispatching operator.
// Requires Pending status; the robot reference is never reassigned afterward.
func (o *Order) Assign(robotID kernel.UUID, dispatcherID *kernel.UUID) error {
	if err := robotID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return o.conflict(err)
	}

	o.status = newStatus
	o.robotID = &robotID
	o.dispatcherID = dispatcherID
	return nil
}

// StartDelivery moves the order from Assigned to Delivering. Called when the
// carrying robot reports the start_delivery command executed.
func (o *Order) StartDelivery() error {
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return o.conflict(err)
	}
	o.status = newStatus
	return nil
}

// RevertToAssigned moves a Delivering order back to Assigned. Applied when
// the carrying robot is stopped before reaching the destination.
func (o *Order) RevertToAssigned() error {
	newStatus, err := o.status.RevertToAssigned()
	if err != nil {
		return o.conflict(err)
	}
	o.status = newStatus
	return nil
}

// MarkDelivered moves the order from Delivering to Delivered when the robot
// arrives at the destination. The pickup-wait window starts on the robot.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.MarkDelivered()
	if err != nil {
		return o.conflict(err)
	}
	o.status = newStatus
	return nil
}

// ConfirmPickup consumes the handoff token: the order becomes PickedUp, the
// token is invalidated, and the scan time recorded. A consumed token always
// fails with ErrHandoffConsumed, even when its signature is valid.
func (o *Order) ConfirmPickup(now time.Time) error {
	if !o.handoffValid {
		return errs.NewHandoffConsumedError(o.id.String())
	}

	newStatus, err := o.status.PickUp()
	if err != nil {
		return o.conflict(err)
	}

	o.status = newStatus
	o.handoffValid = false
	o.scannedAt = &now
	return nil
}

// Cancel voids a Delivered order whose pickup window expired. Terminal.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return o.conflict(err)
	}
	o.status = newStatus
	return nil
}

// conflict rebinds a status-machine conflict to this order's identity.
func (o *Order) conflict(err error) error {
	var sc *errs.StateConflictError
	if errors.As(err, &sc) {
		return errs.NewStateConflictError("order", o.id.String(), sc.Expected, sc.Actual)
	}
	return err
}
