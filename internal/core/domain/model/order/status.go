package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with defined transitions so that orders only
// move forward along the delivery workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> Delivering ──> Delivered ──┬──> PickedUp
//	                ^            │                      │
//	                └────────────┘                      └──> Cancelled
//	            (stop_robot revert)
//
// PickedUp and Cancelled are terminal. The only non-forward edge is the
// Delivering -> Assigned revert applied when a robot is stopped mid-route.
type Status string

const (
	// Pending is the initial status: the order awaits assignment to a robot.
	Pending Status = "PENDING"

	// Assigned means the order has been matched with a robot that is loading.
	Assigned Status = "ASSIGNED"

	// Delivering means the carrying robot is en route.
	Delivering Status = "DELIVERING"

	// Delivered means the robot arrived and the order awaits pickup
	// confirmation via the handoff token.
	Delivered Status = "DELIVERED"

	// PickedUp means the recipient proved possession of the handoff token.
	// Terminal.
	PickedUp Status = "PICKED_UP"

	// Cancelled means the pickup window expired and the order was returned.
	// Terminal.
	Cancelled Status = "CANCELLED"
)

func getValidStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Pending:    {},
		Assigned:   {},
		Delivering: {},
		Delivered:  {},
		PickedUp:   {},
		Cancelled:  {},
	}
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == PickedUp || s == Cancelled
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return "", errs.NewStateConflictError("order", "", Pending.String(), s.String())
	}
	return Assigned, nil
}

// StartDelivery transitions the status to Delivering.
//
// Valid transitions:
//   - Assigned -> Delivering
func (s Status) StartDelivery() (Status, error) {
	if s != Assigned {
		return "", errs.NewStateConflictError("order", "", Assigned.String(), s.String())
	}
	return Delivering, nil
}

// RevertToAssigned transitions the status back to Assigned. This is the
// stop_robot exception: an order already en route returns to the loaded state
// when its robot is halted.
//
// Valid transitions:
//   - Delivering -> Assigned
func (s Status) RevertToAssigned() (Status, error) {
	if s != Delivering {
		return "", errs.NewStateConflictError("order", "", Delivering.String(), s.String())
	}
	return Assigned, nil
}

// MarkDelivered transitions the status to Delivered.
//
// Valid transitions:
//   - Delivering -> Delivered
func (s Status) MarkDelivered() (Status, error) {
	if s != Delivering {
		return "", errs.NewStateConflictError("order", "", Delivering.String(), s.String())
	}
	return Delivered, nil
}

// PickUp transitions the status to PickedUp. Terminal.
//
// Valid transitions:
//   - Delivered -> PickedUp
func (s Status) PickUp() (Status, error) {
	if s != Delivered {
		return "", errs.NewStateConflictError("order", "", Delivered.String(), s.String())
	}
	return PickedUp, nil
}

// Cancel transitions the status to Cancelled. Terminal. Only orders sitting
// in a robot past their pickup window are cancelled.
//
// Valid transitions:
//   - Delivered -> Cancelled
func (s Status) Cancel() (Status, error) {
	if s != Delivered {
		return "", errs.NewStateConflictError("order", "", Delivered.String(), s.String())
	}
	return Cancelled, nil
}
