package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new delivery order.
// Carries the requesting student, the package attributes, and the pickup and
// delivery locations.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	studentID   kernel.UUID
	studentName string

	packageInfo order.PackageInfo

	pickupBuilding     string
	pickupInstructions string
	deliveryBuilding   string
	deliveryRoom       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// The student name travels into the signed handoff payload; it is display
// data, not an identifier.
func NewCreateOrderCommand(
	orderID, studentID kernel.UUID,
	studentName string,
	packageInfo order.PackageInfo,
	pickupBuilding, pickupInstructions string,
	deliveryBuilding, deliveryRoom string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setStudentID(studentID),
		orderCommand.setLocations(pickupBuilding, deliveryBuilding),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.studentName = studentName
	orderCommand.packageInfo = packageInfo
	orderCommand.pickupInstructions = pickupInstructions
	orderCommand.deliveryRoom = deliveryRoom

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StudentID returns the requesting student's identifier.
func (c CreateOrderCommand) StudentID() kernel.UUID {
	return c.studentID
}

// StudentName returns the student's display name for the handoff payload.
func (c CreateOrderCommand) StudentName() string {
	return c.studentName
}

// Package returns the package attributes.
func (c CreateOrderCommand) Package() order.PackageInfo {
	return c.packageInfo
}

// PickupBuilding returns where the package is picked up from.
func (c CreateOrderCommand) PickupBuilding() string {
	return c.pickupBuilding
}

// PickupInstructions returns optional pickup notes.
func (c CreateOrderCommand) PickupInstructions() string {
	return c.pickupInstructions
}

// DeliveryBuilding returns the destination building.
func (c CreateOrderCommand) DeliveryBuilding() string {
	return c.deliveryBuilding
}

// DeliveryRoom returns the destination room, empty when unspecified.
func (c CreateOrderCommand) DeliveryRoom() string {
	return c.deliveryRoom
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setStudentID(studentID kernel.UUID) error {
	if err := studentID.Validate(); err != nil {
		return err
	}
	c.studentID = studentID
	return nil
}

func (c *CreateOrderCommand) setLocations(pickupBuilding, deliveryBuilding string) error {
	if pickupBuilding == "" {
		return errors.New("pickup building is required")
	}
	if deliveryBuilding == "" {
		return errors.New("delivery building is required")
	}
	c.pickupBuilding = pickupBuilding
	c.deliveryBuilding = deliveryBuilding
	return nil
}
