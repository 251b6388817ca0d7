package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkArrivedCommandIsNotConstructed = errors.New(
	"MarkArrivedCommand must be created via NewMarkArrivedCommand constructor",
)

// MarkArrivedCommand records that the carrying robot reached an order's
// destination.
type MarkArrivedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkArrivedCommand creates a command marking an order as delivered.
func NewMarkArrivedCommand(orderID kernel.UUID) (MarkArrivedCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkArrivedCommand{}, err
	}

	return MarkArrivedCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkArrivedCommand) Validate() error {
	return c.guard.Validate(ErrMarkArrivedCommandIsNotConstructed)
}

// OrderID returns the arrived order's identifier.
func (c MarkArrivedCommand) OrderID() kernel.UUID {
	return c.orderID
}
