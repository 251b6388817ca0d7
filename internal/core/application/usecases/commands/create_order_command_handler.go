package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order in Pending status and attaches its signed handoff token.
// The token is generated here, exactly once; nothing later in the order's
// lifetime regenerates it.
type CreateOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	authenticator services.HandoffAuthenticator
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	authenticator services.HandoffAuthenticator,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		authenticator: authenticator,
	}
}

// Handle processes the order creation command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.StudentID(),
		cmd.Package(),
		cmd.PickupBuilding(), cmd.PickupInstructions(),
		cmd.DeliveryBuilding(), cmd.DeliveryRoom(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	signed, err := h.authenticator.Generate(services.HandoffPayload{
		DeliveryBuilding: cmd.DeliveryBuilding(),
		DeliveryRoom:     cmd.DeliveryRoom(),
		OrderID:          cmd.OrderID().String(),
		PackageType:      cmd.Package().Type(),
		StudentID:        cmd.StudentID().String(),
		StudentName:      cmd.StudentName(),
	})
	if err != nil {
		return err
	}

	if err = newOrder.AttachHandoff(signed.Payload, signed.Signature); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
