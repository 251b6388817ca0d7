package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// MarkArrivedCommandHandler moves a Delivering order to Delivered and opens
// the pickup-wait window on its robot. From this point the recipient has a
// bounded time to present the handoff token before auto-return cancels the
// order.
type MarkArrivedCommandHandler struct {
	uowFactory UoWFactory
}

// NewMarkArrivedCommandHandler creates a handler for arrival reports.
func NewMarkArrivedCommandHandler(uowFactory UoWFactory) MarkArrivedCommandHandler {
	return MarkArrivedCommandHandler{uowFactory: uowFactory}
}

// Handle processes the arrival report.
func (h MarkArrivedCommandHandler) Handle(ctx context.Context, cmd MarkArrivedCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.MarkDelivered(); err != nil {
		return err
	}

	committed, err := uow.OrderRepository().UpdateIfStatus(ctx, aggregate, order.Delivering)
	if err != nil {
		return err
	}
	if !committed {
		return errs.NewStateConflictError(
			"order", aggregate.ID().String(), order.Delivering.String(), "concurrently updated")
	}

	if aggregate.Robot() != nil {
		carrier, err := uow.RobotRepository().Get(ctx, *aggregate.Robot())
		if err != nil {
			return err
		}
		carrier.StartPickupWait(time.Now().UTC())
		if err = uow.RobotRepository().Update(ctx, carrier); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
