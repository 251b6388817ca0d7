package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// AutoReturnCommandHandler executes the expired-pickup recovery: every
// Delivered order on the robot is cancelled and the robot heads back to the
// warehouse. Cancellation is terminal; the order's handoff token can never
// be redeemed afterward.
//
// Order cancellations are conditional on Delivered, so a handoff verified in
// the same instant is not clobbered: the verify wins, the cancel skips that
// order.
type AutoReturnCommandHandler struct {
	uowFactory UoWFactory
}

// NewAutoReturnCommandHandler creates a handler for robot auto-return.
func NewAutoReturnCommandHandler(uowFactory UoWFactory) AutoReturnCommandHandler {
	return AutoReturnCommandHandler{uowFactory: uowFactory}
}

// Handle processes the auto-return.
func (h AutoReturnCommandHandler) Handle(ctx context.Context, cmd AutoReturnCommand) error {
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

	if err := autoReturnRobot(ctx, uow, cmd.RobotID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// autoReturnRobot applies the auto-return transition to one robot inside an
// already-begun unit of work. Shared with the pickup-window sweeper.
func autoReturnRobot(ctx context.Context, uow UoW, robotID kernel.UUID) error {
	carrier, err := uow.RobotRepository().Get(ctx, robotID)
	if err != nil {
		return err
	}

	cargo, err := uow.OrderRepository().GetActiveByRobot(ctx, robotID)
	if err != nil {
		return err
	}

	if err = cancelDeliveredCargo(ctx, uow, cargo); err != nil {
		return err
	}

	carrier.AutoReturn()
	return uow.RobotRepository().Update(ctx, carrier)
}

// cancelDeliveredCargo cancels every Delivered order in the given cargo,
// skipping orders a concurrent writer already moved.
func cancelDeliveredCargo(ctx context.Context, uow UoW, cargo []*order.Order) error {
	for _, o := range cargo {
		if o.Status() != order.Delivered {
			continue
		}
		if err := o.Cancel(); err != nil {
			return err
		}

		// A lost race here means the order was picked up or already
		// cancelled in parallel; both are acceptable final states.
		if _, err := uow.OrderRepository().UpdateIfStatus(ctx, o, order.Delivered); err != nil {
			return err
		}
	}
	return nil
}
