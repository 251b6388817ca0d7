package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies a dispatcher-requested status
// change. Setting Assigned on a Pending order performs the full assignment
// (first available robot starts Loading); setting it on an already Assigned
// order is a no-op, so the surface stays idempotent for dispatcher retries.
// Other targets walk the forward transitions with the matching robot side
// effects, conditional on the status the dispatcher observed.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for dispatcher status
// updates.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle processes the status update.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if cmd.Status() == order.Assigned && aggregate.Status() == order.Assigned {
		return nil
	}

	expected := aggregate.Status()
	if err = h.applyTransition(ctx, uow, cmd.Status(), aggregate); err != nil {
		return err
	}

	committed, err := uow.OrderRepository().UpdateIfStatus(ctx, aggregate, expected)
	if err != nil {
		return err
	}
	if !committed {
		return errs.NewStateConflictError(
			"order", aggregate.ID().String(), expected.String(), "concurrently updated")
	}

	return uow.Commit(ctx)
}

// applyTransition mutates the order toward the requested status and applies
// the robot side effect the equivalent engine operation would.
func (h UpdateOrderStatusCommandHandler) applyTransition(
	ctx context.Context,
	uow UoW,
	target order.Status,
	aggregate *order.Order,
) error {
	switch target {
	case order.Assigned:
		return h.assign(ctx, uow, aggregate)
	case order.Delivering:
		if err := aggregate.StartDelivery(); err != nil {
			return err
		}
		return h.updateCarrier(ctx, uow, aggregate, func(carrier *robot.Robot) error {
			return carrier.StartDelivery(time.Now().UTC())
		})
	case order.Delivered:
		if err := aggregate.MarkDelivered(); err != nil {
			return err
		}
		return h.updateCarrier(ctx, uow, aggregate, func(carrier *robot.Robot) error {
			carrier.StartPickupWait(time.Now().UTC())
			return nil
		})
	case order.Cancelled:
		if err := aggregate.Cancel(); err != nil {
			return err
		}
		return h.releaseCarrier(ctx, uow, aggregate)
	default:
		return errs.NewValueIsInvalidError("status")
	}
}

// releaseCarrier clears the robot's pickup-wait timer after a cancellation
// unless another Delivered order is still waiting on the same robot.
func (h UpdateOrderStatusCommandHandler) releaseCarrier(ctx context.Context, uow UoW, cancelled *order.Order) error {
	if cancelled.Robot() == nil {
		return nil
	}

	cargo, err := uow.OrderRepository().GetActiveByRobot(ctx, *cancelled.Robot())
	if err != nil {
		return err
	}
	for _, o := range cargo {
		if o.Status() == order.Delivered && !o.IsEqual(cancelled) {
			return nil
		}
	}

	return h.updateCarrier(ctx, uow, cancelled, func(carrier *robot.Robot) error {
		carrier.ClearPickupWait()
		return nil
	})
}

func (h UpdateOrderStatusCommandHandler) assign(ctx context.Context, uow UoW, aggregate *order.Order) error {
	available, err := uow.RobotRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}
	if len(available) == 0 {
		return errs.NewObjectNotFoundError("robot", "no idle robot available")
	}

	assignee := available[0]
	if err = aggregate.Assign(assignee.ID(), nil); err != nil {
		return err
	}

	if err = assignee.BeginLoading(); err != nil {
		return err
	}
	return uow.RobotRepository().Update(ctx, assignee)
}

// updateCarrier applies fn to the robot carrying the order, when one is
// assigned.
func (h UpdateOrderStatusCommandHandler) updateCarrier(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	fn func(*robot.Robot) error,
) error {
	if aggregate.Robot() == nil {
		return nil
	}

	carrier, err := uow.RobotRepository().Get(ctx, *aggregate.Robot())
	if err != nil {
		return err
	}
	if err = fn(carrier); err != nil {
		return err
	}
	return uow.RobotRepository().Update(ctx, carrier)
}
