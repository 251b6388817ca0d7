package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/pkg/errs"
)

// AssignOrderCommandHandler assigns a pending order to a robot: the order
// moves to Assigned and the robot starts Loading, atomically. The order-side
// write is conditional on Pending so two dispatchers racing on the same
// order cannot both win.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignOrderCommandHandler creates a handler for order assignment.
func NewAssignOrderCommandHandler(uowFactory UoWFactory) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the assignment command.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	robotRepo := uow.RobotRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	assignee, err := h.pickRobot(ctx, uow, cmd)
	if err != nil {
		return err
	}
	if !assignee.IsAvailable() {
		return errs.NewStateConflictError(
			"robot", assignee.ID().String(), robot.Idle.String(), assignee.Status().String())
	}

	if err = aggregate.Assign(assignee.ID(), cmd.DispatcherID()); err != nil {
		return err
	}

	committed, err := orderRepo.UpdateIfStatus(ctx, aggregate, order.Pending)
	if err != nil {
		return err
	}
	if !committed {
		return errs.NewStateConflictError(
			"order", aggregate.ID().String(), order.Pending.String(), "concurrently updated")
	}

	if err = assignee.BeginLoading(); err != nil {
		return err
	}
	if err = robotRepo.Update(ctx, assignee); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h AssignOrderCommandHandler) pickRobot(ctx context.Context, uow UoW, cmd AssignOrderCommand) (*robot.Robot, error) {
	robotRepo := uow.RobotRepository()

	if cmd.RobotID() != nil {
		return robotRepo.Get(ctx, *cmd.RobotID())
	}

	available, err := robotRepo.GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, errs.NewObjectNotFoundError("robot", "no idle robot available")
	}
	return available[0], nil
}
