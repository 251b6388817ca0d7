package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// VerifyHandoffResponse reports the outcome of a successful handoff: which
// order was picked up and when.
type VerifyHandoffResponse struct {
	OrderID   kernel.UUID
	Status    order.Status
	ScannedAt time.Time
}

// VerifyHandoffCommandHandler redeems a proof-of-pickup token. The
// authenticator checks the token itself; the handler then binds it to the
// stored order and consumes it with a write conditional on the token still
// being redeemable, so a duplicate scan racing this one loses cleanly with
// AlreadyConsumed semantics instead of double-completing the order.
type VerifyHandoffCommandHandler struct {
	uowFactory    UoWFactory
	authenticator services.HandoffAuthenticator
}

// NewVerifyHandoffCommandHandler creates a handler for handoff verification.
func NewVerifyHandoffCommandHandler(
	uowFactory UoWFactory,
	authenticator services.HandoffAuthenticator,
) VerifyHandoffCommandHandler {
	return VerifyHandoffCommandHandler{
		uowFactory:    uowFactory,
		authenticator: authenticator,
	}
}

// Handle processes the handoff verification.
func (h VerifyHandoffCommandHandler) Handle(
	ctx context.Context,
	cmd VerifyHandoffCommand,
) (VerifyHandoffResponse, error) {
	if err := cmd.Validate(); err != nil {
		return VerifyHandoffResponse{}, err
	}

	claims, err := h.authenticator.Verify(cmd.Token())
	if err != nil {
		return VerifyHandoffResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return VerifyHandoffResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByIDAndStudent(ctx, claims.OrderID, claims.StudentID)
	if err != nil {
		return VerifyHandoffResponse{}, err
	}

	now := time.Now().UTC()
	if err = aggregate.ConfirmPickup(now); err != nil {
		return VerifyHandoffResponse{}, err
	}

	committed, err := uow.OrderRepository().ConsumeHandoff(ctx, aggregate)
	if err != nil {
		return VerifyHandoffResponse{}, err
	}
	if !committed {
		return VerifyHandoffResponse{}, errs.NewHandoffConsumedError(aggregate.ID().String())
	}

	if err = h.closePickupWait(ctx, uow, aggregate); err != nil {
		return VerifyHandoffResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return VerifyHandoffResponse{}, err
	}

	return VerifyHandoffResponse{
		OrderID:   aggregate.ID(),
		Status:    aggregate.Status(),
		ScannedAt: now,
	}, nil
}

// closePickupWait clears the robot's pickup-wait timer unless another
// Delivered order is still waiting on the same robot.
func (h VerifyHandoffCommandHandler) closePickupWait(ctx context.Context, uow UoW, picked *order.Order) error {
	if picked.Robot() == nil {
		return nil
	}

	carrier, err := uow.RobotRepository().Get(ctx, *picked.Robot())
	if err != nil {
		return err
	}

	cargo, err := uow.OrderRepository().GetActiveByRobot(ctx, carrier.ID())
	if err != nil {
		return err
	}
	for _, o := range cargo {
		if o.Status() == order.Delivered && !o.IsEqual(picked) {
			return nil
		}
	}

	carrier.ClearPickupWait()
	return uow.RobotRepository().Update(ctx, carrier)
}
