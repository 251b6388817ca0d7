package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// DefaultPickupWaitTimeout is how long a robot waits at the destination for
// the recipient's scan before auto-returning.
const DefaultPickupWaitTimeout = 10 * time.Minute

// ExpirePickupWindowsCommandHandler sweeps robots whose pickup window ran
// out: each one gets the same auto-return treatment a dispatcher could
// trigger manually, one robot per transaction so a failure on one robot
// does not hold back the rest.
type ExpirePickupWindowsCommandHandler struct {
	uowFactory UoWFactory
	timeout    time.Duration
}

// NewExpirePickupWindowsCommandHandler creates a pickup-window sweeper
// handler. A non-positive timeout falls back to DefaultPickupWaitTimeout.
func NewExpirePickupWindowsCommandHandler(
	uowFactory UoWFactory,
	timeout time.Duration,
) ExpirePickupWindowsCommandHandler {
	if timeout <= 0 {
		timeout = DefaultPickupWaitTimeout
	}
	return ExpirePickupWindowsCommandHandler{
		uowFactory: uowFactory,
		timeout:    timeout,
	}
}

// Handle runs one sweeper pass and returns how many robots it returned.
func (h ExpirePickupWindowsCommandHandler) Handle(ctx context.Context, cmd ExpirePickupWindowsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-h.timeout)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	expired, err := uow.RobotRepository().GetPickupWaitExpired(ctx, cutoff)
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil && err == nil {
		err = rollbackErr
	}
	if err != nil {
		return 0, err
	}

	returned := 0
	for _, r := range expired {
		if err = h.expireOne(ctx, r.ID()); err != nil {
			return returned, err
		}
		returned++
	}

	return returned, nil
}

// expireOne auto-returns a single robot in its own transaction.
func (h ExpirePickupWindowsCommandHandler) expireOne(ctx context.Context, robotID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := autoReturnRobot(ctx, uow, robotID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
