package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/robotcommand"
	"dispatch/internal/pkg/errs"
)

// DefaultCommandTimeout is how long a queued command may stay Pending
// before the sweeper fails it.
const DefaultCommandTimeout = 5 * time.Minute

// SweepCommandTimeoutsCommandHandler fails stale Pending commands: anything
// older than the timeout becomes Failed with a "timeout" result. Emergency
// door commands are exempt and never swept.
//
// Each transition is conditional on the command still being Pending, so a
// sweep racing an execution report never overwrites the report. The sweep is
// idempotent; re-running it over the same queue is harmless.
type SweepCommandTimeoutsCommandHandler struct {
	uowFactory UoWFactory
	timeout    time.Duration
}

// NewSweepCommandTimeoutsCommandHandler creates a sweeper handler. A
// non-positive timeout falls back to DefaultCommandTimeout.
func NewSweepCommandTimeoutsCommandHandler(
	uowFactory UoWFactory,
	timeout time.Duration,
) SweepCommandTimeoutsCommandHandler {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return SweepCommandTimeoutsCommandHandler{
		uowFactory: uowFactory,
		timeout:    timeout,
	}
}

// Handle runs one sweeper pass and returns how many commands it failed.
func (h SweepCommandTimeoutsCommandHandler) Handle(ctx context.Context, cmd SweepCommandTimeoutsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	stale, err := uow.CommandRepository().GetPendingOlderThan(ctx, now.Add(-h.timeout))
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, queued := range stale {
		if cmd.RobotID() != nil && !queued.RobotID().IsEqual(*cmd.RobotID()) {
			continue
		}

		if err = queued.FailTimeout(now); err != nil {
			// Exempt types should never come back from the repository;
			// treat one as a skip rather than aborting the pass.
			if errors.Is(err, errs.ErrValueIsInvalid) {
				continue
			}
			return 0, err
		}

		committed, err := uow.CommandRepository().UpdateIfStatus(ctx, queued, robotcommand.Pending)
		if err != nil {
			return 0, err
		}
		if committed {
			swept++
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return swept, nil
}
