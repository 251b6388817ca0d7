package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robotcommand"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// ReportExecutionCommandHandler applies a robot's execution report: the
// command completes and its type-specific effect lands on the robot and its
// cargo, all inside one transaction.
//
// The command-side write is conditional on the status the report found, so
// a report racing the timeout sweeper on the same command resolves to
// exactly one winner. The loser observes StateConflict and nothing from its
// transaction persists.
type ReportExecutionCommandHandler struct {
	uowFactory UoWFactory
	effects    services.CommandEffects
}

// NewReportExecutionCommandHandler creates a handler for execution reports.
func NewReportExecutionCommandHandler(uowFactory UoWFactory) ReportExecutionCommandHandler {
	return ReportExecutionCommandHandler{
		uowFactory: uowFactory,
		effects:    services.NewCommandEffects(),
	}
}

// Handle processes the execution report.
func (h ReportExecutionCommandHandler) Handle(ctx context.Context, cmd ReportExecutionCommand) error {
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

	reported, err := uow.CommandRepository().Get(ctx, cmd.CommandID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	foundStatus := reported.Status()

	if err = reported.Complete(cmd.Result(), now); err != nil {
		return err
	}

	committed, err := uow.CommandRepository().UpdateIfStatus(ctx, reported, foundStatus)
	if err != nil {
		return err
	}
	if !committed {
		return errs.NewStateConflictError(
			"command", reported.ID().String(), foundStatus.String(), "concurrently updated")
	}

	if err = h.applyEffect(ctx, uow, reported.RobotID(), reported.Type(),
		services.ExecutionReport{Result: cmd.Result(), Now: now}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// applyEffect runs the type-specific effect against the robot and its
// current cargo, then persists whatever changed. Order writes are
// conditional on the status the effect saw, keeping the whole report
// all-or-nothing under concurrent updates.
func (h ReportExecutionCommandHandler) applyEffect(
	ctx context.Context,
	uow UoW,
	robotID kernel.UUID,
	cmdType robotcommand.Type,
	report services.ExecutionReport,
) error {
	target, err := uow.RobotRepository().Get(ctx, robotID)
	if err != nil {
		return err
	}

	cargo, err := uow.OrderRepository().GetActiveByRobot(ctx, robotID)
	if err != nil {
		return err
	}

	preStatuses := orderPreStatuses(cargo)

	if err = h.effects.Apply(cmdType, target, cargo, report); err != nil {
		return err
	}

	if err = uow.RobotRepository().Update(ctx, target); err != nil {
		return err
	}

	for _, o := range cargo {
		pre := preStatuses[o.ID().String()]
		if o.Status() == pre {
			continue
		}

		committed, err := uow.OrderRepository().UpdateIfStatus(ctx, o, pre)
		if err != nil {
			return err
		}
		if !committed {
			return errs.NewStateConflictError(
				"order", o.ID().String(), pre.String(), "concurrently updated")
		}
	}

	return nil
}

// orderPreStatuses snapshots each order's status before effects run so the
// persistence writes can be conditional on what the effect actually saw.
func orderPreStatuses(orders []*order.Order) map[string]order.Status {
	statuses := make(map[string]order.Status, len(orders))
	for _, o := range orders {
		statuses[o.ID().String()] = o.Status()
	}
	return statuses
}
