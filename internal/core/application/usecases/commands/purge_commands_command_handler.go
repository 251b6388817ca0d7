package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/robotcommand"
)

// Per-terminal-status grace windows before a command row is purged.
// Failed commands are kept a shorter time; they exist mostly for the
// operator to notice the failure at all.
const (
	CompletedRetention = 3 * 24 * time.Hour
	CancelledRetention = 3 * 24 * time.Hour
	FailedRetention    = 24 * time.Hour
)

// PurgeCommandsCommandHandler removes terminal commands past their grace
// window.
type PurgeCommandsCommandHandler struct {
	uowFactory CommandUoWFactory
}

// NewPurgeCommandsCommandHandler creates a handler for the retention pass.
func NewPurgeCommandsCommandHandler(uowFactory CommandUoWFactory) PurgeCommandsCommandHandler {
	return PurgeCommandsCommandHandler{uowFactory: uowFactory}
}

// Handle runs one retention pass and returns how many rows were purged.
func (h PurgeCommandsCommandHandler) Handle(ctx context.Context, cmd PurgeCommandsCommand) (int64, error) {
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
	retentions := []struct {
		status robotcommand.Status
		window time.Duration
	}{
		{robotcommand.Completed, CompletedRetention},
		{robotcommand.Cancelled, CancelledRetention},
		{robotcommand.Failed, FailedRetention},
	}

	var purged int64
	for _, r := range retentions {
		n, err := uow.CommandRepository().DeleteTerminalBefore(ctx, r.status, now.Add(-r.window))
		if err != nil {
			return 0, err
		}
		purged += n
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
