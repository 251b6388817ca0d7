package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// commandTimeoutSchedule runs the sweep every 30 seconds. The command
// timeout is measured in minutes, so half-minute resolution is plenty.
const commandTimeoutSchedule = "*/30 * * * * *"

// CommandTimeoutJob periodically fails Pending commands that outlived the
// command timeout. Robots also trigger a scoped sweep when they poll; this
// job covers robots that stopped polling entirely.
type CommandTimeoutJob struct {
	handler commands.SweepCommandTimeoutsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCommandTimeoutJob creates the global command timeout sweeper.
func NewCommandTimeoutJob(handler commands.SweepCommandTimeoutsCommandHandler, logger *slog.Logger) *CommandTimeoutJob {
	return &CommandTimeoutJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "command_timeout_job"),
	}
}

// Start begins the periodic sweep.
func (j *CommandTimeoutJob) Start() error {
	_, err := j.cron.AddFunc(commandTimeoutSchedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewSweepCommandTimeoutsCommand(nil)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build sweep command", "error", cmdErr)
			return
		}

		failed, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Command timeout sweep failed", "error", handleErr)
			return
		}

		if failed > 0 {
			j.logger.InfoContext(ctx, "Timed out stale commands", "count", failed)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Command timeout job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *CommandTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Command timeout job stopped")
}
