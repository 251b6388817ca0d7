package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// retentionSchedule runs the purge at the top of every hour. Retention is
// measured in days, so anything more frequent is wasted work.
const retentionSchedule = "0 0 * * * *"

// RetentionJob purges terminal robot commands past their retention windows
// to keep the command table from growing without bound.
type RetentionJob struct {
	handler commands.PurgeCommandsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRetentionJob creates the command retention purge job.
func NewRetentionJob(handler commands.PurgeCommandsCommandHandler, logger *slog.Logger) *RetentionJob {
	return &RetentionJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "retention_job"),
	}
}

// Start begins the periodic purge.
func (j *RetentionJob) Start() error {
	_, err := j.cron.AddFunc(retentionSchedule, func() {
		ctx := context.Background()

		purged, handleErr := j.handler.Handle(ctx, commands.NewPurgeCommandsCommand())
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Command retention purge failed", "error", handleErr)
			return
		}

		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged terminal commands past retention", "count", purged)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retention job started (running hourly)")
	return nil
}

// Stop stops the purge.
func (j *RetentionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Retention job stopped")
}
