package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// pickupWindowSchedule runs the expiry pass once a minute.
const pickupWindowSchedule = "0 * * * * *"

// PickupWindowJob returns robots whose pickup-wait window expired: the robot
// goes back to the warehouse and the cargo nobody scanned for is cancelled.
type PickupWindowJob struct {
	handler commands.ExpirePickupWindowsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPickupWindowJob creates the pickup-window expiry job.
func NewPickupWindowJob(handler commands.ExpirePickupWindowsCommandHandler, logger *slog.Logger) *PickupWindowJob {
	return &PickupWindowJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "pickup_window_job"),
	}
}

// Start begins the periodic expiry pass.
func (j *PickupWindowJob) Start() error {
	_, err := j.cron.AddFunc(pickupWindowSchedule, func() {
		ctx := context.Background()

		returned, handleErr := j.handler.Handle(ctx, commands.NewExpirePickupWindowsCommand())
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Pickup window expiry failed", "error", handleErr)
			return
		}

		if returned > 0 {
			j.logger.InfoContext(ctx, "Auto-returned robots with expired pickup windows", "count", returned)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pickup window job started (running every minute)")
	return nil
}

// Stop stops the expiry pass.
func (j *PickupWindowJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pickup window job stopped")
}
