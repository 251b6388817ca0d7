package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	commandTimeoutJob *CommandTimeoutJob
	pickupWindowJob   *PickupWindowJob
	retentionJob      *RetentionJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	sweepHandler commands.SweepCommandTimeoutsCommandHandler,
	expireHandler commands.ExpirePickupWindowsCommandHandler,
	purgeHandler commands.PurgeCommandsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		commandTimeoutJob: NewCommandTimeoutJob(sweepHandler, logger),
		pickupWindowJob:   NewPickupWindowJob(expireHandler, logger),
		retentionJob:      NewRetentionJob(purgeHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.commandTimeoutJob.Start(); err != nil {
		return fmt.Errorf("failed to start command timeout job: %w", err)
	}

	if err := jm.pickupWindowJob.Start(); err != nil {
		jm.commandTimeoutJob.Stop()
		return fmt.Errorf("failed to start pickup window job: %w", err)
	}

	if err := jm.retentionJob.Start(); err != nil {
		jm.commandTimeoutJob.Stop()
		jm.pickupWindowJob.Stop()
		return fmt.Errorf("failed to start retention job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.retentionJob.Stop()
	jm.pickupWindowJob.Stop()
	jm.commandTimeoutJob.Stop()
}
