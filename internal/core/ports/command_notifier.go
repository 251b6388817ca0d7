package ports

import (
	"context"

	"dispatch/internal/core/domain/model/robotcommand"
)

// CommandNotifier pushes a hint to a connected robot that new work entered
// its queue, so the robot can poll immediately instead of waiting for the
// next interval.
//
// Notification is fire-and-forget: polling remains the source of truth, and
// a dropped notification costs at most one poll interval. Implementations
// must not block the calling transaction.
type CommandNotifier interface {
	NotifyCommandQueued(ctx context.Context, command *robotcommand.RobotCommand)
}
