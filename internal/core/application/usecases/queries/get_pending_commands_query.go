package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPendingCommandsQueryIsNotConstructed = errors.New(
	"GetPendingCommandsQuery must be created via NewGetPendingCommandsQuery constructor",
)

// GetPendingCommandsQuery retrieves one robot's queued commands. This is
// the read half of the poll; the caller runs a scoped sweeper pass first so
// stale commands never reach the robot.
type GetPendingCommandsQuery struct { //nolint:recvcheck //using for validation
	robotID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPendingCommandsQuery creates a query for a robot's pending commands.
func NewGetPendingCommandsQuery(robotID kernel.UUID) (GetPendingCommandsQuery, error) {
	if err := robotID.Validate(); err != nil {
		return GetPendingCommandsQuery{}, err
	}

	return GetPendingCommandsQuery{
		robotID: robotID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingCommandsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingCommandsQueryIsNotConstructed)
}

// RobotID returns the polling robot's identifier.
func (q GetPendingCommandsQuery) RobotID() kernel.UUID {
	return q.robotID
}

// GetPendingCommandsQueryResponse is one queued command in the poll
// snapshot. Ordering follows sent-at; a robot executing sequentially must
// preserve it.
type GetPendingCommandsQueryResponse struct {
	CommandID kernel.UUID
	Command   string
	SentAt    time.Time
	SentBy    *kernel.UUID
}
