package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetRobotOrdersQueryIsNotConstructed = errors.New(
	"GetRobotOrdersQuery must be created via NewGetRobotOrdersQuery constructor",
)

// GetRobotOrdersQuery retrieves the active cargo of one robot. Robots call
// this to learn what they are carrying and where it goes.
type GetRobotOrdersQuery struct { //nolint:recvcheck //using for validation
	robotID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRobotOrdersQuery creates a query for a robot's active orders.
func NewGetRobotOrdersQuery(robotID kernel.UUID) (GetRobotOrdersQuery, error) {
	if err := robotID.Validate(); err != nil {
		return GetRobotOrdersQuery{}, err
	}

	return GetRobotOrdersQuery{
		robotID: robotID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRobotOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRobotOrdersQueryIsNotConstructed)
}

// RobotID returns the robot whose cargo is requested.
func (q GetRobotOrdersQuery) RobotID() kernel.UUID {
	return q.robotID
}
