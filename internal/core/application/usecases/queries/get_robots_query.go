// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregates and read optimized models straight from
// the database.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetRobotsQueryIsNotConstructed = errors.New(
	"GetRobotsQuery must be created via NewGetRobotsQuery constructor",
)

// GetRobotsQuery retrieves the whole fleet for the dispatcher dashboard.
type GetRobotsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetRobotsQuery creates a query to retrieve all robots.
func NewGetRobotsQuery() GetRobotsQuery {
	return GetRobotsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetRobotsQuery) Validate() error {
	return q.guard.Validate(ErrGetRobotsQueryIsNotConstructed)
}

// GetRobotsQueryResponse is one robot in the fleet read model.
type GetRobotsQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Status            string
	DoorState         string
	BatteryLevel      int
	Location          string
	DeliveryStartTime *time.Time
	QRWaitStartTime   *time.Time
}
