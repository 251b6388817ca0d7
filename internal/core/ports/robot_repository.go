package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/robot"
)

// RobotRepository defines the persistence contract for robot aggregates.
type RobotRepository interface {
	// Add persists a new robot aggregate to storage.
	Add(ctx context.Context, aggregate *robot.Robot) error

	// Update persists changes to an existing robot aggregate.
	Update(ctx context.Context, aggregate *robot.Robot) error

	// Get retrieves a robot aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*robot.Robot, error)

	// GetAll retrieves the whole fleet, stable order by name.
	GetAll(ctx context.Context) ([]*robot.Robot, error)

	// GetAllAvailable retrieves robots that can take a new assignment.
	GetAllAvailable(ctx context.Context) ([]*robot.Robot, error)

	// GetPickupWaitExpired retrieves robots whose pickup-wait window opened
	// before the cutoff and is still running. Used by the auto-return
	// sweeper.
	GetPickupWaitExpired(ctx context.Context, cutoff time.Time) ([]*robot.Robot, error)
}
