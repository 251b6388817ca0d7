// Package ports defines the persistence and notification contracts between
// the dispatch engine and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// The conditional methods implement compare-and-swap on the stored status:
// the write applies only if the row still matches the expected pre-state,
// and the returned bool reports whether this caller won. Racing callers
// observe false instead of an error; losing a race is an expected outcome.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate
	// unconditionally. Use UpdateIfStatus for status-dependent writes.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIDAndStudent retrieves an order only when it belongs to the given
	// student. Used by handoff verification, where the student reference in
	// the token must match the stored order.
	GetByIDAndStudent(ctx context.Context, id, studentID kernel.UUID) (*order.Order, error)

	// GetActiveByRobot retrieves the robot's current cargo: orders in
	// Assigned, Delivering, or Delivered status, oldest first.
	GetActiveByRobot(ctx context.Context, robotID kernel.UUID) ([]*order.Order, error)

	// GetAllActive retrieves all orders that have not reached a terminal
	// status, oldest first.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetDeliveredWaitingSince retrieves Delivered orders whose carrying
	// robot started the pickup wait before the cutoff. Used by the
	// pickup-window sweeper.
	GetDeliveredWaitingSince(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// UpdateIfStatus persists the aggregate only if the stored row is still
	// in the expected status. Returns false when another writer moved the
	// order first.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)

	// ConsumeHandoff persists the aggregate only if the stored handoff token
	// is still redeemable. Returns false when a concurrent scan consumed it
	// first.
	ConsumeHandoff(ctx context.Context, aggregate *order.Order) (bool, error)
}
