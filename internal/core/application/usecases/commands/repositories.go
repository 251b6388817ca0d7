// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// conditional persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RobotRepoFactory provides access to the robot repository within a transaction.
	RobotRepoFactory interface {
		RobotRepository() ports.RobotRepository
	}

	// CommandRepoFactory provides access to the command repository within a transaction.
	CommandRepoFactory interface {
		CommandRepository() ports.CommandRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RobotUoW manages transactions for robot-only operations.
	RobotUoW interface {
		TxManager
		RobotRepoFactory
	}

	// RobotUoWFactory creates new robot unit of work instances.
	RobotUoWFactory interface {
		Create() RobotUoW
	}

	// CommandUoW manages transactions for command-queue-only operations.
	CommandUoW interface {
		TxManager
		CommandRepoFactory
	}

	// CommandUoWFactory creates new command unit of work instances.
	CommandUoWFactory interface {
		Create() CommandUoW
	}

	// UoW manages transactions across orders, robots, and the command queue.
	// Used by engine operations whose effects span aggregate types, which
	// must land atomically: all writes commit together or none do.
	UoW interface {
		TxManager
		OrderRepoFactory
		RobotRepoFactory
		CommandRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
