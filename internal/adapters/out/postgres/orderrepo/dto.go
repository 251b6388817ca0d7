// Package orderrepo persists order aggregates. It maps the domain aggregate
// to its relational representation and implements the conditional writes the
// engine's concurrency control relies on.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and robot assignment are indexed: the dispatch queries and the
// sweepers filter on both.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StudentID    uuid.UUID  `gorm:"type:uuid;index"`
	DispatcherID *uuid.UUID `gorm:"type:uuid"`
	RobotID      *uuid.UUID `gorm:"type:uuid;index"`

	PackageType        string
	PackageWeight      string
	PackageFragile     bool
	PackageDescription string

	PickupBuilding     string
	PickupInstructions string
	DeliveryBuilding   string
	DeliveryRoom       string

	Status string `gorm:"index"`

	HandoffPayload   string
	HandoffSignature string
	HandoffValid     bool
	ScannedAt        *time.Time

	CreatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var dispatcherID *uuid.UUID
	if id := aggregate.Dispatcher(); id != nil {
		raw := id.Bytes()
		dispatcherID = &raw
	}

	var robotID *uuid.UUID
	if id := aggregate.Robot(); id != nil {
		raw := id.Bytes()
		robotID = &raw
	}

	pkg := aggregate.Package()

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		StudentID:          aggregate.StudentID().Bytes(),
		DispatcherID:       dispatcherID,
		RobotID:            robotID,
		PackageType:        pkg.Type(),
		PackageWeight:      pkg.Weight(),
		PackageFragile:     pkg.Fragile(),
		PackageDescription: pkg.Description(),
		PickupBuilding:     aggregate.PickupBuilding(),
		PickupInstructions: aggregate.PickupInstructions(),
		DeliveryBuilding:   aggregate.DeliveryBuilding(),
		DeliveryRoom:       aggregate.DeliveryRoom(),
		Status:             aggregate.Status().String(),
		HandoffPayload:     aggregate.HandoffPayload(),
		HandoffSignature:   aggregate.HandoffSignature(),
		HandoffValid:       aggregate.HandoffValid(),
		ScannedAt:          aggregate.ScannedAt(),
		CreatedAt:          aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, trusting the stored state.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	studentID, err := kernel.UUIDFromBytes(dto.StudentID[:])
	if err != nil {
		return nil, err
	}

	var dispatcherID *kernel.UUID
	if dto.DispatcherID != nil {
		dID, dispatcherErr := kernel.UUIDFromBytes((*dto.DispatcherID)[:])
		if dispatcherErr != nil {
			return nil, dispatcherErr
		}

		dispatcherID = &dID
	}

	var robotID *kernel.UUID
	if dto.RobotID != nil {
		rID, robotErr := kernel.UUIDFromBytes((*dto.RobotID)[:])
		if robotErr != nil {
			return nil, robotErr
		}

		robotID = &rID
	}

	pkg, err := order.NewPackageInfo(dto.PackageType, dto.PackageWeight, dto.PackageFragile, dto.PackageDescription)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		studentID,
		dispatcherID,
		robotID,
		pkg,
		dto.PickupBuilding,
		dto.PickupInstructions,
		dto.DeliveryBuilding,
		dto.DeliveryRoom,
		status,
		dto.HandoffPayload,
		dto.HandoffSignature,
		dto.HandoffValid,
		dto.ScannedAt,
		dto.CreatedAt,
	)
}
