package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order, handoff token included, directly
// from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. A consumed token comes back with empty
// payload and signature; the rendered code is useless after pickup and
// there is no reason to keep serving it.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			student_id,
			robot_id,
			status,
			package_type,
			pickup_building,
			delivery_building,
			delivery_room,
			created_at,
			pickup_instructions,
			handoff_payload,
			handoff_signature,
			handoff_valid,
			scanned_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var o GetOrderQueryResponse
	var id, studentID uuid.UUID
	var robotID *uuid.UUID

	err := row.Scan(
		&id,
		&studentID,
		&robotID,
		&o.Status,
		&o.PackageType,
		&o.PickupBuilding,
		&o.DeliveryBuilding,
		&o.DeliveryRoom,
		&o.CreatedAt,
		&o.PickupInstructions,
		&o.HandoffPayload,
		&o.HandoffSignature,
		&o.HandoffValid,
		&o.ScannedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if o.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if o.StudentID, err = kernel.UUIDFromBytes(studentID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if robotID != nil {
		rid, idErr := kernel.UUIDFromBytes((*robotID)[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		o.RobotID = &rid
	}

	if !o.HandoffValid {
		o.HandoffPayload = ""
		o.HandoffSignature = ""
	}

	return o, nil
}
