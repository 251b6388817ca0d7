package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads non-terminal orders directly from the
// database.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active-order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query, returning active orders oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]OrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			student_id,
			robot_id,
			status,
			package_type,
			pickup_building,
			delivery_building,
			delivery_room,
			created_at
		FROM orders
		WHERE status NOT IN ('PICKED_UP', 'CANCELLED')
		ORDER BY created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

func scanOrderRows(rows *sql.Rows) ([]OrderQueryResponse, error) {
	orders := make([]OrderQueryResponse, 0)

	for rows.Next() {
		var o OrderQueryResponse
		var id, studentID uuid.UUID
		var robotID *uuid.UUID

		err := rows.Scan(
			&id,
			&studentID,
			&robotID,
			&o.Status,
			&o.PackageType,
			&o.PickupBuilding,
			&o.DeliveryBuilding,
			&o.DeliveryRoom,
			&o.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if o.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if o.StudentID, err = kernel.UUIDFromBytes(studentID[:]); err != nil {
			return nil, err
		}
		if robotID != nil {
			rid, err := kernel.UUIDFromBytes((*robotID)[:])
			if err != nil {
				return nil, err
			}
			o.RobotID = &rid
		}

		orders = append(orders, o)
	}

	return orders, rows.Err()
}
