package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRobotsQueryHandler reads the fleet directly from the database.
type GetRobotsQueryHandler struct {
	db *gorm.DB
}

// NewGetRobotsQueryHandler creates a handler for fleet retrieval queries.
func NewGetRobotsQueryHandler(db *gorm.DB) GetRobotsQueryHandler {
	return GetRobotsQueryHandler{db: db}
}

// Handle executes the query, returning robots sorted by name.
func (h GetRobotsQueryHandler) Handle(ctx context.Context, query GetRobotsQuery) ([]GetRobotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	robots := make([]GetRobotsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status,
			door_state,
			battery_level,
			location,
			delivery_start_time,
			qr_wait_start_time
		FROM robots
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r GetRobotsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&r.Name,
			&r.Status,
			&r.DoorState,
			&r.BatteryLevel,
			&r.Location,
			&r.DeliveryStartTime,
			&r.QRWaitStartTime,
		)
		if err != nil {
			return nil, err
		}

		robotID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		r.ID = robotID

		robots = append(robots, r)
	}

	return robots, rows.Err()
}
