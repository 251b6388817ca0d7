package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetRobotOrdersQueryHandler reads one robot's active cargo directly from
// the database.
type GetRobotOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetRobotOrdersQueryHandler creates a handler for robot cargo queries.
func NewGetRobotOrdersQueryHandler(db *gorm.DB) GetRobotOrdersQueryHandler {
	return GetRobotOrdersQueryHandler{db: db}
}

// Handle executes the query, returning the robot's active orders oldest
// first.
func (h GetRobotOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetRobotOrdersQuery,
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
		WHERE robot_id = ?
		  AND status IN ('ASSIGNED', 'DELIVERING', 'DELIVERED')
		ORDER BY created_at
	`, query.RobotID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}
