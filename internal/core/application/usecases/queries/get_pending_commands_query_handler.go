package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingCommandsQueryHandler reads a robot's pending queue directly
// from the database.
type GetPendingCommandsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingCommandsQueryHandler creates a handler for poll queries.
func NewGetPendingCommandsQueryHandler(db *gorm.DB) GetPendingCommandsQueryHandler {
	return GetPendingCommandsQueryHandler{db: db}
}

// Handle executes the query, returning the pending snapshot in queue order.
func (h GetPendingCommandsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingCommandsQuery,
) ([]GetPendingCommandsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetPendingCommandsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			command_type,
			sent_at,
			sent_by
		FROM robot_commands
		WHERE robot_id = ?
		  AND status = 'PENDING'
		ORDER BY sent_at, id
	`, query.RobotID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p GetPendingCommandsQueryResponse
		var id uuid.UUID
		var sentBy *uuid.UUID

		if err = rows.Scan(&id, &p.Command, &p.SentAt, &sentBy); err != nil {
			return nil, err
		}

		if p.CommandID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if sentBy != nil {
			issuer, idErr := kernel.UUIDFromBytes((*sentBy)[:])
			if idErr != nil {
				return nil, idErr
			}
			p.SentBy = &issuer
		}

		pending = append(pending, p)
	}

	return pending, rows.Err()
}
