// Package commandrepo persists the per-robot command queues.
package commandrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/robotcommand"

	"github.com/google/uuid"
)

// CommandDTO represents the database structure for persisting robot commands.
// The composite index backs both the poll (robot_id, status) and the sweep
// ordering on sent_at.
type CommandDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	RobotID uuid.UUID `gorm:"type:uuid;index:idx_robot_commands_queue"`

	CommandType string
	Status      string `gorm:"index:idx_robot_commands_queue"`

	SentBy *uuid.UUID `gorm:"type:uuid"`
	SentAt time.Time  `gorm:"index"`

	ExecutedAt *time.Time
	Result     string
}

// TableName specifies the database table name for robot commands.
func (CommandDTO) TableName() string {
	return "robot_commands"
}

// fromDomain converts a robot command aggregate to its database
// representation.
func fromDomain(aggregate *robotcommand.RobotCommand) CommandDTO {
	var sentBy *uuid.UUID
	if id := aggregate.SentBy(); id != nil {
		raw := id.Bytes()
		sentBy = &raw
	}

	return CommandDTO{
		ID:          aggregate.ID().Bytes(),
		RobotID:     aggregate.RobotID().Bytes(),
		CommandType: aggregate.Type().String(),
		Status:      aggregate.Status().String(),
		SentBy:      sentBy,
		SentAt:      aggregate.SentAt(),
		ExecutedAt:  aggregate.ExecutedAt(),
		Result:      aggregate.Result(),
	}
}

// toDomain converts a database DTO to a robot command aggregate.
func toDomain(dto CommandDTO) (*robotcommand.RobotCommand, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	robotID, err := kernel.UUIDFromBytes(dto.RobotID[:])
	if err != nil {
		return nil, err
	}

	var sentBy *kernel.UUID
	if dto.SentBy != nil {
		issuer, issuerErr := kernel.UUIDFromBytes((*dto.SentBy)[:])
		if issuerErr != nil {
			return nil, issuerErr
		}

		sentBy = &issuer
	}

	cmdType, err := robotcommand.TypeFromString(dto.CommandType)
	if err != nil {
		return nil, err
	}

	status, err := robotcommand.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return robotcommand.RestoreRobotCommand(
		id,
		robotID,
		cmdType,
		status,
		sentBy,
		dto.SentAt,
		dto.ExecutedAt,
		dto.Result,
	)
}
