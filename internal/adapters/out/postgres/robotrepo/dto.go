// Package robotrepo persists robot aggregates.
package robotrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/robot"

	"github.com/google/uuid"
)

// RobotDTO represents the database structure for persisting robot aggregates.
// The qr_wait_start_time column name is pinned explicitly; the default naming
// strategy would mangle the QR prefix.
type RobotDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string

	Status    string `gorm:"index"`
	DoorState string

	BatteryLevel int
	Location     string

	DeliveryStartTime *time.Time `gorm:"column:delivery_start_time"`
	QRWaitStartTime   *time.Time `gorm:"column:qr_wait_start_time;index"`
}

// TableName specifies the database table name for robot entities.
func (RobotDTO) TableName() string {
	return "robots"
}

// fromDomain converts a robot domain aggregate to its database
// representation.
func fromDomain(aggregate *robot.Robot) RobotDTO {
	return RobotDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		Status:            aggregate.Status().String(),
		DoorState:         aggregate.DoorState().String(),
		BatteryLevel:      aggregate.BatteryLevel(),
		Location:          aggregate.Location(),
		DeliveryStartTime: aggregate.DeliveryStartTime(),
		QRWaitStartTime:   aggregate.QRWaitStartTime(),
	}
}

// toDomain converts a database DTO to a robot domain aggregate.
func toDomain(dto RobotDTO) (*robot.Robot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := robot.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	doorState, err := robot.DoorStateFromString(dto.DoorState)
	if err != nil {
		return nil, err
	}

	return robot.RestoreRobot(
		id,
		dto.Name,
		status,
		doorState,
		dto.BatteryLevel,
		dto.Location,
		dto.DeliveryStartTime,
		dto.QRWaitStartTime,
	)
}
