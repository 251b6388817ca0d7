package commandrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/robotcommand"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCommandRepository implements CommandRepository using GORM.
type GormCommandRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCommandRepository creates a new GORM command repository.
func NewGormCommandRepository(db *gorm.DB, tracker aggregateTracker) *GormCommandRepository {
	return &GormCommandRepository{
		db:      db,
		tracker: tracker,
	}
}

// actionableStatuses are the statuses a robot still has to act on.
func actionableStatuses() []string {
	return []string{
		robotcommand.Pending.String(),
		robotcommand.Executing.String(),
	}
}

// timeoutExemptTypes lists the command types the sweeper must skip, derived
// from the domain's TimeoutExempt flag.
func timeoutExemptTypes() []string {
	all := []robotcommand.Type{
		robotcommand.OpenDoor,
		robotcommand.CloseDoor,
		robotcommand.StartDelivery,
		robotcommand.StopRobot,
		robotcommand.ArrivedAtDestination,
		robotcommand.AutoReturn,
		robotcommand.EmergencyOpenDoor,
	}

	exempt := make([]string, 0, 1)
	for _, t := range all {
		if t.TimeoutExempt() {
			exempt = append(exempt, t.String())
		}
	}

	return exempt
}

// Add saves a new command to its robot's queue.
func (r *GormCommandRepository) Add(ctx context.Context, aggregate *robotcommand.RobotCommand) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a command by ID.
func (r *GormCommandRepository) Get(ctx context.Context, id kernel.UUID) (*robotcommand.RobotCommand, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CommandDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("command", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActionableByRobot retrieves the robot's Pending and Executing commands
// in queue order. The id tiebreak keeps ordering stable for commands sent in
// the same instant.
func (r *GormCommandRepository) GetActionableByRobot(
	ctx context.Context,
	robotID kernel.UUID,
) ([]*robotcommand.RobotCommand, error) {
	if err := robotID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CommandDTO
	err := r.db.WithContext(ctx).
		Where("robot_id = ? AND status IN ?", robotID.Bytes(), actionableStatuses()).
		Order("sent_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetPendingOlderThan retrieves Pending commands sent before the cutoff,
// excluding timeout-exempt types.
func (r *GormCommandRepository) GetPendingOlderThan(
	ctx context.Context,
	cutoff time.Time,
) ([]*robotcommand.RobotCommand, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND sent_at < ?", robotcommand.Pending.String(), cutoff)

	if exempt := timeoutExemptTypes(); len(exempt) > 0 {
		query = query.Where("command_type NOT IN ?", exempt)
	}

	var dtos []CommandDTO
	if err := query.Order("sent_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// UpdateIfStatus persists the aggregate only if the stored row is still in
// the expected status. This is the single gate out of Pending: whichever of
// the execution report, the sweeper, or a cancellation commits first wins.
func (r *GormCommandRepository) UpdateIfStatus(
	ctx context.Context,
	aggregate *robotcommand.RobotCommand,
	expected robotcommand.Status,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}
	if err := expected.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CommandDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return true, nil
}

// DeleteTerminalBefore removes commands that reached the given terminal
// status before the cutoff and reports how many rows were deleted.
func (r *GormCommandRepository) DeleteTerminalBefore(
	ctx context.Context,
	status robotcommand.Status,
	cutoff time.Time,
) (int64, error) {
	if err := status.Validate(); err != nil {
		return 0, err
	}
	if !status.IsTerminal() {
		return 0, errs.NewValueIsInvalidError("only terminal commands can be purged")
	}

	result := r.db.WithContext(ctx).
		Where("status = ? AND executed_at IS NOT NULL AND executed_at < ?", status.String(), cutoff).
		Delete(&CommandDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func toDomainSlice(dtos []CommandDTO) ([]*robotcommand.RobotCommand, error) {
	cmds := make([]*robotcommand.RobotCommand, 0, len(dtos))
	for _, dto := range dtos {
		cmd, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}

	return cmds, nil
}
