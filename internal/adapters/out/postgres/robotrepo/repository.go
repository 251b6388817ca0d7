package robotrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRobotRepository implements RobotRepository using GORM.
type GormRobotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRobotRepository creates a new GORM robot repository.
func NewGormRobotRepository(db *gorm.DB, tracker aggregateTracker) *GormRobotRepository {
	return &GormRobotRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new robot to the database.
func (r *GormRobotRepository) Add(ctx context.Context, aggregate *robot.Robot) error {
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

// Update saves an existing robot to the database. Select("*") forces writing
// zero-valued columns: the wait timers clear to NULL and battery can hit 0.
func (r *GormRobotRepository) Update(ctx context.Context, aggregate *robot.Robot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RobotDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a robot by ID.
func (r *GormRobotRepository) Get(ctx context.Context, id kernel.UUID) (*robot.Robot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RobotDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("robot", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves the whole fleet ordered by name.
func (r *GormRobotRepository) GetAll(ctx context.Context) ([]*robot.Robot, error) {
	var dtos []RobotDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllAvailable retrieves robots that can take a new assignment, ordered
// by name so auto-selection is deterministic.
func (r *GormRobotRepository) GetAllAvailable(ctx context.Context) ([]*robot.Robot, error) {
	var dtos []RobotDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", robot.Idle.String()).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetPickupWaitExpired retrieves robots whose pickup-wait window opened
// before the cutoff and has not been cleared.
func (r *GormRobotRepository) GetPickupWaitExpired(ctx context.Context, cutoff time.Time) ([]*robot.Robot, error) {
	var dtos []RobotDTO
	err := r.db.WithContext(ctx).
		Where("qr_wait_start_time IS NOT NULL AND qr_wait_start_time < ?", cutoff).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []RobotDTO) ([]*robot.Robot, error) {
	robots := make([]*robot.Robot, 0, len(dtos))
	for _, dto := range dtos {
		rb, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		robots = append(robots, rb)
	}

	return robots, nil
}
