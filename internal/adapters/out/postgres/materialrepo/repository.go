package materialrepo

import (
	"context"
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/material"
	"mes/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMaterialRepository implements MaterialRepository using GORM.
type GormMaterialRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMaterialRepository creates a new GORM material repository.
func NewGormMaterialRepository(db *gorm.DB, tracker aggregateTracker) *GormMaterialRepository {
	return &GormMaterialRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new material to the database.
func (r *GormMaterialRepository) Add(ctx context.Context, aggregate *material.Material) error {
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

// Update saves an existing material to the database. All columns are
// written so a stock level of zero or below still reaches storage.
func (r *GormMaterialRepository) Update(ctx context.Context, aggregate *material.Material) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MaterialDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "unit", "stock_quantity", "updated_at").
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

// Get retrieves a material by ID.
func (r *GormMaterialRepository) Get(ctx context.Context, id kernel.UUID) (*material.Material, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MaterialDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("material", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
