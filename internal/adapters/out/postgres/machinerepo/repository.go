package machinerepo

import (
	"context"
	"errors"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/machine"
	"mes/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMachineRepository implements MachineRepository using GORM.
type GormMachineRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMachineRepository creates a new GORM machine repository.
func NewGormMachineRepository(db *gorm.DB, tracker aggregateTracker) *GormMachineRepository {
	return &GormMachineRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new machine to the database.
func (r *GormMachineRepository) Add(ctx context.Context, aggregate *machine.Machine) error {
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

// Update saves an existing machine to the database. All columns are written
// so that clearing the current order reference reaches storage.
func (r *GormMachineRepository) Update(ctx context.Context, aggregate *machine.Machine) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MachineDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "machine_type", "status", "current_order_id", "last_maintenance_at").
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

// Claim persists a machine that was just claimed in memory. The write is
// conditional on the stored row still being available with no current
// order, so of two transactions racing for the same machine only one can
// see an affected row; the other gets a resource-unavailable error and
// rolls back its whole order creation.
func (r *GormMachineRepository) Claim(ctx context.Context, aggregate *machine.Machine) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MachineDTO{}).
		Where("id = ? AND status = ? AND current_order_id IS NULL", dto.ID, int(machine.Available)).
		Updates(map[string]any{
			"status":           dto.Status,
			"current_order_id": dto.CurrentOrderID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewResourceUnavailableError("machine")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a machine by ID.
func (r *GormMachineRepository) Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MachineDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("machine", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllDueMaintenance retrieves machines never maintained or last maintained
// before the cutoff, ordered by name for stable sweep output.
func (r *GormMachineRepository) GetAllDueMaintenance(ctx context.Context, before time.Time) ([]*machine.Machine, error) {
	var dtos []MachineDTO
	if err := r.db.WithContext(ctx).
		Where("last_maintenance_at IS NULL OR last_maintenance_at < ?", before).
		Order("name").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	machines := make([]*machine.Machine, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		machines = append(machines, m)
	}

	return machines, nil
}

// AddMaintenanceRecord appends a maintenance record to the machine's history.
func (r *GormMachineRepository) AddMaintenanceRecord(ctx context.Context, record *machine.MaintenanceRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := recordFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}
