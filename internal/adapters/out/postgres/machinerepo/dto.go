// Package machinerepo provides data transfer objects and mapping functions for machine persistence.
// This package implements the repository pattern for the machine domain aggregate, handling
// the conversion between domain entities and database representations.
package machinerepo

import (
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/machine"

	"github.com/google/uuid"
)

// MachineDTO represents the database structure for persisting machine aggregates.
// The current order reference is indexed because the claim write conditions on it.
type MachineDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name              string     `gorm:"type:varchar(255);not null"`
	MachineType       string     `gorm:"type:varchar(255);not null"`
	Status            int        `gorm:"type:int;not null"`
	CurrentOrderID    *uuid.UUID `gorm:"type:uuid;index"`
	LastMaintenanceAt *time.Time
}

// TableName specifies the database table name for machine entities.
// Overrides GORM's default naming convention to use "machines".
func (MachineDTO) TableName() string {
	return "machines"
}

// MaintenanceRecordDTO represents the database structure for the append-only
// maintenance history of a machine.
type MaintenanceRecordDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MachineID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Date        time.Time `gorm:"not null"`
	Description string    `gorm:"type:varchar(1024);not null"`
	Technician  string    `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for maintenance records.
func (MaintenanceRecordDTO) TableName() string {
	return "maintenance_records"
}

// fromDomain converts a machine domain aggregate to its database representation.
func fromDomain(aggregate *machine.Machine) MachineDTO {
	var currentOrderID *uuid.UUID
	if id := aggregate.CurrentOrder(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	return MachineDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		MachineType:       aggregate.MachineType(),
		Status:            int(aggregate.Status()),
		CurrentOrderID:    currentOrderID,
		LastMaintenanceAt: aggregate.LastMaintenanceAt(),
	}
}

// toDomain converts a database DTO to a machine domain aggregate.
// Reconstructs the aggregate with its claim state using RestoreMachine.
func toDomain(dto MachineDTO) (*machine.Machine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}

		currentOrderID = &orderID
	}

	return machine.RestoreMachine(
		id,
		dto.Name,
		dto.MachineType,
		machine.Status(dto.Status),
		currentOrderID,
		dto.LastMaintenanceAt,
	)
}

// recordFromDomain converts a maintenance record entity to its database
// representation.
func recordFromDomain(record *machine.MaintenanceRecord) MaintenanceRecordDTO {
	return MaintenanceRecordDTO{
		ID:          record.ID().Bytes(),
		MachineID:   record.MachineID().Bytes(),
		Date:        record.Date(),
		Description: record.Description(),
		Technician:  record.Technician(),
	}
}
