// Package materialrepo provides data transfer objects and mapping functions for material persistence.
// Stock levels are stored as-is; a negative balance is valid data.
package materialrepo

import (
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/material"

	"github.com/google/uuid"
)

// MaterialDTO represents the database structure for persisting materials.
type MaterialDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Unit          string    `gorm:"type:varchar(64);not null"`
	StockQuantity float64   `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the database table name for material entities.
func (MaterialDTO) TableName() string {
	return "materials"
}

// fromDomain converts a material domain aggregate to its database representation.
func fromDomain(aggregate *material.Material) MaterialDTO {
	return MaterialDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		Unit:          aggregate.Unit(),
		StockQuantity: aggregate.StockQuantity(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a material domain aggregate.
func toDomain(dto MaterialDTO) (*material.Material, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return material.RestoreMaterial(id, dto.Name, dto.Unit, dto.StockQuantity, dto.UpdatedAt)
}
