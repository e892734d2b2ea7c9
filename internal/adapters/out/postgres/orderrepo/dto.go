// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations. The aggregate spans
// three tables: the order row, its requirement lines, and its machine claim.
package orderrepo

import (
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Requirement lines and the machine claim are stored in child tables and
// written together with the order row.
type OrderDTO struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ProductID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	MachineID    *uuid.UUID       `gorm:"type:uuid;index"`
	Quantity     int              `gorm:"type:int;not null"`
	OrderDate    time.Time        `gorm:"not null"`
	Status       int              `gorm:"type:int;not null;index"`
	Requirements []RequirementDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Claim        *MachineClaimDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// RequirementDTO represents one material requirement line of an order.
type RequirementDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null;index"`
	Required   float64   `gorm:"not null"`
	Processed  float64   `gorm:"not null"`
}

// TableName specifies the database table name for requirement lines.
func (RequirementDTO) TableName() string {
	return "order_requirements"
}

// MachineClaimDTO represents the machine claim interval of an order.
// One claim per order; an open claim has no end time.
type MachineClaimDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	MachineID uuid.UUID `gorm:"type:uuid;not null;index"`
	StartedAt time.Time `gorm:"not null"`
	EndedAt   *time.Time
}

// TableName specifies the database table name for machine claims.
func (MachineClaimDTO) TableName() string {
	return "machine_claims"
}

// fromDomain converts an order domain aggregate to its database representation,
// including requirement lines and the claim.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var machineID *uuid.UUID
	if id := aggregate.MachineID(); id != nil {
		raw := id.Bytes()
		machineID = &raw
	}

	requirements := make([]RequirementDTO, 0, len(aggregate.Requirements()))
	for _, requirement := range aggregate.Requirements() {
		requirements = append(requirements, RequirementDTO{
			ID:         requirement.ID().Bytes(),
			OrderID:    orderID,
			MaterialID: requirement.MaterialID().Bytes(),
			Required:   requirement.Required(),
			Processed:  requirement.Processed(),
		})
	}

	var claim *MachineClaimDTO
	if c := aggregate.Claim(); c != nil {
		claim = &MachineClaimDTO{
			ID:        c.ID().Bytes(),
			OrderID:   orderID,
			MachineID: c.MachineID().Bytes(),
			StartedAt: c.StartedAt(),
			EndedAt:   c.EndedAt(),
		}
	}

	return OrderDTO{
		ID:           orderID,
		ProductID:    aggregate.ProductID().Bytes(),
		MachineID:    machineID,
		Quantity:     aggregate.Quantity(),
		OrderDate:    aggregate.OrderDate(),
		Status:       int(aggregate.Status()),
		Requirements: requirements,
		Claim:        claim,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines and claim using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var machineID *kernel.UUID
	if dto.MachineID != nil {
		mID, machineErr := kernel.UUIDFromBytes((*dto.MachineID)[:])
		if machineErr != nil {
			return nil, machineErr
		}

		machineID = &mID
	}

	requirements := make([]*order.Requirement, 0, len(dto.Requirements))
	for _, reqDto := range dto.Requirements {
		requirement, reqErr := requirementToDomain(reqDto)
		if reqErr != nil {
			return nil, reqErr
		}
		requirements = append(requirements, requirement)
	}

	var claim *order.MachineClaim
	if dto.Claim != nil {
		claim, err = claimToDomain(*dto.Claim)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		productID,
		machineID,
		dto.Quantity,
		dto.OrderDate,
		order.Status(dto.Status),
		requirements,
		claim,
	)
}

// requirementToDomain converts a requirement line DTO to its domain entity.
func requirementToDomain(dto RequirementDTO) (*order.Requirement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	materialID, err := kernel.UUIDFromBytes(dto.MaterialID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreRequirement(id, materialID, dto.Required, dto.Processed)
}

// claimToDomain converts a machine claim DTO to its domain entity.
func claimToDomain(dto MachineClaimDTO) (*order.MachineClaim, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	machineID, err := kernel.UUIDFromBytes(dto.MachineID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreMachineClaim(id, machineID, dto.StartedAt, dto.EndedAt)
}
