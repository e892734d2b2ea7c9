package ports

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/material"
)

// MaterialRepository defines the persistence contract for material stock.
type MaterialRepository interface {
	// Add persists a new material to storage.
	Add(ctx context.Context, aggregate *material.Material) error

	// Update persists changes to an existing material, including stock
	// deductions.
	Update(ctx context.Context, aggregate *material.Material) error

	// Get retrieves a material by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*material.Material, error)
}
