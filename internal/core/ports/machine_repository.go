// Package ports defines repository interfaces for the production domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/machine"
)

// MachineRepository defines the persistence contract for machine aggregates
// and their append-only maintenance history.
type MachineRepository interface {
	// Add persists a new machine aggregate to storage.
	Add(ctx context.Context, aggregate *machine.Machine) error

	// Update persists changes to an existing machine aggregate.
	Update(ctx context.Context, aggregate *machine.Machine) error

	// Claim persists a machine that was just claimed for an order. The
	// write is conditional on the stored row still being claimable, so two
	// concurrent claims of the same machine cannot both succeed; the loser
	// gets errs.ErrResourceUnavailable.
	Claim(ctx context.Context, aggregate *machine.Machine) error

	// Get retrieves a machine aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error)

	// GetAllDueMaintenance retrieves machines never maintained or last
	// maintained before the given cutoff.
	GetAllDueMaintenance(ctx context.Context, before time.Time) ([]*machine.Machine, error)

	// AddMaintenanceRecord appends a maintenance record to the machine's
	// history. Records are never updated or deleted.
	AddMaintenanceRecord(ctx context.Context, record *machine.MaintenanceRecord) error
}
