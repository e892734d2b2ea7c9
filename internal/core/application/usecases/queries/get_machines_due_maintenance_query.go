package queries

import (
	"errors"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
	"mes/internal/pkg/guard"
)

var ErrGetMachinesDueMaintenanceQueryIsNotConstructed = errors.New(
	"GetMachinesDueMaintenanceQuery must be created via NewGetMachinesDueMaintenanceQuery constructor",
)

// GetMachinesDueMaintenanceQuery retrieves machines whose last maintenance
// happened before the cutoff time, or that were never maintained at all.
type GetMachinesDueMaintenanceQuery struct {
	before time.Time

	guard guard.ConstructorGuard
}

// NewGetMachinesDueMaintenanceQuery creates a query with the given cutoff.
// The cutoff must be a non-zero time.
func NewGetMachinesDueMaintenanceQuery(before time.Time) (GetMachinesDueMaintenanceQuery, error) {
	if before.IsZero() {
		return GetMachinesDueMaintenanceQuery{}, errs.NewValueIsRequiredError("before")
	}

	return GetMachinesDueMaintenanceQuery{
		before: before,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetMachinesDueMaintenanceQueryIsNotConstructed if validation fails.
func (q GetMachinesDueMaintenanceQuery) Validate() error {
	return q.guard.Validate(ErrGetMachinesDueMaintenanceQueryIsNotConstructed)
}

// Before returns the maintenance cutoff time.
func (q GetMachinesDueMaintenanceQuery) Before() time.Time {
	return q.before
}

// GetMachinesDueMaintenanceQueryResponse represents a machine overdue for
// maintenance in the read model.
type GetMachinesDueMaintenanceQueryResponse struct {
	ID                kernel.UUID
	Name              string
	MachineType       string
	LastMaintenanceAt *time.Time
}
