// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/machine"
	"mes/internal/pkg/guard"
)

var ErrGetAllMachinesQueryIsNotConstructed = errors.New(
	"GetAllMachinesQuery must be created via NewGetAllMachinesQuery constructor",
)

// GetAllMachinesQuery retrieves information about all machines on the shop
// floor: status, current order, and last maintenance time.
//
// Example:
//
//	query := NewGetAllMachinesQuery()
//	handler := NewGetAllMachinesQueryHandler(db)
//
//	machines, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve machines: %w", err)
//	}
//
//	for _, m := range machines {
//	    fmt.Printf("%s [%s] %s\n", m.Name, m.MachineType, m.Status)
//	}
type GetAllMachinesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllMachinesQuery creates a query to retrieve all machines.
// This is a parameterless query that fetches the complete machine list.
func NewGetAllMachinesQuery() GetAllMachinesQuery {
	return GetAllMachinesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllMachinesQueryIsNotConstructed if validation fails.
func (q GetAllMachinesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllMachinesQueryIsNotConstructed)
}

// GetAllMachinesQueryResponse represents machine information in the read model.
type GetAllMachinesQueryResponse struct {
	ID                kernel.UUID
	Name              string
	MachineType       string
	Status            machine.Status
	CurrentOrderID    *kernel.UUID
	LastMaintenanceAt *time.Time
}
