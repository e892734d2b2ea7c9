// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"mes/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// MachineRepoFactory provides access to the machine repository within a transaction.
	MachineRepoFactory interface {
		MachineRepository() ports.MachineRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// MaterialRepoFactory provides access to the material repository within a transaction.
	MaterialRepoFactory interface {
		MaterialRepository() ports.MaterialRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// MachineUoW manages transactions for machine-only operations.
	// Used by machine administration and the maintenance workflow.
	MachineUoW interface {
		TxManager
		MachineRepoFactory
	}

	// MachineUoWFactory creates new machine unit of work instances.
	MachineUoWFactory interface {
		Create() MachineUoW
	}

	// UoW manages transactions across the order lifecycle: orders, the
	// claimed machine, the product BOM, and material stock.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   machineRepo := uow.MachineRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		MachineRepoFactory
		OrderRepoFactory
		MaterialRepoFactory
		ProductRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
