package commands

import (
	"context"

	"mes/internal/core/domain/model/machine"
)

// CreateMachineCommandHandler handles the business logic for machine
// registration. Creates and persists new machine entities in Available
// status.
//
// Example:
//
//	handler := NewCreateMachineCommandHandler(uowFactory)
//	cmd, _ := NewCreateMachineCommand("Lathe 7", "Lathe")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("machine registration failed: %w", err)
//	}
type CreateMachineCommandHandler struct {
	uowFactory MachineUoWFactory
}

// NewCreateMachineCommandHandler creates a handler for machine registration.
// Requires a MachineUoWFactory for transactional persistence operations.
func NewCreateMachineCommandHandler(uowFactory MachineUoWFactory) CreateMachineCommandHandler {
	return CreateMachineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the machine creation command.
// Creates a new machine entity and persists it within a transaction.
// Automatically rolls back on any error to prevent partial data.
func (h *CreateMachineCommandHandler) Handle(ctx context.Context, cmd CreateMachineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	machineRepo := uow.MachineRepository()
	machineEntity, err := machine.NewMachine(cmd.MachineID(), cmd.Name(), cmd.MachineType())
	if err != nil {
		return err
	}

	if err = machineRepo.Add(ctx, machineEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
