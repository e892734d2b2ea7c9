package commands

import (
	"context"
	"time"
)

// CompleteMaintenanceCommandHandler returns a machine from Maintenance to
// Available and stamps the completion time, which feeds the maintenance-due
// sweep.
type CompleteMaintenanceCommandHandler struct {
	uowFactory MachineUoWFactory
}

// NewCompleteMaintenanceCommandHandler creates a handler for completing
// machine maintenance. Requires a MachineUoWFactory for transactional
// persistence.
func NewCompleteMaintenanceCommandHandler(uowFactory MachineUoWFactory) CompleteMaintenanceCommandHandler {
	return CompleteMaintenanceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the complete-maintenance command. Rejected with a state
// conflict unless the machine is currently in Maintenance.
func (h *CompleteMaintenanceCommandHandler) Handle(ctx context.Context, cmd CompleteMaintenanceCommand) error {
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
	machineEntity, err := machineRepo.Get(ctx, cmd.MachineID())
	if err != nil {
		return err
	}

	if err = machineEntity.CompleteMaintenance(time.Now().UTC()); err != nil {
		return err
	}

	if err = machineRepo.Update(ctx, machineEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
