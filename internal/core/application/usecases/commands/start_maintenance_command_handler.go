package commands

import (
	"context"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/machine"
)

// StartMaintenanceCommandHandler puts a machine into Maintenance status and
// appends an entry to its maintenance history. A machine that is running an
// order cannot enter maintenance.
type StartMaintenanceCommandHandler struct {
	uowFactory MachineUoWFactory
}

// NewStartMaintenanceCommandHandler creates a handler for starting machine
// maintenance. Requires a MachineUoWFactory for transactional persistence.
func NewStartMaintenanceCommandHandler(uowFactory MachineUoWFactory) StartMaintenanceCommandHandler {
	return StartMaintenanceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start-maintenance command. The status change and the
// history entry are written in one transaction.
func (h *StartMaintenanceCommandHandler) Handle(ctx context.Context, cmd StartMaintenanceCommand) error {
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

	if err = machineEntity.StartMaintenance(); err != nil {
		return err
	}

	record, err := machine.NewMaintenanceRecord(
		kernel.NewUUID(),
		cmd.MachineID(),
		time.Now().UTC(),
		cmd.Description(),
		cmd.Technician(),
	)
	if err != nil {
		return err
	}

	if err = machineRepo.Update(ctx, machineEntity); err != nil {
		return err
	}

	if err = machineRepo.AddMaintenanceRecord(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
