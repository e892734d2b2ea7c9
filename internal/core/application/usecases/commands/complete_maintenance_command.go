package commands

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/guard"
)

var ErrCompleteMaintenanceCommandIsNotConstructed = errors.New(
	"CompleteMaintenanceCommand must be created via NewCompleteMaintenanceCommand constructor",
)

// CompleteMaintenanceCommand represents a request to finish maintenance and
// return the machine to service. Only valid for machines currently in
// Maintenance status.
type CompleteMaintenanceCommand struct { //nolint:recvcheck //using for validation
	machineID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteMaintenanceCommand creates a command to complete machine
// maintenance.
func NewCompleteMaintenanceCommand(machineID kernel.UUID) (CompleteMaintenanceCommand, error) {
	command := CompleteMaintenanceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setMachineID(machineID); err != nil {
		return CompleteMaintenanceCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteMaintenanceCommandIsNotConstructed if validation fails.
func (c CompleteMaintenanceCommand) Validate() error {
	return c.guard.Validate(ErrCompleteMaintenanceCommandIsNotConstructed)
}

// MachineID returns the identifier of the machine leaving maintenance.
func (c CompleteMaintenanceCommand) MachineID() kernel.UUID {
	return c.machineID
}

func (c *CompleteMaintenanceCommand) setMachineID(machineID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}

	c.machineID = machineID
	return nil
}
