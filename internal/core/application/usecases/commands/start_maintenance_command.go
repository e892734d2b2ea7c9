package commands

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/guard"
)

var (
	ErrStartMaintenanceCommandIsNotConstructed = errors.New(
		"StartMaintenanceCommand must be created via NewStartMaintenanceCommand constructor",
	)
	ErrDescriptionIsRequired = errors.New("description is required")
	ErrTechnicianIsRequired  = errors.New("technician is required")
)

// StartMaintenanceCommand represents a request to take a machine out of
// service for maintenance. Rejected while the machine is running an order.
//
// Example:
//
//	cmd, err := NewStartMaintenanceCommand(machineID, "Spindle bearing change", "R. Fuentes")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewStartMaintenanceCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrStateConflict) {
//	    // Machine is working an order; try again after release
//	}
type StartMaintenanceCommand struct { //nolint:recvcheck //using for validation
	machineID   kernel.UUID
	description string
	technician  string

	guard guard.ConstructorGuard
}

// NewStartMaintenanceCommand creates a command to start machine maintenance.
// Validates the machine ID and requires description and technician.
func NewStartMaintenanceCommand(machineID kernel.UUID, description, technician string) (StartMaintenanceCommand, error) {
	command := StartMaintenanceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setMachineID(machineID),
		command.setDescription(description),
		command.setTechnician(technician),
	); err != nil {
		return StartMaintenanceCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartMaintenanceCommandIsNotConstructed if validation fails.
func (c StartMaintenanceCommand) Validate() error {
	return c.guard.Validate(ErrStartMaintenanceCommandIsNotConstructed)
}

// MachineID returns the identifier of the machine to maintain.
func (c StartMaintenanceCommand) MachineID() kernel.UUID {
	return c.machineID
}

// Description returns the planned maintenance work description.
func (c StartMaintenanceCommand) Description() string {
	return c.description
}

// Technician returns the technician performing the work.
func (c StartMaintenanceCommand) Technician() string {
	return c.technician
}

func (c *StartMaintenanceCommand) setMachineID(machineID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}

	c.machineID = machineID
	return nil
}

func (c *StartMaintenanceCommand) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}

	c.description = description
	return nil
}

func (c *StartMaintenanceCommand) setTechnician(technician string) error {
	if technician == "" {
		return ErrTechnicianIsRequired
	}

	c.technician = technician
	return nil
}
