package commands

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/guard"
)

var (
	ErrCreateMachineCommandIsNotConstructed = errors.New(
		"CreateMachineCommand must be created via NewCreateMachineCommand constructor",
	)
	ErrNameIsRequired        = errors.New("name is required")
	ErrMachineTypeIsRequired = errors.New("machine type is required")
)

// CreateMachineCommand represents a request to register a new machine on the
// shop floor. New machines start Available with no order and no maintenance
// history.
//
// Example:
//
//	cmd, err := NewCreateMachineCommand("CNC mill 3", "CNC")
//	if err != nil {
//	    return fmt.Errorf("invalid machine data: %w", err)
//	}
//
//	handler := NewCreateMachineCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create machine: %w", err)
//	}
//	fmt.Printf("Created machine with ID: %s", cmd.MachineID())
type CreateMachineCommand struct { //nolint:recvcheck //using for validation
	machineID   kernel.UUID
	name        string
	machineType string

	guard guard.ConstructorGuard
}

// NewCreateMachineCommand creates a command to register a new machine.
// Automatically generates a unique ID for the machine.
// Validates that name and machine type are not empty.
func NewCreateMachineCommand(name, machineType string) (CreateMachineCommand, error) {
	command := CreateMachineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setMachineID(kernel.NewUUID()),
		command.setName(name),
		command.setMachineType(machineType),
	); err != nil {
		return CreateMachineCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateMachineCommandIsNotConstructed if validation fails.
func (c CreateMachineCommand) Validate() error {
	return c.guard.Validate(ErrCreateMachineCommandIsNotConstructed)
}

// MachineID returns the generated machine ID from the command.
func (c CreateMachineCommand) MachineID() kernel.UUID {
	return c.machineID
}

// Name returns the machine name from the command.
func (c CreateMachineCommand) Name() string {
	return c.name
}

// MachineType returns the machine type from the command.
func (c CreateMachineCommand) MachineType() string {
	return c.machineType
}

func (c *CreateMachineCommand) setMachineID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.machineID = id
	return nil
}

func (c *CreateMachineCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateMachineCommand) setMachineType(machineType string) error {
	if machineType == "" {
		return ErrMachineTypeIsRequired
	}

	c.machineType = machineType
	return nil
}
