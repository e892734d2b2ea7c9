package machine

import (
	"errors"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
	"mes/internal/pkg/guard"
)

// ErrMaintenanceRecordIsNotConstructed is returned when a MaintenanceRecord
// was not created through NewMaintenanceRecord or RestoreMaintenanceRecord.
var ErrMaintenanceRecordIsNotConstructed = errors.New(
	"MaintenanceRecord must be created via NewMaintenanceRecord or RestoreMaintenanceRecord constructor",
)

// MaintenanceRecord is an append-only log entry created when maintenance
// starts on a machine. Records are never updated or deleted.
type MaintenanceRecord struct {
	id          kernel.UUID
	machineID   kernel.UUID
	date        time.Time
	description string
	technician  string

	guard guard.ConstructorGuard
}

// NewMaintenanceRecord creates a maintenance log entry for a machine.
// Description and technician are required fields.
func NewMaintenanceRecord(
	id kernel.UUID,
	machineID kernel.UUID,
	date time.Time,
	description, technician string,
) (*MaintenanceRecord, error) {
	r := &MaintenanceRecord{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setMachineID(machineID),
		r.setDescription(description),
		r.setTechnician(technician),
	); err != nil {
		return nil, err
	}

	r.date = date
	return r, nil
}

// RestoreMaintenanceRecord reconstructs a maintenance record from storage.
func RestoreMaintenanceRecord(
	id kernel.UUID,
	machineID kernel.UUID,
	date time.Time,
	description, technician string,
) (*MaintenanceRecord, error) {
	return NewMaintenanceRecord(id, machineID, date, description, technician)
}

// Validate ensures the record was created through a factory method.
func (r *MaintenanceRecord) Validate() error {
	if r == nil {
		return ErrMaintenanceRecordIsNotConstructed
	}
	return r.guard.Validate(ErrMaintenanceRecordIsNotConstructed)
}

// ID returns the record's unique identifier.
func (r *MaintenanceRecord) ID() kernel.UUID {
	return r.id
}

// MachineID returns the maintained machine's identifier.
func (r *MaintenanceRecord) MachineID() kernel.UUID {
	return r.machineID
}

// Date returns when the maintenance started.
func (r *MaintenanceRecord) Date() time.Time {
	return r.date
}

// Description returns the free-form maintenance description.
func (r *MaintenanceRecord) Description() string {
	return r.description
}

// Technician returns the identity of the technician performing the work.
func (r *MaintenanceRecord) Technician() string {
	return r.technician
}

func (r *MaintenanceRecord) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *MaintenanceRecord) setMachineID(machineID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}
	r.machineID = machineID
	return nil
}

func (r *MaintenanceRecord) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	r.description = description
	return nil
}

func (r *MaintenanceRecord) setTechnician(technician string) error {
	if technician == "" {
		return errs.NewValueIsRequiredError("technician")
	}
	r.technician = technician
	return nil
}
