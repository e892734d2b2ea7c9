package machine

import (
	"errors"
	"fmt"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
	"mes/internal/pkg/guard"
)

var (
	// ErrMachineIsNotConstructed is returned when a Machine instance was not
	// created through the NewMachine or RestoreMachine factory methods.
	ErrMachineIsNotConstructed = errors.New("Machine must be created via NewMachine or RestoreMachine constructor")
)

// Machine represents a physical production machine. It is the aggregate root
// for the machine registry and the maintenance workflow.
//
// Machine follows these invariants:
//   - Must have a valid unique identifier, a name, and a type
//   - Holds a current order claim only while Running or Busy
//   - A machine in Maintenance or Error never holds a claim
//   - Status mutates exclusively through Claim, BeginProcessing, ReleaseFor,
//     StartMaintenance, CompleteMaintenance, and OverrideStatus
//
// The Machine and its assigned Order keep a mutual back-reference
// (Machine.CurrentOrder and the order's claim record). Both sides are
// reconciled only inside the claim and release operations, never mutated
// individually elsewhere.
type Machine struct {
	id kernel.UUID

	name string

	// machineType is a free-form classification, e.g. "CNC" or "Press"
	machineType string

	status Status

	// currentOrderID is the claiming order's ID (nil if unclaimed)
	currentOrderID *kernel.UUID

	// lastMaintenanceAt is set when maintenance completes (nil if never)
	lastMaintenanceAt *time.Time

	guard guard.ConstructorGuard
}

// NewMachine creates a new Machine in Available status with no claim.
// This is the admin registration path; name and machineType are required.
func NewMachine(id kernel.UUID, name, machineType string) (*Machine, error) {
	m := &Machine{
		status: Available,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setMachineType(machineType),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMachine reconstructs a Machine from persistent storage, including
// its status, claim, and maintenance timestamp. The restored machine behaves
// identically to one mutated through normal domain operations.
//
// The status/claim consistency invariant is re-validated on restore so that
// corrupted rows surface as errors instead of propagating.
func RestoreMachine(
	id kernel.UUID,
	name, machineType string,
	status Status,
	currentOrderID *kernel.UUID,
	lastMaintenanceAt *time.Time,
) (*Machine, error) {
	m := &Machine{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setMachineType(machineType),
		m.setStatus(status),
		m.setCurrentOrderID(currentOrderID),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveOrder(currentOrderID != nil); err != nil {
		return nil, err
	}

	m.lastMaintenanceAt = lastMaintenanceAt
	return m, nil
}

// Validate ensures the Machine instance was properly constructed through a
// factory method. Call it before persisting machines.
func (m *Machine) Validate() error {
	if m == nil {
		return ErrMachineIsNotConstructed
	}
	return m.guard.Validate(ErrMachineIsNotConstructed)
}

// IsEqual compares two machines by their unique identifiers.
func (m *Machine) IsEqual(other *Machine) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the machine's unique identifier.
func (m *Machine) ID() kernel.UUID {
	return m.id
}

// Name returns the machine's display name.
func (m *Machine) Name() string {
	return m.name
}

// MachineType returns the machine's classification.
func (m *Machine) MachineType() string {
	return m.machineType
}

// Status returns the machine's current operational status.
func (m *Machine) Status() Status {
	return m.status
}

// CurrentOrder returns the ID of the order currently claiming the machine.
// Returns nil if the machine is unclaimed.
func (m *Machine) CurrentOrder() *kernel.UUID {
	return m.currentOrderID
}

// LastMaintenanceAt returns when maintenance last completed on the machine.
// Returns nil if the machine has never been maintained.
func (m *Machine) LastMaintenanceAt() *time.Time {
	return m.lastMaintenanceAt
}

// IsClaimed reports whether the machine holds an open order claim.
func (m *Machine) IsClaimed() bool {
	return m.currentOrderID != nil
}

// Claim reserves the machine for an order.
//
// The claim is rejected with a resource-unavailable error when the machine
// is in any status other than Available or already holds a current order.
// On success the machine transitions to Running and records the claiming
// order. The caller must persist the change in the same transaction as the
// rest of order creation so concurrent claims cannot both succeed.
func (m *Machine) Claim(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if m.currentOrderID != nil {
		return errs.NewResourceUnavailableErrorWithCause(
			"machine",
			fmt.Errorf("machine %s is already running order %s", m.id, m.currentOrderID),
		)
	}

	if !m.status.IsClaimable() {
		return errs.NewResourceUnavailableErrorWithCause(
			"machine",
			fmt.Errorf("machine %s is in status %s", m.id, m.status),
		)
	}

	m.status = Running
	m.currentOrderID = &orderID
	return nil
}

// BeginProcessing marks the machine as actively working the given order.
// Invoked when the order transitions to processing: the machine goes Busy
// and the current-order reference is confirmed.
func (m *Machine) BeginProcessing(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	m.status = Busy
	m.currentOrderID = &orderID
	return nil
}

// ReleaseFor releases the machine if and only if it is currently claimed by
// the given order. Returns true when the machine was released; false when
// the claim belongs to another order or no claim is open. On release the
// machine returns to Available with no current order.
//
// The claim-matching condition keeps a stale completion from stealing a
// machine that has since been claimed by a different order.
func (m *Machine) ReleaseFor(orderID kernel.UUID) bool {
	if m.currentOrderID == nil || !m.currentOrderID.IsEqual(orderID) {
		return false
	}

	m.status = Available
	m.currentOrderID = nil
	return true
}

// StartMaintenance puts the machine into Maintenance status.
//
// Rejected with a state-conflict error while the machine is Running or holds
// any open order claim: maintenance must never coexist with a claim.
func (m *Machine) StartMaintenance() error {
	if m.status == Running || m.currentOrderID != nil {
		return errs.NewStateConflictErrorWithCause(
			"machine",
			fmt.Errorf("machine %s is in status %s with an active order", m.id, m.status),
		)
	}

	m.status = Maintenance
	return nil
}

// CompleteMaintenance returns the machine to Available and stamps the
// maintenance completion time. Rejected with a state-conflict error unless
// the machine is currently in Maintenance.
func (m *Machine) CompleteMaintenance(completedAt time.Time) error {
	if m.status != Maintenance {
		return errs.NewStateConflictErrorWithCause(
			"machine",
			fmt.Errorf("machine %s is in status %s, not Maintenance", m.id, m.status),
		)
	}

	m.status = Available
	m.lastMaintenanceAt = &completedAt
	return nil
}

// OverrideStatus sets the machine status directly. This is the escape hatch
// for operator overrides and fault reporting.
//
// While an order claim is open the only permitted override is Error; setting
// Error drops the current-order reference so the no-claim invariant for
// faulted machines holds. The abandoned order keeps its own claim record and
// is reconciled through its normal completion path.
func (m *Machine) OverrideStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if m.currentOrderID != nil && status != Error {
		return errs.NewStateConflictErrorWithCause(
			"machine",
			fmt.Errorf("machine %s holds an open claim for order %s", m.id, m.currentOrderID),
		)
	}

	if status == Error {
		m.currentOrderID = nil
	}

	m.status = status
	return nil
}

func (m *Machine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Machine) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}

func (m *Machine) setMachineType(machineType string) error {
	if machineType == "" {
		return errs.NewValueIsRequiredError("machineType")
	}
	m.machineType = machineType
	return nil
}

func (m *Machine) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	m.status = status
	return nil
}

func (m *Machine) setCurrentOrderID(orderID *kernel.UUID) error {
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return err
		}
	}
	m.currentOrderID = orderID
	return nil
}
