package order

import (
	"errors"
	"fmt"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
	"mes/internal/pkg/guard"
)

// ErrMachineClaimIsNotConstructed is returned when a MachineClaim instance
// was not created through the NewMachineClaim or RestoreMachineClaim factory
// methods.
var ErrMachineClaimIsNotConstructed = errors.New("MachineClaim must be created via NewMachineClaim or RestoreMachineClaim constructor")

// MachineClaim records the interval during which a machine was held by the
// order. A claim with no end time is open and mirrors the machine's
// currentOrderID; closing the claim is part of releasing the machine.
type MachineClaim struct {
	id        kernel.UUID
	machineID kernel.UUID

	startedAt time.Time
	endedAt   *time.Time

	guard guard.ConstructorGuard
}

// NewMachineClaim opens a claim on a machine starting at the given time.
func NewMachineClaim(id kernel.UUID, machineID kernel.UUID, startedAt time.Time) (*MachineClaim, error) {
	return RestoreMachineClaim(id, machineID, startedAt, nil)
}

// RestoreMachineClaim reconstructs a claim from persistent storage. A
// non-nil end time must not precede the start time.
func RestoreMachineClaim(id kernel.UUID, machineID kernel.UUID, startedAt time.Time, endedAt *time.Time) (*MachineClaim, error) {
	c := &MachineClaim{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setMachineID(machineID),
		c.setStartedAt(startedAt),
	); err != nil {
		return nil, err
	}

	if err := c.setEndedAt(endedAt); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the MachineClaim instance was properly constructed.
func (c *MachineClaim) Validate() error {
	if c == nil {
		return ErrMachineClaimIsNotConstructed
	}
	return c.guard.Validate(ErrMachineClaimIsNotConstructed)
}

// ID returns the claim's unique identifier.
func (c *MachineClaim) ID() kernel.UUID {
	return c.id
}

// MachineID returns the claimed machine's identifier.
func (c *MachineClaim) MachineID() kernel.UUID {
	return c.machineID
}

// StartedAt returns the time the machine was claimed.
func (c *MachineClaim) StartedAt() time.Time {
	return c.startedAt
}

// EndedAt returns the time the machine was released.
// Returns nil while the claim is open.
func (c *MachineClaim) EndedAt() *time.Time {
	return c.endedAt
}

// IsOpen reports whether the machine is still held by the order.
func (c *MachineClaim) IsOpen() bool {
	return c.endedAt == nil
}

// Close ends the claim at the given time. Closing an already closed claim
// changes nothing and reports false.
func (c *MachineClaim) Close(at time.Time) (bool, error) {
	if c.endedAt != nil {
		return false, nil
	}

	if err := c.setEndedAt(&at); err != nil {
		return false, err
	}

	return true, nil
}

func (c *MachineClaim) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *MachineClaim) setMachineID(machineID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}
	c.machineID = machineID
	return nil
}

func (c *MachineClaim) setStartedAt(startedAt time.Time) error {
	if startedAt.IsZero() {
		return errs.NewValueIsRequiredError("startedAt")
	}
	c.startedAt = startedAt
	return nil
}

func (c *MachineClaim) setEndedAt(endedAt *time.Time) error {
	if endedAt == nil {
		c.endedAt = nil
		return nil
	}

	if endedAt.IsZero() {
		return errs.NewValueIsRequiredError("endedAt")
	}

	if endedAt.Before(c.startedAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"endedAt",
			fmt.Errorf("end time %s precedes start time %s", endedAt, c.startedAt),
		)
	}

	ended := *endedAt
	c.endedAt = &ended
	return nil
}
