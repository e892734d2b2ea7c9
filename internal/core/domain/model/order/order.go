package order

import (
	"errors"
	"fmt"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
	"mes/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of the production lifecycle. It owns its
// requirement lines and the claim on the machine that works it.
//
// Invariants:
//   - quantity is positive
//   - status moves strictly forward (Pending, Processing, Completed)
//   - an open claim implies an assigned machine, and vice versa
//   - each requirement keeps 0 <= processed <= required
type Order struct {
	id        kernel.UUID
	productID kernel.UUID

	// machineID is the claimed machine (nil until a claim is opened)
	machineID *kernel.UUID

	quantity  int
	orderDate time.Time
	status    Status

	requirements []*Requirement
	claim        *MachineClaim

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order with no machine claim and no
// requirement lines yet. Quantity must be positive.
func NewOrder(id kernel.UUID, productID kernel.UUID, quantity int, orderDate time.Time) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setProductID(productID),
		o.setQuantity(quantity),
		o.setOrderDate(orderDate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistent storage, including its
// requirement lines and claim. The status/claim consistency rule is
// re-checked: an open claim requires an assigned machine and vice versa.
func RestoreOrder(
	id kernel.UUID,
	productID kernel.UUID,
	machineID *kernel.UUID,
	quantity int,
	orderDate time.Time,
	status Status,
	requirements []*Requirement,
	claim *MachineClaim,
) (*Order, error) {
	o, err := NewOrder(id, productID, quantity, orderDate)
	if err != nil {
		return nil, err
	}

	if err := o.setStatus(status); err != nil {
		return nil, err
	}

	if err := o.setRequirements(requirements); err != nil {
		return nil, err
	}

	if err := errors.Join(
		o.setMachineID(machineID),
		o.setClaim(claim),
	); err != nil {
		return nil, err
	}

	if err := o.validateClaimConsistency(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ProductID returns the produced product's identifier.
func (o *Order) ProductID() kernel.UUID {
	return o.productID
}

// MachineID returns the claimed machine's identifier.
// Returns nil while no machine is claimed.
func (o *Order) MachineID() *kernel.UUID {
	return o.machineID
}

// Quantity returns the number of product units to produce.
func (o *Order) Quantity() int {
	return o.quantity
}

// OrderDate returns the order's creation date.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Requirements returns the order's material requirement lines. The slice is
// a copy; the lines themselves are shared so processed amounts can be
// recorded on them.
func (o *Order) Requirements() []*Requirement {
	reqs := make([]*Requirement, len(o.requirements))
	copy(reqs, o.requirements)
	return reqs
}

// HasRequirements reports whether any requirement lines exist.
func (o *Order) HasRequirements() bool {
	return len(o.requirements) > 0
}

// Claim returns the order's machine claim. Returns nil before any machine
// was claimed.
func (o *Order) Claim() *MachineClaim {
	return o.claim
}

// ClaimMachine records that the machine was claimed for this order,
// opening the claim interval at the given time. An order claims at most
// one machine over its lifetime.
func (o *Order) ClaimMachine(claimID kernel.UUID, machineID kernel.UUID, startedAt time.Time) error {
	if o.claim != nil {
		return errs.NewStateConflictErrorWithCause(
			"claim",
			fmt.Errorf("order %s already claimed machine %s", o.id, o.claim.MachineID()),
		)
	}

	claim, err := NewMachineClaim(claimID, machineID, startedAt)
	if err != nil {
		return err
	}

	o.claim = claim
	o.machineID = &machineID
	return nil
}

// SetRequirements attaches the expanded requirement lines. It is used on
// creation and by the lazy completion backfill, so it refuses to overwrite
// existing lines.
func (o *Order) SetRequirements(requirements []*Requirement) error {
	if len(o.requirements) > 0 {
		return errs.NewStateConflictErrorWithCause(
			"requirements",
			fmt.Errorf("order %s already has requirement lines", o.id),
		)
	}

	return o.setRequirements(requirements)
}

// TransitionTo moves the order to the target status. Requesting the current
// status is a no-op reported as changed == false. Backward movement is a
// state conflict.
func (o *Order) TransitionTo(target Status) (bool, error) {
	newStatus, changed, err := o.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	o.status = newStatus
	return changed, nil
}

// CloseClaim ends the open claim at the given time. Reports false when
// there is no claim or it is already closed.
func (o *Order) CloseClaim(at time.Time) (bool, error) {
	if o.claim == nil {
		return false, nil
	}
	return o.claim.Close(at)
}

// validateClaimConsistency ensures an open claim and an assigned machine
// always come together.
func (o *Order) validateClaimConsistency() error {
	hasOpenClaim := o.claim != nil && o.claim.IsOpen()

	if hasOpenClaim && o.machineID == nil {
		return errs.NewStateConflictErrorWithCause(
			"claim",
			fmt.Errorf("order %s has an open claim but no machine", o.id),
		)
	}

	if o.claim != nil && o.machineID != nil && !o.claim.MachineID().IsEqual(*o.machineID) {
		return errs.NewStateConflictErrorWithCause(
			"claim",
			fmt.Errorf("order %s claim machine %s does not match assigned machine %s",
				o.id, o.claim.MachineID(), *o.machineID),
		)
	}

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	o.productID = productID
	return nil
}

func (o *Order) setMachineID(machineID *kernel.UUID) error {
	if machineID == nil {
		o.machineID = nil
		return nil
	}

	if err := machineID.Validate(); err != nil {
		return err
	}

	id := *machineID
	o.machineID = &id
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("orderDate")
	}
	o.orderDate = orderDate
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setRequirements(requirements []*Requirement) error {
	for _, r := range requirements {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	o.requirements = make([]*Requirement, len(requirements))
	copy(o.requirements, requirements)
	return nil
}

func (o *Order) setClaim(claim *MachineClaim) error {
	if claim == nil {
		o.claim = nil
		return nil
	}

	if err := claim.Validate(); err != nil {
		return err
	}

	o.claim = claim
	return nil
}
