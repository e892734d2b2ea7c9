package order

import (
	"errors"
	"fmt"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
	"mes/internal/pkg/guard"
)

// ErrRequirementIsNotConstructed is returned when a Requirement instance was
// not created through the NewRequirement or RestoreRequirement factory
// methods.
var ErrRequirementIsNotConstructed = errors.New("Requirement must be created via NewRequirement or RestoreRequirement constructor")

// Requirement is one material line of an order: how much of a material the
// order needs in total and how much has already been deducted from stock.
// The processed counter is what makes completion idempotent; it never
// exceeds the required amount.
type Requirement struct {
	id         kernel.UUID
	materialID kernel.UUID

	required  float64
	processed float64

	guard guard.ConstructorGuard
}

// NewRequirement creates a requirement line with nothing processed yet.
// The required amount must be strictly positive.
func NewRequirement(id kernel.UUID, materialID kernel.UUID, required float64) (*Requirement, error) {
	return RestoreRequirement(id, materialID, required, 0)
}

// RestoreRequirement reconstructs a requirement line from persistent
// storage. The processed amount must satisfy 0 <= processed <= required.
func RestoreRequirement(id kernel.UUID, materialID kernel.UUID, required, processed float64) (*Requirement, error) {
	r := &Requirement{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setMaterialID(materialID),
		r.setRequired(required),
	); err != nil {
		return nil, err
	}

	if err := r.setProcessed(processed); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Requirement instance was properly constructed.
func (r *Requirement) Validate() error {
	if r == nil {
		return ErrRequirementIsNotConstructed
	}
	return r.guard.Validate(ErrRequirementIsNotConstructed)
}

// ID returns the requirement line's unique identifier.
func (r *Requirement) ID() kernel.UUID {
	return r.id
}

// MaterialID returns the consumed material's identifier.
func (r *Requirement) MaterialID() kernel.UUID {
	return r.materialID
}

// Required returns the total amount of material the order needs.
func (r *Requirement) Required() float64 {
	return r.required
}

// Processed returns the amount already deducted from stock.
func (r *Requirement) Processed() float64 {
	return r.processed
}

// Remaining returns the amount still to deduct. Zero once the line is
// fully processed.
func (r *Requirement) Remaining() float64 {
	return r.required - r.processed
}

// MarkProcessed records that the whole required amount has been deducted.
// Calling it on an already processed line changes nothing.
func (r *Requirement) MarkProcessed() {
	r.processed = r.required
}

func (r *Requirement) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Requirement) setMaterialID(materialID kernel.UUID) error {
	if err := materialID.Validate(); err != nil {
		return err
	}
	r.materialID = materialID
	return nil
}

func (r *Requirement) setRequired(required float64) error {
	if required <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"required",
			fmt.Errorf("%v is not greater than 0", required),
		)
	}
	r.required = required
	return nil
}

func (r *Requirement) setProcessed(processed float64) error {
	if processed < 0 || processed > r.required {
		return errs.NewValueIsOutOfRangeError("processed", processed, 0.0, r.required)
	}
	r.processed = processed
	return nil
}
