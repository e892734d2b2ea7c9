package material

import (
	"errors"
	"time"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
	"mes/internal/pkg/guard"
)

// ErrMaterialIsNotConstructed is returned when a Material instance was not
// created through the NewMaterial or RestoreMaterial factory methods.
var ErrMaterialIsNotConstructed = errors.New("Material must be created via NewMaterial or RestoreMaterial constructor")

// Material is a stock-keeping aggregate. Orders consume materials on
// completion; stock is allowed to go negative so that completion never
// blocks on bookkeeping drift (a negative balance is an inventory signal,
// not an error).
type Material struct {
	id   kernel.UUID
	name string
	unit string

	stockQuantity float64
	updatedAt     time.Time

	guard guard.ConstructorGuard
}

// NewMaterial creates a material with an opening stock level.
func NewMaterial(id kernel.UUID, name, unit string, stockQuantity float64, updatedAt time.Time) (*Material, error) {
	m := &Material{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setUnit(unit),
		m.setUpdatedAt(updatedAt),
	); err != nil {
		return nil, err
	}

	m.stockQuantity = stockQuantity

	return m, nil
}

// RestoreMaterial reconstructs a material from persistent storage.
func RestoreMaterial(id kernel.UUID, name, unit string, stockQuantity float64, updatedAt time.Time) (*Material, error) {
	return NewMaterial(id, name, unit, stockQuantity, updatedAt)
}

// Validate ensures the Material instance was properly constructed.
func (m *Material) Validate() error {
	if m == nil {
		return ErrMaterialIsNotConstructed
	}
	return m.guard.Validate(ErrMaterialIsNotConstructed)
}

// ID returns the material's unique identifier.
func (m *Material) ID() kernel.UUID {
	return m.id
}

// Name returns the material's display name.
func (m *Material) Name() string {
	return m.name
}

// Unit returns the unit the stock level is tracked in.
func (m *Material) Unit() string {
	return m.unit
}

// StockQuantity returns the current stock level. May be negative.
func (m *Material) StockQuantity() float64 {
	return m.stockQuantity
}

// UpdatedAt returns the time of the last stock movement.
func (m *Material) UpdatedAt() time.Time {
	return m.updatedAt
}

// IsEqual compares two materials by identity.
func (m *Material) IsEqual(other *Material) bool {
	return m.id.IsEqual(other.ID())
}

// Deduct removes qty from stock and stamps the movement time. The quantity
// must be non-negative; the resulting balance is not guarded and may go
// below zero.
func (m *Material) Deduct(qty float64, at time.Time) error {
	if qty < 0 {
		return errs.NewValueIsOutOfRangeError("qty", qty, 0.0, nil)
	}

	m.stockQuantity -= qty
	m.updatedAt = at
	return nil
}

func (m *Material) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Material) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}

func (m *Material) setUnit(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	m.unit = unit
	return nil
}

func (m *Material) setUpdatedAt(updatedAt time.Time) error {
	if updatedAt.IsZero() {
		return errs.NewValueIsRequiredError("updatedAt")
	}
	m.updatedAt = updatedAt
	return nil
}
