package product

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
	"mes/internal/pkg/guard"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the NewProduct or RestoreProduct factory methods.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")

// Product represents a producible item and owns its bill of materials.
// Products are a read-only input to order creation: the BOM is expanded once
// into the order's requirement lines and the product is never mutated by the
// order lifecycle.
type Product struct {
	id   kernel.UUID
	name string
	code string
	unit string

	// bomLines is the ordered bill of materials, one line per material
	bomLines []BOMLine

	guard guard.ConstructorGuard
}

// NewProduct creates a product with its bill of materials. Name, code, and
// unit are required; the BOM may be empty (orders for such products simply
// consume no materials).
func NewProduct(id kernel.UUID, name, code, unit string, bomLines []BOMLine) (*Product, error) {
	p := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setCode(code),
		p.setUnit(unit),
		p.setBOMLines(bomLines),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a product from persistent storage.
func RestoreProduct(id kernel.UUID, name, code, unit string, bomLines []BOMLine) (*Product, error) {
	return NewProduct(id, name, code, unit, bomLines)
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Code returns the product's catalog code.
func (p *Product) Code() string {
	return p.code
}

// Unit returns the unit the product is produced in.
func (p *Product) Unit() string {
	return p.unit
}

// BOMLines returns a copy of the product's bill of materials.
func (p *Product) BOMLines() []BOMLine {
	lines := make([]BOMLine, len(p.bomLines))
	copy(lines, p.bomLines)
	return lines
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	p.code = code
	return nil
}

func (p *Product) setUnit(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	p.unit = unit
	return nil
}

func (p *Product) setBOMLines(bomLines []BOMLine) error {
	for _, line := range bomLines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	p.bomLines = make([]BOMLine, len(bomLines))
	copy(p.bomLines, bomLines)
	return nil
}
