package product

import (
	"errors"
	"fmt"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
)

// ErrBOMLineIsNotConstructed is returned when a BOMLine was not created
// through the NewBOMLine factory function.
var ErrBOMLineIsNotConstructed = errors.New("BOMLine must be created via NewBOMLine constructor")

// BOMLine is a single line of a product's bill of materials: the material
// consumed and the quantity needed per unit of product. BOMLine is a value
// object; lines are compared by content and never mutated.
type BOMLine struct {
	materialID kernel.UUID

	// qtyPerUnit is how much of the material one product unit consumes
	qtyPerUnit float64
}

// NewBOMLine creates a validated BOM line. Quantity per unit must be
// strictly positive.
func NewBOMLine(materialID kernel.UUID, qtyPerUnit float64) (BOMLine, error) {
	if err := materialID.Validate(); err != nil {
		return BOMLine{}, err
	}

	if qtyPerUnit <= 0 {
		return BOMLine{}, errs.NewValueIsInvalidErrorWithCause(
			"qtyPerUnit",
			fmt.Errorf("%v is not greater than 0", qtyPerUnit),
		)
	}

	return BOMLine{
		materialID: materialID,
		qtyPerUnit: qtyPerUnit,
	}, nil
}

// Validate checks the line holds a valid material reference and quantity.
// A zero-value BOMLine is invalid.
func (l BOMLine) Validate() error {
	if err := l.materialID.Validate(); err != nil {
		return ErrBOMLineIsNotConstructed
	}
	if l.qtyPerUnit <= 0 {
		return ErrBOMLineIsNotConstructed
	}
	return nil
}

// MaterialID returns the consumed material's identifier.
func (l BOMLine) MaterialID() kernel.UUID {
	return l.materialID
}

// QtyPerUnit returns the quantity consumed per unit of product.
func (l BOMLine) QtyPerUnit() float64 {
	return l.qtyPerUnit
}
