package services

import (
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/order"
	"mes/internal/core/domain/model/product"
)

// BOMResolver is a domain service that expands a product's bill of
// materials into the requirement lines of an order.
//
// The expansion is pure: it reads the product and touches no stock.
// Each BOM line yields exactly one requirement line with
// required = qtyPerUnit * quantity and nothing processed yet.
//
// Example usage:
//
//	resolver := NewBOMResolver()
//	requirements, err := resolver.Expand(product, order.Quantity())
//	if err != nil {
//	    // Handle invalid product or quantity
//	}
//	order.SetRequirements(requirements)
type BOMResolver struct{}

// NewBOMResolver creates a new BOMResolver instance.
func NewBOMResolver() BOMResolver {
	return BOMResolver{}
}

// Expand produces one requirement line per BOM line of the product,
// scaled by the order quantity. A product with an empty BOM expands to no
// lines. The line order follows the BOM order.
func (r BOMResolver) Expand(p *product.Product, quantity int) ([]*order.Requirement, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	lines := p.BOMLines()
	requirements := make([]*order.Requirement, 0, len(lines))

	for _, line := range lines {
		requirement, err := order.NewRequirement(
			kernel.NewUUID(),
			line.MaterialID(),
			line.QtyPerUnit()*float64(quantity),
		)
		if err != nil {
			return nil, err
		}

		requirements = append(requirements, requirement)
	}

	return requirements, nil
}
