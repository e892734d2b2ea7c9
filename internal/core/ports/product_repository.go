package ports

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for products and
// their bills of materials. Products are read-only inputs to the order
// lifecycle.
type ProductRepository interface {
	// Add persists a new product with its BOM lines.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier, including its
	// BOM lines in order.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
}
