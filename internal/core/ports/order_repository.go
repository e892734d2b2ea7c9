package ports

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates
// including their requirement lines and machine claim.
type OrderRepository interface {
	// Add persists a new order aggregate with its requirement lines and
	// claim in one write.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, its
	// requirement lines, and its claim.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, fully
	// loaded with requirement lines and claim.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
