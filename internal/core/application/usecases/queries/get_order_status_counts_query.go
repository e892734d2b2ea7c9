package queries

import (
	"errors"

	"mes/internal/pkg/guard"
)

var ErrGetOrderStatusCountsQueryIsNotConstructed = errors.New(
	"GetOrderStatusCountsQuery must be created via NewGetOrderStatusCountsQuery constructor",
)

// GetOrderStatusCountsQuery retrieves a summary of the order book: how many
// orders sit in each lifecycle status plus the overall total.
type GetOrderStatusCountsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderStatusCountsQuery creates a query for the order status summary.
func NewGetOrderStatusCountsQuery() GetOrderStatusCountsQuery {
	return GetOrderStatusCountsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatusCountsQueryIsNotConstructed if validation fails.
func (q GetOrderStatusCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusCountsQueryIsNotConstructed)
}

// GetOrderStatusCountsQueryResponse summarizes the order book by status.
type GetOrderStatusCountsQueryResponse struct {
	Total      int
	Pending    int
	Processing int
	Completed  int
}
