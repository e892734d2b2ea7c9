package queries

import (
	"context"

	"mes/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatusCountsQueryHandler computes the order status summary.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderStatusCountsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusCountsQueryHandler creates a handler for the status summary.
// Requires a GORM database connection for query execution.
func NewGetOrderStatusCountsQueryHandler(db *gorm.DB) GetOrderStatusCountsQueryHandler {
	return GetOrderStatusCountsQueryHandler{db: db}
}

// Handle executes the query and returns per status counts in a single pass
// over the orders table.
func (h GetOrderStatusCountsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusCountsQuery,
) (GetOrderStatusCountsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusCountsQueryResponse{}, err
	}

	var resp GetOrderStatusCountsQueryResponse

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetOrderStatusCountsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		var count int

		if err = rows.Scan(&status, &count); err != nil {
			return GetOrderStatusCountsQueryResponse{}, err
		}

		resp.Total += count
		switch order.Status(status) {
		case order.Pending:
			resp.Pending = count
		case order.Processing:
			resp.Processing = count
		case order.Completed:
			resp.Completed = count
		}
	}

	if err = rows.Err(); err != nil {
		return GetOrderStatusCountsQueryResponse{}, err
	}

	return resp, nil
}
