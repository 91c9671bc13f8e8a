package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler retrieves in-flight orders from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern; terminal orders (delivered, cancelled, refunded) are filtered out
// server-side.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for in-flight order queries.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the in-flight orders ordered by
// order number.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUncompletedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			store_id,
			status,
			payment_status,
			total_amount
		FROM orders
		WHERE status NOT IN (?, ?, ?)
		ORDER BY order_number
	`, order.Delivered.String(), order.Cancelled.String(), order.Refunded.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUncompletedOrdersQueryResponse
		var id, storeID uuid.UUID
		var totalAmount decimal.Decimal

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&storeID,
			&resp.Status,
			&resp.PaymentStatus,
			&totalAmount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		store, idErr := kernel.UUIDFromBytes(storeID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.StoreID = store
		resp.TotalAmount = totalAmount

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
