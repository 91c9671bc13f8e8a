package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves an order's append-only status history for
// audit views and customer-facing timelines.
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for an order's status history.
func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderHistoryQueryResponse is one history record in chronological order.
type GetOrderHistoryQueryResponse struct {
	FromStatus string
	ToStatus   string
	ActorID    kernel.UUID
	Note       string
	CreatedAt  time.Time
}
