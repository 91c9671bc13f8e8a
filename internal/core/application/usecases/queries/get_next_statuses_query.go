package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetNextStatusesQueryIsNotConstructed = errors.New(
	"GetNextStatusesQuery must be created via NewGetNextStatusesQuery constructor",
)

// GetNextStatusesQuery retrieves the statuses an order may legally move to
// next. UIs use it to render only the valid action buttons.
type GetNextStatusesQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNextStatusesQuery creates a query for an order's possible next statuses.
func NewGetNextStatusesQuery(orderID kernel.UUID) (GetNextStatusesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetNextStatusesQuery{}, err
	}

	return GetNextStatusesQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNextStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetNextStatusesQueryIsNotConstructed)
}

// OrderID returns the order whose next statuses are requested.
func (q GetNextStatusesQuery) OrderID() kernel.UUID { return q.orderID }

// GetNextStatusesQueryResponse lists the order's current status and the
// transitions open from it. NextStatuses is empty for terminal orders.
type GetNextStatusesQueryResponse struct {
	OrderID       kernel.UUID
	CurrentStatus string
	NextStatuses  []string
}
