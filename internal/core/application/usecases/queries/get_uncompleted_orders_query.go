// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
	"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
)

// GetUncompletedOrdersQuery retrieves orders that have not reached a terminal
// status, for the ops dashboard and the auto-assignment job.
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUncompletedOrdersQuery creates a query to retrieve all in-flight orders.
func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// GetUncompletedOrdersQueryResponse is the order read model for workload views.
type GetUncompletedOrdersQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	StoreID       kernel.UUID
	Status        string
	PaymentStatus string
	TotalAmount   decimal.Decimal
}
