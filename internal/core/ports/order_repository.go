// Package ports defines repository and collaborator interfaces for the
// fulfillment domain. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only status history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and takes an exclusive row lock for
	// the duration of the transaction. Every mutating operation re-reads
	// the order through this method before validating preconditions.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderNumber retrieves an order by its external order number.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetAllUncompleted retrieves orders that have not reached a terminal
	// status, for dashboards and the auto-assignment job.
	GetAllUncompleted(ctx context.Context) ([]*order.Order, error)

	// AddStatusEvent appends one history record. Events are write-once.
	AddStatusEvent(ctx context.Context, event *order.StatusEvent) error

	// GetStatusEvents returns the order's history ordered by creation time.
	GetStatusEvents(ctx context.Context, orderID kernel.UUID) ([]*order.StatusEvent, error)
}
