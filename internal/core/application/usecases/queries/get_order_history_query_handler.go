package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves an order's status history from the
// database in chronological order.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query. An order with no recorded transitions yields an
// empty slice, not an error.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			actor_id,
			note,
			created_at
		FROM order_status_events
		WHERE order_id = ?
		ORDER BY created_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderHistoryQueryResponse
		var actorID uuid.UUID

		err = rows.Scan(
			&resp.FromStatus,
			&resp.ToStatus,
			&actorID,
			&resp.Note,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		actor, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ActorID = actor

		history = append(history, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
