package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetNextStatusesQueryHandler reads the order's current status and derives
// the open transitions from the domain transition table. The table lives in
// the order model only; this handler never encodes transitions itself.
type GetNextStatusesQueryHandler struct {
	db *gorm.DB
}

// NewGetNextStatusesQueryHandler creates a handler for next-status queries.
func NewGetNextStatusesQueryHandler(db *gorm.DB) GetNextStatusesQueryHandler {
	return GetNextStatusesQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the order
// does not exist.
func (h GetNextStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetNextStatusesQuery,
) (GetNextStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNextStatusesQueryResponse{}, err
	}

	var statusStr string

	err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&statusStr).Error
	if err != nil {
		return GetNextStatusesQueryResponse{}, err
	}
	if statusStr == "" {
		return GetNextStatusesQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	current, err := order.StatusFromString(statusStr)
	if err != nil {
		return GetNextStatusesQueryResponse{}, err
	}

	next := current.NextPossible()
	nextStrings := make([]string, 0, len(next))
	for _, s := range next {
		nextStrings = append(nextStrings, s.String())
	}

	return GetNextStatusesQueryResponse{
		OrderID:       query.OrderID(),
		CurrentStatus: current.String(),
		NextStatuses:  nextStrings,
	}, nil
}
