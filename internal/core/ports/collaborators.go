package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// PaymentProvider reports the settlement state of an order as known to the
// external payment system. Anything other than an explicit true is treated
// as not paid for gating purposes.
type PaymentProvider interface {
	IsPaid(ctx context.Context, orderID kernel.UUID) (bool, error)
}

// RouteEstimator produces the distance and time estimate recorded on a new
// assignment. Implementations may call a routing service; the default is a
// fixed city-average estimate.
type RouteEstimator interface {
	Estimate(ctx context.Context, orderID kernel.UUID) (distanceKm decimal.Decimal, timeMinutes int, err error)
}

// Clock abstracts time for the acceptance-window sweep and timestamping so
// tests can simulate the passage of time.
type Clock interface {
	Now() time.Time
}
