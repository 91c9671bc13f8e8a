package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment
// aggregates, their tracking points and proof of delivery records.
type AssignmentRepository interface {
	// Add persists a new assignment aggregate to storage.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment aggregate.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetActiveByOrder retrieves the order's single non-terminal assignment.
	// Returns errs.ErrObjectNotFound when the order has none.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// GetActiveByOrderForUpdate is GetActiveByOrder with an exclusive row
	// lock, taken together with the order lock by mutating operations.
	GetActiveByOrderForUpdate(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// GetExpiredUnaccepted retrieves assignments still in Assigned state
	// whose acceptance window closed before the cutoff. Rows locked by a
	// concurrent operation are skipped, not waited on, so one busy order
	// cannot stall the sweep batch.
	GetExpiredUnaccepted(ctx context.Context, cutoff time.Time) ([]*assignment.Assignment, error)

	// AddTrackingPoint appends one location ping.
	AddTrackingPoint(ctx context.Context, point *assignment.TrackingPoint) error

	// GetTrackingPoints returns an assignment's pings, most recent first.
	GetTrackingPoints(ctx context.Context, assignmentID kernel.UUID) ([]*assignment.TrackingPoint, error)

	// AddProofOfDelivery persists the proof record written on delivery.
	AddProofOfDelivery(ctx context.Context, proof *assignment.ProofOfDelivery) error
}
