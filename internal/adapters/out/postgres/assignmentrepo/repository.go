package assignmentrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// activeStatuses lists the non-terminal assignment states. An order has at
// most one assignment in any of these at a time.
func activeStatuses() []string {
	return []string{
		assignment.Assigned.String(),
		assignment.Accepted.String(),
		assignment.PickedUp.String(),
		assignment.InTransit.String(),
	}
}

// Add saves a new assignment to the database.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing assignment to the database. Select("*") forces
// every column to be written, nullable timestamps included.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOrder retrieves the order's single non-terminal assignment.
func (r *GormAssignmentRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	return r.getActiveByOrder(ctx, orderID, false)
}

// GetActiveByOrderForUpdate is GetActiveByOrder with an exclusive row lock
// held until the surrounding transaction ends.
func (r *GormAssignmentRepository) GetActiveByOrderForUpdate(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	return r.getActiveByOrder(ctx, orderID, true)
}

func (r *GormAssignmentRepository) getActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
	forUpdate bool,
) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto AssignmentDTO
	err := db.
		Where("order_id = ? AND status IN ?", orderID.Bytes(), activeStatuses()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active assignment for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetExpiredUnaccepted retrieves assignments still in Assigned state whose
// acceptance window closed before the cutoff. SKIP LOCKED keeps the sweep
// from queueing behind rows a concurrent acceptance is holding.
func (r *GormAssignmentRepository) GetExpiredUnaccepted(
	ctx context.Context,
	cutoff time.Time,
) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND assigned_at < ?", assignment.Assigned.String(), cutoff).
		Order("assigned_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}

// AddTrackingPoint appends one location ping.
func (r *GormAssignmentRepository) AddTrackingPoint(ctx context.Context, point *assignment.TrackingPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	dto := trackingFromDomain(point)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetTrackingPoints returns an assignment's pings, most recent first.
func (r *GormAssignmentRepository) GetTrackingPoints(
	ctx context.Context,
	assignmentID kernel.UUID,
) ([]*assignment.TrackingPoint, error) {
	if err := assignmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackingPointDTO
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID.Bytes()).
		Order("recorded_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	points := make([]*assignment.TrackingPoint, 0, len(dtos))
	for _, dto := range dtos {
		p, err := trackingToDomain(dto)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, nil
}

// AddProofOfDelivery persists the proof record written on delivery.
func (r *GormAssignmentRepository) AddProofOfDelivery(ctx context.Context, proof *assignment.ProofOfDelivery) error {
	if err := proof.Validate(); err != nil {
		return err
	}

	dto := proofFromDomain(proof)
	return r.db.WithContext(ctx).Create(&dto).Error
}
