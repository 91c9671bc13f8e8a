package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database. Select("*") forces every
// column to be written, including fields that went back to their zero value.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
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

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves an order and takes an exclusive row lock held until
// the surrounding transaction commits or rolls back.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderNumber retrieves an order by its external order number.
func (r *GormOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUncompleted retrieves orders that have not reached a terminal status.
func (r *GormOrderRepository) GetAllUncompleted(ctx context.Context) ([]*order.Order, error) {
	terminal := []string{
		order.Delivered.String(),
		order.Cancelled.String(),
		order.Refunded.String(),
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", terminal).
		Order("order_number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// AddStatusEvent appends one history record. Events are write-once.
func (r *GormOrderRepository) AddStatusEvent(ctx context.Context, event *order.StatusEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := eventFromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetStatusEvents returns the order's history ordered by creation time.
func (r *GormOrderRepository) GetStatusEvents(ctx context.Context, orderID kernel.UUID) ([]*order.StatusEvent, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusEventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*order.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, nil
}
