package agentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAgentRepository implements AgentRepository using GORM.
type GormAgentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAgentRepository creates a new GORM agent repository.
func NewGormAgentRepository(db *gorm.DB, tracker aggregateTracker) *GormAgentRepository {
	return &GormAgentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new agent to the database.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.DeliveryAgent) error {
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

// Update saves an existing agent to the database. Select("*") forces every
// column to be written; the in-flight counter regularly drops back to zero
// and must not be skipped as a zero value.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.DeliveryAgent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AgentDTO{}).
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

// Get retrieves an agent by ID.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves an agent and takes an exclusive row lock so the
// in-flight counter cannot be raced by a concurrent assignment write.
func (r *GormAgentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByStore retrieves every agent registered with a store.
func (r *GormAgentRepository) GetAllByStore(ctx context.Context, storeID kernel.UUID) ([]*agent.DeliveryAgent, error) {
	if err := storeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AgentDTO
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID.Bytes()).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetEligibleByStore retrieves the store's agents that are available, active
// and under capacity, ordered ascending by their in-flight counter. The
// ordering feeds the least-loaded selection.
func (r *GormAgentRepository) GetEligibleByStore(
	ctx context.Context,
	storeID kernel.UUID,
) ([]*agent.DeliveryAgent, error) {
	if err := storeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AgentDTO
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID.Bytes()).
		Where("is_available = ?", true).
		Where("operational_status = ?", agent.Active.String()).
		Where("current_assignments < max_concurrent").
		Order("current_assignments ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []AgentDTO) ([]*agent.DeliveryAgent, error) {
	agents := make([]*agent.DeliveryAgent, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}
