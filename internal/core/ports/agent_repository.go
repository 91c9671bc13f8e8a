package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for delivery agent
// aggregates.
type AgentRepository interface {
	// Add persists a new agent aggregate to storage.
	Add(ctx context.Context, aggregate *agent.DeliveryAgent) error

	// Update persists changes to an existing agent aggregate. The in-flight
	// counter must only be written inside the same transaction as the
	// assignment change that caused it.
	Update(ctx context.Context, aggregate *agent.DeliveryAgent) error

	// Get retrieves an agent aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error)

	// GetForUpdate retrieves an agent and takes an exclusive row lock so the
	// in-flight counter cannot be raced by a concurrent assignment write.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error)

	// GetAllByStore retrieves every agent registered with a store.
	GetAllByStore(ctx context.Context, storeID kernel.UUID) ([]*agent.DeliveryAgent, error)

	// GetEligibleByStore retrieves the store's agents that are available,
	// operationally active and under capacity, ordered ascending by their
	// in-flight counter. Candidate set for the selection tie-break.
	GetEligibleByStore(ctx context.Context, storeID kernel.UUID) ([]*agent.DeliveryAgent, error)
}
