package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAllAgentsQueryIsNotConstructed = errors.New(
	"GetAllAgentsQuery must be created via NewGetAllAgentsQuery constructor",
)

// GetAllAgentsQuery retrieves the delivery agent roster of one store with
// workload and lifetime statistics, for monitoring and manual assignment.
type GetAllAgentsQuery struct { //nolint:recvcheck //using for validation
	storeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAllAgentsQuery creates a query for a store's agent roster.
func NewGetAllAgentsQuery(storeID kernel.UUID) (GetAllAgentsQuery, error) {
	if err := storeID.Validate(); err != nil {
		return GetAllAgentsQuery{}, err
	}

	return GetAllAgentsQuery{
		storeID: storeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllAgentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllAgentsQueryIsNotConstructed)
}

// StoreID returns the store whose roster is requested.
func (q GetAllAgentsQuery) StoreID() kernel.UUID { return q.storeID }

// GetAllAgentsQueryResponse is the agent read model for roster views.
// SuccessRate is a percentage with two decimal places.
type GetAllAgentsQueryResponse struct {
	ID                   kernel.UUID
	Name                 string
	Phone                string
	VehicleType          string
	OperationalStatus    string
	IsAvailable          bool
	CurrentAssignments   int
	MaxConcurrent        int
	TotalDeliveries      int
	SuccessfulDeliveries int
	SuccessRate          float64
}
