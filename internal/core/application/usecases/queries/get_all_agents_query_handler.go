package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllAgentsQueryHandler retrieves a store's agent roster from the
// database. The success rate is derived in SQL so the read model needs no
// domain reconstruction.
type GetAllAgentsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllAgentsQueryHandler creates a handler for agent roster queries.
func NewGetAllAgentsQueryHandler(db *gorm.DB) GetAllAgentsQueryHandler {
	return GetAllAgentsQueryHandler{db: db}
}

// Handle executes the query and returns the roster sorted by name.
func (h GetAllAgentsQueryHandler) Handle(
	ctx context.Context,
	query GetAllAgentsQuery,
) ([]GetAllAgentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	agents := make([]GetAllAgentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			vehicle_type,
			operational_status,
			is_available,
			current_assignments,
			max_concurrent,
			total_deliveries,
			successful_deliveries,
			CASE
				WHEN total_deliveries = 0 THEN 0
				ELSE ROUND(successful_deliveries * 100.0 / total_deliveries, 2)
			END AS success_rate
		FROM agents
		WHERE store_id = ?
		ORDER BY name
	`, query.StoreID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAllAgentsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Phone,
			&resp.VehicleType,
			&resp.OperationalStatus,
			&resp.IsAvailable,
			&resp.CurrentAssignments,
			&resp.MaxConcurrent,
			&resp.TotalDeliveries,
			&resp.SuccessfulDeliveries,
			&resp.SuccessRate,
		)
		if err != nil {
			return nil, err
		}

		agentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = agentID

		agents = append(agents, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
