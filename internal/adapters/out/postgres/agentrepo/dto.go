// Package agentrepo provides data transfer objects and mapping functions for
// delivery agent persistence. This package implements the repository pattern
// for the agent domain aggregate, handling the conversion between domain
// entities and database representations.
package agentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO represents the database structure for persisting agent aggregates.
// The last known location is stored as a nullable coordinate pair; both
// columns are nil until the agent reports a first ping.
type AgentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Phone   string    `gorm:"type:varchar(32);not null"`

	VehicleType       string `gorm:"type:varchar(32);not null"`
	OperationalStatus string `gorm:"type:varchar(32);not null"`
	IsAvailable       bool   `gorm:"not null"`

	MaxConcurrent      int `gorm:"not null"`
	CurrentAssignments int `gorm:"not null"`

	TotalDeliveries      int `gorm:"not null"`
	SuccessfulDeliveries int `gorm:"not null"`

	LastLat        *float64 `gorm:"type:double precision"`
	LastLon        *float64 `gorm:"type:double precision"`
	LastLocationAt *time.Time
}

// TableName specifies the database table name for agent entities.
// Overrides GORM's default naming convention to use "agents".
func (AgentDTO) TableName() string {
	return "agents"
}

// fromDomain converts an agent domain aggregate to its database representation.
func fromDomain(a *agent.DeliveryAgent) AgentDTO {
	var lastLat, lastLon *float64
	if loc := a.LastKnownLocation(); loc != nil {
		lat := loc.Lat()
		lon := loc.Lon()
		lastLat = &lat
		lastLon = &lon
	}

	return AgentDTO{
		ID:      a.ID().Bytes(),
		StoreID: a.StoreID().Bytes(),
		Name:    a.Name(),
		Phone:   a.Phone(),

		VehicleType:       a.VehicleType().String(),
		OperationalStatus: a.OperationalStatus().String(),
		IsAvailable:       a.IsAvailable(),

		MaxConcurrent:      a.MaxConcurrent(),
		CurrentAssignments: a.CurrentAssignments(),

		TotalDeliveries:      a.TotalDeliveries(),
		SuccessfulDeliveries: a.SuccessfulDeliveries(),

		LastLat:        lastLat,
		LastLon:        lastLon,
		LastLocationAt: a.LastLocationAt(),
	}
}

// toDomain converts a database DTO to an agent domain aggregate using
// RestoreDeliveryAgent.
func toDomain(dto AgentDTO) (*agent.DeliveryAgent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	vehicleType, err := agent.VehicleTypeFromString(dto.VehicleType)
	if err != nil {
		return nil, err
	}

	operationalStatus, err := agent.OperationalStatusFromString(dto.OperationalStatus)
	if err != nil {
		return nil, err
	}

	var lastKnownLocation *kernel.GeoPoint
	if dto.LastLat != nil && dto.LastLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LastLat, *dto.LastLon)
		if pointErr != nil {
			return nil, pointErr
		}
		lastKnownLocation = &point
	}

	return agent.RestoreDeliveryAgent(
		id,
		storeID,
		dto.Name,
		dto.Phone,
		vehicleType,
		operationalStatus,
		dto.IsAvailable,
		dto.MaxConcurrent,
		dto.CurrentAssignments,
		dto.TotalDeliveries,
		dto.SuccessfulDeliveries,
		lastKnownLocation,
		dto.LastLocationAt,
	)
}
