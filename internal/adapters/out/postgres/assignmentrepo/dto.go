// Package assignmentrepo provides data transfer objects and mapping functions
// for assignment persistence, including the append-only tracking points and
// the proof of delivery record written when a delivery completes.
package assignmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignmentDTO represents the database structure for persisting assignment
// aggregates.
type AssignmentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	AgentID uuid.UUID `gorm:"type:uuid;not null;index"`

	Status string `gorm:"type:varchar(32);not null;index"`

	AssignedAt  time.Time `gorm:"not null;index"`
	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time

	EstimatedDistanceKm  decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	EstimatedTimeMinutes int             `gorm:"not null"`
	ActualTimeMinutes    *int

	CancellationReason *string `gorm:"type:text"`
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// TrackingPointDTO represents one persisted location ping. Rows are
// append-only.
type TrackingPointDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID `gorm:"type:uuid;not null;index"`

	Lat float64 `gorm:"type:double precision;not null"`
	Lon float64 `gorm:"type:double precision;not null"`

	SpeedKmh     *decimal.Decimal `gorm:"type:decimal(6,2)"`
	BatteryLevel *int

	RecordedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for tracking points.
func (TrackingPointDTO) TableName() string {
	return "tracking_points"
}

// ProofOfDeliveryDTO represents the proof record written on delivery.
// One row per assignment.
type ProofOfDeliveryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	Method    string `gorm:"type:varchar(32);not null"`
	Recipient string `gorm:"type:varchar(255)"`

	PhotoRef     string `gorm:"type:varchar(512)"`
	SignatureRef string `gorm:"type:varchar(512)"`

	Lat *float64 `gorm:"type:double precision"`
	Lon *float64 `gorm:"type:double precision"`

	Notes      string    `gorm:"type:text"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for proof of delivery records.
func (ProofOfDeliveryDTO) TableName() string {
	return "proof_of_delivery"
}

// fromDomain converts an assignment domain aggregate to its database representation.
func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:      a.ID().Bytes(),
		OrderID: a.OrderID().Bytes(),
		AgentID: a.AgentID().Bytes(),

		Status: a.Status().String(),

		AssignedAt:  a.AssignedAt(),
		AcceptedAt:  a.AcceptedAt(),
		PickedUpAt:  a.PickedUpAt(),
		DeliveredAt: a.DeliveredAt(),

		EstimatedDistanceKm:  a.EstimatedDistanceKm(),
		EstimatedTimeMinutes: a.EstimatedTimeMinutes(),
		ActualTimeMinutes:    a.ActualTimeMinutes(),

		CancellationReason: a.CancellationReason(),
	}
}

// toDomain converts a database DTO to an assignment aggregate using
// RestoreAssignment.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}

	status, err := assignment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id,
		orderID,
		agentID,
		status,
		dto.AssignedAt,
		dto.AcceptedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		dto.EstimatedDistanceKm,
		dto.EstimatedTimeMinutes,
		dto.ActualTimeMinutes,
		dto.CancellationReason,
	)
}

// trackingFromDomain converts a tracking point to its database representation.
func trackingFromDomain(p *assignment.TrackingPoint) TrackingPointDTO {
	return TrackingPointDTO{
		ID:           p.ID().Bytes(),
		AssignmentID: p.AssignmentID().Bytes(),

		Lat: p.Point().Lat(),
		Lon: p.Point().Lon(),

		SpeedKmh:     p.SpeedKmh(),
		BatteryLevel: p.BatteryLevel(),

		RecordedAt: p.RecordedAt(),
	}
}

// trackingToDomain converts a database DTO to a tracking point using
// RestoreTrackingPoint.
func trackingToDomain(dto TrackingPointDTO) (*assignment.TrackingPoint, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	assignmentID, err := kernel.UUIDFromBytes(dto.AssignmentID[:])
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreTrackingPoint(id, assignmentID, point, dto.SpeedKmh, dto.BatteryLevel, dto.RecordedAt)
}

// proofFromDomain converts a proof of delivery to its database representation.
func proofFromDomain(p *assignment.ProofOfDelivery) ProofOfDeliveryDTO {
	var lat, lon *float64
	if loc := p.Location(); loc != nil {
		la := loc.Lat()
		lo := loc.Lon()
		lat = &la
		lon = &lo
	}

	return ProofOfDeliveryDTO{
		ID:           p.ID().Bytes(),
		AssignmentID: p.AssignmentID().Bytes(),

		Method:    p.Method().String(),
		Recipient: p.Recipient(),

		PhotoRef:     p.PhotoRef(),
		SignatureRef: p.SignatureRef(),

		Lat: lat,
		Lon: lon,

		Notes:      p.Notes(),
		RecordedAt: p.RecordedAt(),
	}
}
