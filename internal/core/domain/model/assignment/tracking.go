package assignment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrTrackingPointIsNotConstructed is returned when a TrackingPoint was not
// created through the NewTrackingPoint constructor.
var ErrTrackingPointIsNotConstructed = errors.New("TrackingPoint must be created via NewTrackingPoint constructor")

// TrackingPoint is a single location ping reported by the courier's device
// while an assignment is in flight. Points are append-only.
type TrackingPoint struct {
	id           kernel.UUID
	assignmentID kernel.UUID
	point        kernel.GeoPoint
	speedKmh     *decimal.Decimal
	batteryLevel *int
	recordedAt   time.Time
	guard        guard.ConstructorGuard
}

// NewTrackingPoint records a location ping. Speed and battery level are
// optional device telemetry.
func NewTrackingPoint(
	assignmentID kernel.UUID,
	point kernel.GeoPoint,
	speedKmh *decimal.Decimal,
	batteryLevel *int,
	recordedAt time.Time,
) (*TrackingPoint, error) {
	if err := assignmentID.Validate(); err != nil {
		return nil, err
	}
	if err := point.Validate(); err != nil {
		return nil, err
	}
	if batteryLevel != nil && (*batteryLevel < 0 || *batteryLevel > 100) {
		return nil, errs.NewValueIsOutOfRangeError("battery level", *batteryLevel, 0, 100)
	}

	return &TrackingPoint{
		id:           kernel.NewUUID(),
		assignmentID: assignmentID,
		point:        point,
		speedKmh:     speedKmh,
		batteryLevel: batteryLevel,
		recordedAt:   recordedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreTrackingPoint reconstructs a TrackingPoint from persistence.
func RestoreTrackingPoint(
	id kernel.UUID,
	assignmentID kernel.UUID,
	point kernel.GeoPoint,
	speedKmh *decimal.Decimal,
	batteryLevel *int,
	recordedAt time.Time,
) (*TrackingPoint, error) {
	if err := errors.Join(id.Validate(), assignmentID.Validate(), point.Validate()); err != nil {
		return nil, err
	}

	return &TrackingPoint{
		id:           id,
		assignmentID: assignmentID,
		point:        point,
		speedKmh:     speedKmh,
		batteryLevel: batteryLevel,
		recordedAt:   recordedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the point was created through a constructor.
func (p *TrackingPoint) Validate() error {
	if p == nil {
		return ErrTrackingPointIsNotConstructed
	}
	return p.guard.Validate(ErrTrackingPointIsNotConstructed)
}

// ID returns the point's unique identifier.
func (p *TrackingPoint) ID() kernel.UUID { return p.id }

// AssignmentID returns the assignment the ping belongs to.
func (p *TrackingPoint) AssignmentID() kernel.UUID { return p.assignmentID }

// Point returns the reported position.
func (p *TrackingPoint) Point() kernel.GeoPoint { return p.point }

// SpeedKmh returns the reported speed, nil if the device did not send one.
func (p *TrackingPoint) SpeedKmh() *decimal.Decimal { return p.speedKmh }

// BatteryLevel returns the device battery percentage, nil if not reported.
func (p *TrackingPoint) BatteryLevel() *int { return p.batteryLevel }

// RecordedAt returns when the ping was taken.
func (p *TrackingPoint) RecordedAt() time.Time { return p.recordedAt }
