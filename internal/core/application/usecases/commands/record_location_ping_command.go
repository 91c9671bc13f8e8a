package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordLocationPingCommandIsNotConstructed = errors.New(
	"RecordLocationPingCommand must be created via NewRecordLocationPingCommand constructor",
)

// RecordLocationPingCommand records a location ping from the courier's device
// against the order's active assignment. Speed and battery level are optional
// telemetry.
type RecordLocationPingCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	agentID      kernel.UUID
	point        kernel.GeoPoint
	speedKmh     *decimal.Decimal
	batteryLevel *int

	guard guard.ConstructorGuard
}

// NewRecordLocationPingCommand creates a command to record a location ping.
func NewRecordLocationPingCommand(
	orderID kernel.UUID,
	agentID kernel.UUID,
	point kernel.GeoPoint,
	speedKmh *decimal.Decimal,
	batteryLevel *int,
) (RecordLocationPingCommand, error) {
	if err := errors.Join(orderID.Validate(), agentID.Validate(), point.Validate()); err != nil {
		return RecordLocationPingCommand{}, err
	}
	if batteryLevel != nil && (*batteryLevel < 0 || *batteryLevel > 100) {
		return RecordLocationPingCommand{}, errs.NewValueIsOutOfRangeError("battery level", *batteryLevel, 0, 100)
	}

	return RecordLocationPingCommand{
		orderID:      orderID,
		agentID:      agentID,
		point:        point,
		speedKmh:     speedKmh,
		batteryLevel: batteryLevel,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordLocationPingCommand) Validate() error {
	return c.guard.Validate(ErrRecordLocationPingCommandIsNotConstructed)
}

// OrderID returns the order being tracked.
func (c RecordLocationPingCommand) OrderID() kernel.UUID { return c.orderID }

// AgentID returns the agent reporting the ping.
func (c RecordLocationPingCommand) AgentID() kernel.UUID { return c.agentID }

// Point returns the reported position.
func (c RecordLocationPingCommand) Point() kernel.GeoPoint { return c.point }

// SpeedKmh returns the reported speed, nil if not sent.
func (c RecordLocationPingCommand) SpeedKmh() *decimal.Decimal { return c.speedKmh }

// BatteryLevel returns the device battery percentage, nil if not sent.
func (c RecordLocationPingCommand) BatteryLevel() *int { return c.batteryLevel }
