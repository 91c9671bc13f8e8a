// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored as their snake_case string form so the rows stay
// readable in ad-hoc SQL and the read-model queries.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID     uuid.UUID `gorm:"type:uuid;not null;index"`

	Status        string `gorm:"type:varchar(32);not null;index"`
	PaymentStatus string `gorm:"type:varchar(32);not null"`
	PaymentMethod string `gorm:"type:varchar(32);not null"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	HandoverCode *string `gorm:"type:varchar(16)"`
	DeliveryCode *string `gorm:"type:varchar(16)"`

	HandedToCourierAt *time.Time
	DeliveredAt       *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusEventDTO represents one append-only status history record.
// Rows are written once in the same transaction as the order mutation and
// never updated.
type StatusEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus string    `gorm:"type:varchar(32);not null"`
	ToStatus   string    `gorm:"type:varchar(32);not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	Note       string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for status history records.
func (StatusEventDTO) TableName() string {
	return "order_status_events"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID().Bytes(),
		OrderNumber: o.OrderNumber(),
		CustomerID:  o.CustomerID().Bytes(),
		StoreID:     o.StoreID().Bytes(),

		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		PaymentMethod: o.PaymentMethod().String(),

		Subtotal:       o.Subtotal(),
		DeliveryFee:    o.DeliveryFee(),
		TaxAmount:      o.TaxAmount(),
		DiscountAmount: o.DiscountAmount(),
		TotalAmount:    o.TotalAmount(),

		HandoverCode: o.HandoverCode(),
		DeliveryCode: o.DeliveryCode(),

		HandedToCourierAt: o.HandedToCourierAt(),
		DeliveredAt:       o.DeliveredAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		storeID,
		status,
		paymentStatus,
		paymentMethod,
		dto.Subtotal,
		dto.DeliveryFee,
		dto.TaxAmount,
		dto.DiscountAmount,
		dto.HandoverCode,
		dto.DeliveryCode,
		dto.HandedToCourierAt,
		dto.DeliveredAt,
	)
}

// eventFromDomain converts a status event to its database representation.
func eventFromDomain(e *order.StatusEvent) StatusEventDTO {
	return StatusEventDTO{
		ID:         e.ID().Bytes(),
		OrderID:    e.OrderID().Bytes(),
		FromStatus: e.FromStatus().String(),
		ToStatus:   e.Status().String(),
		ActorID:    e.ActorID().Bytes(),
		Note:       e.Note(),
		CreatedAt:  e.OccurredAt(),
	}
}

// eventToDomain converts a database DTO to a status event using RestoreStatusEvent.
func eventToDomain(dto StatusEventDTO) (*order.StatusEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	fromStatus, err := order.StatusFromString(dto.FromStatus)
	if err != nil {
		return nil, err
	}

	toStatus, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreStatusEvent(id, orderID, fromStatus, toStatus, actorID, dto.Note, dto.CreatedAt)
}
