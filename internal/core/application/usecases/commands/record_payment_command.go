package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand records the outcome of a payment attempt reported by
// the payment provider's webhook.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	succeeded bool

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment outcome.
func NewRecordPaymentCommand(orderID kernel.UUID, succeeded bool) (RecordPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RecordPaymentCommand{}, err
	}

	return RecordPaymentCommand{
		orderID:   orderID,
		succeeded: succeeded,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// OrderID returns the order the payment belongs to.
func (c RecordPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Succeeded reports whether the payment settled.
func (c RecordPaymentCommand) Succeeded() bool { return c.succeeded }
