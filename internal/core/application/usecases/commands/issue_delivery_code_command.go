package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrIssueDeliveryCodeCommandIsNotConstructed = errors.New(
		"IssueDeliveryCodeCommand must be created via NewIssueDeliveryCodeCommand constructor",
	)

	// ErrOrderNotOutForDelivery is returned when issuing a customer delivery
	// code for an order that is not out for delivery.
	ErrOrderNotOutForDelivery = errors.New("order is not out for delivery")
)

// IssueDeliveryCodeCommand requests a one-time customer delivery code for an
// order en route. The code reaches the customer out of band (SMS/push) and
// is verified by the courier at the door.
type IssueDeliveryCodeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueDeliveryCodeCommand creates a command to issue a customer delivery code.
func NewIssueDeliveryCodeCommand(orderID kernel.UUID) (IssueDeliveryCodeCommand, error) {
	if err := orderID.Validate(); err != nil {
		return IssueDeliveryCodeCommand{}, err
	}

	return IssueDeliveryCodeCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueDeliveryCodeCommand) Validate() error {
	return c.guard.Validate(ErrIssueDeliveryCodeCommandIsNotConstructed)
}

// OrderID returns the order to issue a code for.
func (c IssueDeliveryCodeCommand) OrderID() kernel.UUID { return c.orderID }
