package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReassignOrderCommandIsNotConstructed = errors.New(
	"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
)

// ReassignOrderCommand moves an order's delivery to a different agent. The
// current assignment is cancelled with the given reason and a replacement is
// created excluding the old agent, all in one transaction.
type ReassignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewReassignOrderCommand creates a command to reassign an order's delivery.
// The reason is recorded on the cancelled assignment.
func NewReassignOrderCommand(orderID kernel.UUID, reason string) (ReassignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReassignOrderCommand{}, err
	}
	if reason == "" {
		return ReassignOrderCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return ReassignOrderCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

// OrderID returns the order to reassign.
func (c ReassignOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Reason returns why the delivery is being reassigned.
func (c ReassignOrderCommand) Reason() string { return c.reason }
