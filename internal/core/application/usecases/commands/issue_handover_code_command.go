package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrIssueHandoverCodeCommandIsNotConstructed = errors.New(
		"IssueHandoverCodeCommand must be created via NewIssueHandoverCodeCommand constructor",
	)

	// ErrOrderNotReadyForHandover is returned when issuing a merchant
	// handover code for an order that is not packed yet, already picked up,
	// or has no active assignment to hand the package to.
	ErrOrderNotReadyForHandover = errors.New("order is not ready for merchant handover")
)

// IssueHandoverCodeCommand requests a one-time merchant handover code for an
// order awaiting pickup. The code is displayed to store staff and verified
// by the courier at the counter.
type IssueHandoverCodeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueHandoverCodeCommand creates a command to issue a merchant handover code.
func NewIssueHandoverCodeCommand(orderID kernel.UUID) (IssueHandoverCodeCommand, error) {
	if err := orderID.Validate(); err != nil {
		return IssueHandoverCodeCommand{}, err
	}

	return IssueHandoverCodeCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueHandoverCodeCommand) Validate() error {
	return c.guard.Validate(ErrIssueHandoverCodeCommandIsNotConstructed)
}

// OrderID returns the order to issue a code for.
func (c IssueHandoverCodeCommand) OrderID() kernel.UUID { return c.orderID }
