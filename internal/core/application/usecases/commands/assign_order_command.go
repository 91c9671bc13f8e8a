package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand requests an assignment for an order. Without an
// explicit agent the engine selects the least-loaded eligible agent of the
// order's store; with one, merchant staff override the selection.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	explicitAgentID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command for automatic agent selection.
func NewAssignOrderCommand(orderID kernel.UUID) (AssignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewAssignOrderCommandWithAgent creates a command pinning the assignment to
// a specific agent, used by merchant staff to override selection.
func NewAssignOrderCommandWithAgent(orderID, explicitAgentID kernel.UUID) (AssignOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), explicitAgentID.Validate()); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID:         orderID,
		explicitAgentID: &explicitAgentID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ExplicitAgentID returns the staff-chosen agent, nil for automatic selection.
func (c AssignOrderCommand) ExplicitAgentID() *kernel.UUID { return c.explicitAgentID }
