package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
		"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
	)

	// ErrAssignmentAgentMismatch is returned when an agent tries to accept
	// an assignment that belongs to a different agent.
	ErrAssignmentAgentMismatch = errors.New("assignment belongs to a different agent")
)

// AcceptAssignmentCommand records a courier's confirmation that they will
// handle their assigned delivery, stopping the acceptance timeout clock.
type AcceptAssignmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand creates a command for an agent to accept the
// order's active assignment.
func NewAcceptAssignmentCommand(orderID, agentID kernel.UUID) (AcceptAssignmentCommand, error) {
	if err := errors.Join(orderID.Validate(), agentID.Validate()); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	return AcceptAssignmentCommand{
		orderID: orderID,
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

// OrderID returns the order whose assignment is being accepted.
func (c AcceptAssignmentCommand) OrderID() kernel.UUID { return c.orderID }

// AgentID returns the accepting agent.
func (c AcceptAssignmentCommand) AgentID() kernel.UUID { return c.agentID }
