package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// AcceptAssignmentCommandHandler records courier acceptance of assignments.
type AcceptAssignmentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

// NewAcceptAssignmentCommandHandler creates a handler for assignment acceptance.
func NewAcceptAssignmentCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle moves the order's active assignment to Accepted under its row lock.
// Acceptance after the timeout sweep already cancelled the assignment fails
// with assignment.ErrAssignmentAlreadyTerminal through the lock ordering:
// whichever actor locks first wins.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, command AcceptAssignmentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()

	current, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if !current.AgentID().IsEqual(command.AgentID()) {
		return ErrAssignmentAgentMismatch
	}

	if err = current.Accept(h.clock.Now()); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, current); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(ctx, ports.EventAssignmentChanged, map[string]any{
		"order_id":      command.OrderID().String(),
		"assignment_id": current.ID().String(),
		"agent_id":      current.AgentID().String(),
		"status":        current.Status().String(),
	})

	return nil
}
