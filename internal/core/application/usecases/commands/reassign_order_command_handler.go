package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ReassignOrderCommandHandler hands an order's delivery to a different agent.
//
// Reassignment is only possible while the current assignment is Assigned or
// Accepted; once the courier has the package the binding is fixed and the
// handler fails with assignment.ErrReassignmentNotAllowed. The old
// assignment's cancellation, the old agent's counter decrement, and the
// replacement's creation happen in one transaction.
type ReassignOrderCommandHandler struct {
	uowFactory     UoWFactory
	selector       services.AgentSelector
	routeEstimator ports.RouteEstimator
	notifier       ports.Notifier
	clock          ports.Clock
}

// NewReassignOrderCommandHandler creates a handler for reassignment.
func NewReassignOrderCommandHandler(
	uowFactory UoWFactory,
	selector services.AgentSelector,
	routeEstimator ports.RouteEstimator,
	notifier ports.Notifier,
	clock ports.Clock,
) ReassignOrderCommandHandler {
	return ReassignOrderCommandHandler{
		uowFactory:     uowFactory,
		selector:       selector,
		routeEstimator: routeEstimator,
		notifier:       notifier,
		clock:          clock,
	}
}

// Handle processes the reassignment and returns the replacement assignment.
func (h ReassignOrderCommandHandler) Handle(
	ctx context.Context,
	command ReassignOrderCommand,
) (*assignment.Assignment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	assignmentRepo := uow.AssignmentRepository()

	current, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, ord.ID())
	if err != nil {
		return nil, err
	}

	if !current.CanReassign() {
		return nil, fmt.Errorf("%w: assignment is %s", assignment.ErrReassignmentNotAllowed, current.Status())
	}

	if err = current.Cancel(command.Reason()); err != nil {
		return nil, err
	}

	agentRepo := uow.AgentRepository()

	oldAgent, err := agentRepo.GetForUpdate(ctx, current.AgentID())
	if err != nil {
		return nil, err
	}
	if err = oldAgent.ReleaseAssignment(); err != nil {
		return nil, err
	}

	if err = assignmentRepo.Update(ctx, current); err != nil {
		return nil, err
	}
	if err = agentRepo.Update(ctx, oldAgent); err != nil {
		return nil, err
	}

	replacement, err := createAssignment(
		ctx, uow, h.selector, h.routeEstimator, h.clock,
		ord, nil, []kernel.UUID{oldAgent.ID()},
	)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Publish(ctx, ports.EventAssignmentChanged, map[string]any{
		"order_id":      ord.ID().String(),
		"assignment_id": replacement.ID().String(),
		"agent_id":      replacement.AgentID().String(),
		"status":        replacement.Status().String(),
		"reassigned":    true,
		"reason":        command.Reason(),
	})

	return replacement, nil
}
