package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrNoAgentAvailable is returned when automatic selection finds no
	// eligible agent. The order is unaffected; the caller surfaces this to
	// ops and retries later.
	ErrNoAgentAvailable = errors.New("no agent available for assignment")

	// ErrAgentUnavailable is returned when a staff-chosen agent does not
	// belong to the order's store, is not active, or has no spare capacity.
	ErrAgentUnavailable = errors.New("requested agent is unavailable")
)

// AssignOrderCommandHandler creates assignments for orders.
//
// Assignment is idempotent: an order that already has a non-terminal
// assignment gets it back unchanged. The chosen agent's in-flight counter is
// incremented in the same transaction as the assignment write. The handler
// never changes the order's status; advancing the workflow is a separate,
// caller-driven transition.
type AssignOrderCommandHandler struct {
	uowFactory     UoWFactory
	selector       services.AgentSelector
	routeEstimator ports.RouteEstimator
	notifier       ports.Notifier
	clock          ports.Clock
}

// NewAssignOrderCommandHandler creates a handler for order assignment.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	selector services.AgentSelector,
	routeEstimator ports.RouteEstimator,
	notifier ports.Notifier,
	clock ports.Clock,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory:     uowFactory,
		selector:       selector,
		routeEstimator: routeEstimator,
		notifier:       notifier,
		clock:          clock,
	}
}

// Handle processes the assignment command and returns the order's active
// assignment, freshly created or pre-existing.
func (h AssignOrderCommandHandler) Handle(
	ctx context.Context,
	command AssignOrderCommand,
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

	existing, err := uow.AssignmentRepository().GetActiveByOrder(ctx, ord.ID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	created, err := createAssignment(
		ctx, uow, h.selector, h.routeEstimator, h.clock,
		ord, command.ExplicitAgentID(), nil,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Publish(ctx, ports.EventAssignmentChanged, map[string]any{
		"order_id":      ord.ID().String(),
		"assignment_id": created.ID().String(),
		"agent_id":      created.AgentID().String(),
		"status":        created.Status().String(),
	})

	return created, nil
}

// createAssignment picks an agent, creates the assignment and bumps the
// agent's in-flight counter, all on the caller's transaction. Shared by
// direct assignment, reassignment and the acceptance timeout sweep.
func createAssignment(
	ctx context.Context,
	uow UoW,
	selector services.AgentSelector,
	routeEstimator ports.RouteEstimator,
	clock ports.Clock,
	ord *order.Order,
	explicitAgentID *kernel.UUID,
	exclude []kernel.UUID,
) (*assignment.Assignment, error) {
	agentRepo := uow.AgentRepository()

	chosenID := kernel.UUID{}
	if explicitAgentID != nil {
		chosenID = *explicitAgentID
	} else {
		candidates, err := agentRepo.GetEligibleByStore(ctx, ord.StoreID())
		if err != nil {
			return nil, err
		}

		selected, err := selector.Select(candidates, exclude)
		if errors.Is(err, services.ErrNoEligibleAgent) {
			return nil, ErrNoAgentAvailable
		}
		if err != nil {
			return nil, err
		}
		chosenID = selected.ID()
	}

	// Re-read under lock: eligibility seen during selection may be stale by
	// the time the counter is written.
	chosen, err := agentRepo.GetForUpdate(ctx, chosenID)
	if err != nil {
		if explicitAgentID != nil && errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ErrAgentUnavailable
		}
		return nil, err
	}

	if !chosen.StoreID().IsEqual(ord.StoreID()) || !chosen.IsEligible() {
		return nil, ErrAgentUnavailable
	}

	distanceKm, timeMinutes, err := routeEstimator.Estimate(ctx, ord.ID())
	if err != nil {
		return nil, err
	}

	created, err := assignment.NewAssignment(
		kernel.NewUUID(), ord.ID(), chosen.ID(),
		distanceKm, timeMinutes, clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = chosen.TakeAssignment(); err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = agentRepo.Update(ctx, chosen); err != nil {
		return nil, err
	}

	return created, nil
}
