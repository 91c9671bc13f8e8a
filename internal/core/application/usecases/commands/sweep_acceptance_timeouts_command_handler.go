package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// SweepAcceptanceTimeoutsCommandHandler reassigns orders whose assignment sat
// in Assigned past the acceptance window.
//
// Candidates are listed in a short read-only transaction, then each order is
// processed in its own transaction with fresh row locks: the assignment is
// re-read under lock and re-checked against the cutoff, so a courier who
// accepted between the listing and the lock wins and the sweep skips the
// order. The old agent is excluded from the replacement selection. When no
// other agent is available the stale assignment is still cancelled, the order
// returns to the auto-assignment pool, and an ops alert is raised, deduped
// through the TTL store so a long outage does not page once per sweep.
type SweepAcceptanceTimeoutsCommandHandler struct {
	uowFactory       UoWFactory
	selector         services.AgentSelector
	routeEstimator   ports.RouteEstimator
	ttlStore         ports.TTLStore
	notifier         ports.Notifier
	clock            ports.Clock
	acceptanceWindow time.Duration
	alertTTL         time.Duration
}

// NewSweepAcceptanceTimeoutsCommandHandler creates a handler running the
// acceptance timeout sweep with the given window and alert dedupe lifetime.
func NewSweepAcceptanceTimeoutsCommandHandler(
	uowFactory UoWFactory,
	selector services.AgentSelector,
	routeEstimator ports.RouteEstimator,
	ttlStore ports.TTLStore,
	notifier ports.Notifier,
	clock ports.Clock,
	acceptanceWindow time.Duration,
	alertTTL time.Duration,
) SweepAcceptanceTimeoutsCommandHandler {
	return SweepAcceptanceTimeoutsCommandHandler{
		uowFactory:       uowFactory,
		selector:         selector,
		routeEstimator:   routeEstimator,
		ttlStore:         ttlStore,
		notifier:         notifier,
		clock:            clock,
		acceptanceWindow: acceptanceWindow,
		alertTTL:         alertTTL,
	}
}

// Handle runs one sweep pass and returns the number of orders reassigned.
// A failure on one order does not abort the batch; per-order errors are
// joined into the returned error.
func (h SweepAcceptanceTimeoutsCommandHandler) Handle(
	ctx context.Context,
	command SweepAcceptanceTimeoutsCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	cutoff := h.clock.Now().Add(-h.acceptanceWindow)

	candidates, err := h.listCandidates(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	reassigned := 0
	var failures []error

	for _, candidate := range candidates {
		swept, err := h.sweepOne(ctx, candidate, cutoff)
		if err != nil {
			if errors.Is(err, ErrNoAgentAvailable) {
				h.raiseNoAgentAlert(ctx, candidate.OrderID())
				continue
			}
			failures = append(failures, err)
			continue
		}
		if swept {
			reassigned++
		}
	}

	return reassigned, errors.Join(failures...)
}

func (h SweepAcceptanceTimeoutsCommandHandler) listCandidates(
	ctx context.Context,
	cutoff time.Time,
) ([]*assignment.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.AssignmentRepository().GetExpiredUnaccepted(ctx, cutoff)
}

// sweepOne cancels one stale assignment and creates a replacement in a single
// transaction. The cancellation is committed even when no replacement agent
// is available, so the order falls back to the auto-assignment pool.
func (h SweepAcceptanceTimeoutsCommandHandler) sweepOne(
	ctx context.Context,
	candidate *assignment.Assignment,
	cutoff time.Time,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().GetForUpdate(ctx, candidate.OrderID())
	if err != nil {
		return false, err
	}

	assignmentRepo := uow.AssignmentRepository()

	current, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, ord.ID())
	if err != nil {
		return false, err
	}

	// Re-check under lock: the courier may have accepted, or a manual
	// reassignment may have replaced the listing we saw.
	if !current.ID().IsEqual(candidate.ID()) ||
		current.Status() != assignment.Assigned ||
		current.AssignedAt().After(cutoff) {
		return false, nil
	}

	if err = current.Cancel("acceptance timeout"); err != nil {
		return false, err
	}

	agentRepo := uow.AgentRepository()

	oldAgent, err := agentRepo.GetForUpdate(ctx, current.AgentID())
	if err != nil {
		return false, err
	}
	if err = oldAgent.ReleaseAssignment(); err != nil {
		return false, err
	}

	if err = assignmentRepo.Update(ctx, current); err != nil {
		return false, err
	}
	if err = agentRepo.Update(ctx, oldAgent); err != nil {
		return false, err
	}

	replacement, err := createAssignment(
		ctx, uow, h.selector, h.routeEstimator, h.clock,
		ord, nil, []kernel.UUID{oldAgent.ID()},
	)
	if err != nil && !errors.Is(err, ErrNoAgentAvailable) {
		return false, err
	}
	noAgent := err != nil

	if commitErr := uow.Commit(ctx); commitErr != nil {
		return false, commitErr
	}

	if noAgent {
		return false, err
	}

	h.notifier.Publish(ctx, ports.EventAssignmentChanged, map[string]any{
		"order_id":      ord.ID().String(),
		"assignment_id": replacement.ID().String(),
		"agent_id":      replacement.AgentID().String(),
		"status":        replacement.Status().String(),
		"reassigned":    true,
		"reason":        "acceptance timeout",
	})

	return true, nil
}

// raiseNoAgentAlert publishes an ops alert at most once per alertTTL per
// order. TTL store failures are swallowed; a duplicate alert beats a lost
// sweep.
func (h SweepAcceptanceTimeoutsCommandHandler) raiseNoAgentAlert(ctx context.Context, orderID kernel.UUID) {
	key := noAgentAlertKey(orderID)

	if _, found, err := h.ttlStore.Get(ctx, key); err == nil && found {
		return
	}

	_ = h.ttlStore.Set(ctx, key, "1", h.alertTTL)

	h.notifier.Publish(ctx, ports.EventAssignmentChanged, map[string]any{
		"order_id": orderID.String(),
		"alert":    "no_agent_available",
	})
}
