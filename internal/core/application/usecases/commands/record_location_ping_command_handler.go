package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/ports"
)

var (
	// ErrPingAgentMismatch is returned when a ping arrives from an agent that
	// does not hold the order's active assignment.
	ErrPingAgentMismatch = errors.New("ping is not from the order's assigned agent")

	// ErrPingBeforeAcceptance is returned when a ping arrives for an
	// assignment the agent has not accepted yet. Tracking starts at
	// acceptance.
	ErrPingBeforeAcceptance = errors.New("assignment has not been accepted")
)

// RecordLocationPingCommandHandler appends courier location pings.
//
// Pings are append-only against the active assignment; the agent's last known
// location moves with them so the directory stays current without a separate
// write path.
type RecordLocationPingCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

// NewRecordLocationPingCommandHandler creates a handler recording location pings.
func NewRecordLocationPingCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) RecordLocationPingCommandHandler {
	return RecordLocationPingCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle records one ping against the order's active assignment.
func (h RecordLocationPingCommandHandler) Handle(ctx context.Context, command RecordLocationPingCommand) error {
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

	current, err := assignmentRepo.GetActiveByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if !current.AgentID().IsEqual(command.AgentID()) {
		return fmt.Errorf("%w: assignment is held by %s", ErrPingAgentMismatch, current.AgentID())
	}

	if current.Status() == assignment.Assigned {
		return fmt.Errorf("%w: assignment is %s", ErrPingBeforeAcceptance, current.Status())
	}

	now := h.clock.Now()

	point, err := assignment.NewTrackingPoint(
		current.ID(),
		command.Point(),
		command.SpeedKmh(),
		command.BatteryLevel(),
		now,
	)
	if err != nil {
		return err
	}

	agentRepo := uow.AgentRepository()

	ag, err := agentRepo.GetForUpdate(ctx, command.AgentID())
	if err != nil {
		return err
	}
	if err = ag.UpdateLocation(command.Point(), now); err != nil {
		return err
	}

	if err = assignmentRepo.AddTrackingPoint(ctx, point); err != nil {
		return err
	}
	if err = agentRepo.Update(ctx, ag); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(ctx, ports.EventLocationPinged, map[string]any{
		"order_id":      command.OrderID().String(),
		"assignment_id": current.ID().String(),
		"agent_id":      command.AgentID().String(),
		"lat":           command.Point().Lat(),
		"lon":           command.Point().Lon(),
	})

	return nil
}
