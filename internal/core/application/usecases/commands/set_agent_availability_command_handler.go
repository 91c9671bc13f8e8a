package commands

import (
	"context"
)

// SetAgentAvailabilityCommandHandler updates agent availability.
type SetAgentAvailabilityCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewSetAgentAvailabilityCommandHandler creates a handler for availability updates.
func NewSetAgentAvailabilityCommandHandler(uowFactory AgentUoWFactory) SetAgentAvailabilityCommandHandler {
	return SetAgentAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the availability flag and working status under the agent's
// row lock so the update cannot race a concurrent assignment write.
func (h SetAgentAvailabilityCommandHandler) Handle(ctx context.Context, command SetAgentAvailabilityCommand) error {
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

	agentRepo := uow.AgentRepository()

	ag, err := agentRepo.GetForUpdate(ctx, command.AgentID())
	if err != nil {
		return err
	}

	if err = ag.SetAvailability(command.Available()); err != nil {
		return err
	}
	if err = ag.SetOperationalStatus(command.OperationalStatus()); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, ag); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
