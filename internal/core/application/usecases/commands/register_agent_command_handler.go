package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/agent"
)

// RegisterAgentCommandHandler registers delivery agents.
type RegisterAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewRegisterAgentCommandHandler creates a handler for agent registration.
func NewRegisterAgentCommandHandler(uowFactory AgentUoWFactory) RegisterAgentCommandHandler {
	return RegisterAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the agent in Inactive status and persists it. Agents opt
// into work separately via the availability endpoint.
func (h RegisterAgentCommandHandler) Handle(ctx context.Context, command RegisterAgentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newAgent, err := agent.NewDeliveryAgent(
		command.AgentID(),
		command.StoreID(),
		command.Name(),
		command.Phone(),
		command.VehicleType(),
		command.MaxConcurrent(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AgentRepository().Add(ctx, newAgent); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
