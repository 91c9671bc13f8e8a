package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterAgentCommandIsNotConstructed = errors.New(
	"RegisterAgentCommand must be created via NewRegisterAgentCommand constructor",
)

// RegisterAgentCommand registers a new delivery agent with a merchant store.
type RegisterAgentCommand struct { //nolint:recvcheck //using for validation
	agentID       kernel.UUID
	storeID       kernel.UUID
	name          string
	phone         string
	vehicleType   agent.VehicleType
	maxConcurrent int

	guard guard.ConstructorGuard
}

// NewRegisterAgentCommand creates a command to register an agent. Name and
// phone requirements are enforced by the DeliveryAgent aggregate on Handle;
// a non-positive maxConcurrent falls back to the aggregate default.
func NewRegisterAgentCommand(
	agentID kernel.UUID,
	storeID kernel.UUID,
	name string,
	phone string,
	vehicleType agent.VehicleType,
	maxConcurrent int,
) (RegisterAgentCommand, error) {
	if err := errors.Join(agentID.Validate(), storeID.Validate()); err != nil {
		return RegisterAgentCommand{}, err
	}

	return RegisterAgentCommand{
		agentID:       agentID,
		storeID:       storeID,
		name:          name,
		phone:         phone,
		vehicleType:   vehicleType,
		maxConcurrent: maxConcurrent,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterAgentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAgentCommandIsNotConstructed)
}

// AgentID returns the identifier the new agent will be created under.
func (c RegisterAgentCommand) AgentID() kernel.UUID { return c.agentID }

// StoreID returns the store the agent registers with.
func (c RegisterAgentCommand) StoreID() kernel.UUID { return c.storeID }

// Name returns the agent's display name.
func (c RegisterAgentCommand) Name() string { return c.name }

// Phone returns the agent's contact phone number.
func (c RegisterAgentCommand) Phone() string { return c.phone }

// VehicleType returns what the agent delivers with.
func (c RegisterAgentCommand) VehicleType() agent.VehicleType { return c.vehicleType }

// MaxConcurrent returns the requested concurrency limit.
func (c RegisterAgentCommand) MaxConcurrent() int { return c.maxConcurrent }
