package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSetAgentAvailabilityCommandIsNotConstructed = errors.New(
	"SetAgentAvailabilityCommand must be created via NewSetAgentAvailabilityCommand constructor",
)

// SetAgentAvailabilityCommand toggles an agent's availability flag and
// working status, from the agent's own device or from the merchant console.
type SetAgentAvailabilityCommand struct { //nolint:recvcheck //using for validation
	agentID           kernel.UUID
	available         bool
	operationalStatus agent.OperationalStatus

	guard guard.ConstructorGuard
}

// NewSetAgentAvailabilityCommand creates a command to update an agent's
// availability and working status together.
func NewSetAgentAvailabilityCommand(
	agentID kernel.UUID,
	available bool,
	operationalStatus agent.OperationalStatus,
) (SetAgentAvailabilityCommand, error) {
	if err := errors.Join(agentID.Validate(), operationalStatus.Validate()); err != nil {
		return SetAgentAvailabilityCommand{}, err
	}

	return SetAgentAvailabilityCommand{
		agentID:           agentID,
		available:         available,
		operationalStatus: operationalStatus,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetAgentAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAgentAvailabilityCommandIsNotConstructed)
}

// AgentID returns the agent to update.
func (c SetAgentAvailabilityCommand) AgentID() kernel.UUID { return c.agentID }

// Available returns the requested availability flag.
func (c SetAgentAvailabilityCommand) Available() bool { return c.available }

// OperationalStatus returns the requested working status.
func (c SetAgentAvailabilityCommand) OperationalStatus() agent.OperationalStatus {
	return c.operationalStatus
}
