package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrSweepAcceptanceTimeoutsCommandIsNotConstructed = errors.New(
	"SweepAcceptanceTimeoutsCommand must be created via NewSweepAcceptanceTimeoutsCommand constructor",
)

// SweepAcceptanceTimeoutsCommand triggers one pass of the acceptance timeout
// sweep: assignments that sat in Assigned past the acceptance window are
// reassigned to a different agent. The periodic scheduler is the only caller
// permitted to reassign without human action.
type SweepAcceptanceTimeoutsCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepAcceptanceTimeoutsCommand creates a command to run one sweep pass.
func NewSweepAcceptanceTimeoutsCommand() SweepAcceptanceTimeoutsCommand {
	return SweepAcceptanceTimeoutsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SweepAcceptanceTimeoutsCommand) Validate() error {
	return c.guard.Validate(ErrSweepAcceptanceTimeoutsCommandIsNotConstructed)
}
