package services

import (
	"errors"
	"math/rand/v2"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
)

// ErrNoEligibleAgent is returned when no agent in the candidate set can take
// a new assignment. This is an expected condition during busy periods; the
// caller surfaces it to ops and retries later.
var ErrNoEligibleAgent = errors.New("no eligible agent available")

// AgentSelector is a domain service that picks the delivery agent for a new
// assignment.
//
// Selection rules:
//   - only eligible agents qualify (available, active, under capacity)
//   - agents named in the exclusion list are skipped (used by reassignment
//     to avoid bouncing an order back to the agent that just lost it)
//   - the least-loaded agent wins; ties are broken by a uniformly random
//     draw so no single agent is systematically preferred
type AgentSelector struct {
	// intN is swappable for deterministic tests.
	intN func(n int) int
}

// NewAgentSelector creates an AgentSelector using the shared PRNG for
// tie-breaking.
func NewAgentSelector() AgentSelector {
	return AgentSelector{intN: rand.IntN}
}

// NewAgentSelectorWithRand creates an AgentSelector with a custom random
// draw, used in tests to pin the tie-break.
func NewAgentSelectorWithRand(intN func(n int) int) AgentSelector {
	return AgentSelector{intN: intN}
}

// Select picks an agent from candidates, skipping any whose ID appears in
// exclude. Fails with ErrNoEligibleAgent when nothing qualifies.
func (s AgentSelector) Select(candidates []*agent.DeliveryAgent, exclude []kernel.UUID) (*agent.DeliveryAgent, error) {
	var (
		leastLoaded []*agent.DeliveryAgent
		bestCount   int
	)

	for _, a := range candidates {
		if err := a.Validate(); err != nil {
			return nil, err
		}

		if !a.IsEligible() || s.isExcluded(a.ID(), exclude) {
			continue
		}

		switch {
		case leastLoaded == nil, a.CurrentAssignments() < bestCount:
			leastLoaded = []*agent.DeliveryAgent{a}
			bestCount = a.CurrentAssignments()
		case a.CurrentAssignments() == bestCount:
			leastLoaded = append(leastLoaded, a)
		}
	}

	if len(leastLoaded) == 0 {
		return nil, ErrNoEligibleAgent
	}

	return leastLoaded[s.intN(len(leastLoaded))], nil
}

func (s AgentSelector) isExcluded(id kernel.UUID, exclude []kernel.UUID) bool {
	for _, e := range exclude {
		if id.IsEqual(e) {
			return true
		}
	}
	return false
}
