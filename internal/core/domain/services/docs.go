// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the fulfillment system. It
// implements business logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - AgentSelector: a domain service picking the delivery agent for an
//     order using least-loaded selection with random tie-breaking
package services
