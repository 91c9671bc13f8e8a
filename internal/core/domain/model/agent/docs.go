// Package agent provides the DeliveryAgent aggregate, a courier registered
// with one merchant store.
//
// The aggregate keeps the in-flight assignment counter that the assignment
// engine selects on. The counter changes only through TakeAssignment and
// ReleaseAssignment so it can be persisted in the same unit of work as the
// assignment write that caused the change.
//
// Key business rules:
//   - the in-flight counter never exceeds the agent's concurrency limit
//   - an agent is eligible for selection only when available, operationally
//     active, and under capacity
//   - lifetime delivery counters only grow
package agent
