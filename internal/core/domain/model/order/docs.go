// Package order provides domain entities and business logic for order
// fulfillment. It implements the Order aggregate root with a guarded status
// state machine, payment gating, one-time handover code tracking, and an
// append-only status history.
//
// The package includes:
//   - Order: The aggregate root managing order identity, money totals, and lifecycle
//   - Status: A state machine enforcing the fulfillment workflow transitions
//   - PaymentStatus / PaymentMethod: settlement state used for payment gating
//   - StatusEvent: an immutable history record of one status transition
//
// Key business rules:
//   - Status transitions follow the fixed allow-list table; anything else is
//     rejected with ErrInvalidTransition
//   - Payment-gated transitions (Confirmed through Delivered) require the
//     order to be paid unless it settles on delivery
//   - Handover and delivery codes are recorded at most once per order
//   - Every successful transition produces exactly one StatusEvent
package order
