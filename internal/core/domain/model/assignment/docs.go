// Package assignment provides the Assignment aggregate, the binding between
// one order and one delivery agent, together with its tracking points and
// proof of delivery record.
//
// An order has at most one non-terminal assignment at any time. Assignments
// move forward only; reassignment never rewinds an assignment but cancels it
// and creates a fresh one. The package also defines the reassignment window:
// once the courier has custody (picked up or later) the assignment can no
// longer be handed to another agent.
package assignment
