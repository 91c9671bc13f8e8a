// Package jobs contains the scheduled background jobs of the fulfillment
// engine.
//
// Two jobs run on cron schedules:
//   - AutoAssignmentJob matches ready-for-pickup orders with available
//     delivery agents every second.
//   - AcceptanceSweepJob cancels assignments that sat unaccepted past the
//     acceptance window and hands the orders to a different agent.
//
// JobManager wires both jobs and owns their lifecycle.
package jobs
