package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autoAssignmentJob  *AutoAssignmentJob
	acceptanceSweepJob *AcceptanceSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	assignHandler commands.AssignOrderCommandHandler,
	sweepHandler commands.SweepAcceptanceTimeoutsCommandHandler,
	orderUoWFactory commands.OrderUoWFactory,
	sweepSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autoAssignmentJob:  NewAutoAssignmentJob(assignHandler, orderUoWFactory, logger),
		acceptanceSweepJob: NewAcceptanceSweepJob(sweepHandler, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.autoAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-assignment job: %w", err)
	}

	if err := jm.acceptanceSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.autoAssignmentJob.Stop()
		return fmt.Errorf("failed to start acceptance sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.acceptanceSweepJob.Stop()
	jm.autoAssignmentJob.Stop()
}
