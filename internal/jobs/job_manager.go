package jobs

import (
	"fmt"
	"log/slog"

	"swiftparcel/internal/core/application/usecases/commands"
	"swiftparcel/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	assignmentSweepJob *AssignmentSweepJob
	paymentWatchJob    *PaymentWatchJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	orderUoWFactory commands.OrderUoWFactory,
	paymentUoWFactory commands.PaymentUoWFactory,
	gateway ports.PaymentGateway,
	assignHandler commands.AssignCourierCommandHandler,
	reconcileHandler commands.ReconcilePaymentCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		assignmentSweepJob: NewAssignmentSweepJob(orderUoWFactory, assignHandler, logger),
		paymentWatchJob:    NewPaymentWatchJob(paymentUoWFactory, gateway, reconcileHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment sweep job: %w", err)
	}

	if err := jm.paymentWatchJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.assignmentSweepJob.Stop()
		return fmt.Errorf("failed to start payment watch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.paymentWatchJob.Stop()
	jm.assignmentSweepJob.Stop()
}
