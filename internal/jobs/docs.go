// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. AssignmentSweepJob - Runs every 30 seconds to retry courier dispatch for
// paid orders still waiting for assignment
// 2. PaymentWatchJob - Runs every minute to resolve payments whose provider
// callback never arrived
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(orderUoWFactory, paymentUoWFactory,
//		gateway, assignHandler, reconcileHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The sweep job treats an empty fleet and lost assignment races as expected
// and only logs unexpected failures
// - The watch job leaves unreachable providers for the next pass; every
// resolved payment goes through the idempotent reconciliation path
package jobs
