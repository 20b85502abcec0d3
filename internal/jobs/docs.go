// Package jobs provides scheduled background tasks for the parcel service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(jobs.NewReconciliationJob(handler, schedule, repair, m, logger))
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// ReconciliationJob scans for riders whose availability disagrees with their
// parcels. In repair mode it also fixes them. Schedules accept the standard
// five-field form, an optional leading seconds field and descriptors such as
// "@every 1m".
//
// # Error Handling
//
// A failed run is logged and the next run happens on schedule. A run that is
// still going when the next one is due makes the next one skip.
package jobs
