// Package jobs provides the scheduled recovery and housekeeping tasks of the
// dispatch engine, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. CommandTimeoutJob - fails Pending commands older than the command
// timeout so a crashed or unreachable robot never wedges its queue
//
// 2. PickupWindowJob - returns robots whose pickup-wait window expired and
// cancels the cargo nobody came to collect
//
// 3. RetentionJob - purges terminal commands past their retention windows
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(sweepHandler, expireHandler, purgeHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweepers run the same operations the HTTP surface can trigger, so a
// lost race with a concurrent request is normal: the conditional writes
// inside the handlers skip rows another writer moved first, and the job only
// logs errors that indicate real failures.
package jobs
