// Package job runs periodic background jobs on a cron schedule.
//
// Jobs are registered once at startup with a Scheduler, which wraps
// robfig/cron so that overlapping runs are skipped, panics are recovered and
// every run is logged and counted. The task report job lists one user's
// tasks and publishes the formatted report to one or more ReportSinks.
package job
