package job

import "context"

// Job defines a periodic background job.
type Job interface {
	// Name returns a unique identifier for this job, used in logs and metrics.
	Name() string

	// Schedule returns a 5-field cron expression (e.g., "*/1 * * * *").
	Schedule() string

	// Run executes the job once. Implementations should honour ctx
	// cancellation.
	Run(ctx context.Context) error
}
