package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklog-api/internal/platform/logger"
	"github.com/robfig/cron/v3"
)

// ErrUnknownJob is returned by RunNow for a name that was never registered.
var ErrUnknownJob = errors.New("unknown job")

// ErrDuplicateJob is returned by Register when the name is already taken.
var ErrDuplicateJob = errors.New("job already registered")

// Scheduler runs registered jobs on their cron schedules. A job whose
// previous run has not finished is skipped rather than run concurrently.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *Metrics

	// base is the parent context of every scheduled run; cancelled only
	// when Stop gives up waiting.
	base   context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	jobs map[string]Job
}

// NewScheduler creates a Scheduler evaluating schedules in loc.
// Nil logger, metrics and loc fall back to slog.Default, no metrics and UTC.
func NewScheduler(log *slog.Logger, metrics *Metrics, loc *time.Location) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	log = log.With(slog.String("component", "scheduler"))

	cl := cronLogger{logger: log}
	base, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  log,
		metrics: metrics,
		base:    base,
		cancel:  cancel,
		jobs:    make(map[string]Job),
	}
}

// Register adds job to the schedule. It fails on a duplicate name or an
// invalid cron expression.
func (s *Scheduler) Register(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := job.Name()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}

	if _, err := s.cron.AddFunc(job.Schedule(), func() {
		_ = s.run(s.base, job)
	}); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", job.Schedule(), name, err)
	}

	s.jobs[name] = job
	s.logger.Info("job registered",
		slog.String("job", name),
		slog.String("schedule", job.Schedule()))
	return nil
}

// Start begins running jobs on their schedules in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", slog.Int("job_count", s.jobCount()))
}

// Stop prevents new runs and waits for running jobs to finish. If ctx ends
// first, running jobs are cancelled and ctx.Err() is returned.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.cancel()
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.cancel()
		s.logger.Warn("scheduler stop timed out, cancelling running jobs")
		return ctx.Err()
	}
}

// RunNow runs the named job once, synchronously, with the same logging and
// metrics as a scheduled run.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.run(ctx, job)
}

func (s *Scheduler) jobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	log := s.logger.With(
		slog.String("job", job.Name()),
		slog.String("run_id", uuid.NewString()))
	ctx = logger.WithLogger(ctx, log)

	started := time.Now()
	log.Debug("job run started")

	err := job.Run(ctx)
	elapsed := time.Since(started)
	s.metrics.observe(job.Name(), err, started, elapsed)

	if err != nil {
		// No retry; the next scheduled run is the retry.
		log.Error("job run failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", elapsed))
		return err
	}

	log.Info("job run completed", slog.Duration("duration", elapsed))
	return nil
}

// cronLogger adapts slog to the cron.Logger interface. cron's info messages
// are per-tick noise and go to DEBUG.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
