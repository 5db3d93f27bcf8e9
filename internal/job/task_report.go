package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/tasklog-api/internal/domain"
)

// ReportTimeLayout is the timestamp format used in task reports.
const ReportTimeLayout = "2006-01-02 15:04:05"

// TaskLister lists every task of one owner in ascending ID order.
// service.TaskService satisfies it.
type TaskLister interface {
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Task, error)
}

// Report is one rendered task report.
type Report struct {
	Job         string    `json:"job"`
	UserID      int64     `json:"user_id"`
	GeneratedAt time.Time `json:"generated_at"`
	TaskCount   int       `json:"task_count"`
	Text        string    `json:"text"`
}

// TaskReportConfig configures a TaskReportJob.
type TaskReportConfig struct {
	Name     string
	Schedule string
	UserID   int64
	Location *time.Location
}

// TaskReportJob reports the tasks of a single user to its sinks.
type TaskReportJob struct {
	cfg   TaskReportConfig
	tasks TaskLister
	sinks []ReportSink
	now   func() time.Time
}

var _ Job = (*TaskReportJob)(nil)

// NewTaskReportJob creates a report job publishing to sinks.
// A nil Location means UTC.
func NewTaskReportJob(cfg TaskReportConfig, tasks TaskLister, sinks ...ReportSink) (*TaskReportJob, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(cfg.Name) == "" {
		verr.Add("name", "is required")
	}
	if strings.TrimSpace(cfg.Schedule) == "" {
		verr.Add("schedule", "is required")
	}
	if cfg.UserID <= 0 {
		verr.Add("user_id", "must be positive")
	}
	if tasks == nil {
		verr.Add("tasks", "cannot be nil")
	}
	if len(sinks) == 0 {
		verr.Add("sinks", "at least one sink is required")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &TaskReportJob{
		cfg:   cfg,
		tasks: tasks,
		sinks: sinks,
		now:   time.Now,
	}, nil
}

// Name implements Job.
func (j *TaskReportJob) Name() string { return j.cfg.Name }

// Schedule implements Job.
func (j *TaskReportJob) Schedule() string { return j.cfg.Schedule }

// Run builds the report and publishes it to every sink. A failing sink does
// not stop the others; all sink errors are returned joined.
func (j *TaskReportJob) Run(ctx context.Context) error {
	tasks, err := j.tasks.ListByOwner(ctx, j.cfg.UserID)
	if err != nil {
		return fmt.Errorf("failed to list tasks for user %d: %w", j.cfg.UserID, err)
	}

	report := Report{
		Job:         j.cfg.Name,
		UserID:      j.cfg.UserID,
		GeneratedAt: j.now().In(j.cfg.Location),
		TaskCount:   len(tasks),
		Text:        FormatTaskReport(j.cfg.UserID, tasks, j.cfg.Location),
	}

	var errs []error
	for _, sink := range j.sinks {
		if err := sink.Publish(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FormatTaskReport renders one line per task, or a single notice when the
// user has none.
func FormatTaskReport(userID int64, tasks []*domain.Task, loc *time.Location) string {
	if len(tasks) == 0 {
		return fmt.Sprintf("No tasks found for user %d.", userID)
	}

	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, FormatTaskLine(t, loc))
	}
	return strings.Join(lines, "\n")
}

// FormatTaskLine renders a single task with timestamps in loc.
func FormatTaskLine(t *domain.Task, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("Title: %s, Duration: %d, Created At: %s, Updated At: %s",
		t.Title,
		t.Duration,
		t.CreatedAt.In(loc).Format(ReportTimeLayout),
		t.UpdatedAt.In(loc).Format(ReportTimeLayout))
}
