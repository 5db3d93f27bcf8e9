package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklog-api/internal/domain"
	"github.com/phrazzld/tasklog-api/internal/platform/logger"
	"github.com/phrazzld/tasklog-api/internal/store"
)

// RecentTaskLimit is the number of tasks returned by ListRecent.
const RecentTaskLimit = 4

// TaskService defines the operations on tasks available to an authenticated
// caller. Every method takes the caller's user id and only ever sees tasks
// owned by that user.
type TaskService interface {
	// Create validates and stores a new task owned by userID.
	Create(ctx context.Context, userID int64, title string, duration int) (*domain.Task, error)

	// ListRecent returns up to RecentTaskLimit of the caller's tasks, newest first.
	ListRecent(ctx context.Context, userID int64) ([]*domain.Task, error)

	// ListByOwner returns all of the caller's tasks in ascending ID order.
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Task, error)

	// Get returns a single task, or ErrTaskNotFound.
	Get(ctx context.Context, userID, taskID int64) (*domain.Task, error)

	// Update changes only the fields present in patch and returns the result.
	Update(ctx context.Context, userID, taskID int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete permanently removes a task, or returns ErrTaskNotFound.
	Delete(ctx context.Context, userID, taskID int64) error
}

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create", "update")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError returns sentinels and validation errors unchanged and
// wraps everything else in a TaskServiceError.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}

	if errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a TaskService backed by tasks.
// If logger is nil, slog.Default is used.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// Create implements TaskService.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	userID int64,
	title string,
	duration int,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(userID, title, duration)
	if err != nil {
		log.Debug("rejected invalid task", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, NewTaskServiceError("create", "failed to store task", err)
	}

	return task, nil
}

// ListRecent implements TaskService.
func (s *taskServiceImpl) ListRecent(ctx context.Context, userID int64) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListRecentByOwner(ctx, userID, RecentTaskLimit)
	if err != nil {
		return nil, NewTaskServiceError("list_recent", "failed to list tasks", err)
	}
	return tasks, nil
}

// ListByOwner implements TaskService.
func (s *taskServiceImpl) ListByOwner(ctx context.Context, userID int64) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, userID)
	if err != nil {
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}
	return tasks, nil
}

// Get implements TaskService.
func (s *taskServiceImpl) Get(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, store.TaskKey{ID: taskID, OwnerID: userID})
	if err != nil {
		return nil, NewTaskServiceError("get", "failed to get task", err)
	}
	return task, nil
}

// Update implements TaskService. An empty patch still refreshes updated_at.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	userID, taskID int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, store.TaskKey{ID: taskID, OwnerID: userID}, patch)
	if err != nil {
		return nil, NewTaskServiceError("update", "failed to update task", err)
	}
	return task, nil
}

// Delete implements TaskService.
func (s *taskServiceImpl) Delete(ctx context.Context, userID, taskID int64) error {
	if err := s.tasks.Delete(ctx, store.TaskKey{ID: taskID, OwnerID: userID}); err != nil {
		return NewTaskServiceError("delete", "failed to delete task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted by owner",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))
	return nil
}
